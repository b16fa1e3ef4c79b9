package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"loan-scheduler/internal/api/handler/dto"
	"loan-scheduler/internal/domain/loan"
	"loan-scheduler/internal/pkg/apperrors"
)

const fallbackErrorMessage = "Server error. Please check inputs and try again."

type ScheduleHandler struct {
	service loan.ScheduleService
	logger  *slog.Logger
}

func NewScheduleHandler(s loan.ScheduleService, l *slog.Logger) *ScheduleHandler {
	if s == nil {
		panic("schedule service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &ScheduleHandler{
		service: s,
		logger:  l.With("component", "ScheduleHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"msg":"Internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, fallbackErrorMessage, ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.As(err, &appErr):
		message = appErr.Message
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	respondJSON(w, status, dto.ErrorResponse{Msg: message, Field: field})
}

// GenerateSchedule handles POST /generate-schedule
// @Summary Generate a repayment schedule
// @Description Computes the level-payment amortization schedule for a loan. Numeric fields may be sent as numbers or numeric strings; an empty moratorium means none.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param request body dto.GenerateScheduleRequest true "Loan terms"
// @Success 200 {object} dto.ScheduleResponse "Schedule generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Schedule could not be computed"
// @Router /generate-schedule [post]
func (h *ScheduleHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received generate schedule request")

	var req dto.GenerateScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	input, err := req.ToLoanInput()
	if err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, err)
		return
	}
	h.logger.DebugContext(r.Context(), "Request validation passed")

	result, err := h.service.GenerateSchedule(r.Context(), input)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrValidation) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to generate schedule", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewScheduleResponse(result)
	h.logger.InfoContext(r.Context(), "Schedule generated successfully", slog.Int("periods", len(resp.Schedule)))
	respondJSON(w, http.StatusOK, resp)
}
