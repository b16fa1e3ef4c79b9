package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"loan-scheduler/internal/event"
	"loan-scheduler/internal/infrastructure/monitoring"
	"loan-scheduler/internal/pkg/apperrors"
)

// Limits bounds accepted input. A limit of zero or less disables that check.
type Limits struct {
	MaxPrincipal        Money
	MaxTenureMonths     int
	MaxInterestRate     float64
	MaxMoratoriumMonths int
}

type ScheduleService interface {
	GenerateSchedule(ctx context.Context, in LoanInput) (*ScheduleResult, error)
}

var _ ScheduleService = (*scheduleServiceImpl)(nil)

type scheduleServiceImpl struct {
	limits    Limits
	publisher event.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewScheduleService(limits Limits, publisher event.EventPublisher, logger *slog.Logger) ScheduleService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("No logger provided to NewScheduleService, using default stderr handler")
	}
	if publisher == nil {
		publisher = event.NewNoopPublisher()
	}
	return &scheduleServiceImpl{
		limits:    limits,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "scheduleService")),
		now:       time.Now,
	}
}

func (s *scheduleServiceImpl) GenerateSchedule(ctx context.Context, in LoanInput) (*ScheduleResult, error) {
	if err := ctx.Err(); err != nil {
		monitoring.RecordScheduleFailure("cancelled")
		return nil, err
	}

	s.logger.InfoContext(ctx, "Generating repayment schedule",
		slog.Float64("principal", in.Principal),
		slog.Int("tenure", in.TenureMonths),
		slog.Float64("interestRate", in.AnnualInterestRatePercent),
		slog.String("frequency", in.Frequency.String()),
		slog.Int("moratorium", in.MoratoriumMonths),
	)

	if err := s.checkLimits(in); err != nil {
		s.logger.WarnContext(ctx, "Loan input exceeds configured limits", slog.Any("error", err))
		monitoring.RecordScheduleFailure("limit")
		return nil, err
	}

	result, err := ComputeSchedule(in)
	if err != nil {
		reason := "internal"
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			reason = "validation"
			s.logger.WarnContext(ctx, "Loan input rejected", slog.Any("error", err))
		case errors.Is(err, apperrors.ErrScheduleComputation):
			reason = "computation"
			s.logger.ErrorContext(ctx, "Failed to compute repayment schedule", slog.Any("error", err))
		default:
			s.logger.ErrorContext(ctx, "Unexpected error computing repayment schedule", slog.Any("error", err))
		}
		monitoring.RecordScheduleFailure(reason)
		return nil, err
	}

	monitoring.RecordScheduleGenerated(result.Frequency.String(), result.EffectivePeriods)
	s.logger.InfoContext(ctx, "Repayment schedule generated",
		slog.Int("periods", result.EffectivePeriods),
		slog.Float64("emi", roundTo(result.PaymentAmount, 2)),
		slog.Float64("totalInterest", roundTo(result.TotalInterest, 2)),
	)

	if pubErr := s.publisher.PublishScheduleGenerated(ctx, s.newGeneratedEvent(in, result)); pubErr != nil {
		s.logger.ErrorContext(ctx, "Schedule generated, but FAILED to publish event", slog.Any("error", pubErr))
	}

	return result, nil
}

func (s *scheduleServiceImpl) checkLimits(in LoanInput) error {
	l := s.limits
	if l.MaxPrincipal > 0 && in.Principal > l.MaxPrincipal {
		return apperrors.NewValidationError("principal", fmt.Sprintf("principal exceeds the maximum of %.2f", l.MaxPrincipal))
	}
	if l.MaxTenureMonths > 0 && in.TenureMonths > l.MaxTenureMonths {
		return apperrors.NewValidationError("tenure", fmt.Sprintf("tenure exceeds the maximum of %d months", l.MaxTenureMonths))
	}
	if l.MaxInterestRate > 0 && in.AnnualInterestRatePercent > l.MaxInterestRate {
		return apperrors.NewValidationError("interestRate", fmt.Sprintf("interest rate exceeds the maximum of %.2f%%", l.MaxInterestRate))
	}
	if l.MaxMoratoriumMonths > 0 && in.MoratoriumMonths > l.MaxMoratoriumMonths {
		return apperrors.NewValidationError("moratorium", fmt.Sprintf("moratorium exceeds the maximum of %d months", l.MaxMoratoriumMonths))
	}
	return nil
}

func (s *scheduleServiceImpl) newGeneratedEvent(in LoanInput, result *ScheduleResult) event.ScheduleGeneratedEvent {
	ev := event.ScheduleGeneratedEvent{
		Principal:        in.Principal,
		TenureMonths:     in.TenureMonths,
		InterestRate:     in.AnnualInterestRatePercent,
		Frequency:        result.Frequency.String(),
		MoratoriumMonths: in.MoratoriumMonths,
		DisbursementDate: in.DisbursementDate.Format(DateLayout),
		Periods:          result.EffectivePeriods,
		EMI:              roundTo(result.PaymentAmount, 2),
		TotalInterest:    roundTo(result.TotalInterest, 2),
		TotalPaidAmount:  roundTo(result.TotalPaid, 2),
		Timestamp:        s.now().UTC(),
	}
	if n := len(result.Entries); n > 0 {
		ev.FirstDueDate = result.Entries[0].DueDate.Format(DateLayout)
		ev.LastDueDate = result.Entries[n-1].DueDate.Format(DateLayout)
	}
	return ev
}
