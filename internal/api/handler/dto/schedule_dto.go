package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"loan-scheduler/internal/domain/loan"
	"loan-scheduler/internal/pkg/apperrors"
)

// Numeric holds a number sent either as a JSON number or as a numeric string.
type Numeric string

func (n *Numeric) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Numeric(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("expected a number, got %s", b)
	}
	*n = Numeric(num.String())
	return nil
}

func (n Numeric) IsEmpty() bool {
	return n == ""
}

func (n Numeric) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(string(n))
}

type GenerateScheduleRequest struct {
	Principal        Numeric `json:"principal" swaggertype:"string" example:"120000"`
	Tenure           Numeric `json:"tenure" swaggertype:"string" example:"12"`
	InterestRate     Numeric `json:"interestRate" swaggertype:"string" example:"10.5"`
	EMIFrequency     string  `json:"emiFrequency" example:"monthly"`
	Moratorium       Numeric `json:"moratorium" swaggertype:"string" example:"0"`
	DisbursementDate string  `json:"disbursementDate" example:"2024-01-15"`
}

// ToLoanInput validates the request and converts it to the domain input. The disbursement date
// is checked first so a malformed date is reported before anything else.
func (r *GenerateScheduleRequest) ToLoanInput() (loan.LoanInput, error) {
	var in loan.LoanInput

	disbursed, err := loan.ParseDate(r.DisbursementDate)
	if err != nil {
		return in, apperrors.WrapValidationError("disbursementDate", "Invalid disbursement date format. Use YYYY-MM-DD.", err)
	}

	principal, err := parseAmount("principal", r.Principal, true)
	if err != nil {
		return in, err
	}
	tenure, err := parseMonths("tenure", r.Tenure, true)
	if err != nil {
		return in, err
	}
	rate, err := parseAmount("interestRate", r.InterestRate, false)
	if err != nil {
		return in, err
	}
	moratorium := 0
	if !r.Moratorium.IsEmpty() {
		if moratorium, err = parseMonths("moratorium", r.Moratorium, false); err != nil {
			return in, err
		}
	}

	frequency, err := loan.ParseFrequency(r.EMIFrequency)
	if err != nil {
		return in, err
	}

	in = loan.LoanInput{
		Principal:                 principal,
		TenureMonths:              tenure,
		AnnualInterestRatePercent: rate,
		Frequency:                 frequency,
		MoratoriumMonths:          moratorium,
		DisbursementDate:          disbursed,
	}
	return in, nil
}

func parseAmount(field string, n Numeric, positive bool) (float64, error) {
	if n.IsEmpty() {
		return 0, apperrors.NewValidationError(field, field+" is required")
	}
	d, err := n.Decimal()
	if err != nil {
		return 0, apperrors.NewValidationError(field, field+" must be a number")
	}
	if positive && !d.IsPositive() {
		return 0, apperrors.NewValidationError(field, field+" must be greater than zero")
	}
	if d.IsNegative() {
		return 0, apperrors.NewValidationError(field, field+" must not be negative")
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) {
		return 0, apperrors.NewValidationError(field, field+" is too large")
	}
	return f, nil
}

func parseMonths(field string, n Numeric, positive bool) (int, error) {
	if n.IsEmpty() {
		return 0, apperrors.NewValidationError(field, field+" is required")
	}
	d, err := n.Decimal()
	if err != nil || !d.IsInteger() {
		return 0, apperrors.NewValidationError(field, field+" must be a whole number of months")
	}
	if positive && !d.IsPositive() {
		return 0, apperrors.NewValidationError(field, field+" must be greater than zero")
	}
	if d.IsNegative() {
		return 0, apperrors.NewValidationError(field, field+" must not be negative")
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, apperrors.NewValidationError(field, field+" is too large")
	}
	return int(d.IntPart()), nil
}

type ScheduleResponse struct {
	EMI             string                  `json:"EMI" example:"10000.00"`
	TotalInterest   string                  `json:"totalInterest" example:"0.00"`
	TotalPaidAmount string                  `json:"totalPaidAmount" example:"120000.00"`
	Schedule        []ScheduleEntryResponse `json:"schedule"`
}

type ScheduleEntryResponse struct {
	Month            int    `json:"month" example:"1"`
	EMI              string `json:"EMI" example:"10000.00"`
	PrincipalPaid    string `json:"principalPaid" example:"10000.00"`
	InterestPaid     string `json:"interestPaid" example:"0.00"`
	RemainingBalance string `json:"remainingBalance" example:"110000.00"`
	DueDate          string `json:"dueDate" example:"2024-02-01"`
	FormattedDate    string `json:"formattedDate" example:"Feb-2024"`
	InterestRate     string `json:"interestRate" example:"0.00"`
}

type ErrorResponse struct {
	Msg   string `json:"msg"`
	Field string `json:"field,omitempty"`
}

func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func NewScheduleResponse(result *loan.ScheduleResult) ScheduleResponse {
	resp := ScheduleResponse{
		EMI:             formatMoney(result.PaymentAmount),
		TotalInterest:   formatMoney(result.TotalInterest),
		TotalPaidAmount: formatMoney(result.TotalPaid),
		Schedule:        make([]ScheduleEntryResponse, len(result.Entries)),
	}
	for i := range result.Entries {
		resp.Schedule[i] = NewScheduleEntryResponse(&result.Entries[i])
	}
	return resp
}

func NewScheduleEntryResponse(entry *loan.ScheduleEntry) ScheduleEntryResponse {
	return ScheduleEntryResponse{
		Month:            entry.PeriodIndex,
		EMI:              formatMoney(entry.PaymentAmount),
		PrincipalPaid:    formatMoney(entry.PrincipalComponent),
		InterestPaid:     formatMoney(entry.InterestComponent),
		RemainingBalance: formatMoney(entry.RemainingPrincipal),
		DueDate:          entry.DueDate.Format(loan.DateLayout),
		FormattedDate:    entry.DisplayLabel,
		InterestRate:     formatMoney(entry.InterestRatePercent),
	}
}
