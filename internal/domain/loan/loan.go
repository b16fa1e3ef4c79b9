package loan

import (
	"fmt"
	"math"
	"time"

	"loan-scheduler/internal/pkg/apperrors"
)

const percentDivisor = 100.0

type Money = float64

type LoanInput struct {
	Principal                 Money
	TenureMonths              int
	AnnualInterestRatePercent float64
	Frequency                 Frequency
	MoratoriumMonths          int
	DisbursementDate          time.Time
}

type ScheduleEntry struct {
	PeriodIndex         int
	PaymentAmount       Money
	PrincipalComponent  Money
	InterestComponent   Money
	RemainingPrincipal  Money
	DueDate             time.Time
	DisplayLabel        string
	InterestRatePercent float64
}

type ScheduleResult struct {
	PaymentAmount    Money
	TotalInterest    Money
	TotalPaid        Money
	Frequency        Frequency
	EffectivePeriods int
	EffectiveRate    float64
	Entries          []ScheduleEntry
}

func (in LoanInput) Validate() error {
	if math.IsNaN(in.Principal) || math.IsInf(in.Principal, 0) || in.Principal <= 0 {
		return apperrors.NewValidationError("principal", "principal must be a positive number")
	}
	if in.TenureMonths <= 0 {
		return apperrors.NewValidationError("tenure", "tenure must be a positive number of months")
	}
	rate := in.AnnualInterestRatePercent
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return apperrors.NewValidationError("interestRate", "interest rate must be a non-negative number")
	}
	if !in.Frequency.Valid() {
		return apperrors.NewValidationError("emiFrequency", "invalid EMI frequency, choose monthly, quarterly, or yearly")
	}
	if in.MoratoriumMonths < 0 {
		return apperrors.NewValidationError("moratorium", "moratorium must not be negative")
	}
	if in.DisbursementDate.IsZero() {
		return apperrors.WrapValidationError("disbursementDate", "invalid disbursement date format, use YYYY-MM-DD", apperrors.ErrInvalidDate)
	}
	return nil
}

// ComputeSchedule builds the level-payment amortization schedule for in. It either returns the
// whole schedule or an error, never a partial result.
func ComputeSchedule(in LoanInput) (*ScheduleResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	gap := in.Frequency.PeriodGap()
	periods := EffectivePeriodCount(in.TenureMonths, gap)
	rate := EffectivePeriodRate(in.AnnualInterestRatePercent/percentDivisor, gap)
	payment := LevelPayment(in.Principal, rate, periods)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return nil, apperrors.WrapComputationError(
			fmt.Errorf("payment for %d periods at rate %g is not finite", periods, rate),
			"Error calculating EMI. Please check inputs.")
	}

	start, err := ShiftMonths(in.DisbursementDate, in.MoratoriumMonths)
	if err != nil {
		return nil, apperrors.WrapComputationError(err, "Error calculating due dates. Please check inputs.")
	}

	result := &ScheduleResult{
		PaymentAmount:    payment,
		Frequency:        in.Frequency,
		EffectivePeriods: periods,
		EffectiveRate:    rate,
		Entries:          make([]ScheduleEntry, 0, periods),
	}

	balance := in.Principal
	for i := 1; i <= periods; i++ {
		interest := balance * rate
		next := RemainingBalance(in.Principal, rate, periods, i)
		principalPaid := balance - next
		balance = next

		result.TotalInterest += interest
		result.TotalPaid += payment

		dueDate, err := ShiftMonths(start, gap*i)
		if err != nil {
			return nil, apperrors.WrapComputationError(err, "Error calculating due dates. Please check inputs.")
		}

		result.Entries = append(result.Entries, ScheduleEntry{
			PeriodIndex:         i,
			PaymentAmount:       payment,
			PrincipalComponent:  principalPaid,
			InterestComponent:   interest,
			RemainingPrincipal:  balance,
			DueDate:             dueDate,
			DisplayLabel:        in.Frequency.Label(dueDate),
			InterestRatePercent: in.AnnualInterestRatePercent,
		})
	}

	return result, nil
}

func roundTo(n float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(n*pow) / pow
}
