package loan

import (
	"fmt"
	"strings"
	"time"

	"loan-scheduler/internal/pkg/apperrors"
)

// Frequency is the repayment cadence of a loan. The zero value is not a valid frequency.
type Frequency int

const (
	Monthly Frequency = iota + 1
	Quarterly
	Yearly
)

const (
	monthsPerYear    = 12
	monthsPerQuarter = 3
)

var frequencyNames = map[Frequency]string{
	Monthly:   "monthly",
	Quarterly: "quarterly",
	Yearly:    "yearly",
}

// ParseFrequency maps the wire name of a frequency to its variant.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly":
		return Monthly, nil
	case "quarterly":
		return Quarterly, nil
	case "yearly":
		return Yearly, nil
	}
	return 0, apperrors.NewValidationError("emiFrequency",
		fmt.Sprintf("invalid EMI frequency %q, choose monthly, quarterly, or yearly", s))
}

func (f Frequency) Valid() bool {
	_, ok := frequencyNames[f]
	return ok
}

func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Frequency(%d)", int(f))
}

// PeriodGap returns the number of months between two installments, or 0 for an invalid frequency.
func (f Frequency) PeriodGap() int {
	switch f {
	case Monthly:
		return 1
	case Quarterly:
		return monthsPerQuarter
	case Yearly:
		return monthsPerYear
	}
	return 0
}

// Label renders a due date the way repayment tables show it: "Jan-2024", "Q1 2024" or "2024".
func (f Frequency) Label(dueDate time.Time) string {
	switch f {
	case Monthly:
		return fmt.Sprintf("%s-%d", dueDate.Format("Jan"), dueDate.Year())
	case Quarterly:
		return fmt.Sprintf("Q%d %d", quarterOf(dueDate.Month()), dueDate.Year())
	default:
		return fmt.Sprintf("%d", dueDate.Year())
	}
}

func quarterOf(m time.Month) int {
	return (int(m) + monthsPerQuarter - 1) / monthsPerQuarter
}
