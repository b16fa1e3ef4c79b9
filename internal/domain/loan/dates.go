package loan

import (
	"fmt"
	"strings"
	"time"

	"loan-scheduler/internal/pkg/apperrors"
)

// DateLayout is the wire format of every calendar date the service reads or writes.
const DateLayout = "2006-01-02"

const (
	minYear = 1
	maxYear = 9999

	maxMonthShift = maxYear * monthsPerYear
)

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", apperrors.ErrInvalidDate)
	}
	var date time.Time
	if t, err := time.Parse(DateLayout, s); err == nil {
		date = t
	} else if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	} else {
		return time.Time{}, fmt.Errorf("%w: %q, use YYYY-MM-DD", apperrors.ErrInvalidDate, s)
	}
	if date.Year() < minYear || date.Year() > maxYear {
		return time.Time{}, fmt.Errorf("%w: year %d is outside %d-%d", apperrors.ErrInvalidDate, date.Year(), minYear, maxYear)
	}
	return date, nil
}

// ShiftMonths moves date to the first day of its month and then advances it by months.
// Pinning the day first keeps Jan 31 + 1 month in February.
func ShiftMonths(date time.Time, months int) (time.Time, error) {
	if date.IsZero() {
		return time.Time{}, fmt.Errorf("%w: zero date", apperrors.ErrInvalidDate)
	}
	if months > maxMonthShift || months < -maxMonthShift {
		return time.Time{}, fmt.Errorf("%w: shift of %d months is out of range", apperrors.ErrInvalidDate, months)
	}

	y, m, _ := date.Date()
	shifted := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if shifted.Year() < minYear || shifted.Year() > maxYear {
		return time.Time{}, fmt.Errorf("%w: year %d is outside %d-%d", apperrors.ErrInvalidDate, shifted.Year(), minYear, maxYear)
	}
	return shifted, nil
}
