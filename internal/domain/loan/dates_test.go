package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-scheduler/internal/pkg/apperrors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	t.Run("parses ISO calendar dates", func(t *testing.T) {
		got, err := ParseDate("2024-01-15")
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.January, 15), got)
	})

	t.Run("keeps the calendar date of RFC 3339 timestamps", func(t *testing.T) {
		got, err := ParseDate("2024-03-31T23:30:00+05:30")
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.March, 31), got)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		got, err := ParseDate("  2023-12-01 ")
		require.NoError(t, err)
		assert.Equal(t, date(2023, time.December, 1), got)
	})

	t.Run("accepts the first year", func(t *testing.T) {
		got, err := ParseDate("0001-01-01")
		require.NoError(t, err)
		assert.Equal(t, date(1, time.January, 1), got)
	})

	for _, in := range []string{"", "not-a-date", "2024-13-01", "2023-02-29", "15/01/2024", "0000-01-01", "0000-06-30T00:00:00Z"} {
		t.Run("rejects "+in, func(t *testing.T) {
			_, err := ParseDate(in)
			assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
		})
	}
}

func TestShiftMonths(t *testing.T) {
	tests := []struct {
		name   string
		from   time.Time
		months int
		want   time.Time
	}{
		{"zero shift pins to the first", date(2024, time.January, 15), 0, date(2024, time.January, 1)},
		{"end of January stays in February", date(2024, time.January, 31), 1, date(2024, time.February, 1)},
		{"end of month in a short month", date(2023, time.February, 28), 1, date(2023, time.March, 1)},
		{"crosses the year boundary", date(2024, time.November, 30), 3, date(2025, time.February, 1)},
		{"twelve months is one year", date(2024, time.January, 15), 12, date(2025, time.January, 1)},
		{"negative shift", date(2024, time.March, 31), -2, date(2024, time.January, 1)},
		{"large shift", date(2024, time.January, 15), 600, date(2074, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShiftMonths(tt.from, tt.months)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("is deterministic", func(t *testing.T) {
		a, errA := ShiftMonths(date(2024, time.May, 31), 7)
		b, errB := ShiftMonths(date(2024, time.May, 31), 7)
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, a, b)
	})

	t.Run("rejects the zero date", func(t *testing.T) {
		_, err := ShiftMonths(time.Time{}, 1)
		assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
	})

	t.Run("rejects results past year 9999", func(t *testing.T) {
		_, err := ShiftMonths(date(9999, time.June, 1), 12)
		assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
	})

	t.Run("rejects absurd shifts", func(t *testing.T) {
		_, err := ShiftMonths(date(2024, time.January, 1), 1<<40)
		assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
	})
}
