package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-scheduler/internal/pkg/apperrors"
)

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		in   string
		want Frequency
		gap  int
	}{
		{"monthly", Monthly, 1},
		{"Quarterly", Quarterly, 3},
		{" YEARLY ", Yearly, 12},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := ParseFrequency(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
			assert.Equal(t, tt.gap, f.PeriodGap())
			assert.True(t, f.Valid())
		})
	}

	t.Run("rejects weekly", func(t *testing.T) {
		_, err := ParseFrequency("weekly")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.ErrorContains(t, err, "weekly")
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParseFrequency("")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestFrequencyInvalidValue(t *testing.T) {
	var f Frequency
	assert.False(t, f.Valid())
	assert.Equal(t, 0, f.PeriodGap())
	assert.Equal(t, "Frequency(0)", f.String())
	assert.Equal(t, "monthly", Monthly.String())
}

func TestFrequencyLabel(t *testing.T) {
	tests := []struct {
		f    Frequency
		due  time.Time
		want string
	}{
		{Monthly, date(2024, time.February, 1), "Feb-2024"},
		{Monthly, date(2025, time.December, 1), "Dec-2025"},
		{Quarterly, date(2024, time.March, 1), "Q1 2024"},
		{Quarterly, date(2024, time.April, 1), "Q2 2024"},
		{Quarterly, date(2024, time.September, 1), "Q3 2024"},
		{Quarterly, date(2024, time.October, 1), "Q4 2024"},
		{Yearly, date(2030, time.July, 1), "2030"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.f.Label(tt.due))
	}
}
