package loan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePeriodRate(t *testing.T) {
	t.Run("zero annual rate stays exactly zero", func(t *testing.T) {
		for _, gap := range []int{1, 3, 12} {
			assert.Equal(t, 0.0, EffectivePeriodRate(0, gap))
		}
	})

	t.Run("yearly gap returns the annual rate", func(t *testing.T) {
		assert.InDelta(t, 0.10, EffectivePeriodRate(0.10, 12), 1e-12)
	})

	t.Run("compounding the period rate reproduces the annual yield", func(t *testing.T) {
		for _, gap := range []int{1, 3, 12} {
			r := EffectivePeriodRate(0.12, gap)
			annual := math.Pow(1+r, float64(12/gap)) - 1
			assert.InDelta(t, 0.12, annual, 1e-12, "gap %d", gap)
		}
	})

	t.Run("monthly rate of 12 percent", func(t *testing.T) {
		assert.InDelta(t, 0.009488792934583046, EffectivePeriodRate(0.12, 1), 1e-15)
	})
}

func TestEffectivePeriodCount(t *testing.T) {
	tests := []struct {
		tenure, gap, want int
	}{
		{12, 1, 12},
		{12, 3, 4},
		{10, 3, 4},
		{1, 3, 1},
		{12, 12, 1},
		{13, 12, 2},
		{24, 12, 2},
		{0, 1, 0},
		{12, 0, 0},
	}
	for _, tt := range tests {
		want := tt.want
		if tt.tenure > 0 && tt.gap > 0 {
			want = int(math.Ceil(float64(tt.tenure) / float64(tt.gap)))
		}
		assert.Equal(t, tt.want, want)
		assert.Equal(t, tt.want, EffectivePeriodCount(tt.tenure, tt.gap), "tenure %d gap %d", tt.tenure, tt.gap)
	}
}

func TestLevelPayment(t *testing.T) {
	t.Run("zero rate divides principal evenly", func(t *testing.T) {
		assert.Equal(t, 10000.0, LevelPayment(120000, 0, 12))
	})

	t.Run("annuity formula", func(t *testing.T) {
		assert.InDelta(t, 57619.047619, LevelPayment(100000, 0.10, 2), 1e-6)
	})

	t.Run("no periods is not a number", func(t *testing.T) {
		assert.True(t, math.IsNaN(LevelPayment(1000, 0.1, 0)))
	})
}

func TestRemainingBalance(t *testing.T) {
	t.Run("matches step by step amortization at moderate rates", func(t *testing.T) {
		r := EffectivePeriodRate(0.12, 1)
		payment := LevelPayment(100000, r, 12)
		balance := 100000.0
		for k := 1; k <= 11; k++ {
			balance = balance*(1+r) - payment
			assert.InDelta(t, balance, RemainingBalance(100000, r, 12, k), 1e-6, "k %d", k)
		}
	})

	t.Run("is exactly zero after the last payment", func(t *testing.T) {
		assert.Equal(t, 0.0, RemainingBalance(120000, EffectivePeriodRate(1.5, 1), 360, 360))
		assert.Equal(t, 0.0, RemainingBalance(120000, 0, 12, 12))
	})

	t.Run("zero rate declines linearly", func(t *testing.T) {
		assert.Equal(t, 90000.0, RemainingBalance(120000, 0, 12, 3))
	})

	t.Run("starts at the principal", func(t *testing.T) {
		assert.InDelta(t, 120000.0, RemainingBalance(120000, EffectivePeriodRate(0.5, 1), 600, 0), 1e-6)
	})

	t.Run("no periods is not a number", func(t *testing.T) {
		assert.True(t, math.IsNaN(RemainingBalance(1000, 0.1, 0, 0)))
	})
}
