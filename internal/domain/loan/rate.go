package loan

import "math"

// EffectivePeriodRate converts a nominal annual rate (as a fraction) into the compounding rate of
// one period of periodGap months, keeping the annual yield the same for every frequency.
func EffectivePeriodRate(annualRate float64, periodGap int) float64 {
	return math.Pow(1+annualRate, float64(periodGap)/monthsPerYear) - 1
}

// EffectivePeriodCount is ceil(tenureMonths / periodGap). A trailing partial period counts as a
// full one: a 10 month quarterly loan has 4 installments.
func EffectivePeriodCount(tenureMonths, periodGap int) int {
	if tenureMonths <= 0 || periodGap <= 0 {
		return 0
	}
	return (tenureMonths + periodGap - 1) / periodGap
}

// LevelPayment is the annuity installment P*r*(1+r)^n / ((1+r)^n - 1), or P/n when r is zero.
func LevelPayment(principal, periodRate float64, periods int) float64 {
	if periods <= 0 {
		return math.NaN()
	}
	if periodRate == 0 {
		return principal / float64(periods)
	}
	factor := math.Pow(1+periodRate, float64(periods))
	return principal * periodRate * factor / (factor - 1)
}

// RemainingBalance is the principal still owed after k of n level payments,
// P*((1+r)^n - (1+r)^k) / ((1+r)^n - 1). It is exactly zero at k == n and does not accumulate
// rounding error the way repeated balance*(1+r) - payment does at high rates.
func RemainingBalance(principal, periodRate float64, periods, k int) float64 {
	if periods <= 0 {
		return math.NaN()
	}
	if k >= periods {
		return 0
	}
	if periodRate == 0 {
		return principal * float64(periods-k) / float64(periods)
	}
	lg := math.Log1p(periodRate)
	total := math.Expm1(float64(periods) * lg)
	return principal * (total - math.Expm1(float64(k)*lg)) / total
}
