package domain

import "github.com/shopspring/decimal"

// Fixed business constants for the rating model. These are not
// caller-configurable: every quote prices against the same table.
var (
	// BaseAnnualRate is the flat annual rate applied to every quote before
	// adjustments.
	BaseAnnualRate = decimal.RequireFromString("0.01")

	// durationRatePerYear is added per coverage year.
	durationRatePerYear = decimal.RequireFromString("0.0001")

	// capitalRateFactor is added per unit of insured capital. Larger capital
	// slightly raises the relative rate.
	capitalRateFactor = decimal.RequireFromString("0.000000001")

	// daysPerYear is the day-count convention for converting coverage days
	// to years.
	daysPerYear = decimal.RequireFromString("365.25")
)

// ageBands maps age at coverage start to a fixed rate increment. Ordered
// oldest first; the first band whose minimum the age meets applies.
var ageBands = []struct {
	minAge    int
	increment decimal.Decimal
}{
	{70, decimal.RequireFromString("0.008")},
	{60, decimal.RequireFromString("0.004")},
	{40, decimal.RequireFromString("0.0015")},
	{25, decimal.RequireFromString("0.0005")},
	{0, decimal.Zero},
}

const (
	// rateScale is the number of decimal places of the adjusted rate.
	rateScale = 6

	// premiumScale is the number of decimal places of the premium.
	premiumScale = 2
)

// ageIncrement returns the age-band increment for an age in whole years.
func ageIncrement(age int) decimal.Decimal {
	for _, band := range ageBands {
		if age >= band.minAge {
			return band.increment
		}
	}

	return decimal.Zero
}

// CoverageYears converts whole coverage days to years using the fixed
// 365.25 days/year convention.
func CoverageYears(coverageDays int) decimal.Decimal {
	return decimal.NewFromInt(int64(coverageDays)).Div(daysPerYear)
}

// ComputeRates derives the base and adjusted annual rates for a normalized
// request. Three adjustments are added to the base rate in a fixed order so
// results are reproducible: age band, coverage duration, insured capital.
// All adjustments are non-negative, so adjusted >= base >= 0 holds for every
// valid input. The adjusted rate is rounded half-up to six decimal places.
//
// Pure function: identical input always yields identical rates.
func ComputeRates(n NormalizedRequest) (base, adjusted decimal.Decimal) {
	base = BaseAnnualRate

	ageAdj := ageIncrement(AgeAt(n.BirthDate, n.StartDate))
	durationAdj := CoverageYears(CoverageDaysBetween(n.StartDate, n.EndDate)).Mul(durationRatePerYear)
	capitalAdj := n.Capital.Mul(capitalRateFactor)

	adjusted = base.Add(ageAdj).Add(durationAdj).Add(capitalAdj).Round(rateScale)

	return base, adjusted
}

// ComputePremium converts the adjusted annual rate and coverage window into
// the premium amount:
//
//	premium = capital * adjustedRate * coverageDays/365.25
//
// rounded half-up to two decimal places. Strictly increasing in each of
// capital, rate and duration while the others are held fixed.
func ComputePremium(capital, adjustedRate decimal.Decimal, coverageDays int) decimal.Decimal {
	return capital.Mul(adjustedRate).Mul(CoverageYears(coverageDays)).Round(premiumScale)
}
