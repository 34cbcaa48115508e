package projection

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNonPositiveValue is returned when a headcount used for growth-rate
	// calculation is zero or negative.
	ErrNonPositiveValue = errors.New("headcount must be positive")

	// ErrInvalidSpan is returned when the number of years spanned is not positive.
	ErrInvalidSpan = errors.New("year span must be positive")
)

// GrowthRate summarizes the historical growth of a profession between the
// earliest and latest annual snapshots.
type GrowthRate struct {
	// Rate is the compound annual growth rate as a fraction (0.0104 = 1.04%/yr).
	Rate float64
	// ChangeOverPeriod is the absolute headcount change across the span.
	ChangeOverPeriod float64
	// AnnualChange is the estimated average absolute change per year.
	AnnualChange float64
	// YearsElapsed is the span the rate was calculated over.
	YearsElapsed int
}

// RatePct returns the growth rate as a percentage, rounded to two decimals
// as the published tables report it.
func (g GrowthRate) RatePct() float64 {
	return math.Round(g.Rate*100*100) / 100
}

// CAGR computes the compound annual growth rate between a first and last
// observation spanning the given number of years:
//
//	CAGR = (last/first)^(1/years) - 1
//
// The first and last values must be positive and the span at least one year.
func CAGR(first, last float64, years int) (float64, error) {
	if first <= 0 {
		return 0, fmt.Errorf("%w: first value %v", ErrNonPositiveValue, first)
	}
	if last <= 0 {
		return 0, fmt.Errorf("%w: last value %v", ErrNonPositiveValue, last)
	}
	if years <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSpan, years)
	}
	return math.Pow(last/first, 1/float64(years)) - 1, nil
}

// NewGrowthRate computes the CAGR plus the absolute-change summary used in
// the growth-rate report.
func NewGrowthRate(first, last float64, years int) (GrowthRate, error) {
	rate, err := CAGR(first, last, years)
	if err != nil {
		return GrowthRate{}, err
	}
	change := last - first
	return GrowthRate{
		Rate:             rate,
		ChangeOverPeriod: change,
		AnnualChange:     change / float64(years),
		YearsElapsed:     years,
	}, nil
}
