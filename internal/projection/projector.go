package projection

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidHorizon is returned when a projection horizon is not positive.
var ErrInvalidHorizon = errors.New("projection horizon must be positive")

// round5 keeps five decimal places of precision during iterative projection,
// matching the published workforce model so results reconcile exactly.
func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}

// Project applies a scenario-adjusted annual growth rate to a baseline value
// year by year:
//
//	value[t] = value[t-1] * (1 + rate*multiplier)
//
// It returns exactly horizon values for t = 1..horizon; the baseline itself
// is not included. The result is deterministic: a zero rate yields a constant
// sequence equal to the baseline.
func Project(baseline, rate, multiplier float64, horizon int) ([]float64, error) {
	if baseline <= 0 {
		return nil, fmt.Errorf("%w: baseline %v", ErrNonPositiveValue, baseline)
	}
	if horizon <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHorizon, horizon)
	}

	adjusted := rate * multiplier
	values := make([]float64, horizon)
	current := baseline
	for t := 0; t < horizon; t++ {
		change := round5(current * adjusted)
		current = round5(current + change)
		values[t] = current
	}
	return values, nil
}
