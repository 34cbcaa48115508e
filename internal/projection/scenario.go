// Package projection implements the workforce projection arithmetic:
// compound annual growth rates from historical snapshots, scenario-adjusted
// forward projections, and supply/operations gap analysis.
package projection

import (
	"errors"
	"fmt"
)

// Scenario selects the growth-rate multiplier applied to a base CAGR.
type Scenario string

const (
	ScenarioBaseline    Scenario = "baseline"
	ScenarioOptimistic  Scenario = "optimistic"
	ScenarioPessimistic Scenario = "pessimistic"
)

// ErrUnknownScenario is returned when a scenario name cannot be parsed.
var ErrUnknownScenario = errors.New("unknown scenario")

// Multipliers maps each scenario to the adjustment applied to the base
// growth rate: baseline keeps the calculated rate, optimistic runs 20%
// hotter, pessimistic 20% colder.
var Multipliers = map[Scenario]float64{
	ScenarioBaseline:    1.0,
	ScenarioOptimistic:  1.2,
	ScenarioPessimistic: 0.8,
}

// Scenarios lists all valid scenarios in presentation order.
func Scenarios() []Scenario {
	return []Scenario{ScenarioBaseline, ScenarioOptimistic, ScenarioPessimistic}
}

// ParseScenario validates a scenario name. An empty name defaults to baseline.
func ParseScenario(name string) (Scenario, error) {
	if name == "" {
		return ScenarioBaseline, nil
	}
	sc := Scenario(name)
	if _, ok := Multipliers[sc]; !ok {
		return "", fmt.Errorf("%w: %q (must be one of baseline, optimistic, pessimistic)", ErrUnknownScenario, name)
	}
	return sc, nil
}

// Multiplier returns the growth-rate adjustment for the scenario.
func (s Scenario) Multiplier() float64 {
	return Multipliers[s]
}

func (s Scenario) String() string {
	return string(s)
}
