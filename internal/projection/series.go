package projection

import (
	"fmt"
	"math"
)

// ProfessionBaseline pairs a profession's baseline headcount (or FTE) with
// its historical compound annual growth rate.
type ProfessionBaseline struct {
	Profession string
	Baseline   float64
	Rate       float64
}

// Row is one projected year of the gap analysis. Supply sums all professions,
// ops is the projected operations demand, gap is supply minus ops. Values are
// rounded to whole headcounts for presentation.
type Row struct {
	Year          int
	FinancialYear string
	Scenario      Scenario
	Supply        int
	Ops           int
	Gap           int
}

// BuildGapSeries projects each profession's supply and the operations demand
// forward under one scenario and returns the combined gap table.
//
// The result has horizon+1 rows: a year-zero row carrying the unprojected
// baselines, then one row per projected year, strictly increasing in year.
// Each profession compounds at its own rate adjusted by the scenario
// multiplier; ops compounds at the fixed opsRate under the same multiplier.
// Each profession's value is rounded to a whole count before summing, so the
// published per-profession figures reconcile with the supply column.
func BuildGapSeries(startYear, horizon int, professions []ProfessionBaseline, opsBaseline, opsRate float64, sc Scenario) ([]Row, error) {
	if len(professions) == 0 {
		return nil, fmt.Errorf("no profession baselines supplied")
	}

	mult := sc.Multiplier()

	// Supply: project each profession separately, round, then sum per year.
	supply := make([]float64, horizon+1)
	for _, p := range professions {
		series, err := Project(p.Baseline, p.Rate, mult, horizon)
		if err != nil {
			return nil, fmt.Errorf("projecting %s: %w", p.Profession, err)
		}
		supply[0] += math.Round(p.Baseline)
		for t, v := range series {
			supply[t+1] += math.Round(v)
		}
	}

	opsSeries, err := Project(opsBaseline, opsRate, mult, horizon)
	if err != nil {
		return nil, fmt.Errorf("projecting ops demand: %w", err)
	}
	ops := make([]float64, horizon+1)
	ops[0] = math.Round(opsBaseline)
	for t, v := range opsSeries {
		ops[t+1] = math.Round(v)
	}

	gap, err := Gap(supply, ops)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, horizon+1)
	for t := 0; t <= horizon; t++ {
		year := startYear + t
		rows[t] = Row{
			Year:          year,
			FinancialYear: FinancialYear(year),
			Scenario:      sc,
			Supply:        int(supply[t]),
			Ops:           int(ops[t]),
			Gap:           int(gap[t]),
		}
	}
	return rows, nil
}
