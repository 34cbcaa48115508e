package projection_test

import (
	"testing"

	"github.com/pharmacast/workforce-api/internal/projection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCAGR(t *testing.T) {
	// Doubling over 7 years: (200/100)^(1/7) - 1
	rate, err := projection.CAGR(100, 200, 7)
	require.NoError(t, err)
	assert.InDelta(t, 0.1041, rate, 1e-4)
}

func TestCAGR_SingleYear(t *testing.T) {
	rate, err := projection.CAGR(1000, 1050, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, rate, 1e-9)
}

func TestCAGR_InvalidInput(t *testing.T) {
	_, err := projection.CAGR(0, 200, 7)
	assert.ErrorIs(t, err, projection.ErrNonPositiveValue)

	_, err = projection.CAGR(-10, 200, 7)
	assert.ErrorIs(t, err, projection.ErrNonPositiveValue)

	_, err = projection.CAGR(100, 0, 7)
	assert.ErrorIs(t, err, projection.ErrNonPositiveValue)

	_, err = projection.CAGR(100, 200, 0)
	assert.ErrorIs(t, err, projection.ErrInvalidSpan)
}

func TestNewGrowthRate(t *testing.T) {
	gr, err := projection.NewGrowthRate(54128, 63297, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, gr.YearsElapsed)
	assert.InDelta(t, 9169, gr.ChangeOverPeriod, 0.5)
	assert.InDelta(t, 1309.86, gr.AnnualChange, 0.01)
	assert.InDelta(t, 2.26, gr.RatePct(), 0.01)
}

func TestProject_ZeroRateIsConstant(t *testing.T) {
	values, err := projection.Project(18926.58922, 0, 1.0, 10)
	require.NoError(t, err)
	require.Len(t, values, 10)
	for _, v := range values {
		assert.Equal(t, 18926.58922, v)
	}
}

func TestProject_LengthEqualsHorizon(t *testing.T) {
	for _, horizon := range []int{1, 5, 10, 25} {
		values, err := projection.Project(1000, 0.02, 1.0, horizon)
		require.NoError(t, err)
		assert.Len(t, values, horizon)
	}
}

func TestProject_Compounds(t *testing.T) {
	values, err := projection.Project(1000, 0.10, 1.0, 3)
	require.NoError(t, err)
	assert.InDelta(t, 1100, values[0], 0.001)
	assert.InDelta(t, 1210, values[1], 0.001)
	assert.InDelta(t, 1331, values[2], 0.001)
}

func TestProject_ScenarioMultiplier(t *testing.T) {
	baseline, err := projection.Project(1000, 0.10, projection.ScenarioBaseline.Multiplier(), 1)
	require.NoError(t, err)
	optimistic, err := projection.Project(1000, 0.10, projection.ScenarioOptimistic.Multiplier(), 1)
	require.NoError(t, err)
	pessimistic, err := projection.Project(1000, 0.10, projection.ScenarioPessimistic.Multiplier(), 1)
	require.NoError(t, err)

	assert.InDelta(t, 1100, baseline[0], 0.001)
	assert.InDelta(t, 1120, optimistic[0], 0.001)
	assert.InDelta(t, 1080, pessimistic[0], 0.001)
}

func TestProject_InvalidInput(t *testing.T) {
	_, err := projection.Project(0, 0.02, 1.0, 10)
	assert.ErrorIs(t, err, projection.ErrNonPositiveValue)

	_, err = projection.Project(1000, 0.02, 1.0, 0)
	assert.ErrorIs(t, err, projection.ErrInvalidHorizon)
}

func TestGap(t *testing.T) {
	gap, err := projection.Gap([]float64{23218}, []float64{18009})
	require.NoError(t, err)
	assert.Equal(t, []float64{5209}, gap)
}

func TestGap_Negative(t *testing.T) {
	gap, err := projection.Gap([]float64{100, 200}, []float64{150, 150})
	require.NoError(t, err)
	assert.Equal(t, []float64{-50, 50}, gap)
}

func TestGap_LengthMismatch(t *testing.T) {
	_, err := projection.Gap([]float64{1, 2, 3}, []float64{1, 2})
	assert.ErrorIs(t, err, projection.ErrLengthMismatch)
}

func TestParseScenario(t *testing.T) {
	sc, err := projection.ParseScenario("optimistic")
	require.NoError(t, err)
	assert.Equal(t, projection.ScenarioOptimistic, sc)

	// Empty defaults to baseline.
	sc, err = projection.ParseScenario("")
	require.NoError(t, err)
	assert.Equal(t, projection.ScenarioBaseline, sc)

	_, err = projection.ParseScenario("catastrophic")
	assert.ErrorIs(t, err, projection.ErrUnknownScenario)
}

func TestFinancialYear(t *testing.T) {
	assert.Equal(t, "2025/26", projection.FinancialYear(2025))
	assert.Equal(t, "2029/30", projection.FinancialYear(2029))
	assert.Equal(t, "1999/00", projection.FinancialYear(1999))
}

func TestBuildGapSeries(t *testing.T) {
	professions := []projection.ProfessionBaseline{
		{Profession: "Pharmacist", Baseline: 18926.58922, Rate: 0.0226},
		{Profession: "Pharmacy Technician", Baseline: 4290.735455, Rate: 0.0305},
	}

	rows, err := projection.BuildGapSeries(2025, 10, professions, 18009, 0.001, projection.ScenarioBaseline)
	require.NoError(t, err)
	require.Len(t, rows, 11)

	// Year-zero row sums the baselines rounded per profession:
	// 18926.58922 -> 18927, 4290.735455 -> 4291.
	assert.Equal(t, 2025, rows[0].Year)
	assert.Equal(t, "2025/26", rows[0].FinancialYear)
	assert.Equal(t, 23218, rows[0].Supply)
	assert.Equal(t, 18009, rows[0].Ops)
	assert.Equal(t, rows[0].Supply-rows[0].Ops, rows[0].Gap)

	// Years strictly increasing, gap always supply minus ops.
	for i, row := range rows {
		assert.Equal(t, 2025+i, row.Year)
		assert.Equal(t, projection.FinancialYear(row.Year), row.FinancialYear)
		assert.Equal(t, projection.ScenarioBaseline, row.Scenario)
		assert.Equal(t, row.Supply-row.Ops, row.Gap)
	}

	// Positive growth rates mean supply grows every year.
	for i := 1; i < len(rows); i++ {
		assert.Greater(t, rows[i].Supply, rows[i-1].Supply)
	}
}

func TestBuildGapSeries_Deterministic(t *testing.T) {
	professions := []projection.ProfessionBaseline{
		{Profession: "Pharmacist", Baseline: 60000, Rate: 0.02},
	}

	a, err := projection.BuildGapSeries(2025, 10, professions, 18009, 0.001, projection.ScenarioPessimistic)
	require.NoError(t, err)
	b, err := projection.BuildGapSeries(2025, 10, professions, 18009, 0.001, projection.ScenarioPessimistic)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildGapSeries_NoProfessions(t *testing.T) {
	_, err := projection.BuildGapSeries(2025, 10, nil, 18009, 0.001, projection.ScenarioBaseline)
	assert.Error(t, err)
}
