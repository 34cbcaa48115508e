package ingest_test

import (
	"strings"
	"testing"

	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSnapshots_FiltersCountryAndMonth(t *testing.T) {
	csv := `profession,country,year,month,registrants
Pharmacist,England,2018,3,54128
Pharmacist,Scotland,2018,3,4500
Pharmacist,England,2018,9,54900
Pharmacy Technician,England,2018,3,23000
`
	records, res, err := ingest.ReadSnapshots(strings.NewReader(csv), "England", 3)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, records, 2)

	assert.Equal(t, domain.ProfessionPharmacist, records[0].Profession)
	assert.Equal(t, "England", records[0].Country)
	assert.Equal(t, 2018, records[0].Year)
	assert.Equal(t, 3, records[0].Month)
	assert.Equal(t, 54128, records[0].Headcount)

	assert.Equal(t, domain.ProfessionTechnician, records[1].Profession)
	assert.Equal(t, 23000, records[1].Headcount)
}

func TestReadSnapshots_CleansThousandsSeparators(t *testing.T) {
	csv := `profession,country,year,month,registrants
Pharmacist,England,2025,3,"63,297"
`
	records, res, err := ingest.ReadSnapshots(strings.NewReader(csv), "England", 3)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Imported)
	require.Len(t, records, 1)
	assert.Equal(t, 63297, records[0].Headcount)
}

func TestReadSnapshots_SkipsMalformedRows(t *testing.T) {
	csv := `profession,country,year,month,registrants
Pharmacist,England,2020,3,not-a-number
Dentist,England,2020,3,100
Pharmacist,England,2021,3,60000
`
	records, res, err := ingest.ReadSnapshots(strings.NewReader(csv), "England", 3)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, records, 1)
	assert.Equal(t, 2021, records[0].Year)
}

func TestReadSnapshots_MissingColumn(t *testing.T) {
	csv := `profession,country,year,registrants
Pharmacist,England,2020,60000
`
	_, _, err := ingest.ReadSnapshots(strings.NewReader(csv), "England", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "month")
}

func TestReadFlows_Joiners(t *testing.T) {
	csv := `profession,year,joiners
Pharmacist,2023,3100
Pharmacy Technician,2023,1200
`
	rows, res, err := ingest.ReadFlows(strings.NewReader(csv), domain.FlowJoiners)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Imported)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.ProfessionPharmacist, rows[0].Profession)
	assert.Equal(t, 3100, rows[0].Count)
}

func TestReadFlows_LeaversColumnRequired(t *testing.T) {
	csv := `profession,year,joiners
Pharmacist,2023,3100
`
	_, _, err := ingest.ReadFlows(strings.NewReader(csv), domain.FlowLeavers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leavers")
}

func TestReadFlows_HeaderCaseInsensitive(t *testing.T) {
	csv := `Profession,Year,Leavers
Pharmacist,2023,2400
`
	rows, res, err := ingest.ReadFlows(strings.NewReader(csv), domain.FlowLeavers)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Imported)
	require.Len(t, rows, 1)
	assert.Equal(t, 2400, rows[0].Count)
}
