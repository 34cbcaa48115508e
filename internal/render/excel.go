package render

import (
	"fmt"

	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const projectionSheet = "Projection"

// GapWorkbook writes one or more projection tables to an xlsx workbook,
// one sheet per scenario plus a growth-rate summary when provided.
func GapWorkbook(tables []*domain.ProjectionTableDTO, rates []domain.GrowthRateDTO, path string) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		sheet := fmt.Sprintf("%s_%s", projectionSheet, table.Scenario)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to add sheet: %w", err)
			}
		}
		if err := writeTable(f, sheet, table); err != nil {
			return err
		}
	}

	if len(rates) > 0 {
		if _, err := f.NewSheet("Growth_Rates"); err != nil {
			return fmt.Errorf("failed to add growth rate sheet: %w", err)
		}
		writeRates(f, "Growth_Rates", rates)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, table *domain.ProjectionTableDTO) error {
	headers := []string{"Year", "Financial Year", "Scenario", "Supply (FTE)", "Ops Demand (FTE)", "Gap (FTE)"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		f.SetCellValue(sheet, cell, header)
	}

	for i, r := range table.Rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Year)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.FinancialYear)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Scenario)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Supply)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Ops)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Gap)
	}

	f.SetCellValue(sheet, "H1", "Source")
	f.SetCellValue(sheet, "H2", table.Source)
	f.SetCellValue(sheet, "I1", "Computed at")
	f.SetCellValue(sheet, "I2", table.ComputedAt)
	return nil
}

func writeRates(f *excelize.File, sheet string, rates []domain.GrowthRateDTO) {
	headers := []string{"Profession", "Baseline", "CAGR (%)", "Annual Change", "Change Over Period", "Years", "First Year", "Baseline Year"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, r := range rates {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Profession)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Baseline)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("%.2f%%", r.RatePct))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("%.1f", r.AnnualChange))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.ChangePeriod)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.YearsElapsed)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.FirstYear)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.BaselineYear)
	}
}
