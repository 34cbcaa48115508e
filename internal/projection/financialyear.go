package projection

import "fmt"

// FinancialYear formats a calendar year as the NHS financial-year label used
// throughout the published tables, e.g. 2025 -> "2025/26".
func FinancialYear(year int) string {
	return fmt.Sprintf("%d/%02d", year, (year+1)%100)
}
