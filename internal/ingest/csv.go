package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pharmacast/workforce-api/internal/domain"
)

// SnapshotRecord is one row of a registrant headcount CSV before persistence.
type SnapshotRecord struct {
	Profession domain.Profession
	Country    string
	Year       int
	Month      int
	Headcount  int
}

// FlowRow is one row of a joiners or leavers CSV.
type FlowRow struct {
	Profession domain.Profession
	Year       int
	Count      int
}

// Result summarises one file load.
type Result struct {
	Imported int
	Skipped  int
}

// cleanNumber strips thousands separators and stray quotes that the
// regulator's published CSVs carry in numeric columns ("54,128" and "\"54128\"").
func cleanNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.Trim(s, `"`)
	if s == "" {
		return 0, fmt.Errorf("empty numeric field")
	}
	return strconv.ParseFloat(s, 64)
}

func parseProfession(s string) (domain.Profession, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pharmacist", "pharmacists":
		return domain.ProfessionPharmacist, nil
	case "pharmacy technician", "pharmacy technicians":
		return domain.ProfessionTechnician, nil
	default:
		return "", fmt.Errorf("unknown profession %q", s)
	}
}

// columnIndex returns a map from lowercased header name to column position.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func requireColumns(idx map[string]int, names ...string) error {
	for _, n := range names {
		if _, ok := idx[n]; !ok {
			return fmt.Errorf("missing required column %q", n)
		}
	}
	return nil
}

// ReadSnapshots parses a registrant headcount CSV with columns
// profession, country, year, month, registrants. Only rows for the given
// country and month are kept; rows with malformed numerics are skipped
// and counted rather than failing the whole file. The March snapshot is
// the annual observation the projections are built from.
func ReadSnapshots(r io.Reader, country string, month int) ([]SnapshotRecord, Result, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, Result{}, fmt.Errorf("failed to read header: %w", err)
	}
	idx := columnIndex(header)
	if err := requireColumns(idx, "profession", "country", "year", "month", "registrants"); err != nil {
		return nil, Result{}, err
	}

	var out []SnapshotRecord
	var res Result
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, res, fmt.Errorf("failed to read row: %w", err)
		}

		if !strings.EqualFold(strings.TrimSpace(row[idx["country"]]), country) {
			res.Skipped++
			continue
		}

		m, err := strconv.Atoi(strings.TrimSpace(row[idx["month"]]))
		if err != nil || m != month {
			res.Skipped++
			continue
		}

		prof, err := parseProfession(row[idx["profession"]])
		if err != nil {
			res.Skipped++
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(row[idx["year"]]))
		if err != nil {
			res.Skipped++
			continue
		}

		count, err := cleanNumber(row[idx["registrants"]])
		if err != nil {
			res.Skipped++
			continue
		}

		out = append(out, SnapshotRecord{
			Profession: prof,
			Country:    country,
			Year:       year,
			Month:      month,
			Headcount:  int(count),
		})
		res.Imported++
	}

	return out, res, nil
}

// ReadFlows parses a joiners or leavers CSV with columns
// profession, year, <countColumn>.
func ReadFlows(r io.Reader, direction domain.FlowDirection) ([]FlowRow, Result, error) {
	countColumn := string(direction)

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, Result{}, fmt.Errorf("failed to read header: %w", err)
	}
	idx := columnIndex(header)
	if err := requireColumns(idx, "profession", "year", countColumn); err != nil {
		return nil, Result{}, err
	}

	var out []FlowRow
	var res Result
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, res, fmt.Errorf("failed to read row: %w", err)
		}

		prof, err := parseProfession(row[idx["profession"]])
		if err != nil {
			res.Skipped++
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(row[idx["year"]]))
		if err != nil {
			res.Skipped++
			continue
		}

		count, err := cleanNumber(row[idx[countColumn]])
		if err != nil {
			res.Skipped++
			continue
		}

		out = append(out, FlowRow{Profession: prof, Year: year, Count: int(count)})
		res.Imported++
	}

	return out, res, nil
}

// ReadSnapshotsFile is ReadSnapshots against a file on disk.
func ReadSnapshotsFile(path, country string, month int) ([]SnapshotRecord, Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Result{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSnapshots(f, country, month)
}

// ReadFlowsFile is ReadFlows against a file on disk.
func ReadFlowsFile(path string, direction domain.FlowDirection) ([]FlowRow, Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Result{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadFlows(f, direction)
}
