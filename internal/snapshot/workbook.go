package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"onscli/pkg/contracts/domain"
)

// ParseFile parses one snapshot file, dispatching on its extension. Workbook
// snapshots (.xlsx) go through excelize; everything else is read as raw
// delimited text.
func ParseFile(path string, vintage time.Time) (*domain.VintageSeries, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ParseWorkbook(path, vintage)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return Parse(string(raw), vintage)
}

// ParseWorkbook extracts the per-vintage series from a workbook snapshot.
// The first sheet is used; its rows feed the same localization and
// extraction pipeline as delimited text, so a publisher switching from CSV
// to spreadsheet output needs no other change.
func ParseWorkbook(path string, vintage time.Time) (*domain.VintageSeries, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrUnexpectedShape
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}

	start := locateTableRows(rows)
	return extractSeries(rows[start:], vintage)
}

// locateTableRows applies the layered table localization to workbook rows:
// first row whose period cell looks like "YYYY <month-name>", else the row
// after the first fully empty one, else the top of the sheet.
func locateTableRows(rows [][]string) int {
	for i, row := range rows {
		if len(row) > 0 && monthLineRe.MatchString(row[0]) {
			return i
		}
	}

	for i, row := range rows {
		if isEmptyRow(row) && i+1 < len(rows) {
			return i + 1
		}
	}

	return 0
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
