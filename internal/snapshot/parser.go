package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"onscli/pkg/contracts/domain"
)

// Discard reasons. A snapshot that fails with one of these is excluded from
// the run but never aborts it; the caller reports the reason and moves on.
var (
	// ErrUnexpectedShape indicates the located table was empty, narrower
	// than two columns, or could not be decoded at all.
	ErrUnexpectedShape = errors.New("unexpected shape")

	// ErrNoNumericColumn indicates no column past the period-label column
	// contained a single coercible numeric value.
	ErrNoNumericColumn = errors.New("no numeric-like value column")

	// ErrNoMonthLabels indicates not one row's period label parsed as a
	// "YYYY MON" or "YYYY MONTH" month.
	ErrNoMonthLabels = errors.New("no parsable month labels")
)

// monthLineRe matches lines like "2021 MAY" or "2021 AUGUST" that mark the
// start of the embedded data table.
var monthLineRe = regexp.MustCompile(`^\s*\d{4}\s+[A-Za-z]{3,9}\b`)

// tableLocator returns the index of the first table line and whether this
// strategy applies to the given text.
type tableLocator func(lines []string) (int, bool)

// tableLocators are tried in priority order. The upstream format embeds a
// variable-length free-text header before the actual table, so localization
// falls back from the month-label pattern to the first blank line to the top
// of the text.
var tableLocators = []tableLocator{
	locateByMonthLabel,
	locateAfterBlankLine,
	locateAtTop,
}

// Parse extracts the per-vintage series embedded in one snapshot's raw text.
// The vintage date is supplied by the caller; it is never inferred from the
// snapshot content. Rows whose period label or value cannot be parsed are
// dropped individually; a snapshot with no usable table at all is discarded
// with one of the sentinel reasons above.
func Parse(rawText string, vintage time.Time) (*domain.VintageSeries, error) {
	lines := strings.Split(rawText, "\n")

	var start int
	for _, locate := range tableLocators {
		if idx, ok := locate(lines); ok {
			start = idx
			break
		}
	}

	body := strings.Join(lines[start:], "\n")
	reader := csv.NewReader(strings.NewReader(body))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}

	return extractSeries(records, vintage)
}

// locateByMonthLabel finds the first line matching the "YYYY <month-name>"
// pattern.
func locateByMonthLabel(lines []string) (int, bool) {
	for i, line := range lines {
		if monthLineRe.MatchString(line) {
			return i, true
		}
	}
	return 0, false
}

// locateAfterBlankLine starts the table immediately after the first blank
// line in the text.
func locateAfterBlankLine(lines []string) (int, bool) {
	for i, line := range lines {
		if strings.TrimSpace(line) == "" && i+1 < len(lines) {
			return i + 1, true
		}
	}
	return 0, false
}

// locateAtTop treats the whole text as the table.
func locateAtTop(lines []string) (int, bool) {
	return 0, true
}

// extractSeries turns decoded table records into a per-vintage series. It is
// shared by the text and workbook entry points.
func extractSeries(records [][]string, vintage time.Time) (*domain.VintageSeries, error) {
	if len(records) == 0 {
		return nil, ErrUnexpectedShape
	}

	// The first row is a column-header row unless its period-label cell
	// already parses as a month, in which case the table is headerless and
	// every row is data.
	header := records[0]
	data := records[1:]
	if len(header) > 0 {
		if _, ok := ParseMonthLabel(header[0]); ok {
			data = records
		}
	}

	if len(data) == 0 || len(header) < 2 {
		return nil, ErrUnexpectedShape
	}

	valueCol, ok := selectValueColumn(header, data)
	if !ok {
		return nil, ErrNoNumericColumn
	}

	// Last-wins per-month dedup: later rows overwrite earlier ones, but
	// rows with a missing value are dropped before they can overwrite.
	values := make(map[time.Time]float64)
	labelled := 0
	for _, row := range data {
		if len(row) == 0 {
			continue
		}

		month, ok := ParseMonthLabel(row[0])
		if !ok {
			continue
		}
		labelled++

		if valueCol >= len(row) {
			continue
		}
		value, ok := coerceNumeric(row[valueCol])
		if !ok {
			continue
		}

		values[month] = value
	}

	if labelled == 0 {
		return nil, ErrNoMonthLabels
	}

	series := &domain.VintageSeries{VintageDate: vintage}
	for month, value := range values {
		series.Observations = append(series.Observations, domain.Observation{
			Month: month,
			Value: value,
		})
	}
	sort.Slice(series.Observations, func(i, j int) bool {
		return series.Observations[i].Month.Before(series.Observations[j].Month)
	})

	return series, nil
}

// selectValueColumn scans the columns past the period-label column left to
// right and picks the first one with at least one coercible numeric value.
func selectValueColumn(header []string, data [][]string) (int, bool) {
	for col := 1; col < len(header); col++ {
		for _, row := range data {
			if col >= len(row) {
				continue
			}
			if _, ok := coerceNumeric(row[col]); ok {
				return col, true
			}
		}
	}
	return 0, false
}

// ParseMonthLabel parses a period label like "2024 AUG" or "2024 AUGUST"
// into the first day of that month. Internal whitespace is collapsed and
// case is ignored. Short month names are tried before full names.
func ParseMonthLabel(s string) (time.Time, bool) {
	label := strings.Join(strings.Fields(s), " ")
	if label == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{"2006 Jan", "2006 January"} {
		if ts, err := time.Parse(layout, label); err == nil {
			return time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// coerceNumeric strips thousands separators and converts to a float.
// Non-finite results count as missing.
func coerceNumeric(s string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if cleaned == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	return value, true
}
