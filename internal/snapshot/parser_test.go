package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onscli/pkg/contracts/domain"
)

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	vintage := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rawText string
		want    []domain.Observation
		wantErr error
	}{
		{
			name: "table located at first month label line",
			rawText: "Title,Average Weekly Earnings\n" +
				"CDID,AP2Y\n" +
				"Release date,10-06-2024\n" +
				"2024 JAN,100\n" +
				"2024 FEB,105\n",
			want: []domain.Observation{
				{Month: month(2024, time.January), Value: 100},
				{Month: month(2024, time.February), Value: 105},
			},
		},
		{
			name: "full month names",
			rawText: "2024 JANUARY,100\n" +
				"2024 FEBRUARY,105\n",
			want: []domain.Observation{
				{Month: month(2024, time.January), Value: 100},
				{Month: month(2024, time.February), Value: 105},
			},
		},
		{
			name: "fallback to first blank line",
			rawText: "Some free text header without dates\n" +
				"another header line\n" +
				"\n" +
				"Period,Value\n" +
				"2024 MAR,7.5\n",
			want: []domain.Observation{
				{Month: month(2024, time.March), Value: 7.5},
			},
		},
		{
			name: "duplicate month keeps later row",
			rawText: "2024 JAN,100\n" +
				"2024 FEB,105\n" +
				"2024 JAN,101\n",
			want: []domain.Observation{
				{Month: month(2024, time.January), Value: 101},
				{Month: month(2024, time.February), Value: 105},
			},
		},
		{
			name: "missing value never overwrites an earlier one",
			rawText: "2024 JAN,100\n" +
				"2024 JAN,N/A\n",
			want: []domain.Observation{
				{Month: month(2024, time.January), Value: 100},
			},
		},
		{
			name: "thousands separators and missing values",
			rawText: "Period,Value\n" +
				"2024 JAN,\"1,234\"\n" +
				"2024 FEB,N/A\n",
			want: []domain.Observation{
				{Month: month(2024, time.January), Value: 1234},
			},
		},
		{
			name: "value column past a text column",
			rawText: "Period,Note,Value\n" +
				"2024 JAN,provisional,100\n" +
				"2024 FEB,revised,105\n",
			want: []domain.Observation{
				{Month: month(2024, time.January), Value: 100},
				{Month: month(2024, time.February), Value: 105},
			},
		},
		{
			name: "unparsable period labels dropped at row level",
			rawText: "Period,Value\n" +
				"2024 JAN,100\n" +
				"Q1 2024,200\n" +
				"2024 FEB,105\n",
			want: []domain.Observation{
				{Month: month(2024, time.January), Value: 100},
				{Month: month(2024, time.February), Value: 105},
			},
		},
		{
			name: "collapsed internal whitespace",
			rawText: "2024    JAN,100\n" +
				"  2024 FEB,105\n",
			want: []domain.Observation{
				{Month: month(2024, time.January), Value: 100},
				{Month: month(2024, time.February), Value: 105},
			},
		},
		{
			name:    "single column table discarded",
			rawText: "just one line of plain text\nand another",
			wantErr: ErrUnexpectedShape,
		},
		{
			name: "header with no data rows discarded",
			rawText: "free text\n" +
				"\n" +
				"Period,Value\n",
			wantErr: ErrUnexpectedShape,
		},
		{
			name: "no numeric column discarded",
			rawText: "2024 JAN,abc\n" +
				"2024 FEB,def\n",
			wantErr: ErrNoNumericColumn,
		},
		{
			name: "no parsable month labels discarded",
			rawText: "Period,Value\n" +
				"1994,1\n" +
				"1995,2\n",
			wantErr: ErrNoMonthLabels,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := Parse(tt.rawText, vintage)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, vintage, series.VintageDate)
			assert.Equal(t, tt.want, series.Observations)
		})
	}
}

func TestParse_AllValuesMissingIsAcceptedEmpty(t *testing.T) {
	// The value column qualifies via a row whose period label does not
	// parse; every labelled row has a missing value. The snapshot is
	// accepted with zero observations rather than discarded.
	rawText := "Period,Value\n" +
		"annual total,99\n" +
		"2024 JAN,N/A\n"

	series, err := Parse(rawText, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, series.Observations)
}

func TestParseMonthLabel(t *testing.T) {
	tests := []struct {
		label string
		want  time.Time
		ok    bool
	}{
		{"2024 AUG", month(2024, time.August), true},
		{"2024 AUGUST", month(2024, time.August), true},
		{"2024 aug", month(2024, time.August), true},
		{"2021 May", month(2021, time.May), true},
		{"  1971   FEB  ", month(1971, time.February), true},
		{"2024 SEPT", time.Time{}, false},
		{"AUG 2024", time.Time{}, false},
		{"2024", time.Time{}, false},
		{"", time.Time{}, false},
		{"2024-08", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseMonthLabel(tt.label)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCoerceNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"100", 100, true},
		{"1,234", 1234, true},
		{"1,234,567.5", 1234567.5, true},
		{" 7.25 ", 7.25, true},
		{"-3.5", -3.5, true},
		{"N/A", 0, false},
		{"", 0, false},
		{"..", 0, false},
		{"NaN", 0, false},
		{"+Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := coerceNumeric(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
