package panel

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"onscli/pkg/contracts/domain"
)

// ErrNoObservations indicates the run produced no usable observations at
// all, so there is nothing to assemble and no output should be written.
var ErrNoObservations = errors.New("no observations to assemble")

// Assembler builds the dense month x vintage panel from per-vintage series.
type Assembler struct{}

// NewAssembler creates a new panel assembler
func NewAssembler() *Assembler {
	return &Assembler{}
}

// gridKey identifies one cell of the month x vintage grid.
type gridKey struct {
	month   time.Time
	vintage time.Time
}

// triple is one (month, vintage, value) observation before densification.
type triple struct {
	key   gridKey
	value float64
}

// Assemble unions the per-vintage series, deduplicates conflicting cells,
// densifies the grid over the full min..max month range and every observed
// vintage, and forward-fills each month across ascending vintages. Cells for
// which no vintage at or before that date observed the month are dropped.
func (a *Assembler) Assemble(series []domain.VintageSeries) (*domain.Panel, error) {
	var triples []triple
	for _, s := range series {
		vintage := normalizeDay(s.VintageDate)
		for _, obs := range s.Observations {
			triples = append(triples, triple{
				key:   gridKey{month: normalizeMonth(obs.Month), vintage: vintage},
				value: obs.Value,
			})
		}
	}

	if len(triples) == 0 {
		return nil, ErrNoObservations
	}

	// Values must coerce losslessly to numeric; a non-finite value at this
	// point is a data-integrity violation, not a recoverable condition.
	for _, t := range triples {
		if math.IsNaN(t.value) || math.IsInf(t.value, 0) {
			return nil, fmt.Errorf("non-finite value for month %s vintage %s",
				t.key.month.Format("2006-01"), t.key.vintage.Format("2006-01-02"))
		}
	}

	// Canonical-order dedup: stable sort by (month, vintage), then let the
	// last occurrence of each key win. Two snapshots can carry the same
	// vintage date, so duplicates are expected, not an error.
	sort.SliceStable(triples, func(i, j int) bool {
		if !triples[i].key.month.Equal(triples[j].key.month) {
			return triples[i].key.month.Before(triples[j].key.month)
		}
		return triples[i].key.vintage.Before(triples[j].key.vintage)
	})

	observed := make(map[gridKey]float64)
	for _, t := range triples {
		observed[t.key] = t.value
	}

	months := monthRange(triples[0].key.month, triples[len(triples)-1].key.month)
	vintages := distinctVintages(triples)

	// Per-month forward-fill with a last-seen accumulator, reset at each
	// month boundary so values never leak across observation months.
	panel := &domain.Panel{}
	for _, month := range months {
		var lastValue float64
		haveLast := false

		for _, vintage := range vintages {
			key := gridKey{month: month, vintage: vintage}
			if value, ok := observed[key]; ok {
				panel.Cells = append(panel.Cells, domain.PanelCell{
					Month:       month,
					VintageDate: vintage,
					Value:       value,
				})
				lastValue = value
				haveLast = true
			} else if haveLast {
				panel.Cells = append(panel.Cells, domain.PanelCell{
					Month:       month,
					VintageDate: vintage,
					Value:       lastValue,
					Filled:      true,
				})
			}
			// No earlier value for this month: the cell stays absent.
		}
	}

	return panel, nil
}

// Statistics summarizes one assembly run.
type Statistics struct {
	TotalCells      int
	ObservedCells   int
	FilledCells     int
	MonthsSpanned   int
	VintagesSpanned int
}

// AssembleWithStats performs assembly and returns statistics alongside the
// panel.
func (a *Assembler) AssembleWithStats(series []domain.VintageSeries) (*domain.Panel, Statistics, error) {
	panel, err := a.Assemble(series)
	if err != nil {
		return nil, Statistics{}, err
	}

	stats := Statistics{
		TotalCells:      len(panel.Cells),
		MonthsSpanned:   len(panel.Months()),
		VintagesSpanned: len(panel.Vintages()),
	}
	for _, cell := range panel.Cells {
		if cell.Filled {
			stats.FilledCells++
		} else {
			stats.ObservedCells++
		}
	}

	return panel, stats, nil
}

// monthRange returns every month from first to last inclusive, monthly step,
// no gaps.
func monthRange(first, last time.Time) []time.Time {
	var months []time.Time
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// distinctVintages returns the distinct vintage dates in ascending order.
func distinctVintages(triples []triple) []time.Time {
	seen := make(map[time.Time]bool)
	var vintages []time.Time
	for _, t := range triples {
		if !seen[t.key.vintage] {
			seen[t.key.vintage] = true
			vintages = append(vintages, t.key.vintage)
		}
	}
	sort.Slice(vintages, func(i, j int) bool { return vintages[i].Before(vintages[j]) })
	return vintages
}

// normalizeMonth clamps a time to the first day of its month in UTC.
func normalizeMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// normalizeDay strips any time-of-day component, leaving calendar-day
// granularity in UTC.
func normalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
