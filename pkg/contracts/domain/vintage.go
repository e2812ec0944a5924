package domain

import (
	"sort"
	"time"
)

// Observation represents a single data point within one published snapshot:
// the value of the series for a calendar month. Month always holds the first
// day of the month with no time component.
type Observation struct {
	Month time.Time `json:"observation_month"`
	Value float64   `json:"value"`
}

// VintageSeries represents the cleaned contents of one snapshot: the set of
// observations published on VintageDate. Months are unique within the series.
type VintageSeries struct {
	VintageDate  time.Time     `json:"vintage_date"`
	Observations []Observation `json:"observations"`
}

// PanelCell is the atomic unit of the assembled output: the value of the
// series for one observation month as known on one vintage date. Filled
// reports whether the value was carried forward from an earlier vintage
// rather than observed directly.
type PanelCell struct {
	Month       time.Time `json:"observation_month"`
	VintageDate time.Time `json:"vintage_date"`
	Value       float64   `json:"value"`
	Filled      bool      `json:"filled"`
}

// Panel is the complete month x vintage grid, sorted ascending by
// (observation month, vintage date).
type Panel struct {
	Cells []PanelCell `json:"cells"`
}

// Months returns the distinct observation months present in the panel,
// in ascending order.
func (p *Panel) Months() []time.Time {
	seen := make(map[time.Time]bool)
	var months []time.Time
	for _, cell := range p.Cells {
		if !seen[cell.Month] {
			seen[cell.Month] = true
			months = append(months, cell.Month)
		}
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}

// Vintages returns the distinct vintage dates present in the panel,
// in ascending order.
func (p *Panel) Vintages() []time.Time {
	seen := make(map[time.Time]bool)
	var vintages []time.Time
	for _, cell := range p.Cells {
		if !seen[cell.VintageDate] {
			seen[cell.VintageDate] = true
			vintages = append(vintages, cell.VintageDate)
		}
	}
	sort.Slice(vintages, func(i, j int) bool { return vintages[i].Before(vintages[j]) })
	return vintages
}
