// Package panel assembles per-vintage series into one dense, analysis-ready
// month x vintage table.
//
// Assembly is a pure function of its inputs: union all observations,
// deduplicate (month, vintage) conflicts with last-write-wins under the
// canonical (month, vintage) ordering, build the Cartesian product of the
// full monthly range with every observed vintage date, and forward-fill each
// month independently across ascending vintages. Cells with no earlier value
// to fill from are dropped rather than zero-filled.
//
// Example:
//
//	assembler := panel.NewAssembler()
//	p, stats, err := assembler.AssembleWithStats(allSeries)
//	if err != nil {
//	    // nothing usable was parsed; no output should be written
//	}
package panel
