// Package snapshot parses point-in-time snapshot files of a published time
// series into cleaned per-vintage observations.
//
// Each snapshot is a raw table embedded after a variable-length free-text
// header. Localization tries an ordered list of strategies: the first
// "YYYY <month-name>" line, then the first blank line, then the top of the
// text. The located table is decoded as delimited data; the first column
// carries period labels and the first column with any coercible numeric
// value is selected as the value column.
//
// Failures are absorbed at the narrowest scope. A row whose period label or
// value does not parse is dropped on its own; only a snapshot with no usable
// table is discarded, with one of the sentinel reasons ErrUnexpectedShape,
// ErrNoNumericColumn or ErrNoMonthLabels.
//
// Basic parsing example:
//
//	series, err := snapshot.Parse(rawText, vintage)
//	if errors.Is(err, snapshot.ErrNoMonthLabels) {
//	    // report and skip this snapshot
//	}
//
// Workbook snapshots go through the same pipeline:
//
//	series, err := snapshot.ParseWorkbook("AP2Y_2024-06-10.xlsx", vintage)
package snapshot
