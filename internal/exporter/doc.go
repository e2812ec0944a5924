// Package exporter provides CSV export functionality for the vintage panel
// builder.
//
// CSVWriter: core CSV writing with headers, optional UTF-8 BOM for Excel
// compatibility, and full-truncate semantics — the output is a derived
// artifact and is always rewritten from scratch, never appended to.
//
// PanelExporter: writes an assembled panel as the three-column tidy file
// (observation_month, vintage_date, value).
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths)
//	panelExporter := exporter.NewPanelExporter(writer)
//	err := panelExporter.ExportPanel(panel, "AP2Y_tidy.csv")
package exporter
