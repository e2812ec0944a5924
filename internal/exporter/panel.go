package exporter

import (
	"log/slog"
	"strconv"

	"onscli/pkg/contracts/domain"
)

// panelHeaders are the exact three output columns, in order.
var panelHeaders = []string{"observation_month", "vintage_date", "value"}

// PanelExporter writes an assembled panel to its tidy CSV form.
type PanelExporter struct {
	writer *CSVWriter
}

// NewPanelExporter creates a new panel exporter on top of a CSV writer.
func NewPanelExporter(writer *CSVWriter) *PanelExporter {
	return &PanelExporter{writer: writer}
}

// ExportPanel writes the panel to filePath, one row per cell, sorted as the
// assembler emitted them: ascending by (observation_month, vintage_date).
// The observation month is written as the first day of the month and the
// vintage date at calendar-day granularity, both ISO formatted. The file is
// fully overwritten on every run.
func (e *PanelExporter) ExportPanel(panel *domain.Panel, filePath string) error {
	records := make([][]string, 0, len(panel.Cells))
	for _, cell := range panel.Cells {
		records = append(records, []string{
			cell.Month.Format("2006-01-02"),
			cell.VintageDate.Format("2006-01-02"),
			strconv.FormatFloat(cell.Value, 'g', -1, 64),
		})
	}

	if err := e.writer.WriteSimpleCSV(filePath, panelHeaders, records); err != nil {
		return err
	}

	slog.Info("Saved panel CSV",
		slog.String("path", filePath),
		slog.Int("rows", len(records)))

	return nil
}
