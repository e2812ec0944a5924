package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onscli/internal/config"
	"onscli/pkg/contracts/domain"
)

func newTestExporter(t *testing.T) (*PanelExporter, string) {
	t.Helper()

	tempDir := t.TempDir()
	writer := NewCSVWriter(&config.Paths{
		DataDir:      tempDir,
		ProcessedDir: filepath.Join(tempDir, "processed"),
	})

	return NewPanelExporter(writer), tempDir
}

func cell(year int, m time.Month, vintage time.Time, value float64, filled bool) domain.PanelCell {
	return domain.PanelCell{
		Month:       time.Date(year, m, 1, 0, 0, 0, 0, time.UTC),
		VintageDate: vintage,
		Value:       value,
		Filled:      filled,
	}
}

func TestExportPanel(t *testing.T) {
	exporter, tempDir := newTestExporter(t)

	v1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	v2 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	panel := &domain.Panel{Cells: []domain.PanelCell{
		cell(2024, time.January, v1, 100, false),
		cell(2024, time.January, v2, 102.5, false),
		cell(2024, time.February, v2, 1234, false),
	}}

	outPath := filepath.Join(tempDir, "AP2Y_tidy.csv")
	require.NoError(t, exporter.ExportPanel(panel, outPath))

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "observation_month,vintage_date,value", lines[0])
	assert.Equal(t, "2024-01-01,2024-05-01,100", lines[1])
	assert.Equal(t, "2024-01-01,2024-06-01,102.5", lines[2])
	assert.Equal(t, "2024-02-01,2024-06-01,1234", lines[3])
}

func TestExportPanel_OverwritesPreviousRun(t *testing.T) {
	exporter, tempDir := newTestExporter(t)
	outPath := filepath.Join(tempDir, "AP2Y_tidy.csv")

	v := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	big := &domain.Panel{Cells: []domain.PanelCell{
		cell(2024, time.January, v, 1, false),
		cell(2024, time.February, v, 2, false),
		cell(2024, time.March, v, 3, false),
	}}
	small := &domain.Panel{Cells: []domain.PanelCell{
		cell(2024, time.January, v, 9, false),
	}}

	require.NoError(t, exporter.ExportPanel(big, outPath))
	require.NoError(t, exporter.ExportPanel(small, outPath))

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2024-01-01,2024-06-01,9", lines[1])
}

func TestExportPanel_RelativePathDefaultsToProcessedDir(t *testing.T) {
	exporter, tempDir := newTestExporter(t)

	v := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	panel := &domain.Panel{Cells: []domain.PanelCell{
		cell(2024, time.January, v, 1, false),
	}}

	require.NoError(t, exporter.ExportPanel(panel, "AP2Y_tidy.csv"))

	_, err := os.Stat(filepath.Join(tempDir, "processed", "AP2Y_tidy.csv"))
	assert.NoError(t, err)
}

func TestWriteCSV_BOMPrefix(t *testing.T) {
	tempDir := t.TempDir()
	writer := NewCSVWriter(&config.Paths{ProcessedDir: tempDir})

	path := filepath.Join(tempDir, "bom.csv")
	require.NoError(t, writer.WriteCSV(path, WriteOptions{
		Headers:   []string{"a", "b"},
		Records:   [][]string{{"1", "2"}},
		BOMPrefix: true,
	}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "\xEF\xBB\xBF"))
}
