package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// SnapshotFile represents a discovered snapshot file whose vintage date was
// successfully extracted from its name.
type SnapshotFile struct {
	Path        string
	Name        string
	VintageDate time.Time
}

// vintageRe matches filenames carrying an ISO vintage date immediately before
// the file extension, e.g. "AP2Y_2024-06-10.csv".
var vintageRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\.(csv|xlsx)$`)

// Discovery provides snapshot file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindSnapshotFiles finds all snapshot files in the specified directory whose
// names carry a vintage date. The second return value lists the names of
// files that look like snapshots but lack the date pattern; those must be
// skipped before parsing. Results are in lexical filename order, which for
// date-suffixed names is also chronological.
func (d *Discovery) FindSnapshotFiles(dir string) ([]SnapshotFile, []string, error) {
	// If dir is already absolute, use it directly
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var snapshots []SnapshotFile
	var undated []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, ".csv") && !strings.HasSuffix(lower, ".xlsx") {
			continue
		}
		// Lock/temp files left behind by spreadsheet software
		if strings.HasPrefix(name, "~$") {
			continue
		}

		vintage, ok := ParseVintageFromFilename(name)
		if !ok {
			undated = append(undated, name)
			continue
		}

		snapshots = append(snapshots, SnapshotFile{
			Path:        filepath.Join(fullPath, name),
			Name:        name,
			VintageDate: vintage,
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name < snapshots[j].Name
	})
	sort.Strings(undated)

	return snapshots, undated, nil
}

// ParseVintageFromFilename extracts the vintage (release) date from a
// filename ending in "YYYY-MM-DD.csv" or "YYYY-MM-DD.xlsx". The date is
// returned at calendar-day granularity in UTC.
func ParseVintageFromFilename(name string) (time.Time, bool) {
	m := vintageRe.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}

	vintage, err := time.Parse("2006-01-02", m[1])
	if err != nil {
		return time.Time{}, false
	}

	return vintage, true
}
