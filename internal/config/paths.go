package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Paths contains all the application paths.
// This is the single source of truth for ALL file paths in the application.
type Paths struct {
	ExecutableDir string
	DataDir       string
	RawDir        string
	ProcessedDir  string
	LogsDir       string
}

var (
	pathsInstance *Paths
	pathsOnce     sync.Once
	pathsErr      error
)

// GetPaths returns the application paths relative to the executable location.
// All paths are ALWAYS relative to the executable directory, never the current
// working directory, so the binary behaves the same wherever it is invoked from.
func GetPaths() (*Paths, error) {
	pathsOnce.Do(func() {
		pathsInstance, pathsErr = resolvePaths()
	})
	return pathsInstance, pathsErr
}

func resolvePaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	exeDir := filepath.Dir(exe)

	// Directory structure:
	//   data/
	//     raw/        (snapshot files deposited by the fetch step)
	//     processed/  (derived tidy panel output)
	//   logs/         (application logs)
	dataDir := filepath.Join(exeDir, "data")

	return &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		RawDir:        filepath.Join(dataDir, "raw"),
		ProcessedDir:  filepath.Join(dataDir, "processed"),
		LogsDir:       filepath.Join(exeDir, "logs"),
	}, nil
}

// EnsureDirectories creates all required directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.RawDir,
		p.ProcessedDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	return nil
}

// GetRawPath returns the full path for a file in the raw snapshots directory.
func (p *Paths) GetRawPath(filename string) string {
	return filepath.Join(p.RawDir, filename)
}

// GetProcessedPath returns the full path for a file in the processed directory.
func (p *Paths) GetProcessedPath(filename string) string {
	return filepath.Join(p.ProcessedDir, filename)
}

// GetLogPath returns the full path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs the resolved paths for debugging.
func (p *Paths) LogPathResolution() {
	slog.Debug("Resolved application paths",
		slog.String("executable_dir", p.ExecutableDir),
		slog.String("raw_dir", p.RawDir),
		slog.String("processed_dir", p.ProcessedDir),
		slog.String("logs_dir", p.LogsDir))
}

// ResetPathsForTesting resets the cached paths instance.
// This should only be called in tests.
func ResetPathsForTesting() {
	pathsInstance = nil
	pathsErr = nil
	pathsOnce = sync.Once{}
}
