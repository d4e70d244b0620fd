package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for ALL file paths in the application.
type Paths struct {
	ExecutableDir string
	DataDir       string
	RawDir        string
	CleanedDir    string
	ReportsDir    string
	CacheDir      string
	LogsDir       string

	// Well-known files
	CleanedCSV string
	StoreDB    string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are ALWAYS relative to the executable directory, never the
// current working directory.
func GetPaths() (*Paths, error) {
	exeDir, err := executableDir()
	if err != nil {
		return nil, err
	}
	return PathsAt(exeDir), nil
}

// PathsAt builds the path set rooted at the given base directory.
// Directory structure:
//
//	base/
//	  ├── data/
//	  │   ├── raw/       (source CSV/XLSX files)
//	  │   ├── cleaned/   (cleaned canonical CSV)
//	  │   ├── reports/   (aggregate report CSVs)
//	  │   └── cache/     (query store database)
//	  └── logs/          (application logs)
func PathsAt(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	cleanedDir := filepath.Join(dataDir, "cleaned")
	cacheDir := filepath.Join(dataDir, "cache")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		RawDir:        filepath.Join(dataDir, "raw"),
		CleanedDir:    cleanedDir,
		ReportsDir:    filepath.Join(dataDir, "reports"),
		CacheDir:      cacheDir,
		LogsDir:       filepath.Join(baseDir, "logs"),

		CleanedCSV: filepath.Join(cleanedDir, "district_crop_data_cleaned.csv"),
		StoreDB:    filepath.Join(cacheDir, "agricli.db"),
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.RawDir,
		p.CleanedDir,
		p.ReportsDir,
		p.CacheDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetRawPath returns the full path of a file in the raw data directory.
func (p *Paths) GetRawPath(filename string) string {
	return filepath.Join(p.RawDir, filename)
}

// GetCleanedPath returns the full path of a file in the cleaned data directory.
func (p *Paths) GetCleanedPath(filename string) string {
	return filepath.Join(p.CleanedDir, filename)
}

// GetReportPath returns the full path of a file in the reports directory.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetCachePath returns the full path of a file in the cache directory.
func (p *Paths) GetCachePath(filename string) string {
	return filepath.Join(p.CacheDir, filename)
}

// GetLogPath returns the full path of a file in the logs directory.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}
	return filepath.Dir(exe), nil
}
