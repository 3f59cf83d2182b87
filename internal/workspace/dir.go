package workspace

import (
	"os"
	"path/filepath"
)

// DataDirName is the directory holding session.db, journal.jsonl and config.yaml.
const DataDirName = ".recdesk"

// FindDataDir returns the path to the nearest .recdesk directory,
// searching the current directory and its parents.
// Returns empty string if not found.
func FindDataDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findDataDirFrom(dir)
}

// findDataDirFrom searches for .recdesk starting from the given directory
// and walking up to the root.
func findDataDirFrom(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, DataDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			return ""
		}
		dir = parent
	}
}

// ResolveDataDir returns the data directory following priority order:
// 1. flagValue (--dir flag) if non-empty
// 2. $RECDESK_DIR if set
// 3. nearest ancestor .recdesk directory
// 4. .recdesk in the current directory (created on first use)
func ResolveDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir
	}
	if dir := FindDataDir(); dir != "" {
		return dir
	}
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, DataDirName)
	}
	return DataDirName
}
