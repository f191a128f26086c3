// Package storage archives finished and in-progress games.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "hiveplay"

// GetDataDir returns the per-user directory hiveplay keeps its archives in:
// Application Support on macOS, %APPDATA% on Windows and $XDG_DATA_HOME
// (default ~/.local/share) elsewhere. Nothing is created.
func GetDataDir() (string, error) {
	base, fallback := os.Getenv("XDG_DATA_HOME"), []string{".local", "share"}
	switch runtime.GOOS {
	case "darwin":
		base, fallback = "", []string{"Library", "Application Support"}
	case "windows":
		base, fallback = os.Getenv("APPDATA"), []string{"AppData", "Roaming"}
	}

	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, appName), nil
}

// dataPath joins name onto the data directory.
func dataPath(name string) (string, error) {
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// GetDatabaseDir returns the default directory of the badger archive.
func GetDatabaseDir() (string, error) {
	return dataPath("db")
}

// GetSQLitePath returns the default file of the SQLite archive.
func GetSQLitePath() (string, error) {
	return dataPath(appName + ".db")
}
