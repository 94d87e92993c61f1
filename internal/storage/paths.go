// Package storage persists player preferences and game statistics.
package storage

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
)

const (
	appName = "amazons"

	// DataDirEnv overrides the platform data directory when set.
	DataDirEnv = "AMAZONS_DATA_DIR"
)

// GetDataDir returns the data directory for the application, creating it
// if needed:
//   - macOS: ~/Library/Application Support/amazons/
//   - Linux: $XDG_DATA_HOME/amazons/ or ~/.local/share/amazons/
//   - Windows: %APPDATA%/amazons/
func GetDataDir() (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return ensureDir(dir)
	}

	base, err := platformBaseDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(base, appName))
}

func platformBaseDir() (string, error) {
	var env string
	var fallback []string
	switch runtime.GOOS {
	case "darwin":
		fallback = []string{"Library", "Application Support"}
	case "windows":
		env, fallback = "APPDATA", []string{"AppData", "Roaming"}
	default:
		env, fallback = "XDG_DATA_HOME", []string{".local", "share"}
	}

	if env != "" {
		if dir := os.Getenv(env); dir != "" {
			return dir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

// GetDatabaseDir returns the directory holding the badger database.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir, err := ensureDir(filepath.Join(dataDir, "db"))
	if err != nil {
		return "", err
	}
	log.Debug().Str("dir", dbDir).Msg("database directory")
	return dbDir, nil
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
