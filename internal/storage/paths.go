// Package storage persists engine settings, a decision log and decision statistics.
package storage

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
)

const appName = "scorefour"

// DataDir resolves and creates the application data directory. A non-empty
// dir (the data_dir setting) is used as is; otherwise the platform location:
// - macOS: ~/Library/Application Support/scorefour/
// - Linux: $XDG_DATA_HOME/scorefour/ or ~/.local/share/scorefour/
// - Windows: %APPDATA%/scorefour/
func DataDir(dir string) (string, error) {
	if dir == "" {
		base, err := dataHome()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, appName)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// dataHome returns the per-user base directory for application data.
func dataHome() (string, error) {
	env := "XDG_DATA_HOME"
	var fallback []string
	switch runtime.GOOS {
	case "darwin":
		env, fallback = "", []string{"Library", "Application Support"}
	case "windows":
		env, fallback = "APPDATA", []string{"AppData", "Roaming"}
	default:
		fallback = []string{".local", "share"}
	}

	if env != "" {
		if base := os.Getenv(env); base != "" {
			return base, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

// DatabaseDir returns the BadgerDB directory inside DataDir(dir).
func DatabaseDir(dir string) (string, error) {
	dataDir, err := DataDir(dir)
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}

	log.Debug().Str("dir", dbDir).Msg("database directory")
	return dbDir, nil
}
