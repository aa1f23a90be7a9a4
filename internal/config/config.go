// Package config resolves where studydesk keeps its data and which storage
// backend it uses.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the resolved settings for a run.
type Config struct {
	// DataDir is the directory holding the database file.
	DataDir string
	// Backend names the storage backend: "sqlite" or "bolt".
	Backend string
}

// Load reads an optional .env file, then the environment. Missing values
// fall back to the XDG data directory and the sqlite backend. The data
// directory is created if needed.
func Load() (Config, error) {
	// A missing .env is fine; env vars still apply.
	_ = godotenv.Load()

	dir := os.Getenv("STUDYDESK_DATA_DIR")
	if dir == "" {
		var err error
		dir, err = defaultDataDir()
		if err != nil {
			return Config{}, err
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Config{}, err
	}

	backend := os.Getenv("STUDYDESK_BACKEND")
	if backend == "" {
		backend = "sqlite"
	}

	return Config{DataDir: dir, Backend: backend}, nil
}

// defaultDataDir returns the XDG data directory for studydesk, falling back
// to ~/.local/share.
func defaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "studydesk"), nil
}
