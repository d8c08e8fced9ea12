// Package daemon holds the preference daemon's own settings: where it
// listens and where the backing store lives. These are process settings, not
// user preferences; they resolve defaults first, then INKWELL_* environment
// variables.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config is the daemon configuration.
type Config struct {
	// Port is the HTTP listen port on 127.0.0.1.
	Port int
	// DataDir holds the SQLite preference database.
	DataDir string
	// Store selects the backend: "sqlite" or "file".
	Store string
	// RecentCapacity bounds the recent-projects list.
	RecentCapacity int
}

func defaults() Config {
	return Config{
		Port:           4520,
		DataDir:        defaultDataDir(),
		Store:          "sqlite",
		RecentCapacity: 12,
	}
}

func defaultDataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "share")
		} else {
			return "inkwell-data"
		}
	}
	return filepath.Join(dir, "inkwell")
}

// Load resolves the daemon configuration.
func Load() (Config, error) {
	cfg := defaults()

	if raw := os.Getenv("INKWELL_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parsing INKWELL_PORT=%q: %w", raw, err)
		}
		cfg.Port = port
	}
	if raw := os.Getenv("INKWELL_DATA_DIR"); raw != "" {
		cfg.DataDir = raw
	}
	if raw := os.Getenv("INKWELL_STORE"); raw != "" {
		cfg.Store = raw
	}
	if raw := os.Getenv("INKWELL_RECENT_CAPACITY"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parsing INKWELL_RECENT_CAPACITY=%q: %w", raw, err)
		}
		if n <= 0 {
			return Config{}, fmt.Errorf("INKWELL_RECENT_CAPACITY must be positive, got %d", n)
		}
		cfg.RecentCapacity = n
	}

	switch cfg.Store {
	case "sqlite", "file":
	default:
		return Config{}, fmt.Errorf("unknown store %q, expected sqlite or file", cfg.Store)
	}

	return cfg, nil
}
