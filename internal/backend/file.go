package backend

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// File stores live overrides as a flat JSON object of strings. Recorded
// defaults are compiled into the host application and passed at
// construction; only overrides touch disk.
type File struct {
	path     string
	defaults map[string]string
	logger   *slog.Logger

	mu   sync.Mutex
	data map[string]string
}

// NewFile creates a File backend reading and writing path. A missing file
// is treated as an empty override set; an unreadable or malformed file is
// logged and treated the same way.
func NewFile(path string, defaults map[string]string) *File {
	d := make(map[string]string, len(defaults))
	for k, v := range defaults {
		d[k] = v
	}
	f := &File{
		path:     path,
		defaults: d,
		logger:   slog.Default(),
		data:     make(map[string]string),
	}
	f.load()
	return f
}

// DefaultPath returns the XDG-compatible location for the preference file.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".config")
		} else {
			dir = "."
		}
	}
	return filepath.Join(dir, "inkwell", "preferences.json")
}

func (f *File) load() {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warn("could not read preference file, starting empty", "path", f.path, "error", err)
		}
		return
	}
	if err := json.Unmarshal(raw, &f.data); err != nil {
		f.logger.Warn("could not parse preference file, starting empty", "path", f.path, "error", err)
		f.data = make(map[string]string)
	}
}

// save writes the override set back to disk. Failures are logged; the
// in-memory state stays authoritative for the rest of the session.
func (f *File) save() {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		f.logger.Error("could not create preference directory", "path", f.path, "error", err)
		return
	}
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		f.logger.Error("could not encode preferences", "error", err)
		return
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		f.logger.Error("could not write preference file", "path", f.path, "error", err)
	}
}

func (f *File) GetString(key, fallback string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.data[key]; ok {
		return v
	}
	if v, ok := f.defaults[key]; ok {
		return v
	}
	return fallback
}

func (f *File) PutString(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	f.save()
}

func (f *File) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return
	}
	delete(f.data, key)
	f.save()
}

func (f *File) GetInt(key string, fallback int) int {
	raw := f.GetString(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		f.logger.Warn("non-integer preference value, using fallback", "key", key, "value", raw)
		return fallback
	}
	return n
}

func (f *File) PutInt(key string, value int) {
	f.PutString(key, strconv.Itoa(value))
}

func (f *File) DefaultString(key, fallback string) string {
	if v, ok := f.defaults[key]; ok {
		return v
	}
	return fallback
}
