// Package prefs persists the few user preferences that outlive a process.
// Today that is only the UI theme, stored under a fixed key.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"
)

// ThemeKey is the key the theme preference is stored under.
const ThemeKey = "theme"

// DefaultDir is used when no state directory is configured.
const DefaultDir = "~/.showcase"

// Store is a diskv-backed preference store.
type Store struct {
	d    *diskv.Diskv
	base string
}

// Open creates (if needed) and opens the preference store rooted at dir.
// A leading "~" is expanded to the user's home directory; an empty dir
// means DefaultDir.
func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, fmt.Errorf("prefs: resolve %q: %w", dir, err)
	}
	base := filepath.Join(expanded, "prefs")
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("prefs: create directory: %w", err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     base,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 4096,
		}),
		base: base,
	}, nil
}

// Dir returns the directory values are written to.
func (s *Store) Dir() string {
	return s.base
}

// Get returns the value for key, or "" if it was never written.
func (s *Store) Get(key string) (string, error) {
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("prefs: read %s: %w", key, err)
	}
	return strings.TrimSpace(string(val)), nil
}

// Set writes value under key.
func (s *Store) Set(key, value string) error {
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("prefs: write %s: %w", key, err)
	}
	return nil
}

// LoadTheme returns the stored theme or "".
func (s *Store) LoadTheme() (string, error) {
	return s.Get(ThemeKey)
}

// SaveTheme stores theme under ThemeKey.
func (s *Store) SaveTheme(theme string) error {
	return s.Set(ThemeKey, theme)
}
