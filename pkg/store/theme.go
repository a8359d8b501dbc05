package store

import (
	"fmt"
	"strings"
)

// Theme is the UI colour scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ParseTheme parses a theme name case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	default:
		return "", fmt.Errorf("invalid theme %q (must be light, dark or system)", s)
	}
}

// ThemeStore persists the theme preference across runs.
type ThemeStore interface {
	// LoadTheme returns the stored theme, or "" when none was saved.
	LoadTheme() (string, error)
	SaveTheme(theme string) error
}
