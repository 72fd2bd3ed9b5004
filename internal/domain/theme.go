package domain

import "strings"

// Theme is the binary display mode.
type Theme string

// ThemeLight and ThemeDark define the two display modes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme normalizes raw input into a theme, defaulting to light for
// anything unrecognized (including stale persisted values).
func ParseTheme(raw string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(raw))) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Next returns the other theme.
func (t Theme) Next() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
