package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/hylla/syssla/internal/domain"
)

// palette groups the colors one display theme renders with.
type palette struct {
	title  lipgloss.Style
	accent lipgloss.Style
	muted  lipgloss.Style
	dim    lipgloss.Style
	done   lipgloss.Style
	remove lipgloss.Style
	cursor lipgloss.Style
}

// paletteFor returns the lipgloss styles for a theme. The dark palette leans
// on high-contrast grays; the light palette inverts toward inks that read on
// a light terminal background.
func paletteFor(theme domain.Theme) palette {
	if theme == domain.ThemeDark {
		return palette{
			title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
			accent: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("239")),
			done:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Strikethrough(true),
			remove: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Strikethrough(true),
			cursor: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		}
	}
	return palette{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
		accent: lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
		done:   lipgloss.NewStyle().Foreground(lipgloss.Color("247")).Strikethrough(true),
		remove: lipgloss.NewStyle().Foreground(lipgloss.Color("167")).Strikethrough(true),
		cursor: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
	}
}

// themeIcon returns the indicator shown in the header for the active theme.
func themeIcon(theme domain.Theme) string {
	if theme == domain.ThemeDark {
		return "🌙"
	}
	return "☀"
}
