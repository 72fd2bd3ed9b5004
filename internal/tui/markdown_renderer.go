package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/hylla/syssla/internal/domain"
)

// markdownRenderer renders the in-app guide and recreates the renderer when
// the wrap width or active theme changes.
type markdownRenderer struct {
	width    int
	theme    domain.Theme
	renderer *glamour.TermRenderer
}

// render converts markdown into ANSI-styled terminal text, styled to match the
// active theme. Render failures fall back to the raw markdown.
func (r *markdownRenderer) render(markdown string, width int, theme domain.Theme) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}

	wrapWidth := width
	if wrapWidth < 24 {
		wrapWidth = 24
	}

	if r.renderer == nil || r.width != wrapWidth || r.theme != theme {
		style := "light"
		if theme == domain.ThemeDark {
			style = "dark"
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = wrapWidth
		r.theme = theme
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}
