// Package main previews the task-list color palettes for theme tuning.
package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// paletteRole pairs one display role with its light and dark ANSI colors.
type paletteRole struct {
	name  string
	usage string
	light string
	dark  string
}

// paletteRoles mirrors the styles the list renders with in each theme.
var paletteRoles = []paletteRole{
	{"Title", "header brand", "235", "252"},
	{"Accent", "active section tab", "62", "212"},
	{"Muted", "inactive tabs, summary", "245", "241"},
	{"Dim", "status line, separators", "249", "239"},
	{"Done", "completed rows", "247", "243"},
	{"Remove", "rows fading out", "167", "203"},
	{"Cursor", "selection marker", "62", "212"},
}

func main() {
	fmt.Println("=== SYSSLA THEME PALETTES ===")
	displayPaletteTable()

	fmt.Println("\n\n=== GRAYSCALE RAMP (232-255) ===")
	fmt.Println("Reference for picking muted/dim/done shades:")
	displayColorBlock(232, 255, 12)

	fmt.Println("\n\n=== ACCENT CANDIDATES ===")
	displayAccentCandidates()
}

func displayPaletteTable() {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers("Role", "Used for", "Light", "Dark", "Sample").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == 0 {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
			}
			return lipgloss.NewStyle()
		})

	for _, role := range paletteRoles {
		sample := colorSwatch(role.light) + " " + colorSwatch(role.dark)
		t.Row(role.name, role.usage, role.light, role.dark, sample)
	}

	fmt.Println(t.Render())
}

// displayAccentCandidates shows nearby hues for the active-tab accent.
func displayAccentCandidates() {
	candidates := []string{"56", "62", "63", "98", "105", "205", "211", "212", "213"}
	for _, c := range candidates {
		fmt.Print(colorSwatch(c), " ")
	}
	fmt.Println()
}

// colorSwatch renders one color code on its own background.
func colorSwatch(code string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(code)).
		Foreground(getContrastColor(mustAtoi(code))).
		Width(8).
		Align(lipgloss.Center).
		Render(code)
}

func displayColorBlock(start, end, perRow int) {
	count := 0
	for i := start; i <= end; i++ {
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(strconv.Itoa(i))).
			Foreground(getContrastColor(i)).
			Width(6).
			Align(lipgloss.Center)

		fmt.Print(style.Render(fmt.Sprintf("%3d", i)))

		count++
		if count%perRow == 0 {
			fmt.Println()
		} else {
			fmt.Print(" ")
		}
	}
	if count%perRow != 0 {
		fmt.Println()
	}
}

// getContrastColor picks readable text for a swatch background.
func getContrastColor(colorIndex int) lipgloss.Color {
	switch {
	case colorIndex < 16:
		if colorIndex == 0 || colorIndex == 1 || colorIndex == 4 || colorIndex == 5 || colorIndex == 8 {
			return lipgloss.Color("15")
		}
		return lipgloss.Color("0")
	case colorIndex >= 232:
		if colorIndex < 244 {
			return lipgloss.Color("15")
		}
		return lipgloss.Color("0")
	default:
		return lipgloss.Color("15")
	}
}

func mustAtoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}
