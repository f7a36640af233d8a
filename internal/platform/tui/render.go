package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vimaze/internal/core"
)

// colorStyles maps the semantic core.Color classes to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorPlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorSpy:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorExit:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorFlash:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("9")),
	core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorAccent:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	core.ColorDanger:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape
// sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
