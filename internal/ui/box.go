package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderTitledBox frames content with the title set into the top border,
// ┌─ Title ──────┐. Focused boxes use BorderFocus on FocusBg. Lines longer
// than the box are clipped and missing lines are blank-filled.
func renderTitledBox(theme Theme, title, content string, width, height int, focused bool) string {
	if width < 4 || height < 2 {
		return ""
	}
	border, fill := theme.Border, theme.SurfaceAlt
	if focused {
		border, fill = theme.BorderFocus, theme.FocusBg
	}
	bg := NewBgStyle(fill)
	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(border))
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Text))
	inner := width - 2
	body := lipgloss.NewStyle().Width(inner).Background(lipgloss.Color(fill))
	title = truncate(title, inner-4)
	rest := max(inner-lipgloss.Width(title)-3, 0)

	out := make([]string, 0, height)
	out = append(out, bg.Render("┌─", edge)+bg.Render(" "+title+" ", heading)+bg.Render(strings.Repeat("─", rest)+"┐", edge))

	rows := strings.Split(content, "\n")
	side := bg.Render("│", edge)
	for i := range height - 2 {
		line := ""
		if i < len(rows) {
			line = ansi.Truncate(rows[i], inner, "")
		}
		out = append(out, side+body.Render(line)+side)
	}
	out = append(out, bg.Render("└"+strings.Repeat("─", inner)+"┘", edge))
	return strings.Join(out, "\n")
}

// renderOverlay centers a bordered dialog on the screen.
func renderOverlay(theme Theme, content string, width, screenW, screenH int) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(width)

	return lipgloss.Place(
		screenW,
		screenH,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
