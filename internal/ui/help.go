package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpTitles names the groups returned by keyMap.FullHelp, in order.
var helpTitles = []string{"Navigation", "Lists", "Records", "Shell", "General"}

// renderHelp renders the help overlay from the key map so the two never
// disagree.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(12)

	row := func(k, desc string) string {
		return keyStyle.Render(k) + styles.Text.Render(desc) + "\n"
	}
	section := func(b *strings.Builder, title string, bindings []key.Binding) {
		b.WriteString(styles.AccentText.Bold(true).Render(title))
		b.WriteString("\n")
		for _, kb := range bindings {
			h := kb.Help()
			b.WriteString(row(h.Key, h.Desc))
		}
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	b.WriteString(row("0-6", "Dashboard / resource screens"))
	b.WriteString("\n")
	for i, group := range m.keys.FullHelp() {
		section(&b, helpTitles[i], group)
		b.WriteString("\n")
	}
	section(&b, "Forms", []key.Binding{m.keys.NextField, m.keys.PrevField, m.keys.Submit, m.keys.Escape})

	return renderOverlay(m.theme, strings.TrimRight(b.String(), "\n"), 46, m.width, m.height)
}
