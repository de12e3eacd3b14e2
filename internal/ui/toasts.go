package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/locador/internal/state"
)

// visibleToasts returns the newest notifications, oldest first.
func (m Model) visibleToasts() []state.Notification {
	list := m.services.Notifications.List()
	if len(list) > MaxToasts {
		list = list[len(list)-MaxToasts:]
	}
	return list
}

func (m Model) toastCount() int {
	return len(m.visibleToasts())
}

// renderToasts draws one line per notification at the bottom of the screen.
func (m Model) renderToasts() string {
	toasts := m.visibleToasts()
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(toasts))
	for _, n := range toasts {
		lines = append(lines, m.renderToast(n))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderToast(n state.Notification) string {
	color := m.toastColor(n.Kind)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	marker := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))

	parts := []string{bg.Render(toastIcon(n.Kind), marker)}
	if n.Title != "" {
		parts = append(parts, bg.Render(n.Title, marker))
	}
	if n.Message != "" {
		parts = append(parts, bg.Render(truncate(n.Message, max(m.width-len(n.Title)-16, 10)), text))
	}
	if n.Persistent {
		parts = append(parts, bg.Render("(ctrl+x)", muted))
	}
	return bg.FillLine(bg.Space()+strings.Join(parts, bg.Space()), m.width)
}

func (m Model) toastColor(kind state.Kind) string {
	switch kind {
	case state.KindSuccess:
		return m.theme.Success
	case state.KindError:
		return m.theme.Danger
	case state.KindWarning:
		return m.theme.Warning
	default:
		return m.theme.Info
	}
}

func toastIcon(kind state.Kind) string {
	switch kind {
	case state.KindSuccess:
		return "✓"
	case state.KindError:
		return "✗"
	case state.KindWarning:
		return "!"
	default:
		return "i"
	}
}
