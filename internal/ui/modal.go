package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmModal asks a yes/no question and runs onYes when accepted.
type confirmModal struct {
	title   string
	message string
	onYes   tea.Cmd
}

func newConfirmModal(title, message string, onYes tea.Cmd) *confirmModal {
	return &confirmModal{title: title, message: message, onYes: onYes}
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(km, keys.Yes):
		return c, c.onYes, true
	case key.Matches(km, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.DangerText.Render(c.title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.message))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("y") + styles.MutedText.Render(" confirm   ") +
		styles.AccentText.Render("n/esc") + styles.MutedText.Render(" cancel"))
	return renderOverlay(theme, b.String(), min(ModalWidth, max(width-8, 20)), width, height)
}
