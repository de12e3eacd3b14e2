package ui

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// boundary records a panic raised while updating or rendering. It is shared
// by every copy of the Model so a crash seen in View survives into Update.
type boundary struct {
	mu    sync.Mutex
	value any
	stack string
	count int
}

func (b *boundary) capture(r any, stack []byte, logger zerolog.Logger) {
	b.mu.Lock()
	b.value = r
	b.stack = string(stack)
	b.count++
	count := b.count
	b.mu.Unlock()

	logger.Error().
		Str("component", "ui").
		Str("panic", fmt.Sprint(r)).
		Str("stack", string(stack)).
		Int("count", count).
		Msg("recovered from ui panic")
}

func (b *boundary) crashed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value != nil
}

func (b *boundary) clear() {
	b.mu.Lock()
	b.value = nil
	b.stack = ""
	b.mu.Unlock()
}

func (b *boundary) message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.value == nil {
		return ""
	}
	return fmt.Sprint(b.value)
}

// guard runs fn and converts a panic into the boundary's fallback state. The
// returned model is the one from before the failed update.
func (m Model) guard(msg tea.Msg, fn func(tea.Msg) (Model, tea.Cmd)) (next tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.boundary.capture(r, debug.Stack(), m.logger)
			next, cmd = m, nil
		}
	}()
	return fn(msg)
}

// updateCrashed handles input while the fallback screen is shown.
func (m Model) updateCrashed(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		return m, nil
	case changedMsg:
		m.snapshot = m.services.Store.Snapshot()
		return m, waitForChange(m.changes)
	case tickMsg:
		return m, tickCmd(DefaultUIInterval)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Retry):
			m.boundary.clear()
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.boundary.clear()
			return m, m.reload()
		case key.Matches(msg, m.keys.Home):
			m.boundary.clear()
			m.goHome()
			return m, nil
		}
	}
	return m, nil
}

// reload drops every cached list, pending toast and loading flag, then
// refetches the active screen.
func (m *Model) reload() tea.Cmd {
	m.modal = nil
	m.showHelp = false
	for _, s := range m.screens {
		s.Reset()
	}
	m.services.Loading.ClearAll()
	m.services.Notifications.Clear()
	m.logger.Info().Str("component", "ui").Msg("reloaded after failure")
	if scr := m.currentScreen(); scr != nil {
		return scr.Load(m.env())
	}
	return nil
}

func (m *Model) goHome() {
	m.modal = nil
	m.showHelp = false
	m.showLogs = false
	m.active = 0
}

func (m Model) renderCrash() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Something went wrong"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(truncate(m.boundary.message(), 200)))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("The error was written to the console log."))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("r") + styles.MutedText.Render(" retry   ") +
		styles.AccentText.Render("R") + styles.MutedText.Render(" reload   ") +
		styles.AccentText.Render("h") + styles.MutedText.Render(" home   ") +
		styles.AccentText.Render("q") + styles.MutedText.Render(" quit"))

	content := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Danger)).
		Padding(1, 2).
		Width(min(70, max(m.width-4, 30))).
		Render(b.String())
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
