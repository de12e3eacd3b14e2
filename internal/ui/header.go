package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar with all information.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if !m.snapshot.HasSummary {
		return m.renderConnectingHeader(styles, bg)
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(m.buildStatusContent(styles, bg))
}

// renderConnectingHeader shows the connecting/error state.
func (m Model) renderConnectingHeader(styles Styles, bg BgStyle) string {
	sep := bg.Spaces(2)

	if m.snapshot.LastError != nil {
		parts := []string{
			bg.Render("locador", styles.Logo),
			bg.Render("API "+classifyConnectionError(m.snapshot.LastError), styles.DangerText.Bold(true)),
			bg.Render("Retrying...", styles.WarningText.Bold(true)),
		}
		if m.apiURL != "" {
			parts = append(parts, bg.Render(truncateMiddle(m.apiURL, 50), styles.MutedText))
		}
		return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
	}

	return styles.Header.Width(m.width).Render(
		bg.Render("locador", styles.Logo) + sep +
			bg.Render("Connecting to API...", styles.WarningText.Bold(true)),
	)
}

// buildStatusContent builds the status bar content string.
func (m Model) buildStatusContent(styles Styles, bg BgStyle) string {
	compact := m.width < LayoutCompactWidth
	var parts []string

	parts = append(parts, bg.Render("locador", styles.Logo))

	if m.snapshot.IsOffline() {
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	} else {
		parts = append(parts, bg.Render("● ONLINE", styles.SuccessText))
	}

	if active := m.services.Loading.Active(); len(active) > 0 || m.services.Loading.GlobalLoading() {
		label := "working"
		if len(active) > 0 && !compact {
			label = truncate(strings.Join(active, ","), 30)
		}
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText)+bg.Space()+
			bg.Render(label, styles.WarningText))
	}

	pending := m.snapshot.Summary.LancamentosPendentes
	pendingStyle := styles.MutedText
	if pending > 0 {
		pendingStyle = styles.WarningText
	}
	label := "Pendentes:"
	if compact {
		label = "P:"
	}
	parts = append(parts, bg.Pair(label, styles.MutedText, fmt.Sprintf("%d", pending), pendingStyle))

	if session := m.formatSession(); session != "" {
		parts = append(parts, session)
	}

	if ts := m.formatTimestamp(); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if m.snapshot.LastError != nil {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(truncate(m.snapshot.LastError.Error(), maxErr), styles.DangerText),
		)
	}

	return bg.Join(parts, "  ")
}

// formatSession shows how long the API token stays valid.
func (m Model) formatSession() string {
	expiry := m.session()
	if expiry.IsZero() {
		return ""
	}
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	left := expiry.Sub(m.now)
	if left <= 0 {
		return bg.Render("session expired", styles.DangerText)
	}
	style := styles.MutedText
	if left < sessionWarnWindow {
		style = styles.WarningText
	}
	return bg.Pair("session", styles.FaintText, humanizeDuration(left), style)
}

// formatTimestamp formats the last update time with relative indicator.
func (m Model) formatTimestamp() string {
	last := m.snapshot.LastUpdated
	if last.IsZero() {
		return ""
	}
	since := m.now.Sub(last)
	out := last.Format("15:04:05")
	if since < 0 {
		return out
	}
	return out + " (" + humanizeDuration(since) + ")"
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "unauthorized"):
		return "UNAUTHORIZED"
	default:
		return "ERROR"
	}
}

func (m Model) renderOfflineBanner(width int) string {
	text := fmt.Sprintf(" API unreachable after %d attempts; showing cached data ", m.snapshot.ConsecutiveFailures)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Danger)).
		Foreground(lipgloss.Color(m.theme.Background)).
		Bold(true).
		Width(width).
		Render(truncate(text, width))
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var commands []hint
	switch {
	case m.showLogs:
		commands = []hint{
			{"j/k", "Scroll"},
			{"g/G", "Top/End"},
			{"r", "Reload"},
			{"esc", "Back"},
		}
	case m.currentScreen() != nil:
		commands = m.currentScreen().Hints()
	default:
		commands = []hint{
			{"1-6", "Records"},
			{"L", "Logs"},
			{"b", "Sidebar"},
		}
	}
	commands = append(commands, hint{"?", "More"})

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderSidebar lists the dashboard and every resource screen.
func (m Model) renderSidebar(height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	width := SidebarWidth - 2

	entry := func(i int, title string) string {
		label := fmt.Sprintf("%d %s", i, title)
		if i == m.active && !m.showLogs {
			sel := NewBgStyle(m.theme.SelectionBg)
			return sel.FillLine(sel.Render(label, lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText)).Bold(true)), width)
		}
		return bg.FillLine(bg.Render(label, styles.Text), width)
	}

	lines := []string{entry(0, "Painel")}
	for i, s := range m.screens {
		lines = append(lines, entry(i+1, s.Title()))
	}
	lines = append(lines, bg.FillLine("", width))
	logs := bg.Render("L Logs", styles.MutedText)
	if m.showLogs {
		logs = bg.Render("L Logs", styles.AccentText.Bold(true))
	}
	lines = append(lines, bg.FillLine(logs, width))

	return renderTitledBox(m.theme, "Menu", strings.Join(lines, "\n"), SidebarWidth, height, false)
}
