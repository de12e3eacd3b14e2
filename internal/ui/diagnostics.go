package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/locador/internal/logtail"
)

// logsLoadedMsg carries the tail of the console log.
type logsLoadedMsg struct {
	entries []logtail.Entry
	err     error
}

// logsView shows the tail of the application's own log file. It is held by
// pointer so every Model copy scrolls the same viewport.
type logsView struct {
	path     string
	entries  []logtail.Entry
	err      error
	loaded   bool
	viewport viewport.Model

	// rendered caches content for the theme it was colored with.
	renderedFor string
	dirty       bool
}

func newLogsView(path string) *logsView {
	return &logsView{path: path, viewport: viewport.New(0, 0)}
}

// load reads the log file off the update loop.
func (l *logsView) load() tea.Cmd {
	path := l.path
	return func() tea.Msg {
		if path == "" {
			return logsLoadedMsg{}
		}
		lines, err := logtail.Read(path, LogTailLines)
		if err != nil {
			return logsLoadedMsg{err: err}
		}
		return logsLoadedMsg{entries: logtail.ParseLines(lines)}
	}
}

func (l *logsView) apply(msg logsLoadedMsg) {
	l.entries = msg.entries
	l.err = msg.err
	l.loaded = true
	l.dirty = true
}

// resize fits the viewport inside a titled box of the given size.
func (l *logsView) resize(width, height int) {
	l.viewport.Width = max(width-2, 1)
	l.viewport.Height = max(height-2, 1)
	l.dirty = true
}

func (l *logsView) handleKey(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Refresh):
		return l.load()
	case key.Matches(msg, keys.Top):
		l.viewport.GotoTop()
	case key.Matches(msg, keys.Bottom):
		l.viewport.GotoBottom()
	case key.Matches(msg, keys.Up):
		l.viewport.ScrollUp(1)
	case key.Matches(msg, keys.Down):
		l.viewport.ScrollDown(1)
	case key.Matches(msg, keys.PageUp):
		l.viewport.PageUp()
	case key.Matches(msg, keys.PageDown):
		l.viewport.PageDown()
	}
	return nil
}

func (l *logsView) view(theme Theme, width, height int) string {
	title := "Logs"
	if l.path != "" {
		title = "Logs " + truncateMiddle(l.path, max(width-12, 8))
	}

	if l.dirty || l.renderedFor != theme.Name {
		atBottom := l.viewport.AtBottom() || !l.loaded
		l.viewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(theme.FocusBg))
		l.viewport.SetContent(l.renderContent(theme, l.viewport.Width))
		if atBottom {
			l.viewport.GotoBottom()
		}
		l.renderedFor = theme.Name
		l.dirty = false
	}
	return renderTitledBox(theme, title, l.viewport.View(), width, height, true)
}

func (l *logsView) renderContent(theme Theme, width int) string {
	styles := theme.Styles().WithBackground(theme.FocusBg)
	bg := NewBgStyle(theme.FocusBg)

	switch {
	case l.path == "":
		return bg.Render("Logging to the console; no log file to show.", styles.MutedText)
	case l.err != nil:
		return bg.Render(fmt.Sprintf("Could not read %s: %v", l.path, l.err), styles.DangerText)
	case !l.loaded:
		return bg.Render("Loading…", styles.WarningText)
	case len(l.entries) == 0:
		return bg.Render("Log file is empty.", styles.MutedText)
	}

	lines := make([]string, len(l.entries))
	for i, e := range l.entries {
		line := truncate(logtail.Format(e), max(width-7, 10))
		lines[i] = bg.FillLine(
			bg.Render(fmt.Sprintf("%4d │ ", i+1), styles.FaintText)+
				bg.Render(line, levelStyle(styles, e.Level)),
			width)
	}
	return strings.Join(lines, "\n")
}

func levelStyle(styles Styles, level zerolog.Level) lipgloss.Style {
	switch level {
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return styles.DangerText
	case zerolog.WarnLevel:
		return styles.WarningText
	case zerolog.InfoLevel:
		return styles.Text
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return styles.FaintText
	default:
		return styles.MutedText
	}
}
