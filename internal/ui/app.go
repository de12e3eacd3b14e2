package ui

import (
	"context"
	"errors"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/locador/internal/prefs"
	"github.com/five82/locador/internal/resource"
	"github.com/five82/locador/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Services  *state.Services
	Resources *resource.Set
	APIURL    string
	Session   func() time.Time // session expiry; zero when unknown
	LogFile   string
	Logger    zerolog.Logger
	Prefs     prefs.Prefs
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	services  *state.Services
	apiURL    string
	session   func() time.Time
	logger    zerolog.Logger
	prefs     prefs.Prefs
	prefsPath string

	// UI state
	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	active   int // 0 = dashboard, 1..n = screens[active-1]
	showHelp bool
	showLogs bool
	modal    Modal
	spinner  spinner.Model
	now      time.Time

	// Data state
	snapshot state.Snapshot
	screens  []screen
	logs     *logsView

	changes     <-chan struct{}
	unsubscribe func()
	boundary    *boundary
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	services := opts.Services
	if services == nil {
		services = state.NewServices(opts.Logger)
	}
	session := opts.Session
	if session == nil {
		session = func() time.Time { return time.Time{} }
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	snapshot := services.Store.Snapshot()
	themeName := snapshot.Theme
	if themeName == "" {
		themeName = opts.Prefs.Theme
	}

	var screens []screen
	if opts.Resources != nil {
		screens = newScreens(opts.Resources)
	}

	changes, unsubscribe := services.Changes.Subscribe()

	return Model{
		ctx:         ctx,
		services:    services,
		apiURL:      opts.APIURL,
		session:     session,
		logger:      opts.Logger.With().Str("component", "ui").Logger(),
		prefs:       opts.Prefs,
		prefsPath:   prefsPath,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		spinner:     spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		now:         time.Now(),
		snapshot:    snapshot,
		screens:     screens,
		logs:        newLogsView(opts.LogFile),
		changes:     changes,
		unsubscribe: unsubscribe,
		boundary:    &boundary{},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForChange(m.changes),
		tickCmd(DefaultUIInterval),
		m.spinner.Tick,
	)
}

// Update implements tea.Model. Panics are recovered into the error boundary.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.boundary.crashed() {
		return m.updateCrashed(msg)
	}
	return m.guard(msg, m.update)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.logs.resize(m.mainWidth(), m.bodyHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case changedMsg:
		m.snapshot = m.services.Store.Snapshot()
		return m, waitForChange(m.changes)

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd(DefaultUIInterval)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case listFailedMsg:
		m.logger.Debug().Err(msg.err).Str("resource", msg.name).Msg("list failed")
		return m, nil

	case logsLoadedMsg:
		m.logs.apply(msg)
		return m, nil
	}

	// Everything else (cursor blink, form results) goes to the focused widget.
	if m.modal != nil {
		return m.updateModal(msg)
	}
	if scr := m.currentScreen(); scr != nil {
		return m, scr.Update(msg)
	}
	return m, nil
}

func (m Model) updateModal(msg tea.Msg) (Model, tea.Cmd) {
	next, cmd, closed := m.modal.Update(msg, m.keys)
	if closed {
		m.modal = nil
	} else {
		m.modal = next
	}
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	scr := m.currentScreen()
	if scr != nil && scr.Capturing() && !m.showLogs {
		cmd, _ := scr.HandleKey(m.env(), msg, m.keys)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.ToggleSidebar):
		m.services.Store.ToggleSidebar()
		m.snapshot = m.services.Store.Snapshot()
		m.logs.resize(m.mainWidth(), m.bodyHeight())
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		m.dismissLatest()
		return m, nil
	case key.Matches(msg, m.keys.Diagnostics):
		m.showLogs = true
		m.logs.resize(m.mainWidth(), m.bodyHeight())
		return m, m.logs.load()
	}
	for i, b := range m.keys.Screens {
		if key.Matches(msg, b) && i <= len(m.screens) {
			return m, m.switchTo(i)
		}
	}

	if m.showLogs {
		if key.Matches(msg, m.keys.Escape) {
			m.showLogs = false
			return m, nil
		}
		return m, m.logs.handleKey(msg, m.keys)
	}

	if scr == nil {
		return m, nil
	}
	cmd, modal := scr.HandleKey(m.env(), msg, m.keys)
	if modal != nil {
		m.modal = modal
	}
	return m, cmd
}

// switchTo activates screen i (0 = dashboard) and loads it on first visit.
func (m *Model) switchTo(i int) tea.Cmd {
	m.active = i
	m.showLogs = false
	scr := m.currentScreen()
	if scr == nil || scr.Loaded() {
		return nil
	}
	return scr.Load(m.env())
}

func (m Model) currentScreen() screen {
	if m.active <= 0 || m.active > len(m.screens) {
		return nil
	}
	return m.screens[m.active-1]
}

func (m Model) env() env {
	return env{ctx: m.ctx, services: m.services}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.services.Store.SetTheme(m.theme.Name)
	m.snapshot = m.services.Store.Snapshot()
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := m.prefs
	p.Theme = m.theme.Name
	p.SidebarCollapsed = m.snapshot.SidebarCollapsed
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn().Err(err).Msg("save prefs failed")
		m.services.Notifications.Warning("Preferences", "Could not save preferences: "+err.Error())
		return
	}
	m.prefs = p
}

// dismissLatest removes the most recent notification.
func (m *Model) dismissLatest() {
	list := m.services.Notifications.List()
	if len(list) == 0 {
		return
	}
	m.services.Notifications.Remove(list[len(list)-1].ID)
}

// View implements tea.Model. Render panics show the fallback screen.
func (m Model) View() (out string) {
	if m.boundary.crashed() {
		return m.renderCrash()
	}
	defer func() {
		if r := recover(); r != nil {
			m.boundary.capture(r, debug.Stack(), m.logger)
			out = m.renderCrash()
		}
	}()
	return m.view()
}

func (m Model) view() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// renderMain renders header, command bar, body and toasts.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n")
		b.WriteString(toasts)
	}
	return b.String()
}

func (m Model) renderBody() string {
	height := m.bodyHeight()
	main := m.renderContent(m.mainWidth(), height)
	if m.snapshot.SidebarCollapsed || m.width < LayoutCompactWidth/2 {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(height), main)
}

// renderContent renders the main content area based on the current view.
func (m Model) renderContent(width, height int) string {
	var banner string
	if m.snapshot.IsOffline() {
		banner = m.renderOfflineBanner(width)
		height--
	}

	var body string
	switch {
	case m.showLogs:
		body = m.logs.view(m.theme, width, height)
	case m.currentScreen() != nil:
		body = m.currentScreen().View(m.theme, width, height)
	default:
		body = m.renderDashboard(width, height)
	}
	if banner != "" {
		return banner + "\n" + body
	}
	return body
}

func (m Model) sidebarVisible() bool {
	return !m.snapshot.SidebarCollapsed && m.width >= LayoutCompactWidth/2
}

func (m Model) mainWidth() int {
	if m.sidebarVisible() {
		return max(m.width-SidebarWidth, 10)
	}
	return m.width
}

func (m Model) bodyHeight() int {
	return max(m.height-ChromeHeight-m.toastCount(), 3)
}

// Messages

type tickMsg time.Time

type changedMsg struct{}

type listFailedMsg struct {
	name string
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForChange blocks until the state broadcaster fires.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	defer m.unsubscribe()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
