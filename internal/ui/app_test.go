package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/locador/internal/prefs"
	"github.com/five82/locador/internal/state"
)

// fakeScreen records how the model drives a screen.
type fakeScreen struct {
	title   string
	loaded  bool
	loads   int
	resets  int
	keys    []string
	modal   Modal
	capture bool
}

func (f *fakeScreen) Title() string   { return f.title }
func (f *fakeScreen) Name() string    { return strings.ToLower(f.title) }
func (f *fakeScreen) Loaded() bool    { return f.loaded }
func (f *fakeScreen) Capturing() bool { return f.capture }
func (f *fakeScreen) Reset()          { f.resets++; f.loaded = false }
func (f *fakeScreen) Hints() []hint   { return []hint{{"x", "Fake"}} }

func (f *fakeScreen) Load(env) tea.Cmd {
	f.loads++
	f.loaded = true
	return func() tea.Msg { return nil }
}

func (f *fakeScreen) HandleKey(_ env, msg tea.KeyMsg, _ keyMap) (tea.Cmd, Modal) {
	f.keys = append(f.keys, msg.String())
	return nil, f.modal
}

func (f *fakeScreen) Update(tea.Msg) tea.Cmd { return nil }

func (f *fakeScreen) View(Theme, int, int) string { return "fake " + f.title }

func newTestModel(t *testing.T, screens ...screen) Model {
	t.Helper()
	services := state.NewServices(zerolog.Nop())
	t.Cleanup(services.Close)

	m := New(Options{
		Context:   context.Background(),
		Services:  services,
		Logger:    zerolog.Nop(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	t.Cleanup(m.unsubscribe)
	m.screens = screens
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return next.(Model)
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_DigitSwitchesAndLoadsOnce(t *testing.T) {
	bancos := &fakeScreen{title: "Bancos"}
	m := newTestModel(t, bancos)

	m, cmd := press(t, m, runes("1"))
	if m.active != 1 || cmd == nil {
		t.Fatalf("active=%d cmd=%v, want screen 1 with load", m.active, cmd != nil)
	}
	if bancos.loads != 1 {
		t.Fatalf("loads = %d, want 1", bancos.loads)
	}

	m, _ = press(t, m, runes("0"))
	if m.active != 0 {
		t.Fatalf("active = %d, want dashboard", m.active)
	}
	m, cmd = press(t, m, runes("1"))
	if cmd != nil || bancos.loads != 1 {
		t.Fatalf("revisit reloaded: loads=%d", bancos.loads)
	}

	// Digits beyond the registered screens are ignored.
	m, _ = press(t, m, runes("5"))
	if m.active != 1 {
		t.Fatalf("active = %d after unknown digit", m.active)
	}
}

func TestModel_KeysReachScreenAndModal(t *testing.T) {
	confirmed := false
	modal := newConfirmModal("Delete", "Delete?", func() tea.Msg { confirmed = true; return nil })
	scr := &fakeScreen{title: "Bancos", modal: modal}
	m := newTestModel(t, scr)
	m, _ = press(t, m, runes("1"))

	m, _ = press(t, m, runes("x"))
	if len(scr.keys) != 1 || scr.keys[0] != "x" {
		t.Fatalf("screen keys = %v", scr.keys)
	}
	if m.modal == nil {
		t.Fatalf("modal not opened")
	}
	if !strings.Contains(m.View(), "Delete?") {
		t.Fatalf("modal not rendered")
	}

	// While the modal is open keys go to it, not the screen.
	scr.modal = nil
	m, cmd := press(t, m, runes("y"))
	if m.modal != nil {
		t.Fatalf("modal still open after y")
	}
	if cmd == nil {
		t.Fatalf("y returned no command")
	}
	cmd()
	if !confirmed {
		t.Fatalf("confirm action not run")
	}
	if len(scr.keys) != 1 {
		t.Fatalf("modal keys leaked to screen: %v", scr.keys)
	}
}

func TestModel_CapturingScreenGetsGlobalKeys(t *testing.T) {
	scr := &fakeScreen{title: "Bancos"}
	m := newTestModel(t, scr)
	m, _ = press(t, m, runes("1"))
	scr.capture = true

	m, cmd := press(t, m, runes("q"))
	if cmd != nil {
		t.Fatalf("q quit while search was active")
	}
	if len(scr.keys) != 1 || scr.keys[0] != "q" {
		t.Fatalf("screen keys = %v", scr.keys)
	}
	if m.active != 1 {
		t.Fatalf("active changed to %d", m.active)
	}
}

func TestModel_DismissRemovesLatest(t *testing.T) {
	m := newTestModel(t)
	notes := m.services.Notifications
	notes.Error("First", "one", state.Persistent(true))
	notes.Error("Second", "two", state.Persistent(true))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	list := notes.List()
	if len(list) != 1 || list[0].Title != "First" {
		t.Fatalf("notifications = %+v", list)
	}
	if !strings.Contains(m.View(), "First") {
		t.Fatalf("remaining toast not rendered")
	}
}

func TestModel_ThemeAndSidebarArePersisted(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, runes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	m, _ = press(t, m, runes("b"))
	if !m.snapshot.SidebarCollapsed {
		t.Fatalf("sidebar not collapsed")
	}

	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Kanagawa" || !p.SidebarCollapsed {
		t.Fatalf("saved prefs = %+v", p)
	}
	if got := m.services.Store.Snapshot().Theme; got != "Kanagawa" {
		t.Fatalf("store theme = %q", got)
	}
}

func TestModel_PanicShowsFallbackAndRecovers(t *testing.T) {
	scr := &fakeScreen{title: "Bancos"}
	m := newTestModel(t, scr)
	m, _ = press(t, m, runes("1"))
	m.services.Notifications.Info("Note", "pending", state.Persistent(true))

	next, _ := m.guard(runes("z"), func(tea.Msg) (Model, tea.Cmd) {
		panic("render exploded")
	})
	m = next.(Model)
	if !m.boundary.crashed() {
		t.Fatalf("panic not captured")
	}
	view := m.View()
	if !strings.Contains(view, "Something went wrong") || !strings.Contains(view, "render exploded") {
		t.Fatalf("fallback view missing:\n%s", view)
	}

	// Keys other than the boundary actions are swallowed.
	m, _ = press(t, m, runes("2"))
	if !m.boundary.crashed() || m.active != 1 {
		t.Fatalf("non-boundary key escaped the fallback")
	}

	m, cmd := press(t, m, runes("R"))
	if m.boundary.crashed() {
		t.Fatalf("reload did not clear the boundary")
	}
	if scr.resets != 1 || cmd == nil {
		t.Fatalf("reload: resets=%d cmd=%v", scr.resets, cmd != nil)
	}
	if m.services.Notifications.Len() != 0 {
		t.Fatalf("reload kept notifications")
	}
}

func TestModel_HomeFromFallback(t *testing.T) {
	m := newTestModel(t, &fakeScreen{title: "Bancos"})
	m, _ = press(t, m, runes("1"))
	m.boundary.capture("boom", nil, zerolog.Nop())

	m, _ = press(t, m, runes("h"))
	if m.boundary.crashed() || m.active != 0 {
		t.Fatalf("home: crashed=%v active=%d", m.boundary.crashed(), m.active)
	}
}

func TestModel_ViewPanicIsContained(t *testing.T) {
	m := newTestModel(t)
	m.screens = []screen{panicScreen{&fakeScreen{title: "Bancos"}}}
	m.active = 1

	if view := m.View(); !strings.Contains(view, "Something went wrong") {
		t.Fatalf("view panic not contained:\n%s", view)
	}
	if !m.boundary.crashed() {
		t.Fatalf("boundary not marked")
	}
}

type panicScreen struct{ *fakeScreen }

func (panicScreen) View(Theme, int, int) string { panic("bad row") }

func TestModel_RendersChrome(t *testing.T) {
	m := newTestModel(t, &fakeScreen{title: "Bancos"})
	view := m.View()
	for _, want := range []string{"locador", "Connecting to API", "Painel", "1 Bancos", "Nightfox"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_HelpOverlayListsBindings(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, runes("?"))
	view := m.View()
	for _, want := range []string{"Keyboard Shortcuts", "Delete record", "Dismiss notification", "Next field"} {
		if !strings.Contains(view, want) {
			t.Fatalf("help missing %q", want)
		}
	}
	m, _ = press(t, m, runes("j"))
	if m.showHelp {
		t.Fatalf("help still open after a key")
	}
}
