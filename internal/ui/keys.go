package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit          key.Binding
	Help          key.Binding
	CycleTheme    key.Binding
	ToggleSidebar key.Binding
	Diagnostics   key.Binding
	Dismiss       key.Binding
	Escape        key.Binding

	// Screen switching (0 = dashboard, 1..6 = resources)
	Screens [7]key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Resource actions
	Search       key.Binding
	ToggleActive key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	Refresh      key.Binding
	New          key.Binding
	Edit         key.Binding
	Delete       key.Binding
	Detail       key.Binding
	ConfirmEntry key.Binding

	// Forms and dialogs
	Submit    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Yes       key.Binding
	No        key.Binding

	// Error boundary
	Retry  key.Binding
	Reload key.Binding
	Home   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	k := keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Toggle sidebar"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Console log"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "Dismiss notification"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / back"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("ctrl+u", "Scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("ctrl+d", "Scroll down"),
		),

		// Resource actions
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		ToggleActive: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Toggle filter"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next page"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New record"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit record"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete record"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Load detail"),
		),
		ConfirmEntry: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Confirm entry"),
		),

		// Forms and dialogs
		Submit: key.NewBinding(
			key.WithKeys("enter", "ctrl+s"),
			key.WithHelp("enter", "Submit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "Yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "No"),
		),

		// Error boundary
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Retry"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reload"),
		),
		Home: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "Home"),
		),
	}
	for i := range k.Screens {
		digit := string(rune('0' + i))
		k.Screens[i] = key.NewBinding(
			key.WithKeys(digit),
			key.WithHelp(digit, "Switch screen"),
		)
	}
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Search, k.ToggleActive, k.PrevPage, k.NextPage, k.Refresh},
		{k.New, k.Edit, k.Delete, k.Detail, k.ConfirmEntry},
		{k.ToggleSidebar, k.Diagnostics, k.Dismiss},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
