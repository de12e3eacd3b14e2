package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, command bar, sidebar
	SurfaceAlt string // Detail pane, toasts, inputs
	FocusBg    string // Focused table

	SelectionBg   string
	SelectionText string

	Border      string
	BorderMuted string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Badge colors keyed by record state (ativo, pendente, receita, ...)
	StatusColors map[string]string
}

// palette is the raw color set a theme is derived from.
type palette struct {
	bg0, bg1, bg2, bg3 string // darkest to lightest background
	sel, selText       string
	border             string
	fg, muted, faint   string
	blue, green        string
	yellow, red        string
	cyan, orange       string
}

func (p palette) theme(name string) Theme {
	return Theme{
		Name:          name,
		Background:    p.bg0,
		Surface:       p.bg1,
		SurfaceAlt:    p.bg2,
		FocusBg:       p.bg3,
		SelectionBg:   p.sel,
		SelectionText: p.selText,
		Border:        p.border,
		BorderMuted:   p.bg2,
		BorderFocus:   p.blue,
		Text:          p.fg,
		Muted:         p.muted,
		Faint:         p.faint,
		Accent:        p.blue,
		Success:       p.green,
		Warning:       p.yellow,
		Danger:        p.red,
		Info:          p.cyan,
		StatusColors: map[string]string{
			"ativo":      p.green,
			"inativo":    p.faint,
			"receita":    p.green,
			"despesa":    p.red,
			"confirmado": p.blue,
			"pendente":   p.yellow,
			"vencido":    p.orange,
			"loading":    p.cyan,
			"failed":     p.red,
		},
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style
	SurfaceAlt lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	statusColors map[string]string
	background   string
	muted        string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	panel := func(bg string) lipgloss.Style {
		return fg(t.Text).Background(lipgloss.Color(bg))
	}
	return Styles{
		Background: lipgloss.NewStyle().Background(lipgloss.Color(t.Background)),
		Surface:    panel(t.Surface),
		SurfaceAlt: panel(t.SurfaceAlt),

		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header:   panel(t.Surface).Padding(0, 1),
		Logo:     fg(t.Warning).Bold(true),
		Selected: fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)),

		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// StatusStyle returns a badge style for a record state such as "pendente".
// Unknown states use the muted color.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color, ok := s.statusColors[strings.ToLower(strings.TrimSpace(status))]
	if !ok {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy where every style paints bgColor, so text
// drawn on a panel does not fall back to the terminal background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Background, &out.Surface, &out.SurfaceAlt,
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo, &out.Selected,
	} {
		*st = st.Background(bg)
	}
	return out
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

var themes = map[string]Theme{
	// https://github.com/EdenEast/nightfox.nvim
	"Nightfox": palette{
		bg0: "#131a24", bg1: "#192330", bg2: "#212e3f", bg3: "#29394f",
		sel: "#2b3b51", selText: "#cdcecf", border: "#39506d",
		fg: "#cdcecf", muted: "#738091", faint: "#71839b",
		blue: "#719cd6", green: "#81b29a", yellow: "#dbc074",
		red: "#c94f6d", cyan: "#63cdcf", orange: "#f4a261",
	}.theme("Nightfox"),

	// https://github.com/rebelot/kanagawa.nvim
	"Kanagawa": palette{
		bg0: "#16161D", bg1: "#1F1F28", bg2: "#2A2A37", bg3: "#2A2A37",
		sel: "#2D4F67", selText: "#DCD7BA", border: "#54546D",
		fg: "#DCD7BA", muted: "#C8C093", faint: "#727169",
		blue: "#7E9CD8", green: "#98BB6C", yellow: "#E6C384",
		red: "#E46876", cyan: "#7FB4CA", orange: "#FF9E3B",
	}.theme("Kanagawa"),

	// Tailwind slate/sky
	"Slate": palette{
		bg0: "#020617", bg1: "#0f172a", bg2: "#1e293b", bg3: "#283548",
		sel: "#0284c7", selText: "#f8fafc", border: "#334155",
		fg: "#f1f5f9", muted: "#94a3b8", faint: "#64748b",
		blue: "#38bdf8", green: "#22c55e", yellow: "#f59e0b",
		red: "#ef4444", cyan: "#06b6d4", orange: "#f97316",
	}.theme("Slate"),
}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}
