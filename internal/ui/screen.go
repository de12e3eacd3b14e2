package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/locador/internal/form"
	"github.com/five82/locador/internal/resource"
	"github.com/five82/locador/internal/state"
)

// env carries what screens need to dispatch work.
type env struct {
	ctx      context.Context
	services *state.Services
}

// hint is one entry of the command bar.
type hint struct{ key, desc string }

// screen is a resource page reachable from the sidebar.
type screen interface {
	Title() string
	Name() string
	Loaded() bool
	Load(e env) tea.Cmd
	Reset()
	Capturing() bool
	HandleKey(e env, msg tea.KeyMsg, keys keyMap) (tea.Cmd, Modal)
	Update(msg tea.Msg) tea.Cmd
	View(theme Theme, width, height int) string
	Hints() []hint
}

// column renders one table cell per record. A zero width flexes.
type column[R any] struct {
	title string
	width int
	right bool
	value func(R) string
	badge func(R) string // status key for coloring, optional
}

type detailRow struct{ label, value string }

// binding describes how one resource is listed, shown and edited.
type binding[R resource.Keyed[int], C, U, F any] struct {
	title string // sidebar and box title
	noun  string // singular, used in messages

	columns  []column[R]
	detail   func(R) []detailRow
	fields   []formField
	schema   form.Schema
	values   func(R) map[string]string
	defaults map[string]string
	create   func(map[string]string) (C, error)
	update   func(map[string]string) (U, error)

	search      func(F) string
	withSearch  func(F, string) F
	toggle      func(F) F // nil when the resource has no quick filter
	filterLabel func(F) string

	// Optional entry confirmation.
	confirm   func(ctx context.Context, id int, confirmar bool) (R, error)
	confirmed func(R) bool
}

// resourceScreen lists one resource slice with a detail pane.
type resourceScreen[R resource.Keyed[int], C, U, F any] struct {
	b         binding[R, C, U, F]
	slice     *resource.Slice[int, R, C, U, F]
	cursor    int
	search    textinput.Model
	searching bool
}

func newResourceScreen[R resource.Keyed[int], C, U, F any](b binding[R, C, U, F], slice *resource.Slice[int, R, C, U, F]) *resourceScreen[R, C, U, F] {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "search"
	ti.CharLimit = 80
	return &resourceScreen[R, C, U, F]{b: b, slice: slice, search: ti}
}

func (s *resourceScreen[R, C, U, F]) Title() string { return s.b.title }

func (s *resourceScreen[R, C, U, F]) Name() string { return s.slice.Name() }

func (s *resourceScreen[R, C, U, F]) Loaded() bool {
	return s.slice.Snapshot().Status != resource.StatusIdle
}

func (s *resourceScreen[R, C, U, F]) Capturing() bool { return s.searching }

func (s *resourceScreen[R, C, U, F]) Reset() {
	s.slice.Reset()
	s.cursor = 0
	s.searching = false
	s.search.Blur()
}

// Load fetches the current page. Stale responses are dropped silently.
func (s *resourceScreen[R, C, U, F]) Load(e env) tea.Cmd {
	slice := s.slice
	return func() tea.Msg {
		if _, err := slice.FetchList(e.ctx); err != nil && !errors.Is(err, resource.ErrStale) {
			return listFailedMsg{name: slice.Name(), err: err}
		}
		return nil
	}
}

func (s *resourceScreen[R, C, U, F]) Update(msg tea.Msg) tea.Cmd {
	if !s.searching {
		return nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	return cmd
}

func (s *resourceScreen[R, C, U, F]) HandleKey(e env, msg tea.KeyMsg, keys keyMap) (tea.Cmd, Modal) {
	snap := s.slice.Snapshot()
	n := len(snap.Items)
	s.cursor = clampCursor(s.cursor, n)

	if s.searching {
		switch msg.String() {
		case "enter":
			s.searching = false
			s.search.Blur()
			s.slice.SetFilter(s.b.withSearch(snap.Filter, strings.TrimSpace(s.search.Value())))
			s.cursor = 0
			return s.Load(e), nil
		case "esc":
			s.searching = false
			s.search.Blur()
			s.search.SetValue(s.b.search(snap.Filter))
			return nil, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return cmd, nil
	}

	item, ok := s.current(snap)
	switch {
	case key.Matches(msg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, keys.Down):
		if s.cursor < n-1 {
			s.cursor++
		}
	case key.Matches(msg, keys.Top):
		s.cursor = 0
	case key.Matches(msg, keys.Bottom):
		s.cursor = max(n-1, 0)
	case key.Matches(msg, keys.Search):
		s.searching = true
		s.search.SetValue(s.b.search(snap.Filter))
		s.search.CursorEnd()
		return s.search.Focus(), nil
	case key.Matches(msg, keys.ToggleActive):
		if s.b.toggle == nil {
			return nil, nil
		}
		s.slice.SetFilter(s.b.toggle(snap.Filter))
		s.cursor = 0
		return s.Load(e), nil
	case key.Matches(msg, keys.PrevPage):
		if snap.Page.Skip == 0 {
			return nil, nil
		}
		s.slice.PrevPage()
		s.cursor = 0
		return s.Load(e), nil
	case key.Matches(msg, keys.NextPage):
		if !snap.HasNextPage() {
			return nil, nil
		}
		s.slice.NextPage()
		s.cursor = 0
		return s.Load(e), nil
	case key.Matches(msg, keys.Refresh):
		return s.Load(e), nil
	case key.Matches(msg, keys.New):
		return textinput.Blink, s.formFor(e, nil)
	case key.Matches(msg, keys.Edit):
		if ok {
			return textinput.Blink, s.formFor(e, &item)
		}
	case key.Matches(msg, keys.Delete):
		if ok {
			id := item.Key()
			return nil, newConfirmModal(
				"Delete "+s.b.noun,
				fmt.Sprintf("Delete %s #%d? This cannot be undone.", s.b.noun, id),
				s.deleteCmd(e, id),
			)
		}
	case key.Matches(msg, keys.Detail):
		if ok {
			s.slice.Select(item.Key())
			return s.detailCmd(e, item.Key()), nil
		}
	case key.Matches(msg, keys.ConfirmEntry):
		if ok && s.b.confirm != nil {
			return s.confirmCmd(e, item.Key(), !s.b.confirmed(item)), nil
		}
	}
	return nil, nil
}

func (s *resourceScreen[R, C, U, F]) Hints() []hint {
	if s.searching {
		return []hint{{"enter", "Apply"}, {"esc", "Cancel"}}
	}
	hints := []hint{
		{"j/k", "Navigate"},
		{"enter", "Detail"},
		{"n", "New"},
		{"e", "Edit"},
		{"x", "Delete"},
		{"/", "Search"},
	}
	if s.b.toggle != nil {
		hints = append(hints, hint{"a", "Filter"})
	}
	if s.b.confirm != nil {
		hints = append(hints, hint{"c", "Confirm"})
	}
	return append(hints, hint{"[/]", "Page"}, hint{"r", "Refresh"})
}

func (s *resourceScreen[R, C, U, F]) current(snap resource.Snapshot[R, F]) (R, bool) {
	var zero R
	if s.cursor < 0 || s.cursor >= len(snap.Items) {
		return zero, false
	}
	return snap.Items[s.cursor], true
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// Commands

func (s *resourceScreen[R, C, U, F]) detailCmd(e env, id int) tea.Cmd {
	slice := s.slice
	return func() tea.Msg {
		_, _ = state.Run(e.ctx, e.services.Runner, func(ctx context.Context) (R, error) {
			return slice.FetchOne(ctx, id)
		}, state.RunConfig[R]{
			LoadingKey: slice.Name() + ".detail",
			ErrorTitle: "Could not load " + s.b.noun,
		})
		return nil
	}
}

func (s *resourceScreen[R, C, U, F]) deleteCmd(e env, id int) tea.Cmd {
	slice := s.slice
	noun := s.b.noun
	return func() tea.Msg {
		_, _ = state.Run(e.ctx, e.services.Runner, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, slice.Delete(ctx, id)
		}, state.RunConfig[struct{}]{
			LoadingKey:     slice.Name() + ".delete",
			SuccessTitle:   "Deleted",
			SuccessMessage: fmt.Sprintf("%s #%d removed", noun, id),
			ErrorTitle:     "Delete failed",
		})
		return nil
	}
}

func (s *resourceScreen[R, C, U, F]) confirmCmd(e env, id int, confirmar bool) tea.Cmd {
	slice := s.slice
	confirm := s.b.confirm
	verb := ternary(confirmar, "confirmed", "reopened")
	return func() tea.Msg {
		_, _ = state.Run(e.ctx, e.services.Runner, func(ctx context.Context) (R, error) {
			return confirm(ctx, id, confirmar)
		}, state.RunConfig[R]{
			LoadingKey:     slice.Name() + ".confirm",
			SuccessMessage: fmt.Sprintf("%s #%d %s", s.b.noun, id, verb),
			ErrorTitle:     "Confirmation failed",
		})
		return nil
	}
}

// formFor opens the create form, or the edit form when item is set.
func (s *resourceScreen[R, C, U, F]) formFor(e env, item *R) Modal {
	initial := s.b.defaults
	title := "New " + s.b.noun
	editing := item != nil
	var id int
	if editing {
		id = (*item).Key()
		initial = s.b.values(*item)
		title = fmt.Sprintf("Edit %s #%d", s.b.noun, id)
	}

	slice := s.slice
	b := s.b
	submit := func(st *form.State[string]) tea.Cmd {
		return func() tea.Msg {
			_, err := form.Submit(e.ctx, e.services.Runner, st, func(ctx context.Context, values map[string]string) (R, error) {
				var zero R
				if editing {
					payload, err := b.update(values)
					if err != nil {
						return zero, err
					}
					return slice.Update(ctx, id, payload)
				}
				payload, err := b.create(values)
				if err != nil {
					return zero, err
				}
				return slice.Create(ctx, payload)
			}, form.SubmitOptions[R]{
				LoadingKey:     slice.Name() + ".save",
				SuccessTitle:   "Saved",
				SuccessMessage: b.noun + ternary(editing, " updated", " created"),
				ErrorTitle:     "Save failed",
				ResetOnSuccess: !editing,
			})
			return formResultMsg{err: err}
		}
	}
	return newFormModal(title, b.fields, b.schema, initial, submit)
}

// Rendering

func (s *resourceScreen[R, C, U, F]) View(theme Theme, width, height int) string {
	snap := s.slice.Snapshot()
	s.cursor = clampCursor(s.cursor, len(snap.Items))

	tableWidth := width
	var detailWidth int
	if width >= LayoutDetailWidth {
		tableWidth = width * 60 / 100
		if width >= LayoutExtraWideWidth {
			tableWidth = width * 65 / 100
		}
		detailWidth = width - tableWidth
	}

	title := fmt.Sprintf("%s (%d)", s.b.title, snap.TotalCount)
	table := renderTitledBox(theme, title, s.renderTable(theme, snap, tableWidth-2, height-2), tableWidth, height, true)
	if detailWidth == 0 {
		return table
	}
	detail := renderTitledBox(theme, "Detail", s.renderDetail(theme, snap, detailWidth-4), detailWidth, height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, table, detail)
}

func (s *resourceScreen[R, C, U, F]) renderTable(theme Theme, snap resource.Snapshot[R, F], width, height int) string {
	paneBg := theme.FocusBg
	bg := NewBgStyle(paneBg)
	styles := theme.Styles()

	lines := make([]string, 0, height)

	// Filter bar
	if s.searching {
		lines = append(lines, s.search.View())
	} else {
		lines = append(lines, s.filterLine(bg, styles, snap))
	}

	widths := columnWidths(s.b.columns, width)
	headers := make([]string, len(s.b.columns))
	for i, c := range s.b.columns {
		headers[i] = bg.Render(fitCell(c.title, widths[i], c.right), styles.MutedText.Bold(true))
	}
	lines = append(lines, strings.Join(headers, bg.Space()))

	bodyHeight := max(height-3, 1)
	switch {
	case len(snap.Items) == 0 && snap.Loading:
		lines = append(lines, bg.Render("Loading…", styles.WarningText))
	case len(snap.Items) == 0 && snap.Status == resource.StatusReady:
		lines = append(lines, bg.Render("No records", styles.MutedText))
	case len(snap.Items) == 0:
		lines = append(lines, "")
	default:
		start := 0
		if s.cursor >= bodyHeight {
			start = s.cursor - bodyHeight + 1
		}
		end := min(start+bodyHeight, len(snap.Items))
		for i := start; i < end; i++ {
			lines = append(lines, s.renderRow(theme, snap.Items[i], widths, width, i == s.cursor))
		}
	}

	for len(lines) < height-1 {
		lines = append(lines, "")
	}
	lines = append(lines, s.footerLine(bg, styles, snap))
	return strings.Join(lines, "\n")
}

func (s *resourceScreen[R, C, U, F]) renderRow(theme Theme, item R, widths []int, width int, selected bool) string {
	rowBg := theme.FocusBg
	if selected {
		rowBg = theme.SelectionBg
	}
	bg := NewBgStyle(rowBg)
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Text))
	if selected {
		text = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.SelectionText))
	}

	cells := make([]string, len(s.b.columns))
	for i, c := range s.b.columns {
		style := text
		if c.badge != nil && !selected {
			if color, ok := theme.StatusColors[c.badge(item)]; ok {
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			}
		}
		cells[i] = bg.Render(fitCell(c.value(item), widths[i], c.right), style)
	}
	return bg.FillLine(strings.Join(cells, bg.Space()), width)
}

func (s *resourceScreen[R, C, U, F]) filterLine(bg BgStyle, styles Styles, snap resource.Snapshot[R, F]) string {
	parts := []string{}
	if q := s.b.search(snap.Filter); q != "" {
		parts = append(parts, bg.Render("/"+q, styles.AccentText))
	}
	if s.b.filterLabel != nil {
		if label := s.b.filterLabel(snap.Filter); label != "" {
			parts = append(parts, bg.Render(label, styles.InfoText))
		}
	}
	if len(parts) == 0 {
		return bg.Render("all records", styles.FaintText)
	}
	return bg.Join(parts, "  ")
}

func (s *resourceScreen[R, C, U, F]) footerLine(bg BgStyle, styles Styles, snap resource.Snapshot[R, F]) string {
	if snap.Err != "" {
		return bg.Render("! "+snap.Err, styles.DangerText)
	}
	page := 1
	if snap.Page.Limit > 0 {
		page = snap.Page.Skip/snap.Page.Limit + 1
	}
	parts := []string{
		bg.Render(fmt.Sprintf("page %d", page), styles.MutedText),
		bg.Render(fmt.Sprintf("%d shown", len(snap.Items)), styles.MutedText),
	}
	if snap.HasNextPage() {
		parts = append(parts, bg.Render("more ]", styles.FaintText))
	}
	if snap.Loading {
		parts = append(parts, bg.Render("loading…", styles.WarningText))
	}
	return bg.Join(parts, " · ")
}

func (s *resourceScreen[R, C, U, F]) renderDetail(theme Theme, snap resource.Snapshot[R, F], width int) string {
	styles := theme.Styles().WithBackground(theme.SurfaceAlt)
	bg := NewBgStyle(theme.SurfaceAlt)
	if snap.Selected == nil {
		return bg.Render("Press enter to load the highlighted record", styles.MutedText)
	}

	rows := s.b.detail(*snap.Selected)
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, len([]rune(r.label)))
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines,
			bg.Render(padRight(r.label, labelWidth), styles.MutedText)+bg.Spaces(2)+
				bg.Render(truncate(r.value, max(width-labelWidth-2, 4)), styles.Text))
	}
	return strings.Join(lines, "\n")
}

// columnWidths gives fixed columns their width and splits the rest between
// flexible ones.
func columnWidths[R any](cols []column[R], total int) []int {
	widths := make([]int, len(cols))
	used := max(len(cols)-1, 0) // separators
	flex := 0
	for i, c := range cols {
		if c.width > 0 {
			widths[i] = c.width
			used += c.width
		} else {
			flex++
		}
	}
	if flex == 0 {
		return widths
	}
	remaining := max(total-used, flex*4)
	each := remaining / flex
	extra := remaining - each*flex
	for i, c := range cols {
		if c.width == 0 {
			widths[i] = each
			if extra > 0 {
				widths[i]++
				extra--
			}
		}
	}
	return widths
}
