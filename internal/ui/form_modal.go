package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/locador/internal/form"
	"github.com/five82/locador/internal/state"
)

// formField describes one text input of a record form.
type formField struct {
	name        string
	label       string
	placeholder string
	limit       int
}

// formResultMsg reports the outcome of a form submission.
type formResultMsg struct {
	err error
}

// formModal edits a record. Inputs are mirrored into a form.State so the
// submit path and validation see the same values the user typed.
type formModal struct {
	title      string
	fields     []formField
	inputs     []textinput.Model
	focus      int
	state      *form.State[string]
	schema     form.Schema
	submit     func(*form.State[string]) tea.Cmd
	submitting bool
	serverErr  string
}

func newFormModal(title string, fields []formField, schema form.Schema, initial map[string]string, submit func(*form.State[string]) tea.Cmd) *formModal {
	values := make(map[string]string, len(fields))
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		values[f.name] = initial[f.name]

		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.placeholder
		if f.limit > 0 {
			ti.CharLimit = f.limit
		}
		ti.SetValue(initial[f.name])
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}
	return &formModal{
		title:  title,
		fields: fields,
		inputs: inputs,
		state:  form.New(values),
		schema: schema,
		submit: submit,
	}
}

func (f *formModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case formResultMsg:
		f.submitting = false
		if msg.err == nil {
			return f, nil, true
		}
		f.serverErr = state.DisplayMessage(msg.err, "")
		return f, nil, false

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Escape):
			return f, nil, true
		case key.Matches(msg, keys.NextField):
			f.blur()
			f.setFocus(f.focus + 1)
			return f, textinput.Blink, false
		case key.Matches(msg, keys.PrevField):
			f.blur()
			f.setFocus(f.focus - 1)
			return f, textinput.Blink, false
		case key.Matches(msg, keys.Submit):
			return f, f.trySubmit(), false
		}
	}

	if len(f.inputs) == 0 {
		return f, nil, false
	}
	var cmd tea.Cmd
	before := f.inputs[f.focus].Value()
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if after := f.inputs[f.focus].Value(); after != before {
		f.state.Update(f.fields[f.focus].name, after)
	}
	return f, cmd, false
}

// blur touches the focused field and shows its validation message.
func (f *formModal) blur() {
	if len(f.fields) == 0 {
		return
	}
	name := f.fields[f.focus].name
	f.state.Touch(name)
	if msg := f.schema.Validate(f.state.Values())[name]; msg != "" {
		f.state.SetError(name, msg)
	}
}

func (f *formModal) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	i = (i + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// trySubmit validates every field and, when clean, returns the submit command.
func (f *formModal) trySubmit() tea.Cmd {
	if f.submitting {
		return nil
	}
	for _, field := range f.fields {
		f.state.Touch(field.name)
	}
	f.state.ApplyErrors(f.schema.Validate(f.state.Values()))
	if f.state.HasErrors() {
		for i, field := range f.fields {
			if f.state.Error(field.name) != "" {
				f.setFocus(i)
				break
			}
		}
		return nil
	}
	f.submitting = true
	f.serverErr = ""
	return f.submit(f.state)
}

func (f *formModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	modalWidth := min(ModalWidth, max(width-8, 30))
	labelWidth := 18
	inputWidth := max(modalWidth-labelWidth-6, 10)

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted)).Width(labelWidth)
	focusLabel := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent)).Bold(true).Width(labelWidth)
	fieldStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(theme.SurfaceAlt)).
		Foreground(lipgloss.Color(theme.Text)).
		Width(inputWidth)

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(f.title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", modalWidth-4)))
	b.WriteString("\n\n")

	for i, field := range f.fields {
		ls := labelStyle
		if i == f.focus {
			ls = focusLabel
		}
		input := f.inputs[i]
		input.Width = inputWidth - 1
		b.WriteString(ls.Render(field.label))
		b.WriteString(fieldStyle.Render(input.View()))
		b.WriteString("\n")
		if msg := f.state.Error(field.name); msg != "" && f.state.Touched(field.name) {
			b.WriteString(lipgloss.NewStyle().Width(labelWidth).Render(""))
			b.WriteString(styles.DangerText.Render(msg))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case f.submitting:
		b.WriteString(styles.WarningText.Render("Saving…"))
	case f.serverErr != "":
		b.WriteString(styles.DangerText.Render(truncate(f.serverErr, modalWidth-4)))
	default:
		b.WriteString(styles.AccentText.Render("enter") + styles.MutedText.Render(" save   ") +
			styles.AccentText.Render("tab") + styles.MutedText.Render(" next   ") +
			styles.AccentText.Render("esc") + styles.MutedText.Render(" cancel"))
	}

	return renderOverlay(theme, b.String(), modalWidth, width, height)
}
