package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderDashboard shows the financial summary and record counts.
func (m Model) renderDashboard(width, height int) string {
	if !m.snapshot.HasSummary {
		styles := m.theme.Styles()
		msg := "Waiting for the first dashboard refresh..."
		if m.snapshot.LastError != nil {
			msg = "Dashboard unavailable: " + m.snapshot.LastError.Error()
		}
		return renderTitledBox(m.theme, "Painel", styles.MutedText.Render(truncate(msg, width-4)), width, height, true)
	}

	s := m.snapshot.Summary
	money := []struct {
		label string
		value float64
		color string
	}{
		{"Receitas", s.TotalReceitas, m.theme.StatusColors["receita"]},
		{"Despesas", s.TotalDespesas, m.theme.StatusColors["despesa"]},
		{"Saldo", s.Saldo, ternary(s.Saldo < 0, m.theme.Danger, m.theme.Success)},
	}

	cards := len(money) + 1
	cardWidth := max(width/cards, 16)
	if width < LayoutCompactWidth {
		cardWidth = width
	}

	boxes := make([]string, 0, cards)
	for _, c := range money {
		value := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.color)).Render(formatBRL(c.value))
		boxes = append(boxes, renderTitledBox(m.theme, c.label, value, cardWidth, 3, false))
	}
	pendingColor := m.theme.Muted
	if s.LancamentosPendentes > 0 {
		pendingColor = m.theme.StatusColors["pendente"]
	}
	pending := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(pendingColor)).
		Render(fmt.Sprintf("%d", s.LancamentosPendentes))
	boxes = append(boxes, renderTitledBox(m.theme, "Pendentes", pending, width-cardWidth*len(money), 3, false))

	var top string
	if width < LayoutCompactWidth {
		top = strings.Join(boxes, "\n")
	} else {
		top = lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	}

	counts := m.renderCounts()
	remaining := max(height-lipgloss.Height(top), 3)
	return top + "\n" + renderTitledBox(m.theme, "Cadastros", counts, width, remaining, true)
}

func (m Model) renderCounts() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	s := m.snapshot.Summary

	rows := []struct {
		label string
		count int
	}{
		{"Bancos", s.Bancos},
		{"Clientes", s.Clientes},
		{"Contas", s.Contas},
		{"Empresas", s.Empresas},
		{"Favorecidos", s.Favorecidos},
	}
	lines := make([]string, 0, len(rows)+2)
	for i, r := range rows {
		lines = append(lines,
			bg.Render(fmt.Sprintf("%d", i+1), styles.AccentText)+bg.Space()+
				bg.Render(padRight(r.label, 14), styles.Text)+
				bg.Render(padLeft(fmt.Sprintf("%d", r.count), 8), styles.MutedText))
	}
	lines = append(lines, "")
	if at := s.ParsedAtualizadoEm(); !at.IsZero() {
		lines = append(lines, bg.Render("server time "+at.Local().Format("02/01/2006 15:04"), styles.FaintText))
	}
	return strings.Join(lines, "\n")
}
