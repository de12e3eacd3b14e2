package ui

import (
	"testing"
	"time"

	"github.com/five82/locador/internal/locador"
)

func TestLancamentoToggle_Cycles(t *testing.T) {
	var f locador.LancamentoFilter
	f = lancamentoToggle(f)
	if f.Confirmado == nil || *f.Confirmado {
		t.Fatalf("first toggle = %v, want pendentes", f.Confirmado)
	}
	if got := lancamentoLabel(f); got != "pendentes" {
		t.Fatalf("label = %q, want pendentes", got)
	}
	f = lancamentoToggle(f)
	if f.Confirmado == nil || !*f.Confirmado {
		t.Fatalf("second toggle = %v, want confirmados", f.Confirmado)
	}
	f = lancamentoToggle(f)
	if f.Confirmado != nil {
		t.Fatalf("third toggle = %v, want nil", *f.Confirmado)
	}
	if got := lancamentoLabel(f); got != "" {
		t.Fatalf("label = %q, want empty", got)
	}
}

func TestActiveToggle(t *testing.T) {
	f := activeToggle(locador.ActiveFilter{Search: "itau"})
	if !f.AtivosApenas || f.Search != "itau" {
		t.Fatalf("activeToggle = %+v", f)
	}
	if got := activeLabel(f); got != "ativos apenas" {
		t.Fatalf("activeLabel = %q", got)
	}
	if activeToggle(f).AtivosApenas {
		t.Fatalf("second toggle should clear AtivosApenas")
	}
}

func TestEntryStatus(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.Local)
	cases := []struct {
		name string
		in   locador.Lancamento
		want string
	}{
		{"confirmed", locador.Lancamento{FlgConfirmado: "S", DataVencimento: "2020-01-01"}, "confirmado"},
		{"past due", locador.Lancamento{FlgConfirmado: "N", DataVencimento: "2024-05-01"}, "vencido"},
		{"due today", locador.Lancamento{FlgConfirmado: "N", DataVencimento: "2024-05-10"}, "pendente"},
		{"no due date", locador.Lancamento{FlgConfirmado: "N"}, "pendente"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := entryStatus(tc.in, now); got != tc.want {
				t.Fatalf("entryStatus = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatDocument(t *testing.T) {
	if got := formatDocument("52998224725"); got != "529.982.247-25" {
		t.Fatalf("CPF = %q", got)
	}
	if got := formatDocument("11222333000181"); got != "11.222.333/0001-81" {
		t.Fatalf("CNPJ = %q", got)
	}
	if got := formatDocument("123"); got != "123" {
		t.Fatalf("short = %q", got)
	}
}

func TestLancamentoCreate_BuildsPayload(t *testing.T) {
	got, err := lancamentoCreate(map[string]string{
		"Descricao":      " Aluguel ",
		"Tipo":           "d",
		"Valor":          "1.234,50",
		"DataLancamento": "05/02/2024",
		"DataVencimento": "",
		"CodEmpresa":     "1",
		"CodConta":       "2",
		"CodFavorecido":  "3",
	})
	if err != nil {
		t.Fatalf("lancamentoCreate: %v", err)
	}
	if got.Descricao != "Aluguel" || got.Tipo != locador.TipoDespesa {
		t.Fatalf("text fields = %+v", got)
	}
	if got.Valor != 1234.5 {
		t.Fatalf("Valor = %v, want 1234.5", got.Valor)
	}
	if got.DataLancamento != "2024-02-05" || got.DataVencimento != "" {
		t.Fatalf("dates = %q %q", got.DataLancamento, got.DataVencimento)
	}
	if got.CodEmpresa != 1 || got.CodConta != 2 || got.CodFavorecido != 3 {
		t.Fatalf("codes = %+v", got)
	}
}

func TestLancamentoCreate_RejectsBadNumber(t *testing.T) {
	_, err := lancamentoCreate(map[string]string{"CodEmpresa": "abc"})
	if err == nil {
		t.Fatalf("expected error for non-numeric CodEmpresa")
	}
}

func TestLancamentoUpdate_OmitsEmptyDueDate(t *testing.T) {
	got, err := lancamentoUpdate(map[string]string{
		"Descricao":      "Luz",
		"Tipo":           "D",
		"Valor":          "80",
		"DataLancamento": "2024-02-05",
		"CodEmpresa":     "1",
		"CodConta":       "1",
		"CodFavorecido":  "1",
	})
	if err != nil {
		t.Fatalf("lancamentoUpdate: %v", err)
	}
	if got.DataVencimento != nil {
		t.Fatalf("DataVencimento = %q, want nil", *got.DataVencimento)
	}
	if got.Valor == nil || *got.Valor != 80 {
		t.Fatalf("Valor = %v", got.Valor)
	}
}

func TestExtraRules(t *testing.T) {
	if email("") != "" || email("a@b.com") != "" {
		t.Fatalf("valid e-mails rejected")
	}
	if email("a@b") == "" || email("@b.com") == "" {
		t.Fatalf("invalid e-mails accepted")
	}
	if cnpjOnly("123") == "" || cnpjOnly("11.222.333/0001-81") != "" {
		t.Fatalf("cnpjOnly mismatch")
	}
	if positive("0") == "" || positive("-1") == "" || positive("10,5") != "" {
		t.Fatalf("positive mismatch")
	}
}

func TestLancamentoSchema_RejectsNonFiniteValor(t *testing.T) {
	schema := lancamentosBinding(nil).schema
	for _, v := range []string{"NaN", "Inf", "+Inf", "-Inf"} {
		if errs := schema.Validate(map[string]string{"Valor": v}); errs["Valor"] == "" {
			t.Fatalf("Valor %q passed validation", v)
		}
	}
	if errs := schema.Validate(map[string]string{"Valor": "150,00"}); errs["Valor"] != "" {
		t.Fatalf("Valor 150,00 rejected: %q", errs["Valor"])
	}
}

func TestFlagNormalizesToSN(t *testing.T) {
	if got := flag(map[string]string{"FlgAtivo": "s"}); got != locador.FlagYes {
		t.Fatalf("flag(s) = %q", got)
	}
	if got := flag(map[string]string{}); got != locador.FlagNo {
		t.Fatalf("flag(empty) = %q", got)
	}
}

func TestColumnWidths_SplitsFlexColumns(t *testing.T) {
	cols := []column[int]{{width: 6}, {}, {width: 5}, {}}
	widths := columnWidths(cols, 40)
	// 3 separators + 11 fixed leaves 26 for two flex columns.
	if widths[0] != 6 || widths[2] != 5 || widths[1] != 13 || widths[3] != 13 {
		t.Fatalf("widths = %v", widths)
	}
}

func TestClampCursor(t *testing.T) {
	if clampCursor(5, 3) != 2 || clampCursor(-1, 3) != 0 || clampCursor(2, 0) != 0 {
		t.Fatalf("clampCursor mismatch")
	}
}
