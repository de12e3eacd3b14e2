package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Kanagawa", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() returned %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for in, want := range cases {
		if got := NextTheme(in); got != want {
			t.Fatalf("NextTheme(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q", got)
	}
	if got := GetTheme("").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(empty).Name = %q, want Nightfox", got)
	}
}

func TestThemesColorEveryRecordState(t *testing.T) {
	states := []string{"ativo", "inativo", "receita", "despesa", "confirmado", "pendente", "vencido"}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, s := range states {
			if th.StatusColors[s] == "" {
				t.Fatalf("theme %s has no color for %q", name, s)
			}
		}
	}
}

func TestStatusStyle_NormalizesKey(t *testing.T) {
	th := GetTheme("Nightfox")
	styles := th.Styles()
	got := styles.StatusStyle("  PENDENTE ").GetBackground()
	want := styles.StatusStyle("pendente").GetBackground()
	if got != want {
		t.Fatalf("StatusStyle background = %v, want %v", got, want)
	}
	// Unknown states fall back to the muted color, also after WithBackground.
	fallback := styles.WithBackground(th.Surface).StatusStyle("???").GetBackground()
	if fallback != styles.StatusStyle("other").GetBackground() {
		t.Fatalf("fallback background = %v", fallback)
	}
}
