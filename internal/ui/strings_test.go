package ui

import (
	"testing"
	"time"
)

func TestHumanizeDuration(t *testing.T) {
	cases := []struct {
		name string
		in   int64 // seconds
		want string
	}{
		{"negative", -5, "now"},
		{"subsecond", 0, "now"},
		{"seconds", 12, "12s"},
		{"minutes", 61, "1m"},
		{"hours_only", 2*60*60 + 10, "2h"},
		{"hours_minutes", 2*60*60 + 3*60, "2h 3m"},
		{"days", 24 * 60 * 60, "1d"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := humanizeDuration(time.Duration(tc.in) * time.Second)
			if got != tc.want {
				t.Fatalf("humanizeDuration(%d) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abc", 0); got != "" {
		t.Fatalf("truncate limit 0 = %q, want empty", got)
	}
	if got := truncate("  abc  ", 5); got != "abc" {
		t.Fatalf("truncate trims = %q, want abc", got)
	}
	if got := truncate("lançamento", 5); got != "lanç…" {
		t.Fatalf("truncate runes = %q, want lanç…", got)
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("http://localhost:8000/api", 9)
	if got != "http…/api" {
		t.Fatalf("truncateMiddle = %q, want http…/api", got)
	}
}

func TestFitCell(t *testing.T) {
	if got := fitCell("12", 5, true); got != "   12" {
		t.Fatalf("fitCell right = %q", got)
	}
	if got := fitCell("ab", 4, false); got != "ab  " {
		t.Fatalf("fitCell left = %q", got)
	}
	if got := fitCell("abcdef", 4, false); got != "abc…" {
		t.Fatalf("fitCell truncate = %q", got)
	}
}

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{5.5, "R$ 5,50"},
		{1234.56, "R$ 1.234,56"},
		{1234567.899, "R$ 1.234.567,90"},
		{-42.1, "-R$ 42,10"},
	}
	for _, tc := range cases {
		if got := formatBRL(tc.in); got != tc.want {
			t.Fatalf("formatBRL(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate("2024-03-09"); got != "09/03/2024" {
		t.Fatalf("formatDate = %q", got)
	}
	if got := formatDate("2024-03-09T10:00:00Z"); got != "09/03/2024" {
		t.Fatalf("formatDate timestamp = %q", got)
	}
	if got := formatDate("ontem"); got != "ontem" {
		t.Fatalf("formatDate passthrough = %q", got)
	}
}

func TestFlagLabel(t *testing.T) {
	if got := flagLabel(" s "); got != "sim" {
		t.Fatalf("flagLabel(s) = %q", got)
	}
	if got := flagLabel("N"); got != "não" {
		t.Fatalf("flagLabel(N) = %q", got)
	}
}
