package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// truncate fits value into limit terminal cells, ending in an ellipsis when
// anything was cut.
func truncate(value string, limit int) string {
	return ansi.Truncate(strings.TrimSpace(value), max(limit, 0), "…")
}

// truncateMiddle keeps both ends of value and drops cells from the middle.
// URLs and file paths stay recognizable that way.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	w := ansi.StringWidth(value)
	switch {
	case limit <= 0 || w <= limit:
		return value
	case limit <= 3:
		return ansi.Truncate(value, limit, "")
	}
	head := (limit - 1) / 2
	tail := limit - 1 - head
	return ansi.Truncate(value, head, "") + "…" + ansi.TruncateLeft(value, w-tail, "")
}

func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(width-ansi.StringWidth(s), 0))
}

func padLeft(s string, width int) string {
	return strings.Repeat(" ", max(width-ansi.StringWidth(s), 0)) + s
}

// fitCell truncates or pads s to exactly width cells.
func fitCell(s string, width int, right bool) string {
	s = truncate(s, width)
	if right {
		return padLeft(s, width)
	}
	return padRight(s, width)
}

// formatBRL renders an amount as Brazilian currency: R$ 1.234,56.
func formatBRL(v float64) string {
	neg := v < 0
	cents := int64(math.Round(math.Abs(v) * 100))
	whole := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := fmt.Sprintf("R$ %s,%02d", b.String(), cents%100)
	if neg {
		return "-" + out
	}
	return out
}

// formatDate turns an ISO date (or timestamp) into dd/mm/yyyy. Values that do
// not parse are returned as-is.
func formatDate(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 10 {
		if t, err := time.Parse("2006-01-02", value[:10]); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return value
}

// flagLabel renders an S/N flag.
func flagLabel(flag string) string {
	if strings.EqualFold(strings.TrimSpace(flag), "S") {
		return "sim"
	}
	return "não"
}

// humanizeDuration renders d with its two most significant units.
func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return strconv.Itoa(int(d/time.Second)) + "s"
	case d < time.Hour:
		return strconv.Itoa(int(d/time.Minute)) + "m"
	case d >= 24*time.Hour:
		return strconv.Itoa(int(d/(24*time.Hour))) + "d"
	}
	h, m := int(d/time.Hour), int(d%time.Hour/time.Minute)
	if m == 0 {
		return strconv.Itoa(h) + "h"
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
