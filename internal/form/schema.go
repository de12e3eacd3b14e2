package form

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Rule checks one field value and returns a message, or "" when it passes.
type Rule func(value string) string

// Schema maps field names to their rules. Rules run in order and the first
// failing one wins.
type Schema map[string][]Rule

// Validate returns one message per failing field.
func (s Schema) Validate(values map[string]string) map[string]string {
	errs := make(map[string]string)
	for field, rules := range s {
		v := values[field]
		for _, rule := range rules {
			if msg := rule(v); msg != "" {
				errs[field] = msg
				break
			}
		}
	}
	return errs
}

// Fields returns the schema's field names in sorted order.
func (s Schema) Fields() []string {
	out := make([]string, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Required rejects blank values.
func Required() Rule {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "required"
		}
		return ""
	}
}

// The rules below accept blank values; combine with Required when needed.

// MaxLen limits the length in characters.
func MaxLen(n int) Rule {
	return func(v string) string {
		if utf8.RuneCountInString(strings.TrimSpace(v)) > n {
			return fmt.Sprintf("at most %d characters", n)
		}
		return ""
	}
}

// Digits accepts only 0-9.
func Digits() Rule {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		for _, r := range v {
			if r < '0' || r > '9' {
				return "digits only"
			}
		}
		return ""
	}
}

// Decimal accepts numbers such as 1234.56 or 1.234,56.
func Decimal() Rule {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return ""
		}
		if _, err := ParseDecimal(v); err != nil {
			return "invalid number"
		}
		return ""
	}
}

// Date accepts YYYY-MM-DD or DD/MM/YYYY.
func Date() Rule {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return ""
		}
		if _, err := NormalizeDate(v); err != nil {
			return "invalid date (YYYY-MM-DD)"
		}
		return ""
	}
}

// OneOf restricts the value to the given options, compared case-insensitively.
func OneOf(options ...string) Rule {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		for _, o := range options {
			if strings.EqualFold(v, o) {
				return ""
			}
		}
		return "must be one of " + strings.Join(options, ", ")
	}
}

// Document accepts a CPF (11 digits) or CNPJ (14 digits) with valid check
// digits. Punctuation is ignored.
func Document() Rule {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return ""
		}
		d := OnlyDigits(v)
		switch len(d) {
		case 11:
			if !validCPF(d) {
				return "invalid CPF"
			}
		case 14:
			if !validCNPJ(d) {
				return "invalid CNPJ"
			}
		default:
			return "CPF needs 11 digits, CNPJ 14"
		}
		return ""
	}
}

// OnlyDigits strips everything but 0-9.
func OnlyDigits(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validCPF(d string) bool {
	if allSame(d) {
		return false
	}
	for n := 9; n <= 10; n++ {
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(d[i]-'0') * (n + 1 - i)
		}
		if checkDigit(sum) != int(d[n]-'0') {
			return false
		}
	}
	return true
}

var cnpjWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

func validCNPJ(d string) bool {
	if allSame(d) {
		return false
	}
	for n := 12; n <= 13; n++ {
		weights := cnpjWeights[13-n:]
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(d[i]-'0') * weights[i]
		}
		if checkDigit(sum) != int(d[n]-'0') {
			return false
		}
	}
	return true
}

func checkDigit(sum int) int {
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func allSame(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}

var errNotFinite = errors.New("not a finite number")

// ParseDecimal parses 1234.56, 1234,56 or 1.234,56. NaN and infinities are
// rejected since they cannot be sent as JSON.
func ParseDecimal(v string) (float64, error) {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "R$")
	v = strings.TrimSpace(v)
	if strings.Contains(v, ",") {
		v = strings.ReplaceAll(v, ".", "")
		v = strings.ReplaceAll(v, ",", ".")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse decimal %q: %w", v, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("parse decimal %q: %w", v, errNotFinite)
	}
	return f, nil
}

// NormalizeDate returns v as YYYY-MM-DD.
func NormalizeDate(v string) (string, error) {
	v = strings.TrimSpace(v)
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("parse date %q: unsupported format", v)
}
