package logtail

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Entry is one decoded JSON log line.
type Entry struct {
	Time      time.Time
	Level     zerolog.Level
	Component string
	Message   string
	Error     string
	Fields    []Field // remaining keys, sorted
	Raw       string
	Parsed    bool
}

// Field is an extra key/value pair from a log line.
type Field struct {
	Key   string
	Value string
}

// Parse decodes a zerolog JSON line. Lines that are not JSON objects come back
// with Parsed=false, Level=NoLevel and the text in Message.
func Parse(line string) Entry {
	e := Entry{Raw: line, Level: zerolog.NoLevel, Message: line}
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return e
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return e
	}
	e.Parsed = true
	e.Message = ""

	if v, ok := raw[zerolog.LevelFieldName].(string); ok {
		if lvl, err := zerolog.ParseLevel(v); err == nil {
			e.Level = lvl
		}
	}
	if v, ok := raw[zerolog.TimestampFieldName].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			e.Time = t
		}
	}
	e.Message, _ = raw[zerolog.MessageFieldName].(string)
	e.Component, _ = raw["component"].(string)
	if v, ok := raw[zerolog.ErrorFieldName]; ok {
		e.Error = stringify(v)
	}

	for k, v := range raw {
		switch k {
		case zerolog.LevelFieldName, zerolog.TimestampFieldName, zerolog.MessageFieldName, zerolog.ErrorFieldName, "component":
			continue
		}
		e.Fields = append(e.Fields, Field{Key: k, Value: stringify(v)})
	}
	sort.Slice(e.Fields, func(i, j int) bool { return e.Fields[i].Key < e.Fields[j].Key })
	return e
}

// Format renders e as a single plain-text line:
//
//	15:04:05 WRN [resource] list failed error="..." resource=bancos
func Format(e Entry) string {
	if !e.Parsed {
		return e.Raw
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	b.WriteString(levelTag(e.Level))
	if e.Component != "" {
		b.WriteString(" [")
		b.WriteString(e.Component)
		b.WriteByte(']')
	}
	if e.Message != "" {
		b.WriteByte(' ')
		b.WriteString(e.Message)
	}
	if e.Error != "" {
		fmt.Fprintf(&b, " error=%q", e.Error)
	}
	for _, f := range e.Fields {
		fmt.Fprintf(&b, " %s=%s", f.Key, f.Value)
	}
	return b.String()
}

// ParseLines decodes each line.
func ParseLines(lines []string) []Entry {
	out := make([]Entry, len(lines))
	for i, l := range lines {
		out[i] = Parse(l)
	}
	return out
}

func levelTag(l zerolog.Level) string {
	switch l {
	case zerolog.TraceLevel:
		return "TRC"
	case zerolog.DebugLevel:
		return "DBG"
	case zerolog.InfoLevel:
		return "INF"
	case zerolog.WarnLevel:
		return "WRN"
	case zerolog.ErrorLevel:
		return "ERR"
	case zerolog.FatalLevel:
		return "FTL"
	case zerolog.PanicLevel:
		return "PNC"
	default:
		return "???"
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return "null"
	default:
		buf, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(buf)
	}
}
