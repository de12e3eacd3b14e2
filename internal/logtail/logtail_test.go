package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "console.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}
	path := writeLog(t, content.String())

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: all},
		{name: "read all (negative)", maxLines: -1, expected: all},
		{name: "tail 5", maxLines: 5, expected: all[5:]},
		{name: "exactly all", maxLines: 10, expected: all},
		{name: "more than exists", maxLines: 20, expected: all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(path, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_SpansChunks(t *testing.T) {
	// Lines longer than a chunk force several backward reads.
	long := strings.Repeat("x", chunkSize/3)
	var content strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&content, "%02d %s\r\n", i, long)
	}
	content.WriteString("last without newline")
	path := writeLog(t, content.String())

	got, err := Read(path, 3)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := []string{"10 " + long, "11 " + long, "last without newline"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Read() returned %d lines, first %.8q", len(got), got)
	}
}

func TestRead_EmptyFile(t *testing.T) {
	got, err := Read(writeLog(t, ""), 10)
	if err != nil || len(got) != 0 {
		t.Fatalf("Read(empty) = %v, %v", got, err)
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestParse_ZerologLine(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf).With().Timestamp().Str("component", "resource").Logger()
	logger.Warn().Str("resource", "bancos").Int("status", 404).Err(fmt.Errorf("not found")).Msg("list failed")

	e := Parse(strings.TrimSpace(buf.String()))
	if !e.Parsed {
		t.Fatalf("Parse did not recognise JSON line: %q", buf.String())
	}
	if e.Level != zerolog.WarnLevel || e.Component != "resource" || e.Message != "list failed" || e.Error != "not found" {
		t.Fatalf("Parse = %+v", e)
	}
	if time.Since(e.Time) > time.Minute {
		t.Fatalf("Time = %v, want recent", e.Time)
	}
	want := []Field{{Key: "resource", Value: "bancos"}, {Key: "status", Value: "404"}}
	if !reflect.DeepEqual(e.Fields, want) {
		t.Fatalf("Fields = %v, want %v", e.Fields, want)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text passes through",
			input: "panic: runtime error",
			want:  "panic: runtime error",
		},
		{
			name:  "malformed json passes through",
			input: `{"level":"info"`,
			want:  `{"level":"info"`,
		},
		{
			name:  "no timestamp",
			input: `{"level":"error","component":"runner","key":"bancos.save","error":"boom","message":"operation failed"}`,
			want:  `ERR [runner] operation failed error="boom" key=bancos.save`,
		},
		{
			name:  "unknown level",
			input: `{"message":"hello"}`,
			want:  `??? hello`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(Parse(tt.input)); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}
