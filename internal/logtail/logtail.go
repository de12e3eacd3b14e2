package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const chunkSize = 32 * 1024

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns the whole file. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	if maxLines <= 0 {
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return splitLines(data), nil
	}

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}

	// Walk backwards a chunk at a time until the buffer holds more than
	// maxLines line breaks or the start of the file is reached.
	var buf []byte
	offset := info.Size()
	for offset > 0 && bytes.Count(buf, []byte{'\n'}) <= maxLines {
		n := min(int64(chunkSize), offset)
		offset -= n
		chunk := make([]byte, n)
		if _, err := file.ReadAt(chunk, offset); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read log: %w", err)
		}
		buf = append(chunk, buf...)
	}

	lines := splitLines(buf)
	if offset > 0 && len(lines) > 0 {
		lines = lines[1:] // first line is partial
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines, nil
}

func splitLines(data []byte) []string {
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
