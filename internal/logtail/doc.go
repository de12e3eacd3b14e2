// Package logtail reads the tail of the console's own log file and decodes
// its zerolog JSON lines for the diagnostics view.
//
// Read seeks backwards from the end of the file in fixed chunks, so only the
// requested tail is loaded however large the file grows. Parse turns a line
// into an Entry (level, component, message, remaining fields); lines that are
// not JSON pass through untouched so a hand-edited or truncated file still
// displays.
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//	if err != nil {
//		return err
//	}
//	for _, e := range logtail.ParseLines(lines) {
//		fmt.Println(logtail.Format(e))
//	}
package logtail
