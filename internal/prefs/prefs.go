// Package prefs persists console preferences (theme, sidebar state, page
// size) in ~/.config/locador/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/locador/internal/config"
)

// Prefs holds user preferences that survive restarts.
type Prefs struct {
	Theme            string `toml:"theme"`
	SidebarCollapsed bool   `toml:"sidebar_collapsed"`
	PageSize         int    `toml:"page_size,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/locador/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads preferences from path. A missing, unreadable or corrupt file
// yields the defaults; only a path that cannot be resolved is an error, and
// the defaults are returned alongside it.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults(), err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return Defaults(), nil
	}

	p := Defaults()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults(), nil
	}
	return p.normalized(), nil
}

func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.PageSize = max(p.PageSize, 0)
	return p
}

// Save writes preferences to path, creating directories as needed. The file
// is replaced atomically so a crash never leaves half a file behind.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
