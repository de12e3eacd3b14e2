package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the console's connection and logging settings.
type Config struct {
	APIURL         string
	Username       string
	Password       string
	Token          string
	PageSize       int
	PollInterval   time.Duration
	RequestTimeout time.Duration
	LogFile        string
	LogLevel       string
}

const (
	defaultConfigPath     = "~/.config/locador/config.toml"
	defaultLogFile        = "~/.local/state/locador/console.log"
	defaultAPIURL         = "http://127.0.0.1:8000"
	defaultPageSize       = 50
	defaultPollInterval   = 5 * time.Second
	defaultRequestTimeout = 10 * time.Second
	defaultLogLevel       = "info"
	maxPageSize           = 500
)

// Environment overrides, applied after the file.
const (
	EnvAPIURL   = "LOCADOR_API_URL"
	EnvUsername = "LOCADOR_USERNAME"
	EnvPassword = "LOCADOR_PASSWORD"
	EnvToken    = "LOCADOR_TOKEN"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

func defaults() Config {
	return Config{
		APIURL:         defaultAPIURL,
		PageSize:       defaultPageSize,
		PollInterval:   defaultPollInterval,
		RequestTimeout: defaultRequestTimeout,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
	}
}

// Load locates and parses the console config, falling back to defaults when
// missing. Environment variables override file values.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL                string `toml:"api_url"`
		Username              string `toml:"username"`
		Password              string `toml:"password"`
		Token                 string `toml:"token"`
		PageSize              int    `toml:"page_size"`
		PollSeconds           int    `toml:"poll_seconds"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
		LogFile               string `toml:"log_file"`
		LogLevel              string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.Username = strings.TrimSpace(raw.Username)
	cfg.Password = raw.Password
	cfg.Token = strings.TrimSpace(raw.Token)
	if raw.PageSize > 0 {
		cfg.PageSize = min(raw.PageSize, maxPageSize)
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.APIURL = envOrDefault(EnvAPIURL, cfg.APIURL)
	cfg.Username = envOrDefault(EnvUsername, cfg.Username)
	cfg.Password = envOrDefault(EnvPassword, cfg.Password)
	cfg.Token = envOrDefault(EnvToken, cfg.Token)
}

func envOrDefault(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

// HasCredentials reports whether a login can be attempted.
func (c Config) HasCredentials() bool {
	return strings.TrimSpace(c.Username) != ""
}

// LogDir returns the directory holding the console log.
func (c Config) LogDir() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return filepath.Dir(mustExpand(defaultLogFile))
	}
	return filepath.Dir(c.LogFile)
}

// Redacted returns a printable summary with secrets masked.
func (c Config) Redacted() string {
	mask := func(s string) string {
		if s == "" {
			return "(unset)"
		}
		return "****"
	}
	return "api_url=" + c.APIURL +
		" username=" + c.Username +
		" password=" + mask(c.Password) +
		" token=" + mask(c.Token) +
		" page_size=" + strconv.Itoa(c.PageSize) +
		" poll=" + c.PollInterval.String()
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
