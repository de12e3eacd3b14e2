package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/five82/locador/internal/config"
	"github.com/five82/locador/internal/locador"
	"github.com/five82/locador/internal/prefs"
	"github.com/five82/locador/internal/resource"
	"github.com/five82/locador/internal/state"
	"github.com/five82/locador/internal/ui"
)

// Options configure the console.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/locador/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
	Dev        bool   // human-readable logs on stderr (headless commands only)
}

// runtime is everything built before the UI or a headless command starts.
type runtime struct {
	cfg      config.Config
	prefs    prefs.Prefs
	logger   zerolog.Logger
	closeLog func() error
	client   *locador.Client
}

// Run boots the console TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	rt, err := bootstrap(opts, nil)
	if err != nil {
		return err
	}
	defer func() { _ = rt.closeLog() }()

	services := state.NewServices(rt.logger)
	defer services.Close()

	services.Store.SetTheme(rt.prefs.Theme)
	services.Store.SetSidebarCollapsed(rt.prefs.SidebarCollapsed)

	if err := authenticate(ctx, rt); err != nil {
		// The UI still starts so the offline banner and diagnostics are reachable.
		rt.logger.Error().Err(err).Msg("sign-in failed")
		services.Notifications.Error("Sign-in failed", state.DisplayMessage(err, ""))
	}

	resources := resource.NewSet(rt.client,
		resource.WithBroadcaster(services.Changes),
		resource.WithLogger(rt.logger),
		resource.WithPageSize(pageSize(rt.cfg, rt.prefs)),
	)

	interval := rt.cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}
	NewPoller(services, rt.client, rt.client.SessionExpiry, interval, rt.logger).Start(ctx)

	rt.logger.Info().
		Str("api", rt.client.BaseURL()).
		Dur("poll", interval).
		Msg("console started")

	return ui.Run(ui.Options{
		Context:   ctx,
		Services:  services,
		Resources: resources,
		APIURL:    rt.client.BaseURL(),
		Session:   rt.client.SessionExpiry,
		LogFile:   rt.cfg.LogFile,
		Logger:    rt.logger,
		Prefs:     rt.prefs,
		PrefsPath: opts.PrefsPath,
	})
}

// bootstrap loads config and prefs, sets up logging and builds the client.
// A non-nil console receives human-readable logs instead of the log file.
func bootstrap(opts Options, console io.Writer) (*runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		// Defaults are still usable.
		fmt.Fprintf(os.Stderr, "locador: prefs: %v\n", err)
	}

	logger, closeLog, err := newLogger(cfg, console)
	if err != nil {
		return nil, err
	}
	log.Logger = logger

	client, err := locador.NewClient(locador.Config{
		BaseURL: cfg.APIURL,
		Token:   cfg.Token,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("init api client: %w", err)
	}
	logger.Debug().Str("config", cfg.Redacted()).Msg("configuration loaded")

	return &runtime{
		cfg:      cfg,
		prefs:    userPrefs,
		logger:   logger,
		closeLog: closeLog,
		client:   client,
	}, nil
}

func newLogger(cfg config.Config, console io.Writer) (zerolog.Logger, func() error, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if console != nil {
		w := zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen}
		logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
		return logger, func() error { return nil }, nil
	}

	if err := os.MkdirAll(cfg.LogDir(), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	logger := zerolog.New(file).Level(level).With().Timestamp().Logger()
	return logger, file.Close, nil
}

// authenticate signs in with the configured credentials unless a token is
// already installed.
func authenticate(ctx context.Context, rt *runtime) error {
	if rt.client.Token() != nil {
		return nil
	}
	if !rt.cfg.HasCredentials() {
		rt.logger.Warn().Msg("no token or credentials configured; requests will be rejected")
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, rt.cfg.RequestTimeout)
	defer cancel()
	_, err := rt.client.Login(ctx, locador.Credentials{
		Username: rt.cfg.Username,
		Password: rt.cfg.Password,
	})
	return err
}

func pageSize(cfg config.Config, p prefs.Prefs) int {
	if p.PageSize > 0 {
		return p.PageSize
	}
	return cfg.PageSize
}
