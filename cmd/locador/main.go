package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"github.com/five82/locador/internal/app"
)

type options struct {
	Config string `short:"c" long:"config" description:"config file path (default ~/.config/locador/config.toml)"`
	Prefs  string `long:"prefs" description:"preferences file path (default ~/.config/locador/prefs.toml)"`
	Poll   int    `short:"p" long:"poll" description:"dashboard refresh interval in seconds"`
	Dev    bool   `long:"dev" description:"human-readable logs on stderr (with --check)"`
	Check  bool   `long:"check" description:"sign in, print the dashboard summary and exit"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts := &options{}
	if _, err := flags.ParseArgs(opts, args); err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			return 0
		}
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	appOpts := app.Options{
		ConfigPath: opts.Config,
		PrefsPath:  opts.Prefs,
		Dev:        opts.Dev,
	}
	if opts.Poll > 0 {
		appOpts.PollEvery = opts.Poll
	}

	var err error
	if opts.Check {
		err = app.Check(ctx, appOpts, os.Stdout)
	} else {
		err = app.Run(ctx, appOpts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "locador: %v\n", err)
		return 1
	}
	return 0
}
