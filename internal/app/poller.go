package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/locador/internal/locador"
	"github.com/five82/locador/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second

	// sessionWarnBefore is how far ahead of token expiry the user is warned.
	sessionWarnBefore = 5 * time.Minute
)

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

// expiryFunc reports when the current session ends; zero when unknown.
type expiryFunc func() time.Time

// Poller refreshes the dashboard summary in the background.
type Poller struct {
	store    *state.Store
	notes    *state.Notifications
	fetcher  locador.SummaryFetcher
	expiry   expiryFunc
	interval time.Duration
	logger   zerolog.Logger

	warned time.Time // expiry already warned about
}

// NewPoller builds a poller. A non-positive interval uses the default.
func NewPoller(services *state.Services, fetcher locador.SummaryFetcher, expiry expiryFunc, interval time.Duration, logger zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		store:    services.Store,
		notes:    services.Notifications,
		fetcher:  fetcher,
		expiry:   expiry,
		interval: interval,
		logger:   logger.With().Str("component", "poller").Logger(),
	}
}

// Start launches the polling goroutine and returns immediately. Failed polls
// back off exponentially until the API answers again.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			p.refresh(ctx)
			failures := p.store.Snapshot().ConsecutiveFailures
			timer.Reset(calculateBackoff(failures, p.interval))
		}
	}()
}

func (p *Poller) refresh(ctx context.Context) {
	summary, err := p.fetcher.FetchSummary(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		p.store.Update(nil, err)
		p.logger.Warn().Err(err).
			Int("failures", p.store.Snapshot().ConsecutiveFailures).
			Msg("dashboard poll failed")
		return
	}
	p.store.Update(summary, nil)
	p.checkSession(time.Now())
}

// checkSession queues a single warning per token when it is about to expire.
func (p *Poller) checkSession(now time.Time) {
	if p.expiry == nil || p.notes == nil {
		return
	}
	exp := p.expiry()
	if exp.IsZero() || exp.Equal(p.warned) {
		return
	}
	left := exp.Sub(now)
	if left <= 0 || left > sessionWarnBefore {
		return
	}
	p.warned = exp
	p.notes.Warning("Session expiring",
		fmt.Sprintf("Your session ends in %s. Restart the console to sign in again.", left.Round(time.Second)))
	p.logger.Info().Time("expires", exp).Msg("session expiry warning queued")
}
