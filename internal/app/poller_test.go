package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/locador/internal/locador"
	"github.com/five82/locador/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeFetcher struct {
	summary *locador.Summary
	err     error
	calls   int
}

func (f *fakeFetcher) FetchSummary(context.Context) (*locador.Summary, error) {
	f.calls++
	return f.summary, f.err
}

func TestPollerRefresh_RecordsSuccessAndFailure(t *testing.T) {
	services := state.NewServices(zerolog.Nop())
	defer services.Close()

	fetcher := &fakeFetcher{summary: &locador.Summary{Saldo: 42, Bancos: 3}}
	p := NewPoller(services, fetcher, nil, 0, zerolog.Nop())
	if p.interval != defaultPollInterval {
		t.Fatalf("interval = %v, want %v", p.interval, defaultPollInterval)
	}

	p.refresh(context.Background())
	snap := services.Store.Snapshot()
	if !snap.HasSummary || snap.Summary.Saldo != 42 {
		t.Fatalf("snapshot = %#v, want summary with Saldo=42", snap)
	}

	fetcher.err = errors.New("connection refused")
	p.refresh(context.Background())
	p.refresh(context.Background())
	snap = services.Store.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("failures = %d offline = %v, want 2 and offline", snap.ConsecutiveFailures, snap.IsOffline())
	}
	if snap.Summary.Bancos != 3 {
		t.Fatalf("summary lost after failure: %#v", snap.Summary)
	}
}

func TestPollerRefresh_IgnoresCancelledContext(t *testing.T) {
	services := state.NewServices(zerolog.Nop())
	defer services.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPoller(services, &fakeFetcher{err: context.Canceled}, nil, time.Second, zerolog.Nop())
	p.refresh(ctx)
	if got := services.Store.Snapshot().ConsecutiveFailures; got != 0 {
		t.Fatalf("failures = %d, want 0 after shutdown", got)
	}
}

func TestPollerCheckSession_WarnsOncePerToken(t *testing.T) {
	services := state.NewServices(zerolog.Nop())
	defer services.Close()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	exp := now.Add(3 * time.Minute)
	p := NewPoller(services, &fakeFetcher{}, func() time.Time { return exp }, time.Second, zerolog.Nop())

	p.checkSession(now)
	p.checkSession(now.Add(time.Minute))
	notes := services.Notifications.List()
	if len(notes) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notes))
	}
	if notes[0].Kind != state.KindWarning {
		t.Fatalf("kind = %q, want %q", notes[0].Kind, state.KindWarning)
	}

	// A fresh token far from expiry stays quiet.
	exp = now.Add(time.Hour)
	p.checkSession(now)
	if got := services.Notifications.Len(); got != 1 {
		t.Fatalf("notifications = %d, want 1", got)
	}
}
