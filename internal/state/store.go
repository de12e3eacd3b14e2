package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/locador/internal/locador"
)

// Snapshot represents the latest dashboard data and shell flags available to
// the UI.
type Snapshot struct {
	Summary             locador.Summary
	HasSummary          bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures

	Theme            string
	SidebarCollapsed bool
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	changes  *Broadcaster
}

// NewStore returns a store that signals changes on b.
func NewStore(b *Broadcaster) *Store {
	return &Store{changes: b}
}

// Update replaces the dashboard summary. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(summary *locador.Summary, err error) {
	s.mu.Lock()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
	} else {
		if summary != nil {
			s.snapshot.Summary = *summary
			s.snapshot.HasSummary = true
		} else {
			s.snapshot.Summary = locador.Summary{}
			s.snapshot.HasSummary = false
		}
		s.snapshot.LastError = nil
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures = 0
	}
	s.mu.Unlock()
	s.changes.Notify()
}

// SetTheme records the active theme name.
func (s *Store) SetTheme(name string) {
	s.mu.Lock()
	s.snapshot.Theme = name
	s.mu.Unlock()
	s.changes.Notify()
}

// SetSidebarCollapsed sets the sidebar flag.
func (s *Store) SetSidebarCollapsed(v bool) {
	s.mu.Lock()
	s.snapshot.SidebarCollapsed = v
	s.mu.Unlock()
	s.changes.Notify()
}

// ToggleSidebar flips the sidebar flag and returns the new value.
func (s *Store) ToggleSidebar() bool {
	s.mu.Lock()
	s.snapshot.SidebarCollapsed = !s.snapshot.SidebarCollapsed
	v := s.snapshot.SidebarCollapsed
	s.mu.Unlock()
	s.changes.Notify()
	return v
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
