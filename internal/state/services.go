package state

import "github.com/rs/zerolog"

// Services bundles the shared UI state owned by the application root.
type Services struct {
	Changes       *Broadcaster
	Loading       *Loading
	Notifications *Notifications
	Runner        *Runner
	Store         *Store
}

// NewServices wires a registry, queue, runner and store to one broadcaster.
func NewServices(logger zerolog.Logger, opts ...QueueOption) *Services {
	b := &Broadcaster{}
	loading := NewLoading(b)
	notes := NewNotifications(b, opts...)
	return &Services{
		Changes:       b,
		Loading:       loading,
		Notifications: notes,
		Runner:        NewRunner(loading, notes, logger),
		Store:         NewStore(b),
	}
}

// Close releases timers held by the notification queue.
func (s *Services) Close() {
	s.Notifications.Close()
}
