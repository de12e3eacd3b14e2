package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// DefaultDuration is how long a timed notification stays visible.
const DefaultDuration = 5 * time.Second

// Notification is a single toast entry.
type Notification struct {
	ID         string
	Kind       Kind
	Title      string
	Message    string
	Duration   time.Duration
	Persistent bool
	CreatedAt  time.Time
}

// Timer is the cancellable handle returned by a Scheduler.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// ShowOption adjusts a single notification.
type ShowOption func(*Notification)

// WithDuration overrides the auto-dismiss delay.
func WithDuration(d time.Duration) ShowOption {
	return func(n *Notification) { n.Duration = d }
}

// Persistent keeps the notification until it is removed explicitly.
func Persistent(v bool) ShowOption {
	return func(n *Notification) { n.Persistent = v }
}

// QueueOption configures a Notifications queue.
type QueueOption func(*Notifications)

// WithScheduler replaces the timer source.
func WithScheduler(s Scheduler) QueueOption {
	return func(q *Notifications) { q.sched = s }
}

// WithClock replaces the clock used for CreatedAt.
func WithClock(now func() time.Time) QueueOption {
	return func(q *Notifications) { q.now = now }
}

// Notifications is an ordered toast queue. Timed entries remove themselves
// after their duration unless the queue has been closed first.
type Notifications struct {
	mu      sync.Mutex
	items   []Notification
	timers  map[string]Timer
	closed  bool
	sched   Scheduler
	now     func() time.Time
	changes *Broadcaster
}

// NewNotifications returns an empty queue that signals changes on b.
func NewNotifications(b *Broadcaster, opts ...QueueOption) *Notifications {
	q := &Notifications{
		timers:  make(map[string]Timer),
		sched:   realScheduler{},
		now:     time.Now,
		changes: b,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Show appends a notification and returns its id. After Close it returns "".
func (q *Notifications) Show(kind Kind, title, message string, opts ...ShowOption) string {
	n := Notification{
		ID:       uuid.NewString(),
		Kind:     kind,
		Title:    title,
		Message:  message,
		Duration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(&n)
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ""
	}
	n.CreatedAt = q.now()
	q.items = append(q.items, n)
	if !n.Persistent {
		id := n.ID
		q.timers[id] = q.sched.AfterFunc(n.Duration, func() { q.expire(id) })
	}
	q.mu.Unlock()

	q.changes.Notify()
	return n.ID
}

// Success shows a timed success notification.
func (q *Notifications) Success(title, message string, opts ...ShowOption) string {
	return q.Show(KindSuccess, title, message, opts...)
}

// Error shows an error notification. Errors persist unless opts say otherwise.
func (q *Notifications) Error(title, message string, opts ...ShowOption) string {
	return q.Show(KindError, title, message, append([]ShowOption{Persistent(true)}, opts...)...)
}

// Warning shows a timed warning notification.
func (q *Notifications) Warning(title, message string, opts ...ShowOption) string {
	return q.Show(KindWarning, title, message, opts...)
}

// Info shows a timed informational notification.
func (q *Notifications) Info(title, message string, opts ...ShowOption) string {
	return q.Show(KindInfo, title, message, opts...)
}

func (q *Notifications) expire(id string) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	delete(q.timers, id)
	removed := q.removeLocked(id)
	q.mu.Unlock()
	if removed {
		q.changes.Notify()
	}
}

// Remove drops the notification with id. Unknown ids are ignored.
func (q *Notifications) Remove(id string) {
	q.mu.Lock()
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	removed := q.removeLocked(id)
	q.mu.Unlock()
	if removed {
		q.changes.Notify()
	}
}

func (q *Notifications) removeLocked(id string) bool {
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the queue and cancels pending timers.
func (q *Notifications) Clear() {
	q.mu.Lock()
	q.stopTimersLocked()
	q.items = nil
	q.mu.Unlock()
	q.changes.Notify()
}

// Close cancels pending timers and turns later Show calls and timer
// callbacks into no-ops. Entries already queued stay readable.
func (q *Notifications) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.stopTimersLocked()
}

func (q *Notifications) stopTimersLocked() {
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
}

// List returns the notifications in insertion order.
func (q *Notifications) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of queued notifications.
func (q *Notifications) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Pending returns how many auto-dismiss timers are scheduled.
func (q *Notifications) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}
