package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/locador/internal/state"
)

// ErrStale is returned by FetchList when a newer list request was issued
// while this one was in flight. Its result is discarded.
var ErrStale = errors.New("stale list response discarded")

// DefaultPageSize is the limit used when none is configured.
const DefaultPageSize = 50

// Keyed is implemented by records that expose their identifier.
type Keyed[K comparable] interface {
	Key() K
}

// Client is the REST surface one slice drives.
type Client[K comparable, R Keyed[K], C, U, F any] interface {
	List(ctx context.Context, filter F, skip, limit int) ([]R, error)
	Get(ctx context.Context, id K) (R, error)
	Create(ctx context.Context, payload C) (R, error)
	Update(ctx context.Context, id K, payload U) (R, error)
	Delete(ctx context.Context, id K) error
}

// Status is the lifecycle of a slice's data.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Page is the list window requested from the backend.
type Page struct {
	Skip  int
	Limit int
}

// Snapshot is a copy of a slice's state.
type Snapshot[R, F any] struct {
	Items      []R
	Selected   *R
	Status     Status
	Loading    bool
	Err        string
	TotalCount int
	Filter     F
	Page       Page
}

// HasNextPage reports whether the last page came back full.
func (s Snapshot[R, F]) HasNextPage() bool {
	return s.Page.Limit > 0 && len(s.Items) >= s.Page.Limit
}

// Option configures a Slice.
type Option func(*options)

type options struct {
	changes  *state.Broadcaster
	logger   zerolog.Logger
	pageSize int
}

// WithBroadcaster signals b on every state change.
func WithBroadcaster(b *state.Broadcaster) Option {
	return func(o *options) { o.changes = b }
}

// WithLogger sets the parent logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPageSize sets the initial page limit.
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// Slice holds list, selection and request state for one resource and runs
// its five CRUD operations against a Client.
type Slice[K comparable, R Keyed[K], C, U, F any] struct {
	name    string
	client  Client[K, R, C, U, F]
	changes *state.Broadcaster
	logger  zerolog.Logger

	mu       sync.Mutex
	items    []R
	selected *R
	status   Status
	err      string
	total    int
	filter   F
	page     Page
	inflight int
	seq      uint64
}

// New returns an idle slice named name (used in messages and logs).
func New[K comparable, R Keyed[K], C, U, F any](name string, client Client[K, R, C, U, F], opts ...Option) *Slice[K, R, C, U, F] {
	o := options{logger: zerolog.Nop(), pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &Slice[K, R, C, U, F]{
		name:    name,
		client:  client,
		changes: o.changes,
		logger:  o.logger.With().Str("component", "resource").Str("resource", name).Logger(),
		page:    Page{Limit: o.pageSize},
	}
}

// Name returns the resource name.
func (s *Slice[K, R, C, U, F]) Name() string { return s.name }

// Snapshot returns a copy of the current state.
func (s *Slice[K, R, C, U, F]) Snapshot() Snapshot[R, F] {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot[R, F]{
		Items:      cloneItems(s.items),
		Status:     s.status,
		Loading:    s.inflight > 0,
		Err:        s.err,
		TotalCount: s.total,
		Filter:     s.filter,
		Page:       s.page,
	}
	if snap.Loading {
		snap.Status = StatusLoading
	}
	if s.selected != nil {
		sel := *s.selected
		snap.Selected = &sel
	}
	return snap
}

// begin registers a dispatched operation. Callers hold mu.
func (s *Slice[K, R, C, U, F]) begin() {
	s.inflight++
	s.err = ""
}

// settle records the outcome of an operation. Callers hold mu.
func (s *Slice[K, R, C, U, F]) settle(err error, fallback string) {
	if s.inflight > 0 {
		s.inflight--
	}
	if err != nil {
		s.err = errorMessage(err, fallback)
		s.status = StatusFailed
		return
	}
	s.status = StatusReady
}

func errorMessage(err error, fallback string) string {
	if d := state.ErrorDetail(err); d != "" {
		return d
	}
	return fallback
}

// FetchList loads the current page with the current filter and replaces the
// items wholesale.
func (s *Slice[K, R, C, U, F]) FetchList(ctx context.Context) ([]R, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	filter, page := s.filter, s.page
	s.begin()
	s.mu.Unlock()
	s.changes.Notify()

	items, err := s.client.List(ctx, filter, page.Skip, page.Limit)

	s.mu.Lock()
	if seq != s.seq {
		if s.inflight > 0 {
			s.inflight--
		}
		s.mu.Unlock()
		s.changes.Notify()
		s.logger.Debug().Uint64("seq", seq).Msg("discarding stale list response")
		return nil, ErrStale
	}
	s.settle(err, fmt.Sprintf("%s: could not load list", s.name))
	if err == nil {
		s.items = cloneItems(items)
		s.total = len(items)
	}
	s.mu.Unlock()
	s.changes.Notify()

	if err != nil {
		s.logger.Warn().Err(err).Msg("list failed")
		return nil, err
	}
	s.logger.Debug().Int("count", len(items)).Int("skip", page.Skip).Msg("list loaded")
	return items, nil
}

// FetchOne loads a single record into the selection.
func (s *Slice[K, R, C, U, F]) FetchOne(ctx context.Context, id K) (R, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()
	s.changes.Notify()

	item, err := s.client.Get(ctx, id)

	s.mu.Lock()
	s.settle(err, fmt.Sprintf("%s: could not load %v", s.name, id))
	if err == nil {
		sel := item
		s.selected = &sel
	}
	s.mu.Unlock()
	s.changes.Notify()

	if err != nil {
		s.logger.Warn().Err(err).Interface("id", id).Msg("get failed")
	}
	return item, err
}

// Create posts payload and prepends the new record.
func (s *Slice[K, R, C, U, F]) Create(ctx context.Context, payload C) (R, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()
	s.changes.Notify()

	item, err := s.client.Create(ctx, payload)

	s.mu.Lock()
	s.settle(err, fmt.Sprintf("%s: could not create record", s.name))
	if err == nil {
		items := make([]R, 0, len(s.items)+1)
		items = append(items, item)
		s.items = append(items, s.items...)
		s.total++
	}
	s.mu.Unlock()
	s.changes.Notify()

	if err != nil {
		s.logger.Warn().Err(err).Msg("create failed")
	} else {
		s.logger.Info().Interface("id", item.Key()).Msg("created")
	}
	return item, err
}

// Update puts payload and replaces the matching record in the items and the
// selection.
func (s *Slice[K, R, C, U, F]) Update(ctx context.Context, id K, payload U) (R, error) {
	return s.Apply(ctx, id, "update", func(ctx context.Context) (R, error) {
		return s.client.Update(ctx, id, payload)
	})
}

// Apply runs a record-level action that returns the new version of the
// record with id, and replaces it the way Update does. verb names the action
// in messages.
func (s *Slice[K, R, C, U, F]) Apply(ctx context.Context, id K, verb string, op func(context.Context) (R, error)) (R, error) {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()
	s.changes.Notify()

	item, err := op(ctx)

	s.mu.Lock()
	s.settle(err, fmt.Sprintf("%s: could not %s %v", s.name, verb, id))
	if err == nil {
		items := cloneItems(s.items)
		for i := range items {
			if items[i].Key() == id {
				items[i] = item
			}
		}
		s.items = items
		if s.selected != nil && (*s.selected).Key() == id {
			sel := item
			s.selected = &sel
		}
	}
	s.mu.Unlock()
	s.changes.Notify()

	if err != nil {
		s.logger.Warn().Err(err).Interface("id", id).Str("action", verb).Msg("action failed")
	}
	return item, err
}

// Delete removes the record remotely, then locally.
func (s *Slice[K, R, C, U, F]) Delete(ctx context.Context, id K) error {
	s.mu.Lock()
	s.begin()
	s.mu.Unlock()
	s.changes.Notify()

	err := s.client.Delete(ctx, id)

	s.mu.Lock()
	s.settle(err, fmt.Sprintf("%s: could not delete %v", s.name, id))
	if err == nil {
		items := make([]R, 0, len(s.items))
		for _, it := range s.items {
			if it.Key() != id {
				items = append(items, it)
			}
		}
		if len(items) < len(s.items) && s.total > 0 {
			s.total--
		}
		s.items = items
		if s.selected != nil && (*s.selected).Key() == id {
			s.selected = nil
		}
	}
	s.mu.Unlock()
	s.changes.Notify()

	if err != nil {
		s.logger.Warn().Err(err).Interface("id", id).Msg("delete failed")
	} else {
		s.logger.Info().Interface("id", id).Msg("deleted")
	}
	return err
}

// SetFilter replaces the filter and rewinds to the first page.
func (s *Slice[K, R, C, U, F]) SetFilter(f F) {
	s.mutate(func() {
		s.filter = f
		s.page.Skip = 0
	})
}

// SetPage sets the list window. Non-positive limits keep the current one.
func (s *Slice[K, R, C, U, F]) SetPage(skip, limit int) {
	s.mutate(func() {
		if skip < 0 {
			skip = 0
		}
		s.page.Skip = skip
		if limit > 0 {
			s.page.Limit = limit
		}
	})
}

// NextPage advances by one page.
func (s *Slice[K, R, C, U, F]) NextPage() {
	s.mutate(func() { s.page.Skip += s.page.Limit })
}

// PrevPage moves back one page, stopping at the first.
func (s *Slice[K, R, C, U, F]) PrevPage() {
	s.mutate(func() {
		s.page.Skip -= s.page.Limit
		if s.page.Skip < 0 {
			s.page.Skip = 0
		}
	})
}

// Select sets the selection to the listed record with id. It reports false
// when no such record is listed.
func (s *Slice[K, R, C, U, F]) Select(id K) bool {
	found := false
	s.mutate(func() {
		for _, it := range s.items {
			if it.Key() == id {
				sel := it
				s.selected = &sel
				found = true
				return
			}
		}
	})
	return found
}

// ClearSelection drops the selection.
func (s *Slice[K, R, C, U, F]) ClearSelection() {
	s.mutate(func() { s.selected = nil })
}

// ClearError drops the last error message.
func (s *Slice[K, R, C, U, F]) ClearError() {
	s.mutate(func() { s.err = "" })
}

// Reset returns the slice to idle, keeping filter and page size. In-flight
// list requests become stale.
func (s *Slice[K, R, C, U, F]) Reset() {
	s.mutate(func() {
		s.seq++
		s.items = nil
		s.selected = nil
		s.err = ""
		s.total = 0
		s.status = StatusIdle
		s.page.Skip = 0
	})
}

func (s *Slice[K, R, C, U, F]) mutate(fn func()) {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
	s.changes.Notify()
}

func cloneItems[R any](items []R) []R {
	if len(items) == 0 {
		return nil
	}
	dup := make([]R, len(items))
	copy(dup, items)
	return dup
}
