package state

import (
	"sort"
	"sync"
)

// Loading tracks named in-flight operations plus one global flag.
//
// Stop marks a key false but keeps the entry so callers can tell "finished"
// from "never started" via Known. Clear and ClearAll drop entries.
type Loading struct {
	mu      sync.Mutex
	keys    map[string]bool
	global  bool
	changes *Broadcaster
}

// NewLoading returns a registry that signals changes on b (which may be nil).
func NewLoading(b *Broadcaster) *Loading {
	return &Loading{keys: make(map[string]bool), changes: b}
}

func (l *Loading) set(key string, v bool) {
	l.mu.Lock()
	if l.keys == nil {
		l.keys = make(map[string]bool)
	}
	l.keys[key] = v
	l.mu.Unlock()
	l.changes.Notify()
}

// Start marks key as loading.
func (l *Loading) Start(key string) { l.set(key, true) }

// Stop marks key as not loading.
func (l *Loading) Stop(key string) { l.set(key, false) }

// IsLoading reports whether key is loading. Unknown keys are not.
func (l *Loading) IsLoading(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.keys[key]
}

// Known reports whether key has an entry, loading or not.
func (l *Loading) Known(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.keys[key]
	return ok
}

// StartGlobal sets the global flag.
func (l *Loading) StartGlobal() {
	l.mu.Lock()
	l.global = true
	l.mu.Unlock()
	l.changes.Notify()
}

// StopGlobal clears the global flag.
func (l *Loading) StopGlobal() {
	l.mu.Lock()
	l.global = false
	l.mu.Unlock()
	l.changes.Notify()
}

// GlobalLoading reports the global flag.
func (l *Loading) GlobalLoading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.global
}

// Clear removes key.
func (l *Loading) Clear(key string) {
	l.mu.Lock()
	delete(l.keys, key)
	l.mu.Unlock()
	l.changes.Notify()
}

// ClearAll removes every key. The global flag is left alone.
func (l *Loading) ClearAll() {
	l.mu.Lock()
	l.keys = make(map[string]bool)
	l.mu.Unlock()
	l.changes.Notify()
}

// Active returns the sorted keys currently loading.
func (l *Loading) Active() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for k, v := range l.keys {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Any reports whether the global flag or any key is loading.
func (l *Loading) Any() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.global {
		return true
	}
	for _, v := range l.keys {
		if v {
			return true
		}
	}
	return false
}
