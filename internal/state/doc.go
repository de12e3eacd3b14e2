// Package state provides the shared, thread-safe UI state for the Locador
// console.
//
// # Overview
//
// Everything the screens share lives here and is owned by one Services value
// built at the application root:
//
//   - Loading: named in-flight operations plus a global flag
//   - Notifications: the ordered toast queue with auto-dismiss timers
//   - Runner: wraps an operation with loading bookkeeping and notifications
//   - Store: the polled dashboard summary and shell flags (theme, sidebar)
//   - Broadcaster: change signals for the UI
//
// # Architecture
//
// Producers (poller goroutine, commands started by the UI) mutate state through
// methods; every mutation signals the Broadcaster. The UI subscribes once and
// turns each signal into a re-render, reading fresh snapshots:
//
//	Poller / tea.Cmd            UI (bubbletea)
//	┌──────────────────┐        ┌──────────────────┐
//	│ store.Update()   │        │ <-changes         │
//	│ loading.Start()  │──────→ │ store.Snapshot()  │
//	│ notes.Show()     │ signal │ notes.List()      │
//	└──────────────────┘        └──────────────────┘
//
// Signals coalesce: each subscriber channel has a buffer of one, so a slow
// reader sees at most one pending signal and never blocks a producer.
//
// # Update Semantics
//
// Store.Update keeps the previous summary when the poll fails and records the
// error instead:
//
//	store.Update(summary, nil)  → summary replaced, failures reset
//	store.Update(nil, err)      → summary kept, LastError = err, failures++
//
// Two consecutive failures mark the snapshot offline.
//
// # Runner
//
// Run returns (T, error). Failures are reduced to one display string (explicit
// message, then the server detail, then the error text, then a generic
// fallback) and queued as a persistent error notification; the caller still
// receives the error.
//
//	bank, err := state.Run(ctx, svc.Runner, func(ctx context.Context) (locador.Banco, error) {
//		return client.Bancos().Create(ctx, payload)
//	}, state.RunConfig[locador.Banco]{LoadingKey: "bancos.save", SuccessMessage: "Bank saved"})
//
// # Notification Timers
//
// Each timed notification owns exactly one timer. Remove and Clear stop the
// timers they make redundant; Close stops all of them and turns later
// callbacks into no-ops. Tests swap the clock source with WithScheduler.
//
// # Testing Considerations
//
// Store and Broadcaster are usable as zero values. Loading, Notifications and
// Runner need their constructors.
package state
