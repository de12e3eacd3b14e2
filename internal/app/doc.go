// Package app provides the orchestration layer for the Locador console.
//
// # Overview
//
// This package wires together configuration, logging, the API client, the
// shared UI state services, the resource slices and the UI. It is the
// composition root: every long-lived dependency is built here once and handed
// down explicitly.
//
// # Architecture
//
//  1. Load ~/.config/locador/config.toml (env overrides applied) and prefs
//  2. Open the JSON log file and install it as the global zerolog logger
//  3. Build the locador.Client and sign in when no token is configured
//  4. Create state.Services and seed theme/sidebar from prefs
//  5. Build one resource slice per backend collection
//  6. Launch the dashboard poller
//  7. Start the TUI and block until the user quits or the context ends
//
// # Components
//
//   - app.go: Run, bootstrap, logger setup, sign-in
//   - poller.go: background dashboard refresh with exponential backoff
//   - check.go: headless connectivity check (--check)
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()          Read config + env
//	       ├─────> newLogger()            JSON lines to the log file
//	       ├─────> locador.NewClient()    HTTP client + bearer transport
//	       ├─────> authenticate()         POST /auth/login
//	       ├─────> state.NewServices()    Loading, Notifications, Runner, Store
//	       ├─────> resource.NewSet()      Six resource slices
//	       ├─────> Poller.Start()         Dashboard updates
//	       └─────> ui.Run()               TUI (blocks)
//
// # Polling Behavior
//
// The poller fetches GET /dashboard/resumo at the configured interval. After
// a failure the delay doubles per consecutive failure, capped at 30 seconds;
// the store keeps the last good summary and counts failures so the UI can show
// an offline banner. When the session token is close to expiring a single
// warning notification is queued.
//
// # Error Handling
//
// Fatal (returned from Run): unreadable config, log file that cannot be
// opened, invalid API URL. A failed sign-in is not fatal: it is logged and
// shown as a persistent notification, and the UI starts anyway.
package app
