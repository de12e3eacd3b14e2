// Package ui is the Locador operator console, built on Bubble Tea.
//
// The root Model owns layout and global keys. Everything it shows is read
// from state.Services (the store snapshot, the loading registry and the
// notification queue) and from resource.Set slices. The Model never holds its
// own copy of records: each resource screen renders Slice.Snapshot on every
// frame, so background fetches show up as soon as the broadcaster fires.
//
// # Layout
//
//   - header: connection state, busy spinner, pending entries, session expiry
//   - command bar: key hints for the active screen
//   - sidebar: dashboard plus one entry per resource (toggle with b)
//   - body: dashboard, a resource table with detail pane, or the log tail
//   - toasts: the newest notifications, one line each
//
// # Screens
//
// Resource screens are generic over the record type. A binding describes the
// columns, detail rows, form fields, validation schema and payload builders
// for one resource; resourceScreen turns that into list, search, paging,
// create, edit, delete and (for lançamentos) confirm actions. Mutations run
// through state.Run or form.Submit so loading flags and toasts are handled in
// one place.
//
// # Error boundary
//
// A panic in Update or View is recovered, logged with its stack, and replaced
// by a fallback screen offering retry, reload and home.
package ui
