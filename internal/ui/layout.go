package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutDetailWidth is the minimum width to show the detail pane beside
	// the table.
	LayoutDetailWidth = 120

	// LayoutExtraWideWidth is the threshold for extra-wide layouts.
	LayoutExtraWideWidth = 160
)

// Chrome sizes.
const (
	// SidebarWidth is the width of the navigation sidebar, borders included.
	SidebarWidth = 22

	// ChromeHeight covers the header and command bar.
	ChromeHeight = 2

	// MaxToasts is the number of notifications rendered at once.
	MaxToasts = 3

	// ModalWidth is the default width of form and confirm dialogs.
	ModalWidth = 64
)

// Diagnostics limits.
const (
	// LogTailLines is the number of console log lines loaded by the
	// diagnostics view.
	LogTailLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the clock tick used for relative timestamps.
	DefaultUIInterval = time.Second
)

// sessionWarnWindow highlights the session countdown once expiry is near.
const sessionWarnWindow = 5 * time.Minute
