package config

import "time"

// Layout constants.
const (
	// LockBoxWidth is the preferred width of the unlock dialog.
	LockBoxWidth = 52

	// MinLockBoxWidth is the narrowest the dialog is allowed to shrink.
	MinLockBoxWidth = 24

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "…"
)

// Timing.
const (
	// SuccessExitDelay is how long the success screen stays up.
	SuccessExitDelay = 2 * time.Second

	// PostBuffer bounds callbacks queued onto the event loop from other goroutines.
	PostBuffer = 16
)
