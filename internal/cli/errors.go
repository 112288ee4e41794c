package cli

import "errors"

// Sentinel kinds for command errors.
var (
	ErrNoDataset     = errors.New("no dataset configured")
	ErrUnknownFormat = errors.New("unknown output format")
	ErrViolations    = errors.New("leaderboard invariants violated")
)
