package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrUnknownBoard = errors.New("metrics: unknown leaderboard kind")
)
