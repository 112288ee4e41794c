package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrInvalidWindow = errors.New("invalid time window")
	ErrInvalidK      = errors.New("invalid k factor")
	ErrUnknownSource = errors.New("unknown mark source")
	ErrUnknownBoard  = errors.New("unknown leaderboard kind")
)
