package repository

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrDatasetNotLoaded  = errors.New("dataset not loaded")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrDecode            = errors.New("decode dataset failed")
	ErrNoPath            = errors.New("dataset path not configured")
)
