package config

import "errors"

// Sentinel kinds returned by Load, LoadFile and Validate.
var (
	ErrInvalidConfig = errors.New("config: invalid value")
	ErrLoadConfig    = errors.New("config: load failed")
)
