package config

import "errors"

var (
	// ErrInvalidConfig wraps values rejected by Validate, such as an empty
	// addr or a weights table missing a listed position.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps failures reading a configuration source.
	ErrLoadConfig = errors.New("load config failed")
)
