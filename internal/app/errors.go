package service

import "errors"

// Sentinel errors returned by Service.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotStarted     = errors.New("service not started")
	ErrNoBackupTarget = errors.New("store does not support backups")
)
