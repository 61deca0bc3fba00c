package repository

import "errors"

// Sentinel kinds for document store errors.
var (
	ErrLoad       = errors.New("load squad document")
	ErrSave       = errors.New("save squad document")
	ErrBackup     = errors.New("backup squad document")
	ErrNoDocument = errors.New("no squad document on disk")
)
