package model

import (
	"errors"
	"fmt"
)

// Sentinel kinds for model errors.
var (
	ErrInvalid = errors.New("invalid record")
)

func wrapInvalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalid, msg)
}
