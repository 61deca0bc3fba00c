package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrInvalidWeights = errors.New("invalid position weights")
)
