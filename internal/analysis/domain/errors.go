package analysis

import "errors"

var (
	// ErrInsufficientData indicates fewer than two readings (or a zero-day
	// span) for a type, so no projection can be made.
	ErrInsufficientData = errors.New("analysis: not enough data for projection")
)
