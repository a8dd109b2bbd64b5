package tariff

import "errors"

var (
	// ErrNegativeRate indicates a plan field below zero.
	ErrNegativeRate = errors.New("tariff: negative rate")
)
