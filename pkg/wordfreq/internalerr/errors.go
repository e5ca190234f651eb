package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrSourceRead       = errors.New("source read failure")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)
