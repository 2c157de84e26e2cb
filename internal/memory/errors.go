package memory

import "errors"

var (
	// ErrInvalidConfiguration is returned when a deck cannot be built from
	// the requested card count and symbol pool.
	ErrInvalidConfiguration = errors.New("memory: invalid configuration")

	// ErrInvalidTileReference is returned when a selection points outside
	// the current deck. It indicates a bug in the caller, not a user mistake.
	ErrInvalidTileReference = errors.New("memory: invalid tile reference")
)
