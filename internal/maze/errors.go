package maze

import "errors"

var (
	// ErrInvalidBlockCount is returned when a block-wise count is even or not positive.
	ErrInvalidBlockCount = errors.New("maze: block-wise count must be odd and positive")

	// ErrNotConfigured is returned by Step when Configure has never succeeded.
	ErrNotConfigured = errors.New("maze: generator is not configured")
)
