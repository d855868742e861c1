package engine

import "errors"

var (
	// ErrInvalidConfig is returned by New for non-positive board dimensions
	// or a negative food count.
	ErrInvalidConfig = errors.New("engine: invalid configuration")

	// ErrGameOver is returned by Step once the status has left Ongoing.
	ErrGameOver = errors.New("engine: step after game over")
)
