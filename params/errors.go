package params

import "errors"

var (
	// ErrInvalidLayers indicates a crystal layer count below MinLayers.
	ErrInvalidLayers = errors.New("params: crystal layer count must be >= 2")

	// ErrInvalidPool indicates a non-positive pool size.
	ErrInvalidPool = errors.New("params: pool size must be positive")
)
