package physics

import "errors"

var (
	// ErrInvalidBody indicates a body with non-positive mass or radius.
	ErrInvalidBody = errors.New("physics: mass and radius must be positive")

	// ErrTrailCapacity indicates a trail that cannot hold a single point.
	ErrTrailCapacity = errors.New("physics: trail capacity must be at least 1")
)
