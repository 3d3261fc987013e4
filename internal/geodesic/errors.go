package geodesic

import "errors"

var (
	// ErrInvalidFrequency is returned when a subdivision frequency is outside [1, MaxFrequency].
	ErrInvalidFrequency = errors.New("geodesic: invalid frequency")

	// ErrUnknownVertex is returned when a vertex id does not belong to the geometry.
	ErrUnknownVertex = errors.New("geodesic: unknown vertex")
)
