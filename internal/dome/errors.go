package dome

import "errors"

var (
	// ErrInvalidSpec is returned when a Spec field is outside its allowed range.
	ErrInvalidSpec = errors.New("dome: invalid specification")

	// ErrLayerOutOfRange is returned when a layer or ring index exceeds the geometry.
	ErrLayerOutOfRange = errors.New("dome: layer out of range")

	// ErrGeometryMismatch is returned when a built geometry disagrees with
	// its Spec or with the closed-form face count.
	ErrGeometryMismatch = errors.New("dome: geometry does not match specification")
)
