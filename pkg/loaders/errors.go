package loaders

import "errors"

var (
	// ErrMalformedOBJ is returned for OBJ data that cannot be parsed
	ErrMalformedOBJ = errors.New("loaders: malformed OBJ data")

	// ErrInvalidScene is returned for a scene description with missing or invalid fields
	ErrInvalidScene = errors.New("loaders: invalid scene description")

	// ErrUnknownReference is returned when a scene description names an undefined texture or material
	ErrUnknownReference = errors.New("loaders: unknown reference")
)
