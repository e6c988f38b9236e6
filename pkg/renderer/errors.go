package renderer

import "errors"

var (
	// ErrNoScene is returned when rendering without a scene
	ErrNoScene = errors.New("renderer: no scene")

	// ErrInvalidConfig is returned for unusable render options
	ErrInvalidConfig = errors.New("renderer: invalid configuration")

	// ErrInterrupted is returned, with the partial image, when the render context is cancelled
	ErrInterrupted = errors.New("renderer: interrupted")
)
