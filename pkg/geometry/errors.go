package geometry

import "errors"

var (
	ErrInvalidRadius       = errors.New("geometry: sphere radius must be positive and finite")
	ErrDegenerateTriangle  = errors.New("geometry: triangle has zero area")
	ErrDegenerateQuad      = errors.New("geometry: quad edges are parallel or zero length")
	ErrInvalidRotationAxis = errors.New("geometry: rotation axis must be non-zero")
	ErrInvalidDensity      = errors.New("geometry: medium density must be positive and finite")
	ErrEmptyMesh           = errors.New("geometry: mesh has no triangles")
	ErrNilMaterial         = errors.New("geometry: material must not be nil")
	ErrNilHittable         = errors.New("geometry: wrapped object must not be nil")
)
