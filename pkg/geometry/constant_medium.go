package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// mediumExitOffset separates the exit search from the entry point
const mediumExitOffset = 0.0001

// ConstantMedium is a uniform participating medium filling a convex boundary.
// Rays scatter inside it with probability governed by Density.
type ConstantMedium struct {
	Boundary      Hittable
	Density       float64
	PhaseFunction *material.Isotropic
	negInvDensity float64
}

// NewConstantMedium fills boundary with a medium of the given density and color
func NewConstantMedium(boundary Hittable, density float64, albedo core.Vec3) (*ConstantMedium, error) {
	return NewTexturedConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// NewTexturedConstantMedium fills boundary with a medium whose albedo varies with a texture
func NewTexturedConstantMedium(boundary Hittable, density float64, albedo material.Texture) (*ConstantMedium, error) {
	if boundary == nil {
		return nil, ErrNilHittable
	}
	if !(density > 0) || math.IsInf(density, 0) {
		return nil, fmt.Errorf("medium density %g: %w", density, ErrInvalidDensity)
	}
	return &ConstantMedium{
		Boundary:      boundary,
		Density:       density,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
		negInvDensity: -1.0 / density,
	}, nil
}

// Hit samples a free-flight distance through the medium and reports a scattering
// event when it falls before the ray leaves the boundary
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler, rec *material.HitRecord) bool {
	var entry, exit material.HitRecord

	if !m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), sampler, &entry) {
		return false
	}
	if !m.Boundary.Hit(ray, entry.T+mediumExitOffset, math.Inf(1), sampler, &exit) {
		return false
	}

	t1 := math.Max(entry.T, tMin)
	t2 := math.Min(exit.T, tMax)
	if t1 >= t2 {
		return false
	}
	t1 = math.Max(t1, 0)

	rayLength := ray.Direction.Length()
	if rayLength == 0 {
		return false
	}
	distanceInsideBoundary := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(1-sampler.Get1D())
	if hitDistance > distanceInsideBoundary {
		return false
	}

	rec.T = t1 + hitDistance/rayLength
	rec.Point = ray.At(rec.T)
	rec.Normal = core.NewVec3(1, 0, 0) // arbitrary
	rec.FrontFace = true
	rec.UV = core.Vec2{}
	rec.Material = m.PhaseFunction

	return true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}

func (*ConstantMedium) hittable() {}
