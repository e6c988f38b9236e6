package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape. A moving sphere travels in a straight line
// from Center at time 0 to Center2 at time 1.
type Sphere struct {
	Center   core.Vec3
	Center2  core.Vec3
	Radius   float64
	Material material.Material
	moving   bool
	bbox     core.AABB
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) (*Sphere, error) {
	return newSphere(center, center, false, radius, mat)
}

// NewMovingSphere creates a sphere whose center moves from center1 to center2 over the shutter interval
func NewMovingSphere(center1, center2 core.Vec3, radius float64, mat material.Material) (*Sphere, error) {
	return newSphere(center1, center2, true, radius, mat)
}

func newSphere(center1, center2 core.Vec3, moving bool, radius float64, mat material.Material) (*Sphere, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("sphere at %v with radius %g: %w", center1, radius, ErrInvalidRadius)
	}
	if mat == nil {
		return nil, fmt.Errorf("sphere at %v: %w", center1, ErrNilMaterial)
	}

	r := core.NewVec3(radius, radius, radius)
	bbox := core.NewAABB(center1.Subtract(r), center1.Add(r))
	if moving {
		bbox = bbox.Union(core.NewAABB(center2.Subtract(r), center2.Add(r)))
	}

	return &Sphere{
		Center:   center1,
		Center2:  center2,
		Radius:   radius,
		Material: mat,
		moving:   moving,
		bbox:     bbox,
	}, nil
}

// CenterAt returns the sphere center at the given shutter time
func (s *Sphere) CenterAt(time float64) core.Vec3 {
	if !s.moving {
		return s.Center
	}
	return s.Center.Lerp(s.Center2, time)
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler, rec *material.HitRecord) bool {
	center := s.CenterAt(ray.Time)
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + 2ht + c = 0
	a := ray.Direction.LengthSquared()
	if a == 0 {
		return false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return false
		}
	}

	rec.T = root
	rec.Point = ray.At(root)
	rec.Material = s.Material

	outwardNormal := rec.Point.Subtract(center).Multiply(1.0 / s.Radius)
	rec.SetFaceNormal(ray, outwardNormal)
	rec.UV = sphereUV(outwardNormal)

	return true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

func (*Sphere) hittable() {}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u wraps around the Y axis starting at -X, v runs from the south pole (0) to the north pole (1).
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(max(-1, min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
