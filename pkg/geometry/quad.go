package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Quad represents a planar parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3         // One corner of the quad
	U        core.Vec3         // First edge vector
	V        core.Vec3         // Second edge vector
	Normal   core.Vec3         // Unit normal (direction of U × V)
	Material material.Material // Material of the quad
	D        float64           // Plane equation constant: normal · x = D
	W        core.Vec3         // n / (n·n) with n = U × V, maps hit points to (alpha, beta)
	bbox     core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) (*Quad, error) {
	if mat == nil {
		return nil, fmt.Errorf("quad at %v: %w", corner, ErrNilMaterial)
	}

	n := u.Cross(v)
	if n.LengthSquared() < 1e-16 {
		return nil, fmt.Errorf("quad at %v with edges %v, %v: %w", corner, u, v, ErrDegenerateQuad)
	}
	normal := n.Normalize()

	// The two diagonals together cover all four corners
	bbox := core.NewAABBFromPoints(corner, corner.Add(u).Add(v)).
		Union(core.NewAABBFromPoints(corner.Add(u), corner.Add(v)))

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: mat,
		D:        normal.Dot(corner),
		W:        n.Multiply(1.0 / n.Dot(n)),
		bbox:     bbox,
	}, nil
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler, rec *material.HitRecord) bool {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t < tMin || t > tMax {
		return false
	}

	hitPoint := ray.At(t)

	// Express the hit point in the quad's (U, V) basis
	planar := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(planar.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(planar))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return false
	}

	rec.T = t
	rec.Point = hitPoint
	rec.Material = q.Material
	rec.UV = core.NewVec2(alpha, beta)
	rec.SetFaceNormal(ray, q.Normal)

	return true
}

// BoundingBox returns the axis-aligned bounding box for this quad
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}

func (*Quad) hittable() {}
