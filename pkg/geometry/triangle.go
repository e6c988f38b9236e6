package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// minTriangleArea is the area below which a triangle is rejected as degenerate
const minTriangleArea = 1e-12

// barycentricSlack widens the inside test so hits exactly on a shared edge are never lost to rounding
const barycentricSlack = 1e-12

// Triangle represents a single triangle with per-vertex normals and texture coordinates
type Triangle struct {
	V0, V1, V2 core.Vec3         // The three vertices
	Normals    [3]core.Vec3      // Unit shading normals at V0, V1, V2
	UVs        [3]core.Vec2      // Texture coordinates at V0, V1, V2
	Material   material.Material // Material of the triangle
	normal     core.Vec3         // Cached geometric normal
	bbox       core.AABB         // Cached bounding box
}

// defaultTriangleUVs maps the vertices onto the corners of the unit UV square
var defaultTriangleUVs = [3]core.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

// NewTriangle creates a flat-shaded triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) (*Triangle, error) {
	n := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return NewTriangleWithAttributes([3]core.Vec3{v0, v1, v2}, [3]core.Vec3{n, n, n}, defaultTriangleUVs, mat)
}

// NewTriangleWithAttributes creates a triangle with explicit vertex normals and UVs.
// Zero-length normals fall back to the geometric normal.
func NewTriangleWithAttributes(vertices [3]core.Vec3, normals [3]core.Vec3, uvs [3]core.Vec2, mat material.Material) (*Triangle, error) {
	if mat == nil {
		return nil, fmt.Errorf("triangle %v: %w", vertices, ErrNilMaterial)
	}

	tri := r3.Triangle{toR3(vertices[0]), toR3(vertices[1]), toR3(vertices[2])}
	if !(tri.Area() > minTriangleArea) {
		return nil, fmt.Errorf("triangle %v: %w", vertices, ErrDegenerateTriangle)
	}

	t := &Triangle{
		V0:       vertices[0],
		V1:       vertices[1],
		V2:       vertices[2],
		UVs:      uvs,
		Material: mat,
		normal:   vertices[1].Subtract(vertices[0]).Cross(vertices[2].Subtract(vertices[0])).Normalize(),
		bbox:     core.NewAABBFromPoints(vertices[0], vertices[1], vertices[2]),
	}
	for i, n := range normals {
		if n.NearZero() {
			t.Normals[i] = t.normal
		} else {
			t.Normals[i] = n.Normalize()
		}
	}

	return t, nil
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm.
// Points on an edge or vertex count as inside.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler, rec *material.HitRecord) bool {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -epsilon && a < epsilon {
		return false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < -barycentricSlack || u > 1.0+barycentricSlack {
		return false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < -barycentricSlack || u+v > 1.0+barycentricSlack {
		return false
	}

	tHit := f * edge2.Dot(q)
	if tHit < tMin || tHit > tMax {
		return false
	}

	w := 1 - u - v

	rec.T = tHit
	rec.Point = ray.At(tHit)
	rec.Material = t.Material
	rec.UV = core.NewVec2(
		w*t.UVs[0].X+u*t.UVs[1].X+v*t.UVs[2].X,
		w*t.UVs[0].Y+u*t.UVs[1].Y+v*t.UVs[2].Y,
	)

	// Facing is decided by the geometric normal; the shading normal follows it
	shading := t.Normals[0].Multiply(w).Add(t.Normals[1].Multiply(u)).Add(t.Normals[2].Multiply(v)).Normalize()
	if shading.NearZero() {
		shading = t.normal
	}
	rec.FrontFace = ray.Direction.Dot(t.normal) < 0
	if rec.FrontFace != (shading.Dot(t.normal) >= 0) {
		shading = shading.Negate()
	}
	rec.Normal = shading

	return true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

func (*Triangle) hittable() {}

func toR3(v core.Vec3) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromR3(v r3.Vec) core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}
