package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box represents an axis-aligned box made up of 6 quads.
// Wrap it in an Instance to rotate or move it.
type Box struct {
	Min, Max core.Vec3        // Opposite corners
	Material material.Material // Material for all faces
	faces    *HittableList     // The 6 quad faces
}

// NewBox creates a box spanning the two given corners, in any order
func NewBox(a, b core.Vec3, mat material.Material) (*Box, error) {
	min := core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z))
	max := core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z))

	dx := core.NewVec3(max.X-min.X, 0, 0)
	dy := core.NewVec3(0, max.Y-min.Y, 0)
	dz := core.NewVec3(0, 0, max.Z-min.Z)

	// Each face's U × V points out of the box
	sides := []struct {
		corner core.Vec3
		u, v   core.Vec3
	}{
		{core.NewVec3(min.X, min.Y, max.Z), dx, dy},          // front (Z+)
		{core.NewVec3(max.X, min.Y, max.Z), dz.Negate(), dy}, // right (X+)
		{core.NewVec3(max.X, min.Y, min.Z), dx.Negate(), dy}, // back (Z-)
		{core.NewVec3(min.X, min.Y, min.Z), dz, dy},          // left (X-)
		{core.NewVec3(min.X, max.Y, max.Z), dx, dz.Negate()}, // top (Y+)
		{core.NewVec3(min.X, min.Y, min.Z), dx, dz},          // bottom (Y-)
	}

	faces := NewHittableList()
	for _, side := range sides {
		quad, err := NewQuad(side.corner, side.u, side.v, mat)
		if err != nil {
			return nil, fmt.Errorf("box %v-%v: %w", min, max, err)
		}
		faces.Add(quad)
	}

	return &Box{Min: min, Max: max, Material: mat, faces: faces}, nil
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler, rec *material.HitRecord) bool {
	return b.faces.Hit(ray, tMin, tMax, sampler, rec)
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.faces.BoundingBox()
}

func (*Box) hittable() {}
