package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable is anything a ray can intersect. The set is closed: spheres, triangles,
// quads, boxes, lists, meshes, instances, media and BVHs.
type Hittable interface {
	// Hit fills rec and reports true for the nearest intersection with t in [tMin, tMax].
	// The sampler is only drawn from by participating media.
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler, rec *material.HitRecord) bool

	// BoundingBox returns a box enclosing the object over the whole shutter interval
	BoundingBox() core.AABB

	hittable()
}
