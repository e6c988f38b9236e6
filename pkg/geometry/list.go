package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HittableList tests every member in turn. It is the reference the BVH must agree with.
type HittableList struct {
	Objects []Hittable
	bbox    core.AABB
}

// NewHittableList creates a list over the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	l := &HittableList{bbox: core.EmptyAABB()}
	for _, obj := range objects {
		l.Add(obj)
	}
	return l
}

// Add appends an object and grows the bounding box
func (l *HittableList) Add(obj Hittable) {
	l.Objects = append(l.Objects, obj)
	l.bbox = l.bbox.Union(obj.BoundingBox())
}

// Hit returns the closest hit among all members
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler, rec *material.HitRecord) bool {
	var temp material.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, obj := range l.Objects {
		if obj.Hit(ray, tMin, closestSoFar, sampler, &temp) {
			hitAnything = true
			closestSoFar = temp.T
			*rec = temp
		}
	}

	return hitAnything
}

// BoundingBox returns the union of all member boxes
func (l *HittableList) BoundingBox() core.AABB {
	return l.bbox
}

func (*HittableList) hittable() {}
