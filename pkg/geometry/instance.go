package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Instance places a shared object in the world: rotated by Angle about Axis through
// the object's origin, then translated by Offset.
type Instance struct {
	Object Hittable
	Offset core.Vec3
	Axis   core.Vec3
	Angle  float64 // radians

	rotation r3.Rotation
	inverse  r3.Rotation
	bbox     core.AABB
}

// NewInstance wraps obj with a rotation of angleDegrees about axis followed by a translation
func NewInstance(obj Hittable, offset, axis core.Vec3, angleDegrees float64) (*Instance, error) {
	if obj == nil {
		return nil, ErrNilHittable
	}
	if axis.NearZero() || !axis.IsFinite() {
		return nil, fmt.Errorf("instance axis %v: %w", axis, ErrInvalidRotationAxis)
	}

	unitAxis := toR3(axis.Normalize())
	angle := angleDegrees * math.Pi / 180

	inst := &Instance{
		Object:   obj,
		Offset:   offset,
		Axis:     axis.Normalize(),
		Angle:    angle,
		rotation: r3.NewRotation(angle, unitAxis),
		inverse:  r3.NewRotation(-angle, unitAxis),
	}

	local := obj.BoundingBox()
	if local.IsEmpty() {
		inst.bbox = local
		return inst, nil
	}

	corners := local.Corners()
	for i, c := range corners {
		corners[i] = inst.toWorld(c)
	}
	inst.bbox = core.NewAABBFromPoints(corners[:]...)

	return inst, nil
}

// NewTranslate moves obj by offset without rotating it
func NewTranslate(obj Hittable, offset core.Vec3) (*Instance, error) {
	return NewInstance(obj, offset, core.NewVec3(0, 1, 0), 0)
}

// NewRotateY rotates obj about the Y axis by angleDegrees, then moves it by offset
func NewRotateY(obj Hittable, angleDegrees float64, offset core.Vec3) (*Instance, error) {
	return NewInstance(obj, offset, core.NewVec3(0, 1, 0), angleDegrees)
}

func (inst *Instance) toWorld(p core.Vec3) core.Vec3 {
	return fromR3(inst.rotation.Rotate(toR3(p))).Add(inst.Offset)
}

// Hit transforms the ray into object space, tests the object and maps the hit back
func (inst *Instance) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler, rec *material.HitRecord) bool {
	local := core.Ray{
		Origin:    fromR3(inst.inverse.Rotate(toR3(ray.Origin.Subtract(inst.Offset)))),
		Direction: fromR3(inst.inverse.Rotate(toR3(ray.Direction))),
		Time:      ray.Time,
	}

	if !inst.Object.Hit(local, tMin, tMax, sampler, rec) {
		return false
	}

	// Rotation preserves lengths and angles, so T and FrontFace carry over unchanged
	rec.Point = inst.toWorld(rec.Point)
	rec.Normal = fromR3(inst.rotation.Rotate(toR3(rec.Normal)))

	return true
}

// BoundingBox returns the world-space box around the transformed object's box
func (inst *Instance) BoundingBox() core.AABB {
	return inst.bbox
}

func (*Instance) hittable() {}
