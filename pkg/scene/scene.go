package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
)

var logger = log.New("scene")

// ErrEmptyScene is returned when a scene is preprocessed without any objects
var ErrEmptyScene = errors.New("scene: no objects")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Objects        []geometry.Hittable // Top-level objects in the scene
	Background     Background          // Radiance for rays that escape the scene
	CameraConfig   geometry.CameraConfig
	SamplingConfig SamplingConfig

	Camera *geometry.Camera // Built by Preprocess from CameraConfig
	BVH    *geometry.BVH    // Acceleration structure built by Preprocess
}

// SamplingConfig contains the per-scene sampling defaults
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Add appends objects to the scene. Call Preprocess again afterwards.
func (s *Scene) Add(objects ...geometry.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// Preprocess builds the camera and the BVH. It must run after the last change
// to Objects or CameraConfig and before the first Hit.
func (s *Scene) Preprocess() error {
	if len(s.Objects) == 0 {
		return fmt.Errorf("scene %q: %w", s.Name, ErrEmptyScene)
	}

	camera, err := geometry.NewCamera(s.CameraConfig)
	if err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	s.Camera = camera

	if s.Background == nil {
		s.Background = NewSolidBackground(core.Vec3{})
	}

	s.BVH = geometry.NewBVH(s.Objects)

	stats := s.BVH.Stats()
	logger.Debugf("%s: BVH over %d objects, %d nodes, depth %d (avg leaf depth %.1f)",
		s.Name, len(s.Objects), stats.TotalNodes, stats.MaxDepth, stats.AvgDepth)
	return nil
}

// Hit finds the nearest intersection in the scene
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler, rec *material.HitRecord) bool {
	if s.BVH == nil {
		return false
	}
	return s.BVH.Hit(ray, tMin, tMax, sampler, rec)
}

// BackgroundColor returns the radiance arriving along a ray that hit nothing
func (s *Scene) BackgroundColor(ray core.Ray) core.Vec3 {
	if s.Background == nil {
		return core.Vec3{}
	}
	return s.Background.Radiance(ray)
}

// PrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, obj := range s.Objects {
		count += countPrimitives(obj)
	}
	return count
}

// countPrimitives counts primitives in a single object, looking through containers
func countPrimitives(obj geometry.Hittable) int {
	switch o := obj.(type) {
	case *geometry.Mesh:
		return o.TriangleCount()
	case *geometry.HittableList:
		count := 0
		for _, child := range o.Objects {
			count += countPrimitives(child)
		}
		return count
	case *geometry.Box:
		return 6
	case *geometry.Instance:
		return countPrimitives(o.Object)
	case *geometry.ConstantMedium:
		return countPrimitives(o.Boundary)
	default:
		return 1
	}
}

// NewGroundQuad creates a large horizontal quad centered at the given point with normal (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) (*geometry.Quad, error) {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) points up
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}
