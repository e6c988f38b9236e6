package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestBuiltinScenes_BuildAndPreprocess(t *testing.T) {
	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewBuiltinScene(info.ID, Assets{Seed: 1})
			if err != nil {
				t.Fatalf("NewBuiltinScene(%q) error: %v", info.ID, err)
			}
			if s.Name != info.ID {
				t.Errorf("Expected scene name %q, got %q", info.ID, s.Name)
			}
			if err := s.Preprocess(); err != nil {
				t.Fatalf("Preprocess() error: %v", err)
			}
			if s.BVH == nil || s.Camera == nil || s.Background == nil {
				t.Fatal("Expected Preprocess to set BVH, camera and background")
			}
			if s.SamplingConfig.SamplesPerPixel <= 0 || s.SamplingConfig.MaxDepth <= 0 {
				t.Errorf("Expected positive sampling defaults, got %+v", s.SamplingConfig)
			}

			// The view center must see geometry in every built-in scene
			ray := s.Camera.GetRay(s.Camera.Width()/2, s.Camera.Height()/2, core.NewSeededSampler(1))
			var rec material.HitRecord
			if !s.Hit(ray, 0.001, math.Inf(1), core.NewSeededSampler(2), &rec) {
				t.Error("Expected the central camera ray to hit the scene")
			}
		})
	}
}

func TestScene_PrimitiveCount(t *testing.T) {
	tests := []struct {
		id       string
		expected int
	}{
		{"material-spheres", 5},
		{"quads", 5},
		{"mesh", 8},
		{"cornell-box", 18},   // 6 quads + 2 boxes of 6 faces
		{"cornell-smoke", 18}, // media count their boundary faces
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, err := NewBuiltinScene(tt.id, Assets{})
			if err != nil {
				t.Fatal(err)
			}
			if got := s.PrimitiveCount(); got != tt.expected {
				t.Errorf("Expected %d primitives, got %d", tt.expected, got)
			}
		})
	}
}

func TestNewMeshScene_UsesAssetFaces(t *testing.T) {
	faces := []geometry.MeshFace{
		{Vertices: [3]core.Vec3{{X: -1, Y: -1, Z: 0}, {X: 1, Y: -1, Z: 0}, {X: 0, Y: 1, Z: 0}}},
	}
	s, err := NewMeshScene(Assets{MeshFaces: faces})
	if err != nil {
		t.Fatal(err)
	}
	if s.PrimitiveCount() != 1 {
		t.Errorf("Expected the single asset triangle, got %d primitives", s.PrimitiveCount())
	}
}

func TestNewMeshScene_RejectsDegenerateMesh(t *testing.T) {
	faces := []geometry.MeshFace{
		{Vertices: [3]core.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}}},
	}
	if _, err := NewMeshScene(Assets{MeshFaces: faces}); !errors.Is(err, geometry.ErrEmptyMesh) {
		t.Errorf("Expected ErrEmptyMesh, got %v", err)
	}
}

func TestScene_Preprocess_Errors(t *testing.T) {
	empty := &Scene{Name: "empty", CameraConfig: wideCamera(core.NewVec3(0, 0, 1), core.Vec3{}, 40)}
	if err := empty.Preprocess(); !errors.Is(err, ErrEmptyScene) {
		t.Errorf("Expected ErrEmptyScene, got %v", err)
	}

	sphere, err := geometry.NewSphere(core.Vec3{}, 1, material.NewLambertian(core.NewVec3(1, 1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	badCamera := &Scene{Name: "bad-camera", Objects: []geometry.Hittable{sphere}}
	if err := badCamera.Preprocess(); !errors.Is(err, geometry.ErrInvalidCamera) {
		t.Errorf("Expected ErrInvalidCamera, got %v", err)
	}
}

func TestScene_HitBeforePreprocess(t *testing.T) {
	s := &Scene{}
	var rec material.HitRecord
	if s.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1), nil, &rec) {
		t.Error("Expected no hit without a BVH")
	}
	if s.BackgroundColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))) != (core.Vec3{}) {
		t.Error("Expected black without a background")
	}
}

func TestGradientBackground(t *testing.T) {
	top := core.NewVec3(0.5, 0.7, 1.0)
	bottom := core.NewVec3(1, 1, 1)
	bg := NewGradientBackground(top, bottom)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"Straight up", core.NewVec3(0, 5, 0), top},
		{"Straight down", core.NewVec3(0, -2, 0), bottom},
		{"Horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bg.Radiance(core.NewRay(core.Vec3{}, tt.direction))
			if got.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	solid := NewSolidBackground(core.NewVec3(0.1, 0.2, 0.3))
	if solid.Radiance(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0))) != core.NewVec3(0.1, 0.2, 0.3) {
		t.Error("Expected solid background to ignore direction")
	}
}

func TestNewGroundQuad_FacesUp(t *testing.T) {
	ground, err := NewGroundQuad(core.NewVec3(0, -1, 0), 10, material.NewLambertian(core.NewVec3(1, 1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	var rec material.HitRecord
	if !ground.Hit(core.NewRay(core.NewVec3(4, 5, -4), core.NewVec3(0, -1, 0)), 0.001, math.Inf(1), nil, &rec) {
		t.Fatal("Expected hit near the ground corner")
	}
	if !rec.FrontFace || rec.Normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-9 {
		t.Errorf("Expected upward front-facing normal, got %v front=%v", rec.Normal, rec.FrontFace)
	}
}
