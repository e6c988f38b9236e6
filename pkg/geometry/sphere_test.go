package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

func mustSphere(t *testing.T, center core.Vec3, radius float64) *Sphere {
	t.Helper()
	s, err := NewSphere(center, radius, testMaterial)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	return s
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	var rec material.HitRecord
	if sphere.Hit(ray, 0.001, math.Inf(1), nil, &rec) {
		t.Errorf("Expected miss, but got hit at t=%f", rec.T)
	}
}

func TestSphere_Hit_AlongNegativeZ(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, -5), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	var rec material.HitRecord
	if !sphere.Hit(ray, 0.001, math.Inf(1), nil, &rec) {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(rec.T-4.0) > 1e-9 {
		t.Errorf("Expected t=4, got t=%f", rec.T)
	}
	if rec.Point.Subtract(core.NewVec3(0, 0, -4)).Length() > 1e-9 {
		t.Errorf("Expected point (0,0,-4), got %v", rec.Point)
	}
	if rec.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected normal (0,0,1), got %v", rec.Normal)
	}
	if !rec.FrontFace {
		t.Error("Expected front face hit")
	}
	if rec.Material != testMaterial {
		t.Error("Expected hit record to carry the sphere's material")
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			var rec material.HitRecord
			if !sphere.Hit(ray, 0.001, 1000.0, nil, &rec) {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(rec.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, rec.T)
			}
			if rec.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face=%v, got %v", tt.expectedFront, rec.FrontFace)
			}
			if rec.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, rec.Normal)
			}
		})
	}
}

func TestSphere_HitOutsideInterval(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, -5), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	var rec material.HitRecord
	if sphere.Hit(ray, 0.001, 3.5, nil, &rec) {
		t.Error("Expected miss when both roots are beyond tMax")
	}
	if !sphere.Hit(ray, 4.5, 10, nil, &rec) || math.Abs(rec.T-6) > 1e-9 {
		t.Errorf("Expected far root t=6 when near root is below tMin, got %f", rec.T)
	}
}

func TestSphere_UV(t *testing.T) {
	tests := []struct {
		name  string
		point core.Vec3
		uv    core.Vec2
	}{
		{"+X", core.NewVec3(1, 0, 0), core.NewVec2(0.5, 0.5)},
		{"+Y", core.NewVec3(0, 1, 0), core.NewVec2(0.5, 1.0)},
		{"-X", core.NewVec3(-1, 0, 0), core.NewVec2(0.0, 0.5)},
		{"+Z", core.NewVec3(0, 0, 1), core.NewVec2(0.25, 0.5)},
		{"-Z", core.NewVec3(0, 0, -1), core.NewVec2(0.75, 0.5)},
		{"-Y", core.NewVec3(0, -1, 0), core.NewVec2(0.5, 0.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uv := sphereUV(tt.point)
			if math.Abs(uv.X-tt.uv.X) > 1e-9 || math.Abs(uv.Y-tt.uv.Y) > 1e-9 {
				t.Errorf("Expected uv %v, got %v", tt.uv, uv)
			}
		})
	}
}

func TestMovingSphere(t *testing.T) {
	sphere, err := NewMovingSphere(core.NewVec3(0, 0, -5), core.NewVec3(2, 0, -5), 0.5, testMaterial)
	if err != nil {
		t.Fatal(err)
	}

	var rec material.HitRecord
	atStart := core.NewRayAtTime(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)
	if !sphere.Hit(atStart, 0.001, math.Inf(1), nil, &rec) {
		t.Error("Expected hit at shutter open")
	}

	atEnd := core.NewRayAtTime(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 1)
	if sphere.Hit(atEnd, 0.001, math.Inf(1), nil, &rec) {
		t.Error("Expected miss once the sphere has moved away")
	}

	box := sphere.BoundingBox()
	if box.Min.X > -0.5 || box.Max.X < 2.5 {
		t.Errorf("Expected box to cover the whole path, got %v", box)
	}
}

func TestNewSphere_Validation(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		mat    material.Material
		want   error
	}{
		{"Zero radius", 0, testMaterial, ErrInvalidRadius},
		{"Negative radius", -1, testMaterial, ErrInvalidRadius},
		{"NaN radius", math.NaN(), testMaterial, ErrInvalidRadius},
		{"Infinite radius", math.Inf(1), testMaterial, ErrInvalidRadius},
		{"Nil material", 1, nil, ErrNilMaterial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSphere(core.Vec3{}, tt.radius, tt.mat)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}
