package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestQuad_Hit(t *testing.T) {
	quad, err := NewQuad(core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), testMaterial)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		origin     core.Vec3
		direction  core.Vec3
		hit        bool
		expectedUV core.Vec2
	}{
		{"Center", core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), true, core.NewVec2(0.5, 0.5)},
		{"Corner", core.NewVec3(-1, -1, 1), core.NewVec3(0, 0, -1), true, core.NewVec2(0, 0)},
		{"Far edge", core.NewVec3(1, 0, 1), core.NewVec3(0, 0, -1), true, core.NewVec2(1, 0.5)},
		{"Outside", core.NewVec3(1.5, 0, 1), core.NewVec3(0, 0, -1), false, core.Vec2{}},
		{"Parallel", core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0), false, core.Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec material.HitRecord
			got := quad.Hit(core.NewRay(tt.origin, tt.direction), 0.001, math.Inf(1), nil, &rec)
			if got != tt.hit {
				t.Fatalf("Expected hit=%v, got %v", tt.hit, got)
			}
			if !got {
				return
			}
			if math.Abs(rec.UV.X-tt.expectedUV.X) > 1e-9 || math.Abs(rec.UV.Y-tt.expectedUV.Y) > 1e-9 {
				t.Errorf("Expected uv %v, got %v", tt.expectedUV, rec.UV)
			}
			if math.Abs(rec.T-1) > 1e-9 {
				t.Errorf("Expected t=1, got %f", rec.T)
			}
		})
	}
}

func TestQuad_SkewedParallelogram(t *testing.T) {
	// u and v are not perpendicular; alpha/beta must still be the affine coordinates
	quad, err := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(1, 1, 0), testMaterial)
	if err != nil {
		t.Fatal(err)
	}

	var rec material.HitRecord
	if !quad.Hit(core.NewRay(core.NewVec3(2.5, 0.5, 1), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1), nil, &rec) {
		t.Fatal("Expected hit inside skewed quad")
	}
	// (2.5, 0.5) = 1.0*u + 0.5*v
	if math.Abs(rec.UV.X-1.0) > 1e-9 || math.Abs(rec.UV.Y-0.5) > 1e-9 {
		t.Errorf("Expected uv (1, 0.5), got %v", rec.UV)
	}

	if quad.Hit(core.NewRay(core.NewVec3(0.2, 0.9, 1), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1), nil, &rec) {
		t.Error("Expected miss left of the slanted edge")
	}
}

func TestNewQuad_Degenerate(t *testing.T) {
	_, err := NewQuad(core.Vec3{}, core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), testMaterial)
	if !errors.Is(err, ErrDegenerateQuad) {
		t.Errorf("Expected ErrDegenerateQuad, got %v", err)
	}
}

func TestQuad_BoundingBoxCoversAllCorners(t *testing.T) {
	quad, err := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, -1), core.NewVec3(0, 1, 0), testMaterial)
	if err != nil {
		t.Fatal(err)
	}
	box := quad.BoundingBox()
	for _, p := range []core.Vec3{
		quad.Corner,
		quad.Corner.Add(quad.U),
		quad.Corner.Add(quad.V),
		quad.Corner.Add(quad.U).Add(quad.V),
	} {
		if !box.Contains(core.AABB{Min: p, Max: p}) {
			t.Errorf("Expected box %v to contain corner %v", box, p)
		}
	}
}
