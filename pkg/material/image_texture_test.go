package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// TestImageTextureEvaluate tests basic texture sampling
func TestImageTextureEvaluate(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	pixels := []core.Vec3{
		white, black, // Row 0 (top in image coords)
		black, white, // Row 1 (bottom in image coords)
	}
	texture := NewImageTexture(2, 2, pixels)

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"Bottom-left", core.NewVec2(0.1, 0.1), black},
		{"Bottom-right", core.NewVec2(0.9, 0.1), white},
		{"Top-left", core.NewVec2(0.1, 0.9), white},
		{"Top-right", core.NewVec2(0.9, 0.9), black},
		{"U=1 edge clamps to last column", core.NewVec2(1.0, 0.9), black},
		{"V=0 edge clamps to last row", core.NewVec2(0.1, 0.0), black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Evaluate(tt.uv, core.Vec3{}); got != tt.expected {
				t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.expected, got)
			}
		})
	}
}

func TestImageTextureClampsOutOfRange(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	green := core.NewVec3(0, 1, 0)
	texture := NewImageTexture(2, 1, []core.Vec3{red, green})

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"Negative U", core.NewVec2(-3, 0.5), red},
		{"U beyond one", core.NewVec2(7, 0.5), green},
		{"NaN U", core.NewVec2(math.NaN(), 0.5), red},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Evaluate(tt.uv, core.Vec3{}); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNewImageTexture_PanicsOnSizeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for mismatched pixel count")
		}
	}()
	NewImageTexture(2, 2, []core.Vec3{{}})
}

func TestProceduralImages(t *testing.T) {
	uv := NewUVDebugTexture(4, 4)
	// Top-right pixel is (u=1, v=1)
	if got := uv.Pixels[3]; got != core.NewVec3(1, 1, 0) {
		t.Errorf("Expected top-right UV color (1,1,0), got %v", got)
	}

	gradient := NewGradientTexture(1, 3, core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0))
	if got := gradient.Pixels[1]; math.Abs(got.X-0.5) > 1e-12 {
		t.Errorf("Expected middle gradient value 0.5, got %v", got)
	}

	planet := NewPlanetTexture(32, 16, 3)
	for i, p := range planet.Pixels {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 || p.Z < 0 || p.Z > 1 {
			t.Fatalf("Pixel %d out of range: %v", i, p)
		}
	}
}
