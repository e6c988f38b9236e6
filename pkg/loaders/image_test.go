package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-pathtracer/pkg/core"
)

// quadrantImage returns a 2x2 image: white, red / green, blue
func quadrantImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func checkQuadrants(t *testing.T, data *ImageData) {
	t.Helper()
	if data.Width != 2 || data.Height != 2 {
		t.Fatalf("Expected 2x2 image, got %dx%d", data.Width, data.Height)
	}
	if len(data.Pixels) != 4 {
		t.Fatalf("Expected 4 pixels, got %d", len(data.Pixels))
	}

	expected := []core.Vec3{
		core.NewVec3(1, 1, 1),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
	}
	const tolerance = 0.01
	for i, want := range expected {
		got := data.Pixels[i]
		if math.Abs(got.X-want.X) > tolerance || math.Abs(got.Y-want.Y) > tolerance || math.Abs(got.Z-want.Z) > tolerance {
			t.Errorf("Pixel %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestDecodeImage_Formats(t *testing.T) {
	encoders := []struct {
		name   string
		encode func(*bytes.Buffer, image.Image) error
	}{
		{"png", func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) }},
		{"bmp", func(b *bytes.Buffer, img image.Image) error { return bmp.Encode(b, img) }},
		{"tiff", func(b *bytes.Buffer, img image.Image) error { return tiff.Encode(b, img, nil) }},
	}

	for _, enc := range encoders {
		t.Run(enc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := enc.encode(&buf, quadrantImage()); err != nil {
				t.Fatalf("Failed to encode %s: %v", enc.name, err)
			}

			data, err := DecodeImage(&buf)
			if err != nil {
				t.Fatalf("DecodeImage failed: %v", err)
			}
			checkQuadrants(t, data)
		})
	}
}

func TestDecodeImage_Garbage(t *testing.T) {
	if _, err := DecodeImage(strings.NewReader("not an image")); err == nil {
		t.Error("Expected error for undecodable data, got nil")
	}
}

func TestLoadImageTexture(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.png")

	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, quadrantImage()); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	tex, err := LoadImageTexture(testFile)
	if err != nil {
		t.Fatalf("LoadImageTexture failed: %v", err)
	}

	// V=1 is the top row
	topRight := tex.Evaluate(core.Vec2{X: 0.9, Y: 0.9}, core.Vec3{})
	if math.Abs(topRight.X-1) > 0.01 || topRight.Y > 0.01 || topRight.Z > 0.01 {
		t.Errorf("Expected red at the top right, got %v", topRight)
	}
	bottomLeft := tex.Evaluate(core.Vec2{X: 0.1, Y: 0.1}, core.Vec3{})
	if bottomLeft.X > 0.01 || math.Abs(bottomLeft.Y-1) > 0.01 || bottomLeft.Z > 0.01 {
		t.Errorf("Expected green at the bottom left, got %v", bottomLeft)
	}
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
