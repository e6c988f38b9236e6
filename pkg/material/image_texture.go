package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], origin top-left
}

// NewImageTexture creates a new image texture.
// It panics if pixels does not hold exactly width*height entries.
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	if width <= 0 || height <= 0 || len(pixels) != width*height {
		panic("image texture dimensions do not match pixel data")
	}
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering.
// UV is clamped to [0,1]; V=0 is the bottom row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	u := clamp01(uv.X)
	v := 1.0 - clamp01(uv.Y)

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}

func (*ImageTexture) texture() {}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return max(0, min(1, x))
}
