package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// NewUVDebugTexture creates an image texture showing UV coordinates as colors.
// U maps to red, V maps to green; V=0 is the bottom row.
func NewUVDebugTexture(width, height int) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		v := 1.0 - float64(y)/float64(max(1, height-1))
		for x := 0; x < width; x++ {
			u := float64(x) / float64(max(1, width-1))
			pixels[y*width+x] = core.NewVec3(u, v, 0.0)
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewGradientTexture creates a vertical gradient image from top (first row) to bottom
func NewGradientTexture(width, height int, top, bottom core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		t := float64(y) / float64(max(1, height-1))
		color := top.Lerp(bottom, t)
		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewPlanetTexture renders an equirectangular ocean/land/ice map from Perlin noise.
// It stands in for a photographic earth map when none is available.
func NewPlanetTexture(width, height int, seed int64) *ImageTexture {
	noise := NewPerlin(seed)
	pixels := make([]core.Vec3, width*height)

	ocean := core.NewVec3(0.05, 0.15, 0.45)
	land := core.NewVec3(0.2, 0.45, 0.15)
	ice := core.NewVec3(0.95, 0.95, 0.97)

	for y := 0; y < height; y++ {
		theta := math.Pi * (float64(y) + 0.5) / float64(height)
		for x := 0; x < width; x++ {
			phi := 2 * math.Pi * (float64(x) + 0.5) / float64(width)
			dir := core.NewVec3(math.Sin(theta)*math.Cos(phi), math.Cos(theta), math.Sin(theta)*math.Sin(phi))

			elevation := noise.Turbulence(dir.Multiply(2.5), 5)
			var color core.Vec3
			switch {
			case math.Abs(dir.Y) > 0.9:
				color = ice
			case elevation > 0.35:
				color = land.Multiply(0.7 + elevation)
			default:
				color = ocean
			}
			pixels[y*width+x] = color.Clamp(0, 1)
		}
	}

	return NewImageTexture(width, height, pixels)
}
