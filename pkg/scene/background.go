package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Background supplies the radiance of rays that leave the scene without hitting anything
type Background interface {
	Radiance(ray core.Ray) core.Vec3
}

// SolidBackground is the same color in every direction
type SolidBackground struct {
	Color core.Vec3
}

// NewSolidBackground creates a uniform background
func NewSolidBackground(color core.Vec3) *SolidBackground {
	return &SolidBackground{Color: color}
}

// Radiance returns the constant color
func (b *SolidBackground) Radiance(ray core.Ray) core.Vec3 {
	return b.Color
}

// GradientBackground blends vertically from Bottom (looking down) to Top (looking up)
type GradientBackground struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradientBackground creates a vertical gradient background
func NewGradientBackground(top, bottom core.Vec3) *GradientBackground {
	return &GradientBackground{Top: top, Bottom: bottom}
}

// NewSkyBackground returns the white-to-light-blue sky
func NewSkyBackground() *GradientBackground {
	return NewGradientBackground(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0))
}

// Radiance interpolates on the height of the normalized ray direction
func (b *GradientBackground) Radiance(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return b.Bottom.Lerp(b.Top, t)
}
