package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens diameter; 0 gives a pinhole camera
	FocusDistance float64   // Distance to the plane in focus; 0 means |Center - LookAt|
	ShutterOpen   float64   // Earliest ray time
	ShutterClose  float64   // Latest ray time
}

var ErrInvalidCamera = errors.New("geometry: invalid camera configuration")

// Validate rejects configurations that cannot produce rays
func (c CameraConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("width %d: %w", c.Width, ErrInvalidCamera)
	case !(c.AspectRatio > 0):
		return fmt.Errorf("aspect ratio %g: %w", c.AspectRatio, ErrInvalidCamera)
	case !(c.VFov > 0 && c.VFov < 180):
		return fmt.Errorf("vertical fov %g must be in (0, 180): %w", c.VFov, ErrInvalidCamera)
	case c.Aperture < 0:
		return fmt.Errorf("aperture %g: %w", c.Aperture, ErrInvalidCamera)
	case c.FocusDistance < 0:
		return fmt.Errorf("focus distance %g: %w", c.FocusDistance, ErrInvalidCamera)
	case c.ShutterClose < c.ShutterOpen:
		return fmt.Errorf("shutter closes at %g before opening at %g: %w", c.ShutterClose, c.ShutterOpen, ErrInvalidCamera)
	}

	forward := c.LookAt.Subtract(c.Center)
	if forward.NearZero() {
		return fmt.Errorf("camera center equals look-at point: %w", ErrInvalidCamera)
	}
	if c.Up.Cross(forward).NearZero() {
		return fmt.Errorf("up vector %v is parallel to view direction: %w", c.Up, ErrInvalidCamera)
	}
	return nil
}

// Height returns the image height implied by the width and aspect ratio, at least 1
func (c CameraConfig) Height() int {
	return max(1, int(float64(c.Width)/c.AspectRatio))
}

// Camera generates primary rays through jittered pixel positions
type Camera struct {
	config       CameraConfig
	width        int
	height       int
	center       core.Vec3
	pixel00      core.Vec3 // Center of the top-left pixel
	pixelDeltaU  core.Vec3 // Offset to the pixel to the right
	pixelDeltaV  core.Vec3 // Offset to the pixel below
	defocusDiskU core.Vec3
	defocusDiskV core.Vec3
	lensRadius   float64
}

// NewCamera creates a camera from a validated configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	width := config.Width
	height := config.Height()

	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2) * focusDistance
	viewportWidth := viewportHeight * float64(width) / float64(height)

	// Orthonormal basis: w points backwards, u right, v up
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Multiply(-viewportHeight)

	pixelDeltaU := viewportU.Multiply(1.0 / float64(width))
	pixelDeltaV := viewportV.Multiply(1.0 / float64(height))

	upperLeft := config.Center.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))

	lensRadius := config.Aperture / 2

	return &Camera{
		config:       config,
		width:        width,
		height:       height,
		center:       config.Center,
		pixel00:      upperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5)),
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		defocusDiskU: u.Multiply(lensRadius),
		defocusDiskV: v.Multiply(lensRadius),
		lensRadius:   lensRadius,
	}, nil
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.height }

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// GetRay returns a ray through a random point of pixel (i, j), where (0, 0) is the
// top-left pixel, leaving from a random point on the lens at a random shutter time
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampler.Get2D()
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y - 0.5))

	origin := c.center
	if c.lensRadius > 0 {
		p := core.SamplePointInUnitDisk(sampler.Get2D())
		origin = origin.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
	}

	time := c.config.ShutterOpen
	if c.config.ShutterClose > c.config.ShutterOpen {
		time = core.RandomInRange(sampler.Get1D(), c.config.ShutterOpen, c.config.ShutterClose)
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), time)
}

// CenterRay returns the ray from the lens center through the middle of pixel (i, j)
// at the shutter opening time
func (c *Camera) CenterRay(i, j int) core.Ray {
	pixelCenter := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
	return core.NewRayAtTime(c.center, pixelCenter.Subtract(c.center), c.config.ShutterOpen)
}
