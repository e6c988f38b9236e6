package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// wideCamera is the 16:9 camera shared by the sphere scenes
func wideCamera(center, lookAt core.Vec3, vfov float64) geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:      center,
		LookAt:      lookAt,
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        vfov,
	}
}

// NewMaterialSpheresScene creates three spheres (diffuse, hollow glass, fuzzy metal) on a large ground sphere
func NewMaterialSpheresScene(assets Assets) (*Scene, error) {
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	bubble := material.NewDielectric(1.0 / 1.5)
	metal := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	var b builder
	b.add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground))
	b.add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center))
	b.add(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass))
	b.add(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.4, bubble))
	b.add(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, metal))

	return b.scene(&Scene{
		Name:           "material-spheres",
		Background:     NewSkyBackground(),
		CameraConfig:   wideCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 90),
		SamplingConfig: SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
	})
}

// NewCheckeredSpheresScene creates two large spheres sharing a 3D checker texture
func NewCheckeredSpheresScene(assets Assets) (*Scene, error) {
	checker := material.NewTexturedLambertian(
		material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))

	var b builder
	b.add(geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker))
	b.add(geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker))

	return b.scene(&Scene{
		Name:           "checkered-spheres",
		Background:     NewSkyBackground(),
		CameraConfig:   wideCamera(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20),
		SamplingConfig: SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
	})
}

// NewEarthScene creates a single image-textured globe. Without an earth map
// in assets a procedural planet texture is used.
func NewEarthScene(assets Assets) (*Scene, error) {
	surface := assets.EarthTexture
	if surface == nil {
		surface = material.NewPlanetTexture(512, 256, assets.Seed)
	}

	var b builder
	b.add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(surface)))

	return b.scene(&Scene{
		Name:           "earth",
		Background:     NewSkyBackground(),
		CameraConfig:   wideCamera(core.NewVec3(0, 0, 12), core.NewVec3(0, 0, 0), 20),
		SamplingConfig: SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
	})
}

// NewPerlinSpheresScene creates a marble sphere resting on a marble ground
func NewPerlinSpheresScene(assets Assets) (*Scene, error) {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, assets.Seed))

	var b builder
	b.add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble))
	b.add(geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble))

	return b.scene(&Scene{
		Name:           "perlin-spheres",
		Background:     NewSkyBackground(),
		CameraConfig:   wideCamera(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20),
		SamplingConfig: SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
	})
}

// NewBouncingSpheresScene creates a field of small random spheres, the diffuse ones
// moving during the shutter interval, seen through a lens with shallow depth of field
func NewBouncingSpheresScene(assets Assets) (*Scene, error) {
	sampler := core.NewSeededSampler(assets.Seed)

	var b builder
	ground := material.NewTexturedLambertian(
		material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	b.add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	landmark := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for c := -11; c < 11; c++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(c)+0.9*sampler.Get1D())
			if center.Subtract(landmark).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := sampler.Get3D().MultiplyVec(sampler.Get3D())
				bounce := core.NewVec3(0, 0.5*sampler.Get1D(), 0)
				b.add(geometry.NewMovingSphere(center, center.Add(bounce), 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := sampler.Get3D().Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
				b.add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, 0.5*sampler.Get1D())))
			default:
				b.add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	b.add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	b.add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	b.add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	camera := wideCamera(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20)
	camera.Aperture = 0.1
	camera.FocusDistance = 10
	camera.ShutterOpen = 0
	camera.ShutterClose = 1

	return b.scene(&Scene{
		Name:           "bouncing-spheres",
		Background:     NewSkyBackground(),
		CameraConfig:   camera,
		SamplingConfig: SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
	})
}
