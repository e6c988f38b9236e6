package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// cornellBoxSize is the edge length of the standard Cornell box
const cornellBoxSize = 555.0

// cornellCamera looks into the open side of the box
func cornellCamera(width int) geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       width,
		AspectRatio: 1.0,
		VFov:        40,
	}
}

// addCornellWalls adds the five walls and the ceiling light
func addCornellWalls(b *builder, light material.Material) {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	s := cornellBoxSize

	b.add(geometry.NewQuad(core.NewVec3(s, 0, 0), core.NewVec3(0, s, 0), core.NewVec3(0, 0, s), green))
	b.add(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, s, 0), core.NewVec3(0, 0, s), red))
	b.add(geometry.NewQuad(core.NewVec3(343, 554, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105), light))
	b.add(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(s, 0, 0), core.NewVec3(0, 0, s), white))
	b.add(geometry.NewQuad(core.NewVec3(s, s, s), core.NewVec3(-s, 0, 0), core.NewVec3(0, 0, -s), white))
	b.add(geometry.NewQuad(core.NewVec3(0, 0, s), core.NewVec3(s, 0, 0), core.NewVec3(0, s, 0), white))
}

// cornellBlocks returns the tall and short rotated boxes standing on the floor
func cornellBlocks(b *builder) (tall, short geometry.Hittable) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	tall = b.check(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white))
	tall = b.check(geometry.NewRotateY(tall, 15, core.NewVec3(265, 0, 295)))

	short = b.check(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white))
	short = b.check(geometry.NewRotateY(short, -18, core.NewVec3(130, 0, 65)))

	return tall, short
}

// NewCornellScene creates the classic Cornell box with two rotated blocks
func NewCornellScene(assets Assets) (*Scene, error) {
	var b builder
	addCornellWalls(&b, material.NewDiffuseLight(core.NewVec3(15, 15, 15)))

	tall, short := cornellBlocks(&b)
	b.add(tall, nil)
	b.add(short, nil)

	return b.scene(&Scene{
		Name:           "cornell-box",
		Background:     NewSolidBackground(core.Vec3{}),
		CameraConfig:   cornellCamera(600),
		SamplingConfig: SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50},
	})
}

// NewCornellSmokeScene fills the two Cornell blocks with dark and light smoke
func NewCornellSmokeScene(assets Assets) (*Scene, error) {
	var b builder
	addCornellWalls(&b, material.NewDiffuseLight(core.NewVec3(20, 20, 20)))

	tall, short := cornellBlocks(&b)
	if b.err == nil {
		b.add(geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)))
		b.add(geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)))
	}

	return b.scene(&Scene{
		Name:           "cornell-smoke",
		Background:     NewSolidBackground(core.Vec3{}),
		CameraConfig:   cornellCamera(600),
		SamplingConfig: SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50},
	})
}

// NewSimpleLightScene lights a sphere on a ground sphere with one rectangular lamp and no sky
func NewSimpleLightScene(assets Assets) (*Scene, error) {
	var b builder
	b.add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000,
		material.NewTexturedLambertian(material.NewNoiseTexture(4, assets.Seed))))
	b.add(geometry.NewSphere(core.NewVec3(0, 2, 0), 2, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))))
	b.add(geometry.NewQuad(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
		material.NewDiffuseLight(core.NewVec3(4, 4, 4))))

	return b.scene(&Scene{
		Name:           "simple-light",
		Background:     NewSolidBackground(core.Vec3{}),
		CameraConfig:   wideCamera(core.NewVec3(26, 3, 6), core.NewVec3(0, 2, 0), 20),
		SamplingConfig: SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50},
	})
}
