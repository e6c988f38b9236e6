package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// boxFaceMaterials are the five wall colors used by the planar scenes
type boxFaceMaterials struct {
	leftRed, backGreen, rightBlue, topOrange, bottomTeal material.Material
}

func newBoxFaceMaterials() boxFaceMaterials {
	return boxFaceMaterials{
		leftRed:    material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2)),
		backGreen:  material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2)),
		rightBlue:  material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0)),
		topOrange:  material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0)),
		bottomTeal: material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8)),
	}
}

// squareCamera looks down -Z at the origin from nine units away
func squareCamera() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 9),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        80,
	}
}

// NewQuadsScene creates five colored quads forming an open box around the view axis
func NewQuadsScene(assets Assets) (*Scene, error) {
	m := newBoxFaceMaterials()

	var b builder
	b.add(geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), m.leftRed))
	b.add(geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), m.backGreen))
	b.add(geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), m.rightBlue))
	b.add(geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), m.topOrange))
	b.add(geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), m.bottomTeal))

	return b.scene(&Scene{
		Name:           "quads",
		Background:     NewSkyBackground(),
		CameraConfig:   squareCamera(),
		SamplingConfig: SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
	})
}

// NewPlanarsScene replaces four of the quads with triangles
func NewPlanarsScene(assets Assets) (*Scene, error) {
	m := newBoxFaceMaterials()

	var b builder
	b.add(geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), m.backGreen))
	b.add(geometry.NewTriangle(core.NewVec3(-3, -2, 1), core.NewVec3(-3, -2, 5), core.NewVec3(-3, 2, 1), m.leftRed))
	b.add(geometry.NewTriangle(core.NewVec3(3, -2, 1), core.NewVec3(3, -2, 5), core.NewVec3(3, 2, 5), m.rightBlue))
	b.add(geometry.NewTriangle(core.NewVec3(-2, 3, 1), core.NewVec3(2, 3, 1), core.NewVec3(0, 3, 5), m.topOrange))
	b.add(geometry.NewTriangle(core.NewVec3(-2, -3, 1), core.NewVec3(2, -3, 1), core.NewVec3(0, -3, 5), m.bottomTeal))

	return b.scene(&Scene{
		Name:           "planars",
		Background:     NewSkyBackground(),
		CameraConfig:   squareCamera(),
		SamplingConfig: SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
	})
}

// NewMeshScene renders the triangle mesh from assets, or a generated octahedron
// when none was loaded, under the square camera
func NewMeshScene(assets Assets) (*Scene, error) {
	faces := assets.MeshFaces
	if len(faces) == 0 {
		faces = octahedronFaces(3)
	}

	var b builder
	b.add(geometry.NewMesh(faces, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.8))))

	return b.scene(&Scene{
		Name:           "mesh",
		Background:     NewSkyBackground(),
		CameraConfig:   squareCamera(),
		SamplingConfig: SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
	})
}

// octahedronFaces returns the eight outward-wound faces of an octahedron with the given radius
func octahedronFaces(radius float64) []geometry.MeshFace {
	px, nx := core.NewVec3(radius, 0, 0), core.NewVec3(-radius, 0, 0)
	py, ny := core.NewVec3(0, radius, 0), core.NewVec3(0, -radius, 0)
	pz, nz := core.NewVec3(0, 0, radius), core.NewVec3(0, 0, -radius)

	corners := [][3]core.Vec3{
		{px, py, pz}, {pz, py, nx}, {nx, py, nz}, {nz, py, px},
		{pz, ny, px}, {nx, ny, pz}, {nz, ny, nx}, {px, ny, nz},
	}

	faces := make([]geometry.MeshFace, len(corners))
	for i, c := range corners {
		faces[i].Vertices = c
	}
	return faces
}
