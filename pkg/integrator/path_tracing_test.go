package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// createTestScene builds a preprocessed scene around the given objects
func createTestScene(t *testing.T, background scene.Background, objects ...geometry.Hittable) *scene.Scene {
	t.Helper()
	sc := &scene.Scene{
		Name:       "test",
		Objects:    objects,
		Background: background,
		CameraConfig: geometry.CameraConfig{
			Center:      core.NewVec3(0, 0, 0),
			LookAt:      core.NewVec3(0, 0, -1),
			Up:          core.NewVec3(0, 1, 0),
			Width:       8,
			AspectRatio: 1,
			VFov:        60,
		},
	}
	if err := sc.Preprocess(); err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	return sc
}

func mustSphere(t *testing.T, center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	t.Helper()
	s, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestPathTracingDepthZeroIsBlack(t *testing.T) {
	sc := createTestScene(t, scene.NewSkyBackground(),
		mustSphere(t, core.NewVec3(0, 0, -1), 0.5, material.NewDiffuseLight(core.NewVec3(4, 4, 4))))
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 0})
	sampler := core.NewSeededSampler(42)

	for _, dir := range []core.Vec3{core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0)} {
		if c := integrator.RayColor(core.NewRay(core.Vec3{}, dir), sc, sampler); c != (core.Vec3{}) {
			t.Errorf("Expected black for depth 0 along %v, got %v", dir, c)
		}
	}
}

func TestPathTracingEmissiveEnclosure(t *testing.T) {
	emission := core.NewVec3(2, 3, 4)
	// The camera sits inside a two-sided emitter that fills every direction
	sc := createTestScene(t, scene.NewSkyBackground(),
		mustSphere(t, core.Vec3{}, 100, material.NewDiffuseLight(emission)))
	sampler := core.NewSeededSampler(7)

	for _, depth := range []int{1, 2, 50} {
		integrator := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: depth})
		for i := 0; i < 50; i++ {
			dir := core.SampleOnUnitSphere(sampler.Get2D())
			if c := integrator.RayColor(core.NewRay(core.Vec3{}, dir), sc, sampler); c != emission {
				t.Fatalf("Depth %d: expected exactly %v, got %v", depth, emission, c)
			}
		}
	}
}

func TestPathTracingMissedRay(t *testing.T) {
	sky := scene.NewSkyBackground()
	sc := createTestScene(t, sky,
		mustSphere(t, core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 1})

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	c := integrator.RayColor(ray, sc, core.NewSeededSampler(1))
	if expected := sky.Radiance(ray); c != expected {
		t.Errorf("Expected background %v, got %v", expected, c)
	}
}

func TestPathTracingMirrorReflectsBackground(t *testing.T) {
	sky := scene.NewSkyBackground()
	mirror := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	sc := createTestScene(t, sky, mustSphere(t, core.NewVec3(0, 0, -1), 0.5, mirror))
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 5})

	// Head-on hit at (0,0,-0.5) reflects straight back along +Z, toward the horizon
	c := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), sc, core.NewSeededSampler(1))
	expected := core.NewVec3(0.75, 0.85, 1.0).Multiply(0.8)
	if c.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, c)
	}
}

func TestPathTracingLightThroughMirrorNeedsTwoBounces(t *testing.T) {
	emission := core.NewVec3(1, 2, 3)
	mirror := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	sc := createTestScene(t, scene.NewSolidBackground(core.Vec3{}),
		mustSphere(t, core.NewVec3(0, 0, -1), 0.5, mirror),
		mustSphere(t, core.NewVec3(0, 0, 5), 1, material.NewDiffuseLight(emission)))
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	tests := []struct {
		depth    int
		expected core.Vec3
	}{
		{1, core.Vec3{}},
		{2, emission.Multiply(0.8)},
		{10, emission.Multiply(0.8)},
	}

	for _, tt := range tests {
		integrator := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: tt.depth})
		c := integrator.RayColor(ray, sc, core.NewSeededSampler(1))
		if c.Subtract(tt.expected).Length() > 1e-9 {
			t.Errorf("Depth %d: expected %v, got %v", tt.depth, tt.expected, c)
		}
	}
}

func TestPathTracingNonFiniteSampleIsBlack(t *testing.T) {
	broken := material.NewDiffuseLight(core.NewVec3(math.NaN(), 1, math.Inf(1)))
	sc := createTestScene(t, scene.NewSkyBackground(), mustSphere(t, core.NewVec3(0, 0, -1), 0.5, broken))
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 3})

	c := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), sc, core.NewSeededSampler(1))
	if c != (core.Vec3{}) {
		t.Errorf("Expected non-finite sample to be replaced by black, got %v", c)
	}
}

func TestPathTracingDiffuseEnergyBounded(t *testing.T) {
	// A grey diffuse sphere under a white sky can never be brighter than the sky
	sc := createTestScene(t, scene.NewSolidBackground(core.NewVec3(1, 1, 1)),
		mustSphere(t, core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 10})
	sampler := core.NewSeededSampler(3)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	for i := 0; i < 200; i++ {
		c := integrator.RayColor(ray, sc, sampler)
		if c.X > 0.5+1e-9 || c.X < 0 || c.X != c.Y || c.Y != c.Z {
			t.Fatalf("Expected grey value in [0, 0.5], got %v", c)
		}
	}
}

func TestPathTracingDeterministic(t *testing.T) {
	sc := createTestScene(t, scene.NewSkyBackground(),
		mustSphere(t, core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
		mustSphere(t, core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0))))
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{MaxDepth: 20})
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0.1, -0.2, -1))

	first := integrator.RayColor(ray, sc, core.NewSeededSampler(99))
	second := integrator.RayColor(ray, sc, core.NewSeededSampler(99))
	if first != second {
		t.Errorf("Expected identical results for identical seeds, got %v and %v", first, second)
	}
}
