package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCheckerTexture_Parity(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	checker := NewCheckerColors(2.0, even, odd)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"Origin cell", core.NewVec3(0.5, 0.5, 0.5), even},
		{"Step in X", core.NewVec3(2.5, 0.5, 0.5), odd},
		{"Step in X and Y", core.NewVec3(2.5, 2.5, 0.5), even},
		{"Negative cell", core.NewVec3(-0.5, 0.5, 0.5), odd},
		{"Two negative cells", core.NewVec3(-0.5, -0.5, 0.5), even},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Evaluate(core.Vec2{}, tt.point); got != tt.expected {
				t.Errorf("Point %v: expected %v, got %v", tt.point, tt.expected, got)
			}
		})
	}
}

func TestNoiseTexture(t *testing.T) {
	a := NewNoiseTexture(4, 99)
	b := NewNoiseTexture(4, 99)
	sampler := core.NewSeededSampler(5)

	for i := 0; i < 200; i++ {
		p := sampler.Get3D().Multiply(10)
		ca := a.Evaluate(core.Vec2{}, p)
		if ca != b.Evaluate(core.Vec2{}, p) {
			t.Fatalf("Expected equal seeds to give equal noise at %v", p)
		}
		if ca.X < 0 || ca.X > 1 {
			t.Fatalf("Expected noise in [0,1], got %v at %v", ca, p)
		}
	}
}

func TestPerlin_ZeroAtLatticePoints(t *testing.T) {
	p := NewPerlin(1)
	for _, point := range []core.Vec3{{}, core.NewVec3(1, 2, 3), core.NewVec3(-4, 0, 7)} {
		if n := p.Noise(point); n != 0 {
			t.Errorf("Expected gradient noise to vanish at lattice point %v, got %f", point, n)
		}
	}
}

func TestDiffuseLight_Emission(t *testing.T) {
	emission := core.NewVec3(4, 4, 4)
	light := NewDiffuseLight(emission)

	if _, scattered := light.Scatter(core.Ray{}, HitRecord{}, fixedSampler{}); scattered {
		t.Error("Expected light to never scatter")
	}

	front := HitRecord{FrontFace: true}
	back := HitRecord{FrontFace: false}
	if got := light.Emitted(core.Ray{}, back); got != emission {
		t.Errorf("Expected two-sided light to emit from the back, got %v", got)
	}

	light.OneSided = true
	if got := light.Emitted(core.Ray{}, front); got != emission {
		t.Errorf("Expected front emission %v, got %v", emission, got)
	}
	if got := light.Emitted(core.Ray{}, back); got != (core.Vec3{}) {
		t.Errorf("Expected one-sided light to be dark from the back, got %v", got)
	}
}

func TestIsotropic_ScattersUnitDirections(t *testing.T) {
	albedo := core.NewVec3(0.2, 0.4, 0.6)
	iso := NewIsotropic(albedo)
	sampler := core.NewSeededSampler(11)

	var up, down int
	for i := 0; i < 1000; i++ {
		result, ok := iso.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), HitRecord{}, sampler)
		if !ok {
			t.Fatal("Isotropic should always scatter")
		}
		if result.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, result.Attenuation)
		}
		if result.Scattered.Direction.Y > 0 {
			up++
		} else {
			down++
		}
	}

	// Uniform on the sphere: roughly half go each way
	if up < 400 || down < 400 {
		t.Errorf("Expected roughly even split, got up=%d down=%d", up, down)
	}
}
