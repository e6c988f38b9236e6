package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// hitEpsilon is the minimum hit distance, keeping scattered rays from re-hitting their origin surface
const hitEpsilon = 0.001

// PathTracingIntegrator implements unidirectional, depth-limited path tracing
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		maxDepth: config.MaxDepth,
	}
}

// RayColor follows the ray through at most MaxDepth surface interactions, adding
// emitted light and the background weighted by the throughput of the path so far.
// A path still bouncing when the depth runs out contributes nothing more.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for depth := pt.maxDepth; depth > 0; depth-- {
		var hit material.HitRecord
		if !scene.Hit(ray, hitEpsilon, math.Inf(1), sampler, &hit) {
			radiance = radiance.Add(throughput.MultiplyVec(scene.BackgroundColor(ray)))
			break
		}

		radiance = radiance.Add(throughput.MultiplyVec(hit.Material.Emitted(ray, hit)))

		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if !didScatter {
			break
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	if !radiance.IsFinite() {
		return core.Vec3{}
	}
	return radiance
}
