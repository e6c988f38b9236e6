package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// DiffuseLight represents a light-emitting material. It never scatters.
type DiffuseLight struct {
	Emit     Texture // Emitted radiance
	OneSided bool    // Emit only from the front face
}

// NewDiffuseLight creates a two-sided emitter with a constant color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emit: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a two-sided emitter whose radiance varies with a texture
func NewTexturedDiffuseLight(emission Texture) *DiffuseLight {
	return &DiffuseLight{Emit: emission}
}

// Scatter always absorbs; lights only emit
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the texture's radiance at the hit
func (e *DiffuseLight) Emitted(rayIn core.Ray, hit HitRecord) core.Vec3 {
	if e.OneSided && !hit.FrontFace {
		return core.Vec3{}
	}
	return e.Emit.Evaluate(hit.UV, hit.Point)
}

func (*DiffuseLight) material() {}
