package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MeshFace is one already-parsed triangle: positions, normals and UVs per corner.
// Zero normals fall back to the face normal. UVs are used only when HasUVs is set,
// otherwise the corners map to (0,0), (1,0) and (0,1). Material overrides the mesh
// material when set.
type MeshFace struct {
	Vertices [3]core.Vec3
	Normals  [3]core.Vec3
	UVs      [3]core.Vec2
	HasUVs   bool
	Material material.Material
}

// Mesh is a triangle collection with its own BVH
type Mesh struct {
	triangles []*Triangle
	bvh       *BVH
	skipped   int
}

// NewMesh builds a mesh from faces. Degenerate faces are skipped and counted;
// a mesh with no usable faces is an error.
func NewMesh(faces []MeshFace, mat material.Material) (*Mesh, error) {
	mesh := &Mesh{}
	hittables := make([]Hittable, 0, len(faces))

	for i, face := range faces {
		faceMat := face.Material
		if faceMat == nil {
			faceMat = mat
		}
		uvs := face.UVs
		if !face.HasUVs {
			uvs = defaultTriangleUVs
		}

		tri, err := NewTriangleWithAttributes(face.Vertices, face.Normals, uvs, faceMat)
		if errors.Is(err, ErrDegenerateTriangle) {
			mesh.skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("mesh face %d: %w", i, err)
		}
		mesh.triangles = append(mesh.triangles, tri)
		hittables = append(hittables, tri)
	}

	if len(mesh.triangles) == 0 {
		return nil, fmt.Errorf("mesh with %d faces (%d degenerate): %w", len(faces), mesh.skipped, ErrEmptyMesh)
	}

	mesh.bvh = NewBVH(hittables)
	return mesh, nil
}

// NewIndexedMesh creates a flat-shaded mesh from vertices and face indices.
// Each group of 3 indices forms a triangle.
func NewIndexedMesh(vertices []core.Vec3, indices []int, mat material.Material) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("mesh: %d indices is not a multiple of 3", len(indices))
	}

	faces := make([]MeshFace, len(indices)/3)
	for i := range faces {
		for k := 0; k < 3; k++ {
			idx := indices[i*3+k]
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("mesh: face %d index %d out of range [0, %d)", i, idx, len(vertices))
			}
			faces[i].Vertices[k] = vertices[idx]
		}
	}

	return NewMesh(faces, mat)
}

// Hit delegates to the mesh's BVH
func (m *Mesh) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler, rec *material.HitRecord) bool {
	return m.bvh.Hit(ray, tMin, tMax, sampler, rec)
}

// BoundingBox returns the bounding box of all triangles
func (m *Mesh) BoundingBox() core.AABB {
	return m.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles kept in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// SkippedFaces returns how many degenerate faces were dropped
func (m *Mesh) SkippedFaces() int {
	return m.skipped
}

// Stats returns statistics of the mesh's private BVH
func (m *Mesh) Stats() BVHStats {
	return m.bvh.Stats()
}

func (*Mesh) hittable() {}
