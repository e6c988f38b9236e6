package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// noObject marks an internal BVH node
const noObject = -1

// maxTraversalStack bounds the traversal stack. Median splits keep depth near log2(n),
// so this is far beyond any reachable tree height.
const maxTraversalStack = 128

// bvhNode is one entry in the BVH arena. Internal nodes refer to their children by
// arena index; leaves refer to exactly one object by index.
type bvhNode struct {
	bbox        core.AABB
	left, right int32
	object      int32
}

func (n *bvhNode) isLeaf() bool {
	return n.object != noObject
}

// BVH is a bounding volume hierarchy stored as a flat node arena. The root is node 0.
// It is read-only after construction and safe to share across goroutines.
type BVH struct {
	nodes   []bvhNode
	objects []Hittable
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	AvgDepth   float64
}

// NewBVH builds a hierarchy over objects. The split axis is the longest axis of the
// node's bounding box; objects are ordered by box centroid on that axis and split at the median.
func NewBVH(objects []Hittable) *BVH {
	bvh := &BVH{objects: make([]Hittable, len(objects))}
	copy(bvh.objects, objects)

	if len(objects) == 0 {
		return bvh
	}

	indices := make([]int32, len(objects))
	for i := range indices {
		indices[i] = int32(i)
	}
	bvh.nodes = make([]bvhNode, 0, 2*len(objects)-1)
	bvh.build(indices)

	return bvh
}

// build appends the subtree over indices to the arena and returns its root index
func (bvh *BVH) build(indices []int32) int32 {
	if len(indices) == 1 {
		return bvh.addLeaf(indices[0])
	}

	self := int32(len(bvh.nodes))
	bvh.nodes = append(bvh.nodes, bvhNode{object: noObject})

	var left, right int32
	if len(indices) == 2 {
		left = bvh.addLeaf(indices[0])
		right = bvh.addLeaf(indices[1])
	} else {
		bbox := core.EmptyAABB()
		for _, idx := range indices {
			bbox = bbox.Union(bvh.objects[idx].BoundingBox())
		}
		axis := bbox.LongestAxis()

		sort.SliceStable(indices, func(i, j int) bool {
			ci := bvh.objects[indices[i]].BoundingBox().Center().Axis(axis)
			cj := bvh.objects[indices[j]].BoundingBox().Center().Axis(axis)
			return ci < cj
		})

		mid := len(indices) / 2
		left = bvh.build(indices[:mid])
		right = bvh.build(indices[mid:])
	}

	bvh.nodes[self].left = left
	bvh.nodes[self].right = right
	bvh.nodes[self].bbox = bvh.nodes[left].bbox.Union(bvh.nodes[right].bbox)
	return self
}

func (bvh *BVH) addLeaf(object int32) int32 {
	bvh.nodes = append(bvh.nodes, bvhNode{
		bbox:   bvh.objects[object].BoundingBox(),
		left:   noObject,
		right:  noObject,
		object: object,
	})
	return int32(len(bvh.nodes) - 1)
}

// Hit returns the closest intersection in [tMin, tMax]. An empty BVH never hits.
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler, rec *material.HitRecord) bool {
	if len(bvh.nodes) == 0 {
		return false
	}

	var stack [maxTraversalStack]int32
	top := 0
	stack[top] = 0
	top++

	hitAnything := false
	closestSoFar := tMax

	for top > 0 {
		top--
		node := &bvh.nodes[stack[top]]

		if !node.bbox.Hit(ray, tMin, closestSoFar) {
			continue
		}

		if node.isLeaf() {
			if bvh.objects[node.object].Hit(ray, tMin, closestSoFar, sampler, rec) {
				hitAnything = true
				closestSoFar = rec.T
			}
			continue
		}

		stack[top] = node.right
		stack[top+1] = node.left
		top += 2
	}

	return hitAnything
}

// BoundingBox returns the box around every object, or an empty box
func (bvh *BVH) BoundingBox() core.AABB {
	if len(bvh.nodes) == 0 {
		return core.EmptyAABB()
	}
	return bvh.nodes[0].bbox
}

// Len returns the number of objects in the hierarchy
func (bvh *BVH) Len() int {
	return len(bvh.objects)
}

// Stats walks the arena and reports node counts and depths
func (bvh *BVH) Stats() BVHStats {
	var stats BVHStats
	if len(bvh.nodes) == 0 {
		return stats
	}

	type entry struct {
		node  int32
		depth int
	}
	pending := []entry{{node: 0}}
	totalDepth := 0

	for len(pending) > 0 {
		e := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		node := &bvh.nodes[e.node]

		stats.TotalNodes++
		stats.MaxDepth = max(stats.MaxDepth, e.depth)

		if node.isLeaf() {
			stats.LeafNodes++
			totalDepth += e.depth
			continue
		}
		pending = append(pending, entry{node.left, e.depth + 1}, entry{node.right, e.depth + 1})
	}

	stats.AvgDepth = float64(totalDepth) / float64(stats.LeafNodes)
	return stats
}

func (*BVH) hittable() {}
