package scene

import (
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// builder collects scene objects and keeps the first construction error, so
// catalogue scenes can chain validating constructors without an if per object.
type builder struct {
	objects []geometry.Hittable
	err     error
}

// check returns h, or nil after recording err
func (b *builder) check(h geometry.Hittable, err error) geometry.Hittable {
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return nil
	}
	return h
}

// add appends h to the scene unless its constructor failed
func (b *builder) add(h geometry.Hittable, err error) {
	if h = b.check(h, err); h != nil {
		b.objects = append(b.objects, h)
	}
}

// scene finishes the build, returning the first error seen
func (b *builder) scene(s *Scene) (*Scene, error) {
	if b.err != nil {
		return nil, b.err
	}
	s.Objects = append(s.Objects, b.objects...)
	return s, nil
}
