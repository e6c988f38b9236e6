package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("loaders")

// objReader accumulates the vertex attribute lists of a Wavefront OBJ stream
type objReader struct {
	vertexList []core.Vec3
	normalList []core.Vec3
	uvList     []core.Vec2

	faces []geometry.MeshFace
}

// LoadOBJ parses Wavefront OBJ geometry into triangles. Polygons with more than
// three vertices are fan-triangulated. Faces without normals get zero normals
// and HasUVs is set only when every corner has texture coordinates; geometry.NewMesh
// substitutes the face normal and the default UV layout for the rest.
// Materials, groups and smoothing directives are ignored.
func LoadOBJ(r io.Reader) ([]geometry.MeshFace, error) {
	reader := &objReader{}
	if err := reader.parse(r); err != nil {
		return nil, err
	}
	return reader.faces, nil
}

// LoadOBJFile parses the OBJ file at path
func LoadOBJFile(path string) ([]geometry.MeshFace, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	start := time.Now()
	faces, err := LoadOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Infof("loaded %d triangles from %s in %v", len(faces), path, time.Since(start).Round(time.Millisecond))
	return faces, nil
}

func (r *objReader) parse(in io.Reader) error {
	lineNum := 0
	skipped := make(map[string]int)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		var err error
		switch lineTokens[0] {
		case "v":
			var v core.Vec3
			if v, err = parseVec3(lineTokens); err == nil {
				r.vertexList = append(r.vertexList, v)
			}
		case "vn":
			var v core.Vec3
			if v, err = parseVec3(lineTokens); err == nil {
				r.normalList = append(r.normalList, v)
			}
		case "vt":
			var v core.Vec2
			if v, err = parseVec2(lineTokens); err == nil {
				r.uvList = append(r.uvList, v)
			}
		case "f":
			err = r.parseFace(lineTokens)
		default:
			skipped[lineTokens[0]]++
		}

		if err != nil {
			return fmt.Errorf("line %d: %v: %w", lineNum, err, ErrMalformedOBJ)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading OBJ data: %w", err)
	}

	for keyword, count := range skipped {
		logger.Debugf("ignored %d '%s' directives", count, keyword)
	}
	return nil
}

// objVertex is one resolved face corner
type objVertex struct {
	position core.Vec3
	normal   core.Vec3
	uv       core.Vec2
	hasUV    bool
}

// parseFace parses a face definition. Each argument is one of
//   - vertexIndex
//   - vertexIndex/uvIndex
//   - vertexIndex//normalIndex
//   - vertexIndex/uvIndex/normalIndex
//
// Indices start from 1 and may be negative to indicate an offset off the end
// of the corresponding list.
func (r *objReader) parseFace(lineTokens []string) error {
	if len(lineTokens) < 4 {
		return fmt.Errorf("unsupported syntax for 'f'; expected at least 3 arguments; got %d", len(lineTokens)-1)
	}

	corners := make([]objVertex, len(lineTokens)-1)
	expIndices := 0
	for arg := range corners {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first arg defines the format for the following args
		if arg == 0 {
			expIndices = len(vTokens)
		} else if len(vTokens) != expIndices {
			return fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}
		if len(vTokens) > 3 {
			return fmt.Errorf("face argument %d has %d indices", arg, len(vTokens))
		}

		if vTokens[0] == "" {
			return fmt.Errorf("face argument %d does not include a vertex index", arg)
		}
		offset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList))
		if err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %v", arg, err)
		}
		corners[arg].position = r.vertexList[offset]

		if len(vTokens) > 1 && vTokens[1] != "" {
			offset, err = selectFaceCoordIndex(vTokens[1], len(r.uvList))
			if err != nil {
				return fmt.Errorf("could not parse tex coord for face argument %d: %v", arg, err)
			}
			corners[arg].uv = r.uvList[offset]
			corners[arg].hasUV = true
		}

		if len(vTokens) > 2 && vTokens[2] != "" {
			offset, err = selectFaceCoordIndex(vTokens[2], len(r.normalList))
			if err != nil {
				return fmt.Errorf("could not parse normal coord for face argument %d: %v", arg, err)
			}
			corners[arg].normal = r.normalList[offset]
		}
	}

	// Fan triangulation around the first corner
	for i := 1; i+1 < len(corners); i++ {
		tri := [3]objVertex{corners[0], corners[i], corners[i+1]}

		face := geometry.MeshFace{HasUVs: true}
		for k, c := range tri {
			face.Vertices[k] = c.position
			face.Normals[k] = c.normal
			face.UVs[k] = c.uv
			face.HasUVs = face.HasUVs && c.hasUV
		}
		if !face.HasUVs {
			face.UVs = [3]core.Vec2{}
		}
		r.faces = append(r.faces, face)
	}

	return nil
}

// selectFaceCoordIndex converts a 1-based or negative OBJ index into a list offset
func selectFaceCoordIndex(indexToken string, coordListLen int) (int, error) {
	index, err := strconv.Atoi(indexToken)
	if err != nil {
		return -1, err
	}

	var offset int
	if index < 0 {
		offset = coordListLen + index
	} else {
		offset = index - 1
	}
	if offset < 0 || offset >= coordListLen {
		return -1, fmt.Errorf("index %d out of bounds for %d entries", index, coordListLen)
	}
	return offset, nil
}

// parseVec3 parses the three coordinates following a keyword
func parseVec3(lineTokens []string) (core.Vec3, error) {
	if len(lineTokens) < 4 {
		return core.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	var coords [3]float64
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 64)
		if err != nil {
			return core.Vec3{}, err
		}
		coords[tokIdx-1] = coord
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// parseVec2 parses a texture coordinate; a third (w) component is ignored
func parseVec2(lineTokens []string) (core.Vec2, error) {
	if len(lineTokens) < 3 {
		return core.Vec2{}, fmt.Errorf("unsupported syntax for '%s'; expected 2 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	u, err := strconv.ParseFloat(lineTokens[1], 64)
	if err != nil {
		return core.Vec2{}, err
	}
	v, err := strconv.ParseFloat(lineTokens[2], 64)
	if err != nil {
		return core.Vec2{}, err
	}
	return core.Vec2{X: u, Y: v}, nil
}
