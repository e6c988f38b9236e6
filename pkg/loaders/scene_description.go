package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// vec3 is a JSON [x, y, z] triple
type vec3 [3]float64

func (v vec3) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// sceneDescription is the JSON scene file layout
type sceneDescription struct {
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Group       string                     `json:"group"`
	Camera      *cameraDescription         `json:"camera"`
	Background  *backgroundDescription     `json:"background"`
	Sampling    *scene.SamplingConfig      `json:"sampling"`
	Textures    map[string]json.RawMessage `json:"textures"`
	Materials   map[string]json.RawMessage `json:"materials"`
	Objects     []objectDescription        `json:"objects"`
}

type cameraDescription struct {
	Center        vec3    `json:"center"`
	LookAt        vec3    `json:"lookAt"`
	Up            *vec3   `json:"up"`
	Width         int     `json:"width"`
	AspectRatio   float64 `json:"aspectRatio"`
	VFov          float64 `json:"vfov"`
	Aperture      float64 `json:"aperture"`
	FocusDistance float64 `json:"focusDistance"`
	ShutterOpen   float64 `json:"shutterOpen"`
	ShutterClose  float64 `json:"shutterClose"`
}

type backgroundDescription struct {
	Type   string `json:"type"` // "solid", "gradient" or "sky"
	Color  vec3   `json:"color"`
	Top    vec3   `json:"top"`
	Bottom vec3   `json:"bottom"`
}

type textureDescription struct {
	Type   string  `json:"type"` // "solid", "checker", "image", "noise", "uv", "gradient" or "planet"
	Color  vec3    `json:"color"`
	Scale  float64 `json:"scale"`
	Even   string  `json:"even"`
	Odd    string  `json:"odd"`
	Path   string  `json:"path"`
	Seed   int64   `json:"seed"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Top    vec3    `json:"top"`
	Bottom vec3    `json:"bottom"`
}

type materialDescription struct {
	Type            string  `json:"type"` // "lambertian", "metal", "dielectric", "light" or "isotropic"
	Albedo          *vec3   `json:"albedo"`
	Texture         string  `json:"texture"`
	Fuzz            float64 `json:"fuzz"`
	RefractiveIndex float64 `json:"refractiveIndex"`
	Emission        *vec3   `json:"emission"`
	OneSided        bool    `json:"oneSided"`
}

type objectDescription struct {
	Type     string `json:"type"` // "sphere", "quad", "triangle", "box", "mesh", "instance" or "medium"
	Material string `json:"material"`

	// sphere
	Center  vec3    `json:"center"`
	Center2 *vec3   `json:"center2"`
	Radius  float64 `json:"radius"`

	// quad
	Corner vec3 `json:"corner"`
	U      vec3 `json:"u"`
	V      vec3 `json:"v"`

	// triangle, inline mesh
	Vertices []vec3 `json:"vertices"`
	Indices  []int  `json:"indices"`

	// box
	Min vec3 `json:"min"`
	Max vec3 `json:"max"`

	// mesh file
	Path string `json:"path"`

	// instance
	Object    *objectDescription `json:"object"`
	Translate vec3               `json:"translate"`
	Axis      *vec3              `json:"axis"`
	Angle     float64            `json:"angle"`

	// medium
	Boundary *objectDescription `json:"boundary"`
	Density  float64            `json:"density"`
	Albedo   *vec3              `json:"albedo"`
	Texture  string             `json:"texture"`
}

// sceneResolver turns named texture and material definitions into values,
// resolving each name once
type sceneResolver struct {
	baseDir string

	textureDefs  map[string]json.RawMessage
	materialDefs map[string]json.RawMessage

	textures  map[string]material.Texture
	materials map[string]material.Material
	resolving map[string]bool
}

// LoadSceneDescription decodes a JSON scene description. Relative image and mesh
// paths are resolved against the working directory. The returned scene is not
// yet preprocessed.
func LoadSceneDescription(r io.Reader) (*scene.Scene, error) {
	return loadSceneDescription(r, ".")
}

// LoadSceneFile loads a JSON scene description from disk. Relative image and
// mesh paths are resolved against the file's directory.
func LoadSceneFile(path string) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := loadSceneDescription(file, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// defaultSampling is used for the fields a scene file leaves out
var defaultSampling = scene.SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}

func loadSceneDescription(r io.Reader, baseDir string) (*scene.Scene, error) {
	sampling := defaultSampling
	desc := sceneDescription{Sampling: &sampling}
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&desc); err != nil {
		return nil, fmt.Errorf("decoding scene description: %v: %w", err, ErrInvalidScene)
	}

	if desc.Camera == nil {
		return nil, fmt.Errorf("missing camera: %w", ErrInvalidScene)
	}
	if len(desc.Objects) == 0 {
		return nil, fmt.Errorf("no objects: %w", ErrInvalidScene)
	}
	if desc.Sampling == nil {
		desc.Sampling = &sampling
	}
	if desc.Sampling.SamplesPerPixel < 1 || desc.Sampling.MaxDepth < 0 {
		return nil, fmt.Errorf("sampling %+v out of range: %w", *desc.Sampling, ErrInvalidScene)
	}

	res := &sceneResolver{
		baseDir:      baseDir,
		textureDefs:  desc.Textures,
		materialDefs: desc.Materials,
		textures:     make(map[string]material.Texture),
		materials:    make(map[string]material.Material),
		resolving:    make(map[string]bool),
	}

	s := &scene.Scene{
		Name:           desc.Name,
		CameraConfig:   desc.Camera.config(),
		SamplingConfig: *desc.Sampling,
	}

	background, err := desc.Background.build()
	if err != nil {
		return nil, err
	}
	s.Background = background

	for i := range desc.Objects {
		obj, err := res.object(&desc.Objects[i])
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.Add(obj)
	}

	logger.Debugf("scene %q: %d objects, %d textures, %d materials",
		s.Name, len(s.Objects), len(res.textures), len(res.materials))
	return s, nil
}

func (c *cameraDescription) config() geometry.CameraConfig {
	up := core.NewVec3(0, 1, 0)
	if c.Up != nil {
		up = c.Up.vec()
	}
	aspect := c.AspectRatio
	if aspect == 0 {
		aspect = 16.0 / 9.0
	}
	return geometry.CameraConfig{
		Center:        c.Center.vec(),
		LookAt:        c.LookAt.vec(),
		Up:            up,
		Width:         c.Width,
		AspectRatio:   aspect,
		VFov:          c.VFov,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
		ShutterOpen:   c.ShutterOpen,
		ShutterClose:  c.ShutterClose,
	}
}

func (b *backgroundDescription) build() (scene.Background, error) {
	if b == nil {
		return scene.NewSolidBackground(core.Vec3{}), nil
	}
	switch b.Type {
	case "solid":
		return scene.NewSolidBackground(b.Color.vec()), nil
	case "gradient":
		return scene.NewGradientBackground(b.Top.vec(), b.Bottom.vec()), nil
	case "sky":
		return scene.NewSkyBackground(), nil
	default:
		return nil, fmt.Errorf("background type %q: %w", b.Type, ErrInvalidScene)
	}
}

// texture resolves a named texture, building the textures it refers to first
func (res *sceneResolver) texture(name string) (material.Texture, error) {
	if tex, ok := res.textures[name]; ok {
		return tex, nil
	}
	raw, ok := res.textureDefs[name]
	if !ok {
		return nil, fmt.Errorf("texture %q: %w", name, ErrUnknownReference)
	}
	if res.resolving[name] {
		return nil, fmt.Errorf("texture %q refers to itself: %w", name, ErrInvalidScene)
	}
	res.resolving[name] = true
	defer delete(res.resolving, name)

	var desc textureDescription
	if err := json.Unmarshal(raw, &desc); err != nil {
		return nil, fmt.Errorf("texture %q: %v: %w", name, err, ErrInvalidScene)
	}

	tex, err := res.buildTexture(&desc)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", name, err)
	}
	res.textures[name] = tex
	return tex, nil
}

func (res *sceneResolver) buildTexture(desc *textureDescription) (material.Texture, error) {
	width, height := desc.Width, desc.Height
	if width <= 0 || height <= 0 {
		width, height = 256, 128
	}

	switch desc.Type {
	case "solid":
		return material.NewSolidColor(desc.Color.vec()), nil
	case "checker":
		even, err := res.texture(desc.Even)
		if err != nil {
			return nil, err
		}
		odd, err := res.texture(desc.Odd)
		if err != nil {
			return nil, err
		}
		if desc.Scale <= 0 {
			return nil, fmt.Errorf("checker scale %g must be positive: %w", desc.Scale, ErrInvalidScene)
		}
		return material.NewCheckerTexture(desc.Scale, even, odd), nil
	case "image":
		if desc.Path == "" {
			return nil, fmt.Errorf("image texture without path: %w", ErrInvalidScene)
		}
		return LoadImageTexture(res.path(desc.Path))
	case "noise":
		return material.NewNoiseTexture(desc.Scale, desc.Seed), nil
	case "uv":
		return material.NewUVDebugTexture(width, height), nil
	case "gradient":
		return material.NewGradientTexture(width, height, desc.Top.vec(), desc.Bottom.vec()), nil
	case "planet":
		return material.NewPlanetTexture(width, height, desc.Seed), nil
	default:
		return nil, fmt.Errorf("texture type %q: %w", desc.Type, ErrInvalidScene)
	}
}

// material resolves a named material
func (res *sceneResolver) material(name string) (material.Material, error) {
	if mat, ok := res.materials[name]; ok {
		return mat, nil
	}
	raw, ok := res.materialDefs[name]
	if !ok {
		return nil, fmt.Errorf("material %q: %w", name, ErrUnknownReference)
	}

	var desc materialDescription
	if err := json.Unmarshal(raw, &desc); err != nil {
		return nil, fmt.Errorf("material %q: %v: %w", name, err, ErrInvalidScene)
	}

	mat, err := res.buildMaterial(&desc)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", name, err)
	}
	res.materials[name] = mat
	return mat, nil
}

func (res *sceneResolver) buildMaterial(desc *materialDescription) (material.Material, error) {
	switch desc.Type {
	case "lambertian":
		tex, err := res.colorOrTexture(desc.Albedo, desc.Texture)
		if err != nil {
			return nil, err
		}
		return material.NewTexturedLambertian(tex), nil
	case "metal":
		if desc.Albedo == nil {
			return nil, fmt.Errorf("metal without albedo: %w", ErrInvalidScene)
		}
		return material.NewMetal(desc.Albedo.vec(), desc.Fuzz), nil
	case "dielectric":
		if desc.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("refractive index %g: %w", desc.RefractiveIndex, ErrInvalidScene)
		}
		return material.NewDielectric(desc.RefractiveIndex), nil
	case "light":
		tex, err := res.colorOrTexture(desc.Emission, desc.Texture)
		if err != nil {
			return nil, err
		}
		light := material.NewTexturedDiffuseLight(tex)
		light.OneSided = desc.OneSided
		return light, nil
	case "isotropic":
		tex, err := res.colorOrTexture(desc.Albedo, desc.Texture)
		if err != nil {
			return nil, err
		}
		return material.NewTexturedIsotropic(tex), nil
	default:
		return nil, fmt.Errorf("material type %q: %w", desc.Type, ErrInvalidScene)
	}
}

// colorOrTexture prefers a named texture over a constant color
func (res *sceneResolver) colorOrTexture(color *vec3, textureName string) (material.Texture, error) {
	if textureName != "" {
		return res.texture(textureName)
	}
	if color == nil {
		return nil, fmt.Errorf("neither color nor texture given: %w", ErrInvalidScene)
	}
	return material.NewSolidColor(color.vec()), nil
}

// object builds a hittable, recursing into instances and media
func (res *sceneResolver) object(desc *objectDescription) (geometry.Hittable, error) {
	switch desc.Type {
	case "instance":
		if desc.Object == nil {
			return nil, fmt.Errorf("instance without object: %w", ErrInvalidScene)
		}
		inner, err := res.object(desc.Object)
		if err != nil {
			return nil, err
		}
		axis := core.NewVec3(0, 1, 0)
		if desc.Axis != nil {
			axis = desc.Axis.vec()
		}
		return geometry.NewInstance(inner, desc.Translate.vec(), axis, desc.Angle)
	case "medium":
		if desc.Boundary == nil {
			return nil, fmt.Errorf("medium without boundary: %w", ErrInvalidScene)
		}
		boundary, err := res.object(desc.Boundary)
		if err != nil {
			return nil, err
		}
		albedo, err := res.colorOrTexture(desc.Albedo, desc.Texture)
		if err != nil {
			return nil, err
		}
		return geometry.NewTexturedConstantMedium(boundary, desc.Density, albedo)
	}

	if desc.Material == "" {
		return nil, fmt.Errorf("%s without material: %w", desc.Type, ErrInvalidScene)
	}
	mat, err := res.material(desc.Material)
	if err != nil {
		return nil, err
	}

	switch desc.Type {
	case "sphere":
		if desc.Center2 != nil {
			return geometry.NewMovingSphere(desc.Center.vec(), desc.Center2.vec(), desc.Radius, mat)
		}
		return geometry.NewSphere(desc.Center.vec(), desc.Radius, mat)
	case "quad":
		return geometry.NewQuad(desc.Corner.vec(), desc.U.vec(), desc.V.vec(), mat)
	case "triangle":
		if len(desc.Vertices) != 3 {
			return nil, fmt.Errorf("triangle with %d vertices: %w", len(desc.Vertices), ErrInvalidScene)
		}
		return geometry.NewTriangle(desc.Vertices[0].vec(), desc.Vertices[1].vec(), desc.Vertices[2].vec(), mat)
	case "box":
		return geometry.NewBox(desc.Min.vec(), desc.Max.vec(), mat)
	case "mesh":
		return res.mesh(desc, mat)
	default:
		return nil, fmt.Errorf("object type %q: %w", desc.Type, ErrInvalidScene)
	}
}

// mesh loads an OBJ file or builds an indexed mesh from inline vertices
func (res *sceneResolver) mesh(desc *objectDescription, mat material.Material) (geometry.Hittable, error) {
	if desc.Path != "" {
		faces, err := LoadOBJFile(res.path(desc.Path))
		if err != nil {
			return nil, err
		}
		mesh, err := geometry.NewMesh(faces, mat)
		if err != nil {
			return nil, err
		}
		if mesh.SkippedFaces() > 0 {
			logger.Warningf("%s: skipped %d degenerate faces", desc.Path, mesh.SkippedFaces())
		}
		return mesh, nil
	}

	vertices := make([]core.Vec3, len(desc.Vertices))
	for i, v := range desc.Vertices {
		vertices[i] = v.vec()
	}
	return geometry.NewIndexedMesh(vertices, desc.Indices, mat)
}

func (res *sceneResolver) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(res.baseDir, p)
}
