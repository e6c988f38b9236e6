package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

const (
	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"
)

// ErrUnknownScene is returned for a scene ID that is not in the catalogue
var ErrUnknownScene = errors.New("scene: unknown scene")

// SceneInfo describes a renderable scene
type SceneInfo struct {
	ID          string `json:"id"`                 // Unique identifier
	Name        string `json:"name"`               // Display name
	Description string `json:"description"`        // Optional description
	Group       string `json:"group"`              // Grouping category
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to the JSON description (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// Assets carries externally loaded resources into the built-in scenes.
// Zero values select procedural stand-ins.
type Assets struct {
	EarthTexture material.Texture    // Equirectangular map for the earth scene
	MeshFaces    []geometry.MeshFace // Triangles for the mesh scene
	Seed         int64               // Seed for noise textures and random layouts
}

type catalogueEntry struct {
	info  SceneInfo
	build func(Assets) (*Scene, error)
}

var catalogue = []catalogueEntry{
	{builtin("material-spheres", "Diffuse, hollow glass and fuzzy metal spheres on a ground sphere"), NewMaterialSpheresScene},
	{builtin("checkered-spheres", "Two spheres with a 3D checker texture"), NewCheckeredSpheresScene},
	{builtin("earth", "Image-textured globe"), NewEarthScene},
	{builtin("perlin-spheres", "Marble spheres from Perlin turbulence"), NewPerlinSpheresScene},
	{builtin("quads", "Five colored quads around the view axis"), NewQuadsScene},
	{builtin("planars", "One quad and four triangles"), NewPlanarsScene},
	{builtin("mesh", "Triangle mesh from an OBJ file, or an octahedron"), NewMeshScene},
	{builtin("simple-light", "Sphere lit by a rectangular area light"), NewSimpleLightScene},
	{builtin("cornell-box", "Cornell box with two rotated blocks"), NewCornellScene},
	{builtin("cornell-smoke", "Cornell box with smoke-filled blocks"), NewCornellSmokeScene},
	{builtin("bouncing-spheres", "Random spheres with motion blur and depth of field"), NewBouncingSpheresScene},
}

func builtin(id, description string) SceneInfo {
	return SceneInfo{
		ID:          id,
		Name:        titleCase(id),
		Description: description,
		Group:       builtinGroup,
		Type:        "builtin",
	}
}

// BuiltinScenes lists the built-in scenes in catalogue order
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(catalogue))
	for i, entry := range catalogue {
		infos[i] = entry.info
	}
	return infos
}

// NewBuiltinScene builds the catalogue scene with the given ID. The scene still
// needs Preprocess before rendering.
func NewBuiltinScene(id string, assets Assets) (*Scene, error) {
	for _, entry := range catalogue {
		if entry.info.ID == id {
			s, err := entry.build(assets)
			if err != nil {
				return nil, fmt.Errorf("building scene %q: %w", id, err)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", id, ErrUnknownScene)
}

// ListSceneFiles scans dir for JSON scene descriptions. A missing directory yields no scenes.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, path := range files {
		info, err := ParseSceneFileMetadata(path)
		if err != nil {
			logger.Warningf("skipping %s: %v", path, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneFileMetadata reads the name, description and group fields of a JSON
// scene description, falling back to values derived from the file name
func ParseSceneFileMetadata(path string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:       "file:" + base,
		Name:     titleCase(base),
		Group:    fileGroup,
		Type:     "file",
		FilePath: path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return info, err
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("reading scene header: %w", err)
	}

	if header.Name != "" {
		info.Name = header.Name
	}
	if header.Group != "" {
		info.Group = header.Group
	}
	info.Description = header.Description

	return info, nil
}

// ListAllScenes returns built-in scenes and the scene files in dir, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListSceneFiles(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	groupMap := make(map[string][]SceneInfo)
	for _, s := range append(BuiltinScenes(), fileScenes...) {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for name := range groupMap {
		if name != builtinGroup {
			groupNames = append(groupNames, name)
		}
	}
	sort.Strings(groupNames)

	if builtins, ok := groupMap[builtinGroup]; ok {
		response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: builtins})
	}
	for _, name := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-smoke" -> "Cornell Smoke"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
	}

	return strings.Join(words, " ")
}
