package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("config: invalid render configuration")

// Output formats
const (
	FormatPPM = "ppm"
	FormatPNG = "png"
)

// UseSceneDepth leaves the scene's own bounce limit in place
const UseSceneDepth = -1

// RenderConfig is the complete set of user-facing render settings. Zero values
// for Width, AspectRatio and SamplesPerPixel, and UseSceneDepth for MaxDepth,
// keep the values the scene defines.
type RenderConfig struct {
	Scene     string // Built-in scene ID
	SceneFile string // JSON scene description; overrides Scene

	Width           int
	AspectRatio     float64
	SamplesPerPixel int
	MaxDepth        int

	Seed       int64
	Workers    int // 0 means one per logical CPU
	TileHeight int // Rows per render tile

	Output string // File path, or empty for stdout
	Format string // FormatPPM or FormatPNG; empty infers it from Output
}

// DefaultRenderConfig returns the settings used when no flags are given
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Scene:      "material-spheres",
		MaxDepth:   UseSceneDepth,
		Seed:       42,
		TileHeight: renderer.DefaultTileHeight,
	}
}

// Validate checks every field independently of any scene
func (c RenderConfig) Validate() error {
	var problems []string

	if c.Scene == "" && c.SceneFile == "" {
		problems = append(problems, "no scene selected")
	}
	if c.Width < 0 {
		problems = append(problems, fmt.Sprintf("width %d is negative", c.Width))
	}
	if c.AspectRatio < 0 {
		problems = append(problems, fmt.Sprintf("aspect ratio %g is negative", c.AspectRatio))
	}
	if c.SamplesPerPixel < 0 {
		problems = append(problems, fmt.Sprintf("samples per pixel %d is negative", c.SamplesPerPixel))
	}
	if c.MaxDepth < UseSceneDepth {
		problems = append(problems, fmt.Sprintf("max depth %d is below %d", c.MaxDepth, UseSceneDepth))
	}
	if c.Workers < 0 {
		problems = append(problems, fmt.Sprintf("workers %d is negative", c.Workers))
	}
	if c.TileHeight < 0 {
		problems = append(problems, fmt.Sprintf("tile height %d is negative", c.TileHeight))
	}
	if _, err := c.OutputFormat(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(problems, "; "), ErrInvalidConfig)
	}
	return nil
}

// OutputFormat returns the explicit format, or the one implied by the output
// file extension, defaulting to PPM
func (c RenderConfig) OutputFormat() (string, error) {
	format := strings.ToLower(c.Format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Output)), ".")
		if format != FormatPNG {
			format = FormatPPM
		}
	}

	switch format {
	case FormatPPM, FormatPNG:
		return format, nil
	default:
		return "", fmt.Errorf("unknown output format %q", c.Format)
	}
}

// ApplyScene writes the overrides into the scene's camera and sampling settings.
// The scene must be preprocessed afterwards.
func (c RenderConfig) ApplyScene(s *scene.Scene) {
	if c.Width > 0 {
		s.CameraConfig.Width = c.Width
	}
	if c.AspectRatio > 0 {
		s.CameraConfig.AspectRatio = c.AspectRatio
	}
	if c.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = c.SamplesPerPixel
	}
	if c.MaxDepth != UseSceneDepth {
		s.SamplingConfig.MaxDepth = c.MaxDepth
	}
}

// RenderOptions combines the scene's sampling settings with the execution settings
func (c RenderConfig) RenderOptions(s *scene.Scene) renderer.Options {
	options := renderer.OptionsFromScene(s)
	options.Workers = c.Workers
	options.Seed = c.Seed
	if c.TileHeight > 0 {
		options.TileHeight = c.TileHeight
	}
	return options
}

// Assets returns the asset seed for built-in scenes
func (c RenderConfig) Assets() scene.Assets {
	return scene.Assets{Seed: c.Seed}
}
