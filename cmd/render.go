package cmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderFlags are the flags of the render command
var RenderFlags = []cli.Flag{
	cli.StringFlag{Name: "scene, s", Value: config.DefaultRenderConfig().Scene, Usage: "built-in scene ID (see the scenes command)"},
	cli.StringFlag{Name: "scene-file, f", Usage: "JSON scene description; overrides --scene"},
	cli.IntFlag{Name: "width", Usage: "image width in pixels (0 keeps the scene's width)"},
	cli.Float64Flag{Name: "aspect", Usage: "width/height ratio (0 keeps the scene's ratio)"},
	cli.IntFlag{Name: "spp", Usage: "samples per pixel (0 keeps the scene's value)"},
	cli.IntFlag{Name: "depth", Value: config.UseSceneDepth, Usage: "maximum bounces per path (-1 keeps the scene's value)"},
	cli.Int64Flag{Name: "seed", Value: config.DefaultRenderConfig().Seed, Usage: "random seed"},
	cli.IntFlag{Name: "workers", Usage: "render goroutines (0 uses one per logical CPU)"},
	cli.IntFlag{Name: "tile-height", Value: renderer.DefaultTileHeight, Usage: "rows per render tile"},
	cli.StringFlag{Name: "out, o", Usage: "output image file; stdout when empty"},
	cli.StringFlag{Name: "format", Usage: "output format: ppm or png (default from the --out extension, else ppm)"},
	cli.StringFlag{Name: "earth-texture", Usage: "image file for the earth scene"},
	cli.StringFlag{Name: "mesh", Usage: "OBJ file for the mesh scene"},
}

// renderConfig reads the render flags
func renderConfig(ctx *cli.Context) config.RenderConfig {
	return config.RenderConfig{
		Scene:           ctx.String("scene"),
		SceneFile:       ctx.String("scene-file"),
		Width:           ctx.Int("width"),
		AspectRatio:     ctx.Float64("aspect"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		Seed:            ctx.Int64("seed"),
		Workers:         ctx.Int("workers"),
		TileHeight:      ctx.Int("tile-height"),
		Output:          ctx.String("out"),
		Format:          ctx.String("format"),
	}
}

// loadAssets adds the optional external resources of the built-in scenes to assets
func loadAssets(ctx *cli.Context, assets scene.Assets) (scene.Assets, error) {

	if path := ctx.String("earth-texture"); path != "" {
		tex, err := loaders.LoadImageTexture(path)
		if err != nil {
			return assets, err
		}
		assets.EarthTexture = tex
	}

	if path := ctx.String("mesh"); path != "" {
		faces, err := loaders.LoadOBJFile(path)
		if err != nil {
			return assets, err
		}
		assets.MeshFaces = faces
	}

	return assets, nil
}

// loadScene builds the configured scene, applies the overrides and preprocesses it
func loadScene(cfg config.RenderConfig, assets scene.Assets) (*scene.Scene, error) {
	var (
		sceneObj *scene.Scene
		err      error
	)
	if cfg.SceneFile != "" {
		sceneObj, err = loaders.LoadSceneFile(cfg.SceneFile)
	} else {
		sceneObj, err = scene.NewBuiltinScene(cfg.Scene, assets)
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyScene(sceneObj)
	if err := sceneObj.Preprocess(); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// Render a still frame.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg := renderConfig(ctx)
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}
	if cfg.Workers == 0 {
		cfg.Workers = defaultWorkers()
	}
	logHostSummary()

	assets, err := loadAssets(ctx, cfg.Assets())
	if err != nil {
		return err
	}
	sceneObj, err := loadScene(cfg, assets)
	if err != nil {
		return err
	}
	logger.Infof("scene %s: %d primitives, %dx%d, %d spp, depth %d", sceneObj.Name, sceneObj.PrimitiveCount(),
		sceneObj.Camera.Width(), sceneObj.Camera.Height(),
		sceneObj.SamplingConfig.SamplesPerPixel, sceneObj.SamplingConfig.MaxDepth)

	// Ctrl-C stops the render; the finished rows are still written
	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rt := renderer.NewRaytracer(sceneObj, nil, cfg.RenderOptions(sceneObj))
	fb, stats, renderErr := rt.Render(signalCtx)
	if renderErr != nil && !errors.Is(renderErr, renderer.ErrInterrupted) {
		return renderErr
	}

	if err := writeOutput(fb, format, cfg.Output); err != nil {
		return err
	}
	displayRenderStats(stats, fb)

	return renderErr
}

// writeOutput writes the frame to path, or to stdout when path is empty
func writeOutput(fb *renderer.FrameBuffer, format, path string) error {
	if path == "" {
		return writeImage(os.Stdout, fb, format)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeImage(file, fb, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	logger.Noticef("wrote %dx%d %s image to %s", fb.Width, fb.Height, format, path)
	return nil
}

// writeImage encodes the frame in the given format
func writeImage(w io.Writer, fb *renderer.FrameBuffer, format string) error {
	switch format {
	case config.FormatPNG:
		bw := bufio.NewWriter(w)
		if err := png.Encode(bw, fb.ToImage()); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
		return bw.Flush()
	case config.FormatPPM:
		return fb.WritePPM(w)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func displayRenderStats(stats renderer.RenderStats, fb *renderer.FrameBuffer) {
	var buf bytes.Buffer
	stats.WriteTable(&buf)
	logger.Noticef("rendered %dx%d, %d samples in %v (mean pixel variance %.3g, average luminance %.3f)\n%s",
		stats.Width, stats.Height, stats.TotalSamples, stats.Elapsed.Round(time.Millisecond),
		stats.MeanVariance, renderer.CalculateAverageLuminance(fb.ToImage()), buf.String())
}
