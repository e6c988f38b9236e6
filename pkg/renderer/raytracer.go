package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var logger = log.New("renderer")

// Options controls a single render
type Options struct {
	SamplesPerPixel int   // Camera rays per pixel, at least 1
	MaxDepth        int   // Surface interactions per path; 0 renders black
	Workers         int   // Goroutines; 0 or less means one per CPU
	TileHeight      int   // Rows per tile; 0 or less means DefaultTileHeight
	Seed            int64 // Base seed; tile k samples with Seed+k
}

// DefaultTileHeight is the band height used when Options.TileHeight is unset
const DefaultTileHeight = 8

// OptionsFromScene returns options carrying the scene's own sampling defaults
func OptionsFromScene(s *scene.Scene) Options {
	return Options{
		SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		MaxDepth:        s.SamplingConfig.MaxDepth,
		TileHeight:      DefaultTileHeight,
	}
}

// Validate reports options the renderer cannot honor
func (o Options) Validate() error {
	if o.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel %d: %w", o.SamplesPerPixel, ErrInvalidConfig)
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("max depth %d: %w", o.MaxDepth, ErrInvalidConfig)
	}
	return nil
}

// Raytracer renders a scene into a frame buffer with a pool of tile workers
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	options    Options
}

// NewRaytracer creates a raytracer. A nil integrator selects path tracing
// limited to options.MaxDepth.
func NewRaytracer(s *scene.Scene, integratorInst integrator.Integrator, options Options) *Raytracer {
	if integratorInst == nil {
		integratorInst = integrator.NewPathTracingIntegrator(scene.SamplingConfig{
			SamplesPerPixel: options.SamplesPerPixel,
			MaxDepth:        options.MaxDepth,
		})
	}
	return &Raytracer{
		scene:      s,
		integrator: integratorInst,
		options:    options,
	}
}

// Render traces the whole image. The scene is preprocessed first if that has
// not happened yet. When ctx is cancelled the rows finished so far are
// returned together with an error wrapping ErrInterrupted.
func (rt *Raytracer) Render(ctx context.Context) (*FrameBuffer, RenderStats, error) {
	if rt.scene == nil {
		return nil, RenderStats{}, ErrNoScene
	}
	if err := rt.options.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if rt.scene.BVH == nil || rt.scene.Camera == nil {
		if err := rt.scene.Preprocess(); err != nil {
			return nil, RenderStats{}, fmt.Errorf("preprocessing scene: %w", err)
		}
	}

	camera := rt.scene.Camera
	width, height := camera.Width(), camera.Height()
	tileHeight := rt.options.TileHeight
	if tileHeight <= 0 {
		tileHeight = DefaultTileHeight
	}

	fb := NewFrameBuffer(width, height)
	tiles := NewTileGrid(width, height, width, tileHeight)
	tileRenderer := NewTileRenderer(rt.scene, rt.integrator, rt.options.SamplesPerPixel)
	pool := NewWorkerPool(tileRenderer, rt.options.Workers, len(tiles), rt.options.Seed)

	logger.Infof("rendering %s: %dx%d, %d spp, %d tiles on %d workers",
		rt.scene.Name, width, height, rt.options.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	start := time.Now()
	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, FrameBuffer: fb})
	}
	pool.Stop()

	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: rt.options.SamplesPerPixel,
		Workers:         make([]WorkerStats, pool.GetNumWorkers()),
	}
	for i := range stats.Workers {
		stats.Workers[i].ID = i
	}

	var renderErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}

		ws := &stats.Workers[result.WorkerID]
		ws.Rows += result.Stats.Rows
		ws.Samples += result.Stats.Samples
		ws.Busy += result.Stats.Duration

		stats.Rows += result.Stats.Rows
		stats.TotalPixels += result.Stats.Pixels
		stats.TotalSamples += result.Stats.Samples
		stats.MeanVariance += result.Stats.VarianceSum

		if result.Error != nil {
			if renderErr == nil || !errors.Is(result.Error, ErrInterrupted) {
				renderErr = result.Error
			}
			continue
		}
		ws.Tiles++
		stats.Tiles++
	}

	stats.Elapsed = time.Since(start)
	if stats.TotalPixels > 0 {
		stats.MeanVariance /= float64(stats.TotalPixels)
	}

	if renderErr != nil {
		logger.Warningf("render of %s stopped after %d of %d rows: %v", rt.scene.Name, stats.Rows, height, renderErr)
		return fb, stats, renderErr
	}

	logger.Infof("rendered %s in %v (%.0f samples/s, mean pixel variance %.3g)",
		rt.scene.Name, stats.Elapsed.Round(time.Millisecond), stats.SamplesPerSecond(), stats.MeanVariance)
	return fb, stats, nil
}
