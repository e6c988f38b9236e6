package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, also the sampler seed offset
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image, row by row.
// A tileWidth equal to the image width yields horizontal bands.
func NewTileGrid(width, height, tileWidth, tileHeight int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileWidth - 1) / tileWidth // Ceiling division
	tilesY := (height + tileHeight - 1) / tileHeight

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileWidth
			y0 := tileY * tileHeight
			x1 := min(x0+tileWidth, width) // Don't exceed image bounds
			y1 := min(y0+tileHeight, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// TileRenderer renders individual tiles using an integrator
type TileRenderer struct {
	scene           *scene.Scene
	integrator      integrator.Integrator
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer for a preprocessed scene
func NewTileRenderer(scene *scene.Scene, integratorInst integrator.Integrator, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		scene:           scene,
		integrator:      integratorInst,
		samplesPerPixel: samplesPerPixel,
	}
}

// RenderTile renders every pixel of the tile into fb. Tiles never overlap, so
// concurrent calls write disjoint pixels. The context is checked before each
// row; on cancellation the rows done so far stay in fb and ErrInterrupted is returned.
func (tr *TileRenderer) RenderTile(ctx context.Context, tile *Tile, fb *FrameBuffer, sampler core.Sampler) (TileStats, error) {
	start := time.Now()
	var stats TileStats
	ps := PixelStats{Luminance: make([]float64, 0, tr.samplesPerPixel)}

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			return stats, fmt.Errorf("tile %d at row %d: %w", tile.ID, j, ErrInterrupted)
		}

		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			tr.samplePixel(i, j, &ps, sampler)
			fb.Set(i, j, ps.GetColor())

			stats.Pixels++
			stats.Samples += ps.SampleCount
			stats.VarianceSum += estimatorVariance(ps.Luminance)
		}
		stats.Rows++
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// samplePixel averages samplesPerPixel integrator estimates through pixel (i, j)
func (tr *TileRenderer) samplePixel(i, j int, ps *PixelStats, sampler core.Sampler) {
	ps.Reset()
	camera := tr.scene.Camera

	for s := 0; s < tr.samplesPerPixel; s++ {
		ray := camera.GetRay(i, j, sampler)
		color := tr.integrator.RayColor(ray, tr.scene, sampler)
		if !color.IsFinite() {
			color = core.Vec3{}
		}
		ps.AddSample(color)
	}
}

// estimatorVariance returns the variance of the mean of the given samples,
// or 0 when fewer than two samples exist
func estimatorVariance(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	return stat.Variance(samples, nil) / float64(len(samples))
}
