package renderer

import (
	"fmt"
	"image"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about a finished (or interrupted) render
type RenderStats struct {
	Width           int
	Height          int
	SamplesPerPixel int           // Samples requested per pixel
	Rows            int           // Rows completed
	TotalPixels     int           // Pixels actually rendered
	TotalSamples    int           // Camera rays traced
	Tiles           int           // Tiles completed
	Elapsed         time.Duration // Wall-clock time
	MeanVariance    float64       // Mean per-pixel variance of the luminance estimate
	Workers         []WorkerStats
}

// WorkerStats summarises the work done by one worker
type WorkerStats struct {
	ID      int
	Tiles   int
	Rows    int
	Samples int
	Busy    time.Duration
}

// TileStats is the outcome of rendering one tile
type TileStats struct {
	Rows        int           // Rows completed
	Pixels      int           // Pixels completed
	Samples     int           // Camera rays traced
	VarianceSum float64       // Sum of per-pixel estimator variances
	Duration    time.Duration // Time spent on the tile
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	Luminance   []float64 // Luminance of each sample, for the variance estimate
	SampleCount int       // Number of samples taken
}

// Reset clears the statistics, keeping the luminance buffer
func (ps *PixelStats) Reset() {
	ps.ColorAccum = core.Vec3{}
	ps.Luminance = ps.Luminance[:0]
	ps.SampleCount = 0
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.Luminance = append(ps.Luminance, color.Luminance())
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// AverageSamples returns the mean number of samples per rendered pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

// WriteTable renders the per-worker statistics as a text table
func (s RenderStats) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Worker", "Tiles", "Rows", "Samples", "Busy", "Utilization"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, ws := range s.Workers {
		utilization := 0.0
		if s.Elapsed > 0 {
			utilization = 100 * ws.Busy.Seconds() / s.Elapsed.Seconds()
		}
		table.Append([]string{
			fmt.Sprint(ws.ID),
			fmt.Sprint(ws.Tiles),
			fmt.Sprint(ws.Rows),
			fmt.Sprint(ws.Samples),
			ws.Busy.Round(time.Millisecond).String(),
			fmt.Sprintf("%.1f%%", utilization),
		})
	}

	table.SetFooter([]string{
		"Total",
		fmt.Sprint(s.Tiles),
		fmt.Sprint(s.Rows),
		fmt.Sprint(s.TotalSamples),
		s.Elapsed.Round(time.Millisecond).String(),
		fmt.Sprintf("%.0f/s", s.SamplesPerSecond()),
	})
	table.Render()
}

// CalculateAverageLuminance calculates the average luminance of an 8-bit image
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	var totalLuminance float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			r := float64(c.R) / 255.0
			g := float64(c.G) / 255.0
			b := float64(c.B) / 255.0
			totalLuminance += 0.2126*r + 0.7152*g + 0.0722*b
		}
	}

	return totalLuminance / float64(bounds.Dx()*bounds.Dy())
}
