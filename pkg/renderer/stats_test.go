package renderer

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if ps.GetColor() != (core.Vec3{}) {
		t.Errorf("Expected black for an empty pixel, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))
	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
	if ps.GetColor() != core.NewVec3(0.5, 0.5, 0) {
		t.Errorf("Expected (0.5,0.5,0), got %v", ps.GetColor())
	}
	if len(ps.Luminance) != 2 || math.Abs(ps.Luminance[0]-0.299) > 1e-9 {
		t.Errorf("Expected luminance [0.299 0.587], got %v", ps.Luminance)
	}

	ps.Reset()
	if ps.SampleCount != 0 || len(ps.Luminance) != 0 || ps.ColorAccum != (core.Vec3{}) {
		t.Errorf("Expected Reset to clear the pixel, got %+v", ps)
	}
}

func TestEstimatorVariance(t *testing.T) {
	tests := []struct {
		name     string
		samples  []float64
		expected float64
	}{
		{"no samples", nil, 0},
		{"single sample", []float64{5}, 0},
		{"constant", []float64{2, 2, 2, 2}, 0},
		// Sample variance divided by the sample count
		{"two samples", []float64{1, 3}, 1},
		{"four samples", []float64{0, 0, 2, 2}, 1.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimatorVariance(tt.samples); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestRenderStats_Rates(t *testing.T) {
	stats := RenderStats{TotalPixels: 10, TotalSamples: 40, Elapsed: 2 * time.Second}

	if stats.AverageSamples() != 4 {
		t.Errorf("Expected 4 samples per pixel, got %f", stats.AverageSamples())
	}
	if stats.SamplesPerSecond() != 20 {
		t.Errorf("Expected 20 samples/s, got %f", stats.SamplesPerSecond())
	}

	var empty RenderStats
	if empty.AverageSamples() != 0 || empty.SamplesPerSecond() != 0 {
		t.Errorf("Expected zero rates for empty stats, got %f and %f", empty.AverageSamples(), empty.SamplesPerSecond())
	}
}

func TestRenderStats_WriteTable(t *testing.T) {
	stats := RenderStats{
		Rows:         12,
		TotalSamples: 480,
		Tiles:        3,
		Elapsed:      time.Second,
		Workers: []WorkerStats{
			{ID: 0, Tiles: 2, Rows: 8, Samples: 320, Busy: 800 * time.Millisecond},
			{ID: 1, Tiles: 1, Rows: 4, Samples: 160, Busy: 400 * time.Millisecond},
		},
	}

	var buf bytes.Buffer
	stats.WriteTable(&buf)
	out := buf.String()

	for _, want := range []string{"WORKER", "UTILIZATION", "80.0%", "40.0%", "TOTAL", "480/S"} {
		if !strings.Contains(strings.ToUpper(out), want) {
			t.Errorf("Expected table to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCalculateAverageLuminance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 0, 255})

	if got := CalculateAverageLuminance(img); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected 0.5, got %f", got)
	}
	if got := CalculateAverageLuminance(image.NewRGBA(image.Rectangle{})); got != 0 {
		t.Errorf("Expected 0 for an empty image, got %f", got)
	}
}
