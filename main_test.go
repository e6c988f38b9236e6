package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestNewApp_Commands(t *testing.T) {
	app := newApp()
	for _, name := range []string{"render", "scenes", "serve"} {
		if app.Command(name) == nil {
			t.Errorf("Expected command %q to be registered", name)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name   string
		scene  string
		output string
		check  func(t *testing.T, data []byte)
	}{
		{"ppm", "quads", "quads.ppm", func(t *testing.T, data []byte) {
			if !bytes.HasPrefix(data, []byte("P3\n16 16\n255\n")) {
				t.Errorf("Expected a 16x16 P3 header, got %q", data[:min(len(data), 20)])
			}
			if lines := strings.Count(string(data), "\n"); lines != 3+16*16 {
				t.Errorf("Expected %d lines, got %d", 3+16*16, lines)
			}
		}},
		{"png", "cornell-box", "cornell.png", func(t *testing.T, data []byte) {
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Failed to decode PNG: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
				t.Errorf("Expected 16x16 image, got %v", b)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), tt.output)
			args := []string{"pathtracer", "render", "--scene", tt.scene, "--width", "16",
				"--spp", "1", "--depth", "3", "--workers", "2", "--out", out}
			if err := newApp().Run(args); err != nil {
				t.Fatalf("render failed: %v", err)
			}

			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, data)
		})
	}
}

func TestRenderCommand_SceneFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tetra.ppm")
	args := []string{"pathtracer", "render", "--scene-file", filepath.Join("scenes", "tetrahedron.json"),
		"--width", "8", "--spp", "1", "--out", out}
	if err := newApp().Run(args); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("P3\n8 8\n255\n")) {
		t.Errorf("Expected an 8x8 P3 header, got %q", data[:min(len(data), 20)])
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected error
	}{
		{"unknown scene", []string{"--scene", "teapot"}, scene.ErrUnknownScene},
		{"negative spp", []string{"--spp", "-1"}, config.ErrInvalidConfig},
		{"bad format", []string{"--format", "exr"}, config.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"pathtracer", "render", "--out", filepath.Join(t.TempDir(), "x.ppm")}, tt.args...)
			err := newApp().Run(args)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestScenesCommand(t *testing.T) {
	if err := newApp().Run([]string{"pathtracer", "scenes", "--dir", t.TempDir()}); err != nil {
		t.Errorf("scenes failed: %v", err)
	}
}

func TestNewApp_VerboseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"v", []string{"pathtracer", "-v", "scenes", "--dir", "missing"}},
		{"vv", []string{"pathtracer", "-vv", "scenes", "--dir", "missing"}},
		{"version", []string{"pathtracer", "--version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(func() { log.SetLevel(log.Notice) })
			if err := newApp().Run(tt.args); err != nil {
				t.Errorf("Expected %v to run, got %v", tt.args, err)
			}
		})
	}
}
