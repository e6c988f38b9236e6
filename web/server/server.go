package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var logger = log.New("server")

// Options configures the preview server
type Options struct {
	Port          int
	ScenesDir     string        // Directory of JSON scene descriptions
	Assets        scene.Assets  // Resources for the built-in scenes
	Workers       int           // Render workers per request; 0 means one per CPU
	RenderTimeout time.Duration // Upper bound for a single render; 0 disables it
}

// Server handles web requests for the path tracer
type Server struct {
	echo    *echo.Echo
	options Options
}

// NewServer creates a new web server with all routes registered
func NewServer(options Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(corsMiddleware)
	e.Use(requestLogger)

	s := &Server{echo: e, options: options}

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/inspect", s.handleInspect)

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.options.Port)
	logger.Noticef("starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for active ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		logger.Infof("%s %s -> %d (%v)", c.Request().Method, c.Request().URL.RequestURI(),
			c.Response().Status, time.Since(start).Round(time.Millisecond))
		return nil
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files, grouped
func (s *Server) handleScenes(c echo.Context) error {
	response, err := scene.ListAllScenes(s.options.ScenesDir)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, response)
}

// handleRender renders a scene synchronously and returns it as a PNG
func (s *Server) handleRender(c echo.Context) error {
	cfg, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cfg.Workers = s.options.Workers

	sceneObj, err := s.loadScene(cfg.Scene)
	if err != nil {
		return sceneError(err)
	}
	cfg.ApplyScene(sceneObj)
	if err := sceneObj.Preprocess(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if s.options.RenderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.RenderTimeout)
		defer cancel()
	}

	if cfg.Width*sceneObj.Camera.Height() > 800*600 && sceneObj.SamplingConfig.SamplesPerPixel > 100 {
		logger.Warningf("large render of %s with %d spp may be slow", cfg.Scene, sceneObj.SamplingConfig.SamplesPerPixel)
	}

	rt := renderer.NewRaytracer(sceneObj, nil, cfg.RenderOptions(sceneObj))
	fb, stats, err := rt.Render(ctx)
	if errors.Is(err, renderer.ErrInterrupted) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "render did not finish in time")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, fb.ToImage()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
	}

	header := c.Response().Header()
	header.Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	header.Set("X-Total-Samples", strconv.Itoa(stats.TotalSamples))
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// loadScene resolves a catalogue ID: "file:<name>" reads <name>.json from the
// scenes directory, anything else is a built-in scene
func (s *Server) loadScene(id string) (*scene.Scene, error) {
	if name, ok := strings.CutPrefix(id, "file:"); ok {
		if name == "" || name != filepath.Base(name) {
			return nil, fmt.Errorf("%q: %w", id, scene.ErrUnknownScene)
		}
		return loaders.LoadSceneFile(filepath.Join(s.options.ScenesDir, name+".json"))
	}
	return scene.NewBuiltinScene(id, s.options.Assets)
}

// sceneError maps scene loading failures to HTTP errors
func sceneError(err error) error {
	switch {
	case errors.Is(err, scene.ErrUnknownScene), errors.Is(err, fs.ErrNotExist):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, loaders.ErrInvalidScene), errors.Is(err, loaders.ErrUnknownReference):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// parseRenderRequest turns query parameters into a render configuration.
// Missing parameters keep the scene's own values.
func parseRenderRequest(values url.Values) (config.RenderConfig, error) {
	cfg := config.DefaultRenderConfig()
	cfg.Scene = "cornell-box"
	cfg.Width = 400
	cfg.SamplesPerPixel = 16

	if id := values.Get("scene"); id != "" {
		cfg.Scene = id
	}

	var err error
	if cfg.Width, err = parseIntParam(values, "width", cfg.Width, 16, 2000); err != nil {
		return cfg, err
	}
	if cfg.SamplesPerPixel, err = parseIntParam(values, "spp", cfg.SamplesPerPixel, 1, 10000); err != nil {
		return cfg, err
	}
	if cfg.MaxDepth, err = parseIntParam(values, "depth", config.UseSceneDepth, 0, 500); err != nil {
		return cfg, err
	}
	seed, err := parseIntParam(values, "seed", int(cfg.Seed), 0, 1<<31-1)
	if err != nil {
		return cfg, err
	}
	cfg.Seed = int64(seed)

	return cfg, cfg.Validate()
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
