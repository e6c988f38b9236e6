package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/web/server"
)

// ServeFlags are the flags of the serve command
var ServeFlags = []cli.Flag{
	cli.IntFlag{Name: "port, p", Value: 8080, Usage: "port to serve on"},
	cli.StringFlag{Name: "dir", Value: "scenes", Usage: "directory of JSON scene descriptions"},
	cli.IntFlag{Name: "workers", Usage: "render goroutines per request (0 uses one per logical CPU)"},
	cli.DurationFlag{Name: "timeout", Value: 2 * time.Minute, Usage: "maximum time per render (0 disables the limit)"},
	cli.Int64Flag{Name: "seed", Value: 42, Usage: "seed for procedural textures of the built-in scenes"},
	cli.StringFlag{Name: "earth-texture", Usage: "image file for the earth scene"},
	cli.StringFlag{Name: "mesh", Usage: "OBJ file for the mesh scene"},
}

// Serve runs the HTTP preview server until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	assets, err := loadAssets(ctx, scene.Assets{Seed: ctx.Int64("seed")})
	if err != nil {
		return err
	}

	workers := ctx.Int("workers")
	if workers == 0 {
		workers = defaultWorkers()
	}
	logHostSummary()

	srv := server.NewServer(server.Options{
		Port:          ctx.Int("port"),
		ScenesDir:     ctx.String("dir"),
		Assets:        assets,
		Workers:       workers,
		RenderTimeout: ctx.Duration("timeout"),
	})

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-signalCtx.Done():
	}

	logger.Notice("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
