package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/desertthunder/sleeve/internal/server"
	"github.com/desertthunder/sleeve/internal/shared"
	"github.com/desertthunder/sleeve/internal/tasks"
	"github.com/urfave/cli/v3"
)

// previewImages are the files the preview page shows, in pipeline order.
var previewImages = []string{tasks.SleeveFile, tasks.TitledFile, tasks.TracklistFile, tasks.CollageFile, tasks.GradientFile}

// newPreviewRouter builds the router serving dir.
func (r *Runner) newPreviewRouter(dir string) *server.BasicRouter {
	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(server.NewPreviewHandler(dir, "", previewImages))
	return router
}

// Preview serves the output directory on a local web page until interrupted.
func (r *Runner) Preview(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	dir := cmd.String("dir")
	if dir == "" {
		dir = config.Sleeve.OutputDir
	}
	addr := cmd.String("addr")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	url := "http://" + displayHost(addr)
	r.logger.Info("serving preview", "dir", dir, "url", url)
	r.writePlain("Previewing %s at %s (Ctrl+C to stop)\n", dir, url)

	if cmd.Bool("open") {
		if err := shared.OpenPath(url); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	if err := server.Serve(ctx, addr, r.newPreviewRouter(dir)); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	return nil
}

func displayHost(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

// previewCommand serves generated images in the browser
func previewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "View the generated images in a browser",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Directory containing the images (default: [sleeve] output_dir)",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address",
				Value: "localhost:3000",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the page in the default browser",
			},
		},
		Action: r.Preview,
	}
}
