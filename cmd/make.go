package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/sleeve/internal/formatter"
	"github.com/desertthunder/sleeve/internal/models"
	"github.com/desertthunder/sleeve/internal/render"
	"github.com/desertthunder/sleeve/internal/shared"
	"github.com/desertthunder/sleeve/internal/tasks"
	"github.com/desertthunder/sleeve/internal/ui"
	"github.com/urfave/cli/v3"
)

// Make gathers the playlist link and gradient colors (flags first, prompts otherwise) and runs the sleeve pipeline.
func (r *Runner) Make(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	prompt := ui.NewPrompt(r.input, r.output)

	ref := cmd.String("playlist")
	if ref == "" {
		if ref, err = prompt.PromptPlaylist(); err != nil {
			return err
		}
	}

	start, err := colorFromFlagOrPrompt(cmd.String("start"), prompt, ui.StartColorLabel)
	if err != nil {
		return err
	}
	end, err := colorFromFlagOrPrompt(cmd.String("end"), prompt, ui.EndColorLabel)
	if err != nil {
		return err
	}

	client, err := r.playlistClient(ctx, config)
	if err != nil {
		return err
	}

	fetcher, runs, closeCache, err := r.artworkFetcher(config, cmd.Bool("cache") || config.Cache.Enabled)
	if err != nil {
		return err
	}
	defer closeCache()

	faces, err := render.LoadFaces(fontOptions(config))
	if err != nil {
		return fmt.Errorf("failed to load fonts: %w", err)
	}
	defer faces.Close()

	engine := tasks.NewSleeveEngine(client, fetcher, faces, sleeveOptions(config), r.logger)
	if runs != nil {
		engine.SetRunRecorder(runs)
	}

	outDir := cmd.String("output")
	if outDir == "" {
		outDir = config.Sleeve.OutputDir
	}

	r.logger.Info("generating sleeve", "playlist", ref, "start", start, "end", end, "output", outDir)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchArtwork:
				if update.Total > 0 && update.Step < update.Total {
					r.logger.Debug(update.Message, "step", update.Step, "total", update.Total)
					continue
				}
				r.writePlain("🖼  %s\n", update.Message)
			case tasks.Complete:
			default:
				r.writePlain("%s %s\n", ui.Styles().OK("•"), update.Message)
			}
		}
	}()

	result, err := engine.Run(ctx, progressCh, tasks.SleeveRequest{
		PlaylistRef: ref,
		Start:       start,
		End:         end,
		OutputDir:   outDir,
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("CD Sleeve Complete!")
	r.writePlain("Playlist: %s (%d tracks)\n", result.Title, len(result.Tracks))
	r.writePlain("Colors: %s → %s\n", start, end)
	for _, path := range result.Files.All() {
		r.writePlain("  %s\n", path)
	}

	if cmd.Bool("readme") {
		export := &models.PlaylistExport{
			Playlist: models.Playlist{Name: result.Title, TrackCount: len(result.Tracks)},
			Tracks:   result.Tracks,
		}
		path, err := formatter.WriteMarkdownExport(export, outDir, filepath.Base(result.Files.Sleeve))
		if err != nil {
			return err
		}
		r.writePlain("  %s\n", path)
	}

	if cmd.Bool("open") {
		if err := shared.OpenPath(result.Files.Sleeve); err != nil {
			r.logger.Warn("failed to open sleeve", "error", err)
		}
	}

	return nil
}

func colorFromFlagOrPrompt(value string, prompt *ui.Prompt, label string) (models.RGB, error) {
	if value == "" {
		return prompt.PromptColor(label)
	}

	c, err := models.ParseRGB(value)
	if err != nil {
		return models.RGB{}, fmt.Errorf("%w: --%s: %v", shared.ErrInvalidArgument, flagForLabel(label), err)
	}
	return c, nil
}

func flagForLabel(label string) string {
	if label == ui.EndColorLabel {
		return "end"
	}
	return "start"
}
