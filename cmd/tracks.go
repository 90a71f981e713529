package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/sleeve/internal/formatter"
	"github.com/desertthunder/sleeve/internal/models"
	"github.com/desertthunder/sleeve/internal/services"
	"github.com/desertthunder/sleeve/internal/shared"
	"github.com/urfave/cli/v3"
)

const maxTitleWidth = 60

// Tracks fetches the playlist and prints its tracklist as text, Markdown or CSV.
func (r *Runner) Tracks(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	ref := cmd.String("playlist")
	if ref == "" {
		return fmt.Errorf("%w: --playlist is required", shared.ErrMissingArgument)
	}

	client, err := r.playlistClient(ctx, config)
	if err != nil {
		return err
	}

	export, err := exportPlaylist(ctx, client, ref)
	if err != nil {
		return err
	}
	r.logger.Info("fetched playlist", "title", export.Playlist.Name, "tracks", len(export.Tracks))

	format := cmd.String("format")
	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteExport(export, format, path); err != nil {
			return err
		}
		r.writePlain("✓ Tracklist written to %s\n", path)
		return nil
	}

	if format == "" || format == formatter.FormatText {
		return r.writeTrackTable(export)
	}

	data, err := formatter.Export(export, format)
	if err != nil {
		return err
	}
	_, err = r.output.Write(data)
	return err
}

// exportPlaylist uses [services.Service.ExportPlaylist] when the client offers it.
func exportPlaylist(ctx context.Context, client services.PlaylistClient, ref string) (*models.PlaylistExport, error) {
	if svc, ok := client.(services.Service); ok {
		return svc.ExportPlaylist(ctx, ref)
	}

	title, err := client.GetTitle(ctx, ref)
	if err != nil {
		return nil, err
	}
	tracks, err := client.GetTracks(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &models.PlaylistExport{
		Playlist: models.Playlist{Name: title, TrackCount: len(tracks)},
		Tracks:   tracks,
	}, nil
}

func (r *Runner) writeTrackTable(export *models.PlaylistExport) error {
	r.writePlainHeader(export.Playlist.Name)
	for i, track := range export.Tracks {
		if err := r.writePlain("%3d. %s - %s\n", i+1, shared.Truncate(track.Title, maxTitleWidth), track.Artist); err != nil {
			return err
		}
	}
	return r.writePlainln("%d tracks", len(export.Tracks))
}
