package main

import (
	"context"
	"time"

	"github.com/desertthunder/sleeve/internal/shared"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

type cacheStatsOutput struct {
	Path        string     `json:"path"`
	Count       int        `json:"count"`
	TotalBytes  int64      `json:"total_bytes"`
	LastFetched *time.Time `json:"last_fetched,omitempty"`
}

// CacheStats prints the number and total size of cached artwork images.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	artwork, _, closeFn, err := r.openCache(config)
	if err != nil {
		return err
	}
	defer closeFn()

	stats, err := artwork.Stats()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		out := cacheStatsOutput{Path: config.Cache.Path, Count: stats.Count, TotalBytes: stats.TotalBytes}
		if !stats.LastFetched.IsZero() {
			out.LastFetched = &stats.LastFetched
		}
		return r.writeJSON(out, true)
	}

	r.writePlainHeader("Artwork Cache")
	r.writePlain("Path: %s\n", config.Cache.Path)
	r.writePlain("Images: %d\n", stats.Count)
	r.writePlain("Size: %s\n", humanize.Bytes(uint64(stats.TotalBytes)))
	if !stats.LastFetched.IsZero() {
		r.writePlain("Last fetched: %s\n", humanize.Time(stats.LastFetched))
	}
	if !config.Cache.Enabled {
		r.writePlainln("Note: caching is off by default; pass --cache or set [cache] enabled = true")
	}
	return nil
}

// CacheClear deletes every cached artwork image.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	artwork, _, closeFn, err := r.openCache(config)
	if err != nil {
		return err
	}
	defer closeFn()

	n, err := artwork.Clear()
	if err != nil {
		return err
	}

	r.logger.Info("cleared artwork cache", "path", config.Cache.Path, "removed", n)
	return r.writePlain("✓ Removed %d cached images\n", n)
}

// History lists the most recent sleeves recorded in the cache database.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	_, runs, closeFn, err := r.openCache(config)
	if err != nil {
		return err
	}
	defer closeFn()

	recent, err := runs.Recent(int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if len(recent) == 0 {
		return r.writePlain("No sleeves recorded yet (runs are recorded when the artwork cache is enabled)\n")
	}

	r.writePlainHeader("Recent Sleeves")
	for _, run := range recent {
		r.writePlain("%s  %-40s %3d tracks  %s\n",
			humanize.Time(run.CreatedAt), shared.Truncate(run.Title, 40), run.TrackCount, run.OutputDir)
	}
	return nil
}

