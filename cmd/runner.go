package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/sleeve/internal/render"
	"github.com/desertthunder/sleeve/internal/repositories"
	"github.com/desertthunder/sleeve/internal/services"
	"github.com/desertthunder/sleeve/internal/shared"
	"github.com/desertthunder/sleeve/internal/tasks"
	"github.com/desertthunder/sleeve/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	client     services.PlaylistClient
	fetcher    services.ImageFetcher
	httpClient *http.Client
	logger     *log.Logger
	input      io.Reader
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Client and Fetcher replace the Spotify and artwork services when set.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Client     services.PlaylistClient
	Fetcher    services.ImageFetcher
	HTTPClient *http.Client
	Logger     *log.Logger
	Input      io.Reader
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		client:     opts.Client,
		fetcher:    opts.Fetcher,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		input:      opts.Input,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		makeCommand, tracksCommand, previewCommand, setupCommand, cacheCommand, historyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig returns the active config, switching to the file named by --config when it differs.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	path := cmd.String("config")
	if path == "" || path == r.configPath {
		return r.config, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if path == defaultConfigPath {
			return r.config, nil
		}
		return nil, fmt.Errorf("%w: %s not found", shared.ErrMissingConfig, path)
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv()

	r.config, r.configPath = config, path
	return config, nil
}

// playlistClient returns the injected client or an authenticated Spotify service.
func (r *Runner) playlistClient(ctx context.Context, config *shared.Config) (services.PlaylistClient, error) {
	if r.client != nil {
		return r.client, nil
	}

	creds := config.Credentials.Spotify.Map()
	spotify, err := services.NewSpotifyService(creds)
	if err != nil {
		return nil, fmt.Errorf("%w (set %s and %s or run 'sleeve setup')", err, shared.EnvSpotifyClientID, shared.EnvSpotifyClientSecret)
	}
	if err := spotify.Authenticate(ctx, creds); err != nil {
		return nil, err
	}

	r.logger.Debug("authenticated", "service", spotify.Name())
	r.client = spotify
	return spotify, nil
}

// openCache opens the artwork cache database.
func (r *Runner) openCache(config *shared.Config) (*repositories.ArtworkRepository, *repositories.RunRepository, func(), error) {
	db, err := shared.OpenCache(config.Cache.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open cache: %w", err)
	}

	closeFn := func() {
		if err := db.Close(); err != nil {
			r.logger.Warn("failed to close cache", "error", err)
		}
	}
	return repositories.NewArtworkRepository(db), repositories.NewRunRepository(db), closeFn, nil
}

// artworkFetcher returns the injected fetcher or an [services.ArtworkService], backed by the cache when enabled.
// The returned RunRepository is nil without a cache.
func (r *Runner) artworkFetcher(config *shared.Config, useCache bool) (services.ImageFetcher, *repositories.RunRepository, func(), error) {
	noop := func() {}

	var (
		cache   services.ArtworkCache
		runs    *repositories.RunRepository
		closeFn = noop
	)
	if useCache {
		artwork, runRepo, c, err := r.openCache(config)
		if err != nil {
			return nil, nil, noop, err
		}
		cache, runs, closeFn = artwork, runRepo, c
		r.logger.Debug("artwork cache enabled", "path", config.Cache.Path)
	}

	if r.fetcher != nil {
		return r.fetcher, runs, closeFn, nil
	}

	svc := services.NewArtworkService(services.ArtworkOpts{
		Timeout:           time.Duration(config.Artwork.TimeoutSeconds) * time.Second,
		UserAgent:         config.Artwork.UserAgent,
		RequestsPerSecond: config.Artwork.RequestsPerSecond,
		Cache:             cache,
		Logger:            r.logger,
	})
	return svc, runs, closeFn, nil
}

func fontOptions(config *shared.Config) render.FontOptions {
	return render.FontOptions{
		TitleSize:  config.Fonts.TitleSize,
		TrackSize:  config.Fonts.TrackSize,
		TitlePath:  config.Fonts.TitlePath,
		TrackPath:  config.Fonts.TrackPath,
		ArtistPath: config.Fonts.ArtistPath,
	}
}

func sleeveOptions(config *shared.Config) tasks.SleeveOptions {
	return tasks.SleeveOptions{
		Width:          config.Sleeve.Width,
		Height:         config.Sleeve.Height,
		GridSize:       config.Sleeve.GridSize,
		Columns:        config.Sleeve.Columns,
		CollageColumns: config.Sleeve.CollageColumns,
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", ui.Styles().Title(title))
	r.writePlain("═══════════════════════════════════════\n")
}
