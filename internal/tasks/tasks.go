package tasks

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/sleeve/internal/models"
	"github.com/desertthunder/sleeve/internal/render"
	"github.com/desertthunder/sleeve/internal/repositories"
	"github.com/desertthunder/sleeve/internal/services"
	"github.com/desertthunder/sleeve/internal/shared"
)

// Output filenames, relative to [SleeveRequest.OutputDir].
const (
	GradientFile  = "gradient.png"
	TitledFile    = "gradient_with_text.png"
	TracklistFile = "tracklist.png"
	CollageFile   = "collage.png"
	SleeveFile    = "cd_sleeve_art.png"
)

// SleeveRequest holds the user inputs of a single run.
type SleeveRequest struct {
	PlaylistRef string     // Spotify link, URI or ID
	Start       models.RGB // top-left gradient color
	End         models.RGB // bottom-right gradient color
	OutputDir   string     // defaults to the working directory
}

// OutputFiles lists the paths written by a run.
type OutputFiles struct {
	Gradient  string
	Titled    string
	Tracklist string
	Collage   string
	Sleeve    string
}

// All returns the paths in the order they are written.
func (f OutputFiles) All() []string {
	return []string{f.Gradient, f.Titled, f.Tracklist, f.Collage, f.Sleeve}
}

// SleeveResult contains all data from a completed run.
type SleeveResult struct {
	RunID  string
	Title  string
	Tracks []models.Track
	Files  OutputFiles
}

// SleeveOptions are the canvas and layout settings shared by every run.
type SleeveOptions struct {
	Width          int
	Height         int
	GridSize       int
	Columns        int
	CollageColumns int
	Title          render.TitleOptions
}

// DefaultSleeveOptions returns a 1000x1000 canvas with a 5x5 gradient, two tracklist columns and five collage columns.
func DefaultSleeveOptions() SleeveOptions {
	return SleeveOptions{
		Width:          1000,
		Height:         1000,
		GridSize:       render.DefaultGridSize,
		Columns:        render.DefaultColumns,
		CollageColumns: render.DefaultCollageColumns,
	}
}

// RunRecorder persists completed runs (see [repositories.RunRepository]).
type RunRecorder interface {
	Create(run *repositories.SleeveRun) error
}

// SleeveEngine turns a playlist and two colors into the five sleeve images.
type SleeveEngine struct {
	client  services.PlaylistClient
	fetcher services.ImageFetcher
	faces   *render.Faces
	opts    SleeveOptions
	logger  *log.Logger
	runs    RunRecorder
}

// NewSleeveEngine creates a new SleeveEngine with the provided collaborators.
func NewSleeveEngine(client services.PlaylistClient, fetcher services.ImageFetcher, faces *render.Faces, opts SleeveOptions, logger *log.Logger) *SleeveEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	defaults := DefaultSleeveOptions()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = defaults.Width, defaults.Height
	}
	if opts.GridSize < 2 {
		opts.GridSize = defaults.GridSize
	}
	if opts.Columns < 1 {
		opts.Columns = defaults.Columns
	}
	if opts.CollageColumns < 1 {
		opts.CollageColumns = defaults.CollageColumns
	}

	return &SleeveEngine{
		client:  client,
		fetcher: fetcher,
		faces:   faces,
		opts:    opts,
		logger:  logger,
	}
}

// SetRunRecorder enables run history.
func (e *SleeveEngine) SetRunRecorder(r RunRecorder) {
	e.runs = r
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *SleeveEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run fetches the playlist and writes the gradient, titled cover, tracklist, collage and sleeve images.
func (e *SleeveEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, req SleeveRequest) (*SleeveResult, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: playlist client not initialized", shared.ErrServiceUnavailable)
	}
	if e.fetcher == nil {
		return nil, fmt.Errorf("%w: image fetcher not initialized", shared.ErrServiceUnavailable)
	}
	if e.faces == nil {
		return nil, fmt.Errorf("%w: fonts not loaded", shared.ErrServiceUnavailable)
	}
	if req.PlaylistRef == "" {
		return nil, fmt.Errorf("%w: playlist link is required", shared.ErrMissingArgument)
	}

	outDir := req.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &SleeveResult{
		RunID: shared.GenerateID(),
		Files: OutputFiles{
			Gradient:  filepath.Join(outDir, GradientFile),
			Titled:    filepath.Join(outDir, TitledFile),
			Tracklist: filepath.Join(outDir, TracklistFile),
			Collage:   filepath.Join(outDir, CollageFile),
			Sleeve:    filepath.Join(outDir, SleeveFile),
		},
	}
	logger := shared.WithLogger(e.logger, "run_id", result.RunID)

	e.sendProgress(progress, fetchTitleUpdate())
	title, err := e.client.GetTitle(ctx, req.PlaylistRef)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist title: %w", err)
	}
	result.Title = title

	e.sendProgress(progress, fetchTracksUpdate(title))
	tracks, err := e.client.GetTracks(ctx, req.PlaylistRef)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist tracks: %w", err)
	}
	result.Tracks = tracks
	logger.Info("fetched playlist", "title", title, "tracks", len(tracks))

	w, h := e.opts.Width, e.opts.Height

	gradient := render.GradientGrid(req.Start, req.End, w, h, e.opts.GridSize)
	if err := e.save(progress, logger, RenderGradient, gradient, result.Files.Gradient); err != nil {
		return nil, err
	}

	render.OverlayTitle(gradient, title, e.faces.Title, e.opts.Title)
	if err := e.save(progress, logger, RenderTitle, gradient, result.Files.Titled); err != nil {
		return nil, err
	}

	tracklist := render.Rotate180(render.Tracklist(tracks, w, h, e.faces, render.TracklistOptions{Columns: e.opts.Columns}))
	if err := e.save(progress, logger, RenderTracklist, tracklist, result.Files.Tracklist); err != nil {
		return nil, err
	}

	collage, err := render.Collage(ctx, tracks, w, h, e.fetcher, render.CollageOptions{
		Columns: e.opts.CollageColumns,
		OnTile: func(i, total int, tr models.Track) {
			logger.Debug("added cover", "step", i+1, "total", total, "title", tr.Title)
			e.sendProgress(progress, fetchArtworkUpdate(i+1, total, tr))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build collage: %w", err)
	}
	if err := e.save(progress, logger, FetchArtwork, collage, result.Files.Collage); err != nil {
		return nil, err
	}

	sleeve := render.Sleeve(gradient, tracklist, collage)
	if err := e.save(progress, logger, AssembleSleeve, sleeve, result.Files.Sleeve); err != nil {
		return nil, err
	}

	e.record(logger, req, result, outDir)
	e.sendProgress(progress, completeUpdate(result))
	return result, nil
}

func (e *SleeveEngine) save(progress chan<- ProgressUpdate, logger *log.Logger, phase Phase, img image.Image, path string) error {
	if err := render.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	logger.Debug("saved image", "phase", phase, "path", path)
	e.sendProgress(progress, savedUpdate(phase, path))
	return nil
}

// record stores the run when history is enabled. Failures are logged only.
func (e *SleeveEngine) record(logger *log.Logger, req SleeveRequest, result *SleeveResult, outDir string) {
	if e.runs == nil {
		return
	}

	playlistID, err := services.ParsePlaylistID(req.PlaylistRef)
	if err != nil {
		playlistID = req.PlaylistRef
	}

	run := &repositories.SleeveRun{
		ID:         result.RunID,
		PlaylistID: playlistID,
		Title:      result.Title,
		TrackCount: len(result.Tracks),
		OutputDir:  outDir,
	}
	if err := e.runs.Create(run); err != nil {
		logger.Warn("failed to record run", "error", err)
	}
}
