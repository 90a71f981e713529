package tasks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/sleeve/internal/models"
	"github.com/desertthunder/sleeve/internal/render"
	"github.com/desertthunder/sleeve/internal/repositories"
	"github.com/desertthunder/sleeve/internal/shared"
	th "github.com/desertthunder/sleeve/internal/testing"
)

const playlistURL = "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=abc"

type mockRecorder struct {
	runs []repositories.SleeveRun
	err  error
}

func (m *mockRecorder) Create(run *repositories.SleeveRun) error {
	if m.err != nil {
		return m.err
	}
	m.runs = append(m.runs, *run)
	return nil
}

func sampleTracks(n int) []models.Track {
	tracks := make([]models.Track, n)
	for i := range tracks {
		tracks[i] = models.Track{
			Title:      fmt.Sprintf("Song %d", i+1),
			Artist:     fmt.Sprintf("Artist %d", i+1),
			ArtworkURL: fmt.Sprintf("https://i.scdn.co/image/%d", i),
		}
	}
	return tracks
}

func newTestEngine(t *testing.T, client *th.MockPlaylistClient, fetcher *th.MockFetcher) *SleeveEngine {
	t.Helper()
	faces, err := render.LoadFaces(render.FontOptions{})
	if err != nil {
		t.Fatalf("LoadFaces() failed: %v", err)
	}
	t.Cleanup(func() { faces.Close() })

	opts := DefaultSleeveOptions()
	opts.Width, opts.Height = 250, 250
	return NewSleeveEngine(client, fetcher, faces, opts, log.New(&bytes.Buffer{}))
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode %s: %v", path, err)
	}
	return img
}

func TestSleeveEngineRun(t *testing.T) {
	red := models.RGB{R: 255}
	blue := models.RGB{B: 255}

	t.Run("writes every image", func(t *testing.T) {
		client := &th.MockPlaylistClient{Title: "Road Trip", Tracks: sampleTracks(7)}
		fetcher := &th.MockFetcher{}
		engine := newTestEngine(t, client, fetcher)
		dir := t.TempDir()

		result, err := engine.Run(context.Background(), nil, SleeveRequest{PlaylistRef: playlistURL, Start: red, End: blue, OutputDir: dir})
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}

		if result.Title != "Road Trip" || len(result.Tracks) != 7 {
			t.Errorf("Unexpected result: title=%q tracks=%d", result.Title, len(result.Tracks))
		}
		if result.RunID == "" {
			t.Error("Expected a run ID")
		}

		names := []string{GradientFile, TitledFile, TracklistFile, CollageFile, SleeveFile}
		for i, path := range result.Files.All() {
			if path != filepath.Join(dir, names[i]) {
				t.Errorf("file %d = %s, want %s", i, path, filepath.Join(dir, names[i]))
			}
			th.AssertFileExists(t, path)
		}

		for _, path := range result.Files.All()[:4] {
			if b := decodePNG(t, path).Bounds(); b.Dx() != 250 || b.Dy() != 250 {
				t.Errorf("%s: expected 250x250, got %dx%d", path, b.Dx(), b.Dy())
			}
		}
		if b := decodePNG(t, result.Files.Sleeve).Bounds(); b.Dx() != 250 || b.Dy() != 750 {
			t.Errorf("Expected 250x750 sleeve, got %dx%d", b.Dx(), b.Dy())
		}

		if got := len(fetcher.Fetched()); got != 7 {
			t.Errorf("Expected 7 artwork fetches, got %d", got)
		}
		if client.Calls[0] != "GetTitle:"+playlistURL || client.Calls[1] != "GetTracks:"+playlistURL {
			t.Errorf("Expected title then tracks, got %v", client.Calls)
		}
	})

	t.Run("gradient is saved before the title is drawn", func(t *testing.T) {
		client := &th.MockPlaylistClient{Title: "Road Trip", Tracks: sampleTracks(1)}
		engine := newTestEngine(t, client, &th.MockFetcher{})

		result, err := engine.Run(context.Background(), nil, SleeveRequest{PlaylistRef: playlistURL, Start: red, End: blue, OutputDir: t.TempDir()})
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}

		plain := th.MustReadFile(t, result.Files.Gradient)
		titled := th.MustReadFile(t, result.Files.Titled)
		if plain == titled {
			t.Error("Expected the titled cover to differ from the plain gradient")
		}

		sleeve := decodePNG(t, result.Files.Sleeve)
		front := decodePNG(t, result.Files.Titled)
		for _, pt := range []image.Point{{0, 0}, {125, 220}, {249, 249}} {
			if !th.SameRGBA(sleeve.At(pt.X, pt.Y), color.RGBAModel.Convert(front.At(pt.X, pt.Y)).(color.RGBA)) {
				t.Errorf("Expected sleeve front at %v to match the titled cover", pt)
			}
		}
	})

	t.Run("deterministic output", func(t *testing.T) {
		tracks := sampleTracks(12)
		first, second := t.TempDir(), t.TempDir()

		for _, dir := range []string{first, second} {
			engine := newTestEngine(t, &th.MockPlaylistClient{Title: "Same", Tracks: tracks}, &th.MockFetcher{})
			if _, err := engine.Run(context.Background(), nil, SleeveRequest{PlaylistRef: playlistURL, Start: red, End: blue, OutputDir: dir}); err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
		}

		for _, name := range []string{GradientFile, TitledFile, TracklistFile, CollageFile, SleeveFile} {
			a := th.MustReadFile(t, filepath.Join(first, name))
			b := th.MustReadFile(t, filepath.Join(second, name))
			if a != b {
				t.Errorf("%s differs between identical runs", name)
			}
		}
	})

	t.Run("artwork failure stops after the tracklist", func(t *testing.T) {
		tracks := sampleTracks(3)
		boom := errors.New("connection reset")
		fetcher := &th.MockFetcher{FailOn: tracks[2].ArtworkURL, Err: boom}
		engine := newTestEngine(t, &th.MockPlaylistClient{Title: "Broken", Tracks: tracks}, fetcher)
		dir := t.TempDir()

		_, err := engine.Run(context.Background(), nil, SleeveRequest{PlaylistRef: playlistURL, Start: red, End: blue, OutputDir: dir})
		if !errors.Is(err, boom) {
			t.Fatalf("Expected wrapped fetch error, got %v", err)
		}

		for _, name := range []string{GradientFile, TitledFile, TracklistFile} {
			th.AssertFileExists(t, filepath.Join(dir, name))
		}
		for _, name := range []string{CollageFile, SleeveFile} {
			if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
				t.Errorf("Expected %s not to be written", name)
			}
		}
	})

	t.Run("playlist errors propagate before any file is written", func(t *testing.T) {
		client := &th.MockPlaylistClient{TitleErr: shared.ErrPlaylistNotFound}
		engine := newTestEngine(t, client, &th.MockFetcher{})
		dir := t.TempDir()

		_, err := engine.Run(context.Background(), nil, SleeveRequest{PlaylistRef: playlistURL, OutputDir: dir})
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Fatalf("Expected ErrPlaylistNotFound, got %v", err)
		}

		entries, _ := os.ReadDir(dir)
		if len(entries) != 0 {
			t.Errorf("Expected no files, got %d", len(entries))
		}
	})

	t.Run("empty playlist still produces a sleeve", func(t *testing.T) {
		engine := newTestEngine(t, &th.MockPlaylistClient{Title: "Empty"}, &th.MockFetcher{})

		result, err := engine.Run(context.Background(), nil, SleeveRequest{PlaylistRef: playlistURL, Start: red, End: blue, OutputDir: t.TempDir()})
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
		th.AssertFileExists(t, result.Files.Sleeve)
	})

	t.Run("missing collaborators", func(t *testing.T) {
		engine := NewSleeveEngine(nil, nil, nil, SleeveOptions{}, log.New(&bytes.Buffer{}))
		_, err := engine.Run(context.Background(), nil, SleeveRequest{PlaylistRef: playlistURL})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("Expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("missing playlist", func(t *testing.T) {
		engine := newTestEngine(t, &th.MockPlaylistClient{}, &th.MockFetcher{})
		_, err := engine.Run(context.Background(), nil, SleeveRequest{})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("Expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestSleeveEngineProgress(t *testing.T) {
	engine := newTestEngine(t, &th.MockPlaylistClient{Title: "Progress", Tracks: sampleTracks(4)}, &th.MockFetcher{})
	progress := make(chan ProgressUpdate, 100)

	result, err := engine.Run(context.Background(), progress, SleeveRequest{PlaylistRef: playlistURL, OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	close(progress)

	var phases []Phase
	var artwork int
	var last ProgressUpdate
	for update := range progress {
		if len(phases) == 0 || phases[len(phases)-1] != update.Phase {
			phases = append(phases, update.Phase)
		}
		if update.Phase == FetchArtwork && update.Data != nil {
			if _, ok := update.Data.(models.Track); ok {
				artwork++
			}
		}
		last = update
	}

	want := []Phase{FetchTitle, FetchTracks, RenderGradient, RenderTitle, RenderTracklist, FetchArtwork, AssembleSleeve, Complete}
	if len(phases) != len(want) {
		t.Fatalf("Expected phases %v, got %v", want, phases)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phase %d = %s, want %s", i, phases[i], want[i])
		}
	}

	if artwork != 4 {
		t.Errorf("Expected 4 artwork updates, got %d", artwork)
	}
	if last.Data != result {
		t.Error("Expected the final update to carry the result")
	}

	t.Run("full channel never blocks", func(t *testing.T) {
		blocked := make(chan ProgressUpdate)
		if _, err := engine.Run(context.Background(), blocked, SleeveRequest{PlaylistRef: playlistURL, OutputDir: t.TempDir()}); err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
	})
}

func TestSleeveEngineRunRecorder(t *testing.T) {
	t.Run("records completed runs", func(t *testing.T) {
		engine := newTestEngine(t, &th.MockPlaylistClient{Title: "Kept", Tracks: sampleTracks(2)}, &th.MockFetcher{})
		rec := &mockRecorder{}
		engine.SetRunRecorder(rec)
		dir := t.TempDir()

		result, err := engine.Run(context.Background(), nil, SleeveRequest{PlaylistRef: playlistURL, OutputDir: dir})
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}

		if len(rec.runs) != 1 {
			t.Fatalf("Expected 1 recorded run, got %d", len(rec.runs))
		}
		run := rec.runs[0]
		if run.ID != result.RunID || run.PlaylistID != "37i9dQZF1DXcBWIGoYBM5M" || run.TrackCount != 2 || run.OutputDir != dir {
			t.Errorf("Unexpected run: %+v", run)
		}
	})

	t.Run("recording failure is not fatal", func(t *testing.T) {
		engine := newTestEngine(t, &th.MockPlaylistClient{Title: "Kept"}, &th.MockFetcher{})
		engine.SetRunRecorder(&mockRecorder{err: errors.New("disk full")})

		if _, err := engine.Run(context.Background(), nil, SleeveRequest{PlaylistRef: playlistURL, OutputDir: t.TempDir()}); err != nil {
			t.Fatalf("Expected run to succeed, got %v", err)
		}
	})
}

func TestPhaseString(t *testing.T) {
	for p := FetchTitle; p <= Complete; p++ {
		if p.String() == "" {
			t.Errorf("Phase %d has no name", p)
		}
	}
	if Phase(99).String() != "" {
		t.Error("Expected unknown phase to have an empty name")
	}
}
