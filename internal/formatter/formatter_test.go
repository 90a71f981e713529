package formatter

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/sleeve/internal/models"
	"github.com/desertthunder/sleeve/internal/shared"
	th "github.com/desertthunder/sleeve/internal/testing"
)

func testExport() *models.PlaylistExport {
	return &models.PlaylistExport{
		Playlist: models.Playlist{
			ID:          "test123",
			Name:        "Test Playlist",
			Description: "A test playlist",
			TrackCount:  2,
		},
		Tracks: []models.Track{
			{Title: "Song One", Artist: "Artist One", ArtworkURL: "https://i.scdn.co/image/one"},
			{Title: "Song, Two", Artist: "Artist Two", ArtworkURL: "https://i.scdn.co/image/two"},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("Expected header and 2 rows, got %d lines", len(lines))
		}
		if lines[0] != "Title,Artist,ArtworkURL" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if lines[1] != "Song One,Artist One,https://i.scdn.co/image/one" {
			t.Errorf("Unexpected first row: %s", lines[1])
		}
		if !strings.HasPrefix(lines[2], `"Song, Two",`) {
			t.Errorf("Expected quoted title with comma, got: %s", lines[2])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(testExport(), "cd_sleeve_art.png")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Test Playlist\n",
			"![Cover](cd_sleeve_art.png)",
			"**Description**: A test playlist",
			"**Tracks**: 2",
			"## Tracks",
			"1. Artist One - Song One",
			"2. Artist Two - Song, Two",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got: %s", want, output)
			}
		}
	})

	t.Run("ExportToMarkdown without cover", func(t *testing.T) {
		data, _ := ExportToMarkdown(testExport(), "")
		if strings.Contains(string(data), "![Cover]") {
			t.Error("Expected no cover image link")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		want := "Playlist: Test Playlist\nDescription: A test playlist\nTracks: 2\n\n1. Artist One - Song One\n2. Artist Two - Song, Two\n"
		if string(data) != want {
			t.Errorf("ExportToText() = %q, want %q", string(data), want)
		}
	})

	t.Run("Export", func(t *testing.T) {
		tests := []struct {
			format string
			prefix string
		}{
			{"", "Playlist:"},
			{"text", "Playlist:"},
			{"md", "# Test Playlist"},
			{"Markdown", "# Test Playlist"},
			{"csv", "Title,Artist"},
		}
		for _, tt := range tests {
			t.Run(tt.format, func(t *testing.T) {
				data, err := Export(testExport(), tt.format)
				if err != nil {
					t.Fatalf("Export(%q) failed: %v", tt.format, err)
				}
				if !strings.HasPrefix(string(data), tt.prefix) {
					t.Errorf("Expected prefix %q, got %q", tt.prefix, string(data))
				}
			})
		}

		if _, err := Export(testExport(), "json"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("Expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteMarkdownExport", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		path, err := WriteMarkdownExport(testExport(), dir, "cd_sleeve_art.png")
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		if path != filepath.Join(dir, "README.md") {
			t.Errorf("Unexpected path %s", path)
		}
		if content := th.MustReadFile(t, path); !strings.Contains(content, "![Cover](cd_sleeve_art.png)") {
			t.Errorf("README missing cover link: %s", content)
		}
	})

	t.Run("WriteExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tracks.csv")
		if err := WriteExport(testExport(), "csv", path); err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("WriteExport to missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "tracks.txt")
		if err := WriteExport(testExport(), "text", path); err == nil {
			t.Error("Expected error writing to a missing directory")
		}
	})
}
