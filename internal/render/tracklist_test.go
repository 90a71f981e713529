package render

import (
	"image/color"
	"testing"

	"github.com/desertthunder/sleeve/internal/models"
)

func TestLayoutTracklist(t *testing.T) {
	tracks := []models.Track{
		{Title: "One", Artist: "A"},
		{Title: "Two", Artist: "B"},
		{Title: "Three", Artist: "C"},
	}

	t.Run("two columns", func(t *testing.T) {
		got := LayoutTracklist(tracks, 1000, 20, 2)
		want := []TextLine{
			{Text: "One", X: 10, Y: 10, Style: TitleLine},
			{Text: "   - A", X: 10, Y: 30, Style: ArtistLine},
			{Text: "Two", X: 500, Y: 10, Style: TitleLine},
			{Text: "   - B", X: 500, Y: 30, Style: ArtistLine},
			{Text: "Three", X: 10, Y: 70, Style: TitleLine},
			{Text: "   - C", X: 10, Y: 90, Style: ArtistLine},
		}

		if len(got) != len(want) {
			t.Fatalf("Expected %d lines, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("line %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("even indices on the left and odd on the right", func(t *testing.T) {
		many := make([]models.Track, 11)
		lines := LayoutTracklist(many, 800, 20, 2)
		for i := 0; i < len(many); i++ {
			title := lines[i*2]
			wantX := 10
			if i%2 == 1 {
				wantX = 400
			}
			if title.X != wantX {
				t.Errorf("track %d: x = %d, want %d", i, title.X, wantX)
			}
			if wantY := 10 + (i/2)*60; title.Y != wantY {
				t.Errorf("track %d: y = %d, want %d", i, title.Y, wantY)
			}
		}
	})

	t.Run("runs past the canvas without error", func(t *testing.T) {
		many := make([]models.Track, 200)
		lines := LayoutTracklist(many, 1000, 20, 2)
		if last := lines[len(lines)-1]; last.Y < 1000 {
			t.Errorf("Expected last line below a 1000px canvas, got y=%d", last.Y)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := LayoutTracklist(nil, 1000, 20, 2); len(got) != 0 {
			t.Errorf("Expected no lines, got %d", len(got))
		}
	})
}

func TestTracklist(t *testing.T) {
	faces := mustFaces(t)
	tracks := []models.Track{
		{Title: "Midnight City", Artist: "M83"},
		{Title: "Intro", Artist: "The xx"},
	}

	img := Tracklist(tracks, 1000, 1000, faces, TracklistOptions{})
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	if b := img.Bounds(); b.Dx() != 1000 || b.Dy() != 1000 {
		t.Fatalf("Expected 1000x1000, got %dx%d", b.Dx(), b.Dy())
	}
	if img.RGBAAt(999, 999) != white || img.RGBAAt(5, 5) != white {
		t.Error("Expected white background outside the text")
	}

	inked := func(x0, y0, x1, y1 int) bool {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				if img.RGBAAt(x, y) != white {
					return true
				}
			}
		}
		return false
	}

	if !inked(10, 10, 500, 30) {
		t.Error("Expected first title in the left column")
	}
	if !inked(500, 10, 1000, 30) {
		t.Error("Expected second title in the right column")
	}
	if !inked(10, 30, 500, 50) {
		t.Error("Expected first artist below its title")
	}
	if inked(0, 100, 1000, 1000) {
		t.Error("Expected nothing below the first row")
	}
}
