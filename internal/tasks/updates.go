package tasks

import (
	"fmt"

	"github.com/desertthunder/sleeve/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchTitle Phase = iota
	FetchTracks
	RenderGradient
	RenderTitle
	RenderTracklist
	FetchArtwork
	AssembleSleeve
	Complete
)

func (p Phase) String() string {
	switch p {
	case FetchTitle:
		return "fetch_title"
	case FetchTracks:
		return "fetch_tracks"
	case RenderGradient:
		return "render_gradient"
	case RenderTitle:
		return "render_title"
	case RenderTracklist:
		return "render_tracklist"
	case FetchArtwork:
		return "fetch_artwork"
	case AssembleSleeve:
		return "assemble_sleeve"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func fetchTitleUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTitle,
		Step:    1,
		Total:   1,
		Message: "Fetching playlist from Spotify...",
	}
}

func fetchTracksUpdate(title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching tracks for %q...", title),
	}
}

func savedUpdate(phase Phase, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Saved %s", path),
		Data:    path,
	}
}

func fetchArtworkUpdate(step, total int, tr models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchArtwork,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Added cover for %s - %s", tr.Title, tr.Artist),
		Data:    tr,
	}
}

func completeUpdate(result *SleeveResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("CD sleeve for %q written to %s", result.Title, result.Files.Sleeve),
		Data:    result,
	}
}
