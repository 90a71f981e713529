// Package tasks orchestrates sleeve generation with real-time progress reporting.
//
// # Pipeline
//
// [SleeveEngine.Run] executes the stages strictly in order, saving each intermediate image as it goes:
//
//  1. Fetch the playlist title and tracks from the [services.PlaylistClient]
//  2. Render the gradient (gradient.png)
//  3. Overlay the title onto the same gradient (gradient_with_text.png)
//  4. Render the tracklist and turn it upside down (tracklist.png)
//  5. Fetch every album cover and build the collage (collage.png)
//  6. Stack the three panels (cd_sleeve_art.png)
//
// Files are overwritten. A failing stage stops the run and leaves earlier files in place.
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Run History
//
// The optional [RunRecorder] (repositories.RunRepository) stores a row per completed sleeve.
// Recording errors are logged and never fail a run.
package tasks
