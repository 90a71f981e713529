// Package models defines the value types passed between the playlist client, the prompts and the renderer.
//
//   - [RGB] : a validated color, only constructed through [NewRGB] or [ParseRGB]
//   - [Track] : one playlist entry (title, primary artist, album-art URL)
//   - [Playlist] : playlist metadata
//   - [PlaylistExport] : a playlist with its ordered tracks
//
// None of these types carry behavior beyond validation and formatting; they are read-only once built.
package models
