// Package ui implements the line-oriented terminal prompts used to gather sleeve inputs.
//
// A [Prompt] reads answers from any [io.Reader] and writes questions to any [io.Writer], so an
// interactive session and a piped script (or a test) behave the same way:
//
//	Enter the spotify link to your playlist: https://open.spotify.com/playlist/...
//	Enter the following for the starting gradient color (as RGB):
//	Enter the red component (0-255): 255
//	...
//
// Output is styled with the [lipgloss] [Palette]; styling degrades to plain text when the writer
// is not a terminal.
package ui
