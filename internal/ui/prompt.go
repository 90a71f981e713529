package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/desertthunder/sleeve/internal/models"
	"github.com/desertthunder/sleeve/internal/shared"
)

const (
	PlaylistQuestion = "Enter the spotify link to your playlist: "
	StartColorLabel  = "starting"
	EndColorLabel    = "ending"

	errNotInteger = "Error: Please enter valid integer values for RGB components."
	errOutOfRange = "Error: RGB components must be in the range 0-255."
)

var components = [3]string{"red", "green", "blue"}

// Prompt asks questions on out and reads one answer per line from in.
type Prompt struct {
	in      *bufio.Scanner
	out     io.Writer
	palette *Palette
}

// NewPrompt creates a prompt bound to r and w.
func NewPrompt(r io.Reader, w io.Writer) *Prompt {
	return &Prompt{in: bufio.NewScanner(r), out: w, palette: styles}
}

// PromptLine writes question and returns the next line of input with surrounding whitespace removed.
//
// Returns [shared.ErrInputClosed] once the input is exhausted.
func (p *Prompt) PromptLine(question string) (string, error) {
	fmt.Fprint(p.out, question)
	return p.readLine()
}

// PromptPlaylist asks for the playlist link.
func (p *Prompt) PromptPlaylist() (string, error) {
	return p.PromptLine(PlaylistQuestion)
}

// PromptColor asks for the red, green and blue components of a color until all three are valid.
//
// A cycle always collects three answers before validating them. An answer to the red question that
// holds three comma or space separated values answers the whole cycle. Invalid cycles print a
// single error line and start over; there is no retry limit.
// The only error is [shared.ErrInputClosed].
func (p *Prompt) PromptColor(label string) (models.RGB, error) {
	fmt.Fprintf(p.out, "Enter the following for the %s gradient color (as RGB): \n", label)

	for {
		answers, err := p.readCycle()
		if err != nil {
			return models.RGB{}, err
		}

		c, msg := validateComponents(answers)
		if msg == "" {
			return c, nil
		}
		fmt.Fprintln(p.out, p.palette.Err(msg))
	}
}

func (p *Prompt) readCycle() ([3]string, error) {
	var answers [3]string
	for i, name := range components {
		line, err := p.PromptLine(fmt.Sprintf("Enter the %s component (0-255): ", name))
		if err != nil {
			return answers, err
		}

		if i == 0 {
			if fields := models.SplitComponents(line); len(fields) == 3 {
				copy(answers[:], fields)
				return answers, nil
			}
		}
		answers[i] = line
	}
	return answers, nil
}

// validateComponents returns the color or the message to show. Non-integers take precedence over range errors.
func validateComponents(answers [3]string) (models.RGB, string) {
	var vals [3]int
	for i, a := range answers {
		v, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return models.RGB{}, errNotInteger
		}
		vals[i] = v
	}

	c, err := models.NewRGB(vals[0], vals[1], vals[2])
	if errors.Is(err, shared.ErrInvalidColor) {
		return models.RGB{}, errOutOfRange
	}
	return c, ""
}

func (p *Prompt) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrInputClosed, err)
		}
		return "", shared.ErrInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}
