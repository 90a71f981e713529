package ui

import (
	"strings"
	"testing"
)

func TestPalette(t *testing.T) {
	p := Styles()
	if p == nil {
		t.Fatal("expected default palette")
	}

	for name, render := range map[string]func(string) string{
		"title": p.Title,
		"ok":    p.OK,
		"err":   p.Err,
		"warn":  p.Warn,
		"help":  p.Help,
	} {
		t.Run(name, func(t *testing.T) {
			if got := render("sleeve"); !strings.Contains(got, "sleeve") {
				t.Errorf("rendered %q does not contain input", got)
			}
		})
	}
}
