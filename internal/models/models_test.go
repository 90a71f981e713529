package models

import (
	"errors"
	"image/color"
	"testing"

	"github.com/desertthunder/sleeve/internal/shared"
)

func TestRGB(t *testing.T) {
	t.Run("NewRGB", func(t *testing.T) {
		tc := []struct {
			name    string
			r, g, b int
			wantErr bool
		}{
			{name: "black", r: 0, g: 0, b: 0},
			{name: "white", r: 255, g: 255, b: 255},
			{name: "red too high", r: 256, g: 0, b: 0, wantErr: true},
			{name: "green negative", r: 0, g: -1, b: 0, wantErr: true},
			{name: "blue too high", r: 0, g: 0, b: 1000, wantErr: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				c, err := NewRGB(tt.r, tt.g, tt.b)
				if tt.wantErr {
					if !errors.Is(err, shared.ErrInvalidColor) {
						t.Errorf("expected ErrInvalidColor, got %v", err)
					}
					return
				}
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if int(c.R) != tt.r || int(c.G) != tt.g || int(c.B) != tt.b {
					t.Errorf("unexpected color %v", c)
				}
			})
		}
	})

	t.Run("ParseRGB", func(t *testing.T) {
		tc := []struct {
			in      string
			want    RGB
			wantErr bool
		}{
			{in: "10, 20, 30", want: RGB{10, 20, 30}},
			{in: "10 20 30", want: RGB{10, 20, 30}},
			{in: "255,0,255", want: RGB{255, 0, 255}},
			{in: "256, abc, -1", wantErr: true},
			{in: "1, 2", wantErr: true},
			{in: "", wantErr: true},
			{in: "1.5, 2, 3", wantErr: true},
		}

		for _, tt := range tc {
			t.Run(tt.in, func(t *testing.T) {
				got, err := ParseRGB(tt.in)
				if tt.wantErr {
					if err == nil {
						t.Errorf("expected error for %q", tt.in)
					}
					return
				}
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if got != tt.want {
					t.Errorf("ParseRGB(%q) = %v, want %v", tt.in, got, tt.want)
				}
			})
		}
	})

	t.Run("Color is opaque", func(t *testing.T) {
		got := RGB{1, 2, 3}.Color()
		if got != (color.RGBA{1, 2, 3, 255}) {
			t.Errorf("unexpected color %v", got)
		}
	})

	t.Run("String", func(t *testing.T) {
		if s := (RGB{255, 0, 0}).String(); s != "(255, 0, 0)" {
			t.Errorf("unexpected string %q", s)
		}
	})
}
