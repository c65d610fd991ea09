package gridlist

import (
	"image/color"
	"log/slog"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{110, 70, true},
		{60, 45, true},
		{9, 45, false},
		{60, 71, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA()
	want := color.RGBA{R: 127, G: 63, B: 0, A: 127}
	if got != want {
		t.Errorf("toRGBA = %v, want %v", got, want)
	}
	if c := (Color{R: 2, G: -1, B: 1, A: 1}).toRGBA(); c.R != 255 || c.G != 0 {
		t.Errorf("toRGBA did not clamp: %v", c)
	}
}

func TestDirectionString(t *testing.T) {
	for d, want := range map[Direction]string{
		DirectionIdle: "idle",
		DirectionDown: "down",
		DirectionUp:   "up",
	} {
		if d.String() != want {
			t.Errorf("%d.String() = %q, want %q", d, d.String(), want)
		}
	}
}

func TestSetLoggerNilRestoresDefault(t *testing.T) {
	custom := slog.New(slog.DiscardHandler)
	SetLogger(custom)
	if Logger() != custom {
		t.Error("SetLogger did not install the logger")
	}
	SetLogger(nil)
	if Logger() == nil || Logger() == custom {
		t.Error("SetLogger(nil) did not restore a default logger")
	}
}
