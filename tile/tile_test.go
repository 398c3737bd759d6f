package tile_test

import (
	"testing"

	"github.com/eak1mov/go-tilelayer/tile"
	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	got := tile.Default()
	if diff := cmp.Diff(tile.Raw{Sprite: 0, Tint: tile.White}, got); diff != "" {
		t.Errorf("Default() mismatch (-want+got):\n%v", diff)
	}
	if got.Hidden() {
		t.Errorf("Default().Hidden() = true, want false")
	}
}

func TestHidden(t *testing.T) {
	for _, tc := range []struct {
		Name  string
		Color tile.Color
		Want  bool
	}{
		{Name: "Opaque", Color: tile.White, Want: false},
		{Name: "Translucent", Color: tile.Color{R: 1, A: 0.01}, Want: false},
		{Name: "ZeroAlpha", Color: tile.Color{R: 1, G: 1, B: 1}, Want: true},
		{Name: "Transparent", Color: tile.Transparent, Want: true},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			if got := (tile.Raw{Sprite: 3, Tint: tc.Color}).Hidden(); got != tc.Want {
				t.Errorf("Hidden() = %v, want = %v", got, tc.Want)
			}
		})
	}
}

func TestHideKeepsCopies(t *testing.T) {
	original := tile.Raw{Sprite: 7, Tint: tile.Color{R: 1, A: 1}}
	hidden := original.Hide()

	if !hidden.Hidden() {
		t.Errorf("Hide().Hidden() = false, want true")
	}
	if original.Hidden() {
		t.Errorf("Hide() modified the receiver")
	}
	if got, want := hidden.Index(), 7; got != want {
		t.Errorf("Hide().Index() = %v, want = %v", got, want)
	}
	if got, want := hidden.Color(), (tile.Color{R: 1}); got != want {
		t.Errorf("Hide().Color() = %v, want = %v", got, want)
	}
}

func TestColorRGBA(t *testing.T) {
	c := tile.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}
	if got, want := c.RGBA(), [4]float32{0.25, 0.5, 0.75, 1}; got != want {
		t.Errorf("RGBA() = %v, want = %v", got, want)
	}
	if got := tile.FromRGBA(c.RGBA()); got != c {
		t.Errorf("FromRGBA(RGBA()) = %v, want = %v", got, c)
	}
	if got := c.WithAlpha(0); !(tile.Raw{Tint: got}).Hidden() {
		t.Errorf("WithAlpha(0) = %v, want hidden color", got)
	}
}

func TestToRaw(t *testing.T) {
	in := tile.Raw{Sprite: 12, Tint: tile.Color{G: 1, A: 0.5}}
	if got := tile.ToRaw(in); got != in {
		t.Errorf("ToRaw(%v) = %v", in, got)
	}
}
