package layer_test

import (
	"iter"
	"testing"

	"github.com/eak1mov/go-tilelayer/grid"
	"github.com/eak1mov/go-tilelayer/layer"
	"github.com/eak1mov/go-tilelayer/tile"
	"github.com/google/go-cmp/cmp"
)

var (
	hidden = tile.Default().Hide()
	red    = tile.Raw{Sprite: 7, Tint: tile.Color{R: 1, A: 1}}
	blue   = tile.Raw{Sprite: 2, Tint: tile.Color{B: 1, A: 1}}
)

type diagnostics []layer.Diagnostic

func (d *diagnostics) sink() layer.Sink {
	return layer.SinkFunc(func(diag layer.Diagnostic) { *d = append(*d, diag) })
}

func TestDenseHiddenConstruction(t *testing.T) {
	s := layer.FilledDense(8, hidden)

	if got := s.Indices(); len(got) != 0 {
		t.Errorf("Indices() = %v, want empty", got)
	}
	if got, want := s.Len(), 8; got != want {
		t.Errorf("Len() = %v, want = %v", got, want)
	}
	if got, want := s.Count(), 0; got != want {
		t.Errorf("Count() = %v, want = %v", got, want)
	}

	s.SetTile(5, red)
	if diff := cmp.Diff([]int{5}, s.Indices()); diff != "" {
		t.Errorf("Indices() mismatch (-want+got):\n%v", diff)
	}
	if got, ok := s.Tile(5); !ok || got != red {
		t.Errorf("Tile(5) = %v, %v, want = %v, true", got, ok, red)
	}
}

func TestDenseOutOfBounds(t *testing.T) {
	var diags diagnostics
	s := layer.FilledDense(4, hidden, layer.WithSink(diags.sink()))
	s.SetTile(1, blue)

	before := cellsOf(s.All())
	for _, index := range []int{4, 100, -1} {
		s.SetTile(index, red)
	}

	if diff := cmp.Diff(before, cellsOf(s.All())); diff != "" {
		t.Errorf("storage changed by out of bounds writes (-want+got):\n%v", diff)
	}
	if got, want := s.Len(), 4; got != want {
		t.Errorf("Len() = %v, want = %v", got, want)
	}
	want := diagnostics{
		{Kind: layer.Dense, Index: 4, Length: 4},
		{Kind: layer.Dense, Index: 100, Length: 4},
		{Kind: layer.Dense, Index: -1, Length: 4},
	}
	if diff := cmp.Diff(want, diags); diff != "" {
		t.Errorf("diagnostics mismatch (-want+got):\n%v", diff)
	}
}

func TestDenseRemoveHides(t *testing.T) {
	s := layer.FilledDense(4, hidden)
	s.SetTile(2, red)
	s.RemoveTile(2)

	if got, ok := s.Tile(2); ok {
		t.Errorf("Tile(2) = %v, true, want absent", got)
	}
	if got, want := s.Len(), 4; got != want {
		t.Errorf("Len() = %v, want = %v", got, want)
	}

	indices, colors := s.Attributes(grid.Dimension{})
	if got, want := len(colors), 16; got != want {
		t.Fatalf("len(colors) = %v, want = %v", got, want)
	}
	for i := 8; i < 12; i++ {
		if got, want := colors[i], [4]float32{1, 0, 0, 0}; got != want {
			t.Errorf("colors[%d] = %v, want = %v", i, got, want)
		}
		if got, want := indices[i], float32(7); got != want {
			t.Errorf("indices[%d] = %v, want = %v", i, got, want)
		}
	}

	// out of range removal is ignored
	s.RemoveTile(9)
	s.RemoveTile(-3)
}

func TestDenseScenario(t *testing.T) {
	s := layer.FilledDense(4, hidden)
	s.SetTile(2, red)

	indices, colors := s.Attributes(grid.Dimension{Width: 100, Height: 100})
	if got, want := len(indices), 16; got != want {
		t.Fatalf("len(indices) = %v, want = %v", got, want)
	}
	for i := range 16 {
		wantIndex, wantColor := float32(hidden.Sprite), hidden.Tint.RGBA()
		if i >= 8 && i < 12 {
			wantIndex, wantColor = 7, [4]float32{1, 0, 0, 1}
		}
		if indices[i] != wantIndex || colors[i] != wantColor {
			t.Errorf("vertex %d = (%v, %v), want = (%v, %v)", i, indices[i], colors[i], wantIndex, wantColor)
		}
	}
}

func TestDenseCountEveryWrite(t *testing.T) {
	s := layer.FilledDense(4, hidden)

	s.SetTile(0, red)
	s.SetTile(0, blue) // overwrite of a visible tile is counted again
	s.SetTile(1, hidden)
	if got, want := s.Count(), 3; got != want {
		t.Errorf("Count() = %v, want = %v", got, want)
	}
	if got, want := len(s.Indices()), 1; got != want {
		t.Errorf("len(Indices()) = %v, want = %v", got, want)
	}

	for range 5 {
		s.RemoveTile(0)
	}
	if got, want := s.Count(), 0; got != want {
		t.Errorf("Count() = %v, want = %v", got, want)
	}
}

func TestDenseRemoveWithZeroCount(t *testing.T) {
	s := layer.FilledDense(2, tile.Default())
	if got, want := s.Count(), 0; got != want {
		t.Fatalf("Count() = %v, want = %v", got, want)
	}

	s.RemoveTile(0)
	if got, ok := s.Tile(0); ok {
		t.Errorf("Tile(0) = %v, true, want hidden slot", got)
	}
	if got, want := s.Count(), 0; got != want {
		t.Errorf("Count() = %v, want = %v", got, want)
	}
	if diff := cmp.Diff([]int{1}, s.Indices()); diff != "" {
		t.Errorf("Indices() mismatch (-want+got):\n%v", diff)
	}
}

func TestDenseCountVisible(t *testing.T) {
	tiles := []tile.Raw{red, hidden, hidden, blue}
	s := layer.NewDense(tiles, layer.WithCountPolicy(layer.CountVisible))
	if got, want := s.Count(), 2; got != want {
		t.Fatalf("initial Count() = %v, want = %v", got, want)
	}

	s.SetTile(0, blue)   // visible over visible
	s.SetTile(1, red)    // visible over hidden
	s.SetTile(2, hidden) // hidden over hidden
	s.SetTile(3, hidden) // hidden over visible
	if got, want := s.Count(), 2; got != want {
		t.Errorf("Count() = %v, want = %v", got, want)
	}

	s.RemoveTile(0)
	s.RemoveTile(0)
	s.RemoveTile(2)
	if got, want := s.Count(), len(s.Indices()); got != want {
		t.Errorf("Count() = %v, want = %v", got, want)
	}
}

func TestDenseUpdateTile(t *testing.T) {
	s := layer.FilledDense(3, hidden)
	s.SetTile(1, red)

	if !s.UpdateTile(1, func(t *tile.Raw) { t.Sprite = 11 }) {
		t.Fatalf("UpdateTile(1) = false, want true")
	}
	if got, _ := s.Tile(1); got.Sprite != 11 {
		t.Errorf("Tile(1).Sprite = %v, want = 11", got.Sprite)
	}

	called := false
	if s.UpdateTile(0, func(*tile.Raw) { called = true }) || called {
		t.Errorf("UpdateTile on hidden slot called fn")
	}
	if s.UpdateTile(3, func(*tile.Raw) { called = true }) || called {
		t.Errorf("UpdateTile out of bounds called fn")
	}
}

func TestDenseClear(t *testing.T) {
	var diags diagnostics
	s := layer.FilledDense(4, hidden, layer.WithSink(diags.sink()))
	s.SetTile(0, red)
	s.Clear()

	if got := s.Len(); got != 0 {
		t.Errorf("Len() = %v, want = 0", got)
	}
	if got := s.Count(); got != 0 {
		t.Errorf("Count() = %v, want = 0", got)
	}
	if indices, _ := s.Attributes(grid.Dimension{}); len(indices) != 0 {
		t.Errorf("len(indices) = %v, want = 0", len(indices))
	}

	s.SetTile(0, red)
	if got, want := len(diags), 1; got != want {
		t.Errorf("len(diagnostics) = %v, want = %v", got, want)
	}
}

func cellsOf[T any](all iter.Seq2[int, T]) map[int]T {
	cells := make(map[int]T)
	for index, t := range all {
		cells[index] = t
	}
	return cells
}
