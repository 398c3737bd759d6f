package layer_test

import (
	"testing"

	"github.com/eak1mov/go-tilelayer/grid"
	"github.com/eak1mov/go-tilelayer/layer"
	"github.com/eak1mov/go-tilelayer/tile"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSparseSetGet(t *testing.T) {
	s := layer.NewSparse[tile.Raw](nil)
	require.Equal(t, 0, s.Len())

	s.SetTile(3, red)
	s.SetTile(1_000_000, blue)
	s.SetTile(3, blue)

	got, ok := s.Tile(3)
	require.True(t, ok)
	require.Equal(t, blue, got)

	_, ok = s.Tile(4)
	require.False(t, ok)

	require.Equal(t, []int{3, 1_000_000}, s.Indices())
	require.Equal(t, 2, s.Count())
}

func TestSparseRemoveIdempotent(t *testing.T) {
	s := layer.NewSparse(map[int]tile.Raw{1: red, 2: blue})

	s.RemoveTile(7)
	require.Equal(t, map[int]tile.Raw{1: red, 2: blue}, cellsOf(s.All()))

	s.RemoveTile(1)
	s.RemoveTile(1)
	require.Equal(t, map[int]tile.Raw{2: blue}, cellsOf(s.All()))
}

func TestSparseKeepsHiddenTiles(t *testing.T) {
	stored := tile.Raw{Sprite: 4, Tint: tile.Color{R: 0.5, G: 0.25, B: 1, A: 0}}
	s := layer.NewSparse[tile.Raw](nil)
	s.SetTile(0, stored)

	got, ok := s.Tile(0)
	require.True(t, ok, "sparse storage must return hidden tiles")
	require.Equal(t, stored, got)
	require.Equal(t, []int{0}, s.Indices())

	indices, colors := s.Attributes(grid.Dimension{Width: 2, Height: 2})
	require.Len(t, colors, 16)
	for i := range 4 {
		require.Equal(t, float32(4), indices[i])
		require.Equal(t, [4]float32{0.5, 0.25, 1, 0}, colors[i])
	}
	for i := 4; i < 16; i++ {
		require.Equal(t, float32(0), indices[i])
		require.Equal(t, [4]float32{}, colors[i])
	}
}

// Dense hides on read, sparse does not.
func TestVisibilityAsymmetry(t *testing.T) {
	hiddenRed := red.Hide()

	dense := layer.FilledDense(4, hidden)
	dense.SetTile(0, hiddenRed)
	sparse := layer.NewSparse[tile.Raw](nil)
	sparse.SetTile(0, hiddenRed)

	_, ok := dense.Tile(0)
	require.False(t, ok)
	require.Empty(t, dense.Indices())
	require.False(t, dense.UpdateTile(0, func(*tile.Raw) {}))

	_, ok = sparse.Tile(0)
	require.True(t, ok)
	require.Equal(t, []int{0}, sparse.Indices())
	require.True(t, sparse.UpdateTile(0, func(*tile.Raw) {}))
}

func TestSparseOutsideDimension(t *testing.T) {
	s := layer.NewSparse[tile.Raw](nil)
	s.SetTile(5, red)

	indices, colors := s.Attributes(grid.Dimension{Width: 2, Height: 2})
	if diff := cmp.Diff(make([]float32, 16), indices); diff != "" {
		t.Errorf("indices mismatch (-want+got):\n%v", diff)
	}
	if diff := cmp.Diff(make([][4]float32, 16), colors); diff != "" {
		t.Errorf("colors mismatch (-want+got):\n%v", diff)
	}
}

func TestSparseNegativeIndex(t *testing.T) {
	var diags diagnostics
	s := layer.NewSparse[tile.Raw](nil, layer.WithSink(diags.sink()))
	s.SetTile(-2, red)

	require.Equal(t, 0, s.Len())
	require.Equal(t, diagnostics{{Kind: layer.Sparse, Index: -2, Length: -1}}, diags)
}

func TestSparseUpdateTile(t *testing.T) {
	s := layer.NewSparse(map[int]tile.Raw{9: red})

	require.True(t, s.UpdateTile(9, func(t *tile.Raw) { t.Tint.G = 1 }))
	got, _ := s.Tile(9)
	require.Equal(t, tile.Color{R: 1, G: 1, A: 1}, got.Tint)

	require.False(t, s.UpdateTile(10, func(*tile.Raw) { panic("unreachable") }))
}

func TestSparseClear(t *testing.T) {
	s := layer.NewSparse(map[int]tile.Raw{1: red, 5: blue})
	s.Clear()

	require.Equal(t, 0, s.Len())
	require.Empty(t, s.Indices())
	_, ok := s.Tile(1)
	require.False(t, ok)
}
