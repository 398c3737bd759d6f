package grid_test

import (
	"testing"

	"github.com/eak1mov/go-tilelayer/grid"
	"github.com/stretchr/testify/require"
)

func TestDimensionArea(t *testing.T) {
	require.Equal(t, 0, grid.Dimension{}.Area())
	require.Equal(t, 6, grid.Dimension{Width: 2, Height: 3, Depth: 9}.Area())
}

func TestRowMajor(t *testing.T) {
	r := grid.RowMajor{Dimension: grid.Dimension{Width: 3, Height: 2}}

	require.Equal(t, 0, r.Index(0, 0))
	require.Equal(t, 2, r.Index(2, 0))
	require.Equal(t, 5, r.Index(2, 1))
	require.Equal(t, -1, r.Index(3, 0))
	require.Equal(t, -1, r.Index(0, -1))

	for i := range 6 {
		x, y, ok := r.Point(i)
		require.True(t, ok)
		require.Equal(t, i, r.Index(x, y))
	}
	_, _, ok := r.Point(6)
	require.False(t, ok)
}

func TestHilbert(t *testing.T) {
	_, err := grid.NewHilbert(3)
	require.Error(t, err)

	h, err := grid.NewHilbert(8)
	require.NoError(t, err)
	require.Equal(t, grid.Dimension{Width: 8, Height: 8}, h.Dimension())

	seen := make(map[int]bool)
	for y := range 8 {
		for x := range 8 {
			index := h.Index(x, y)
			require.GreaterOrEqual(t, index, 0)
			require.Less(t, index, 64)
			require.Falsef(t, seen[index], "index %d produced twice", index)
			seen[index] = true

			px, py, ok := h.Point(index)
			require.True(t, ok)
			require.Equal(t, [2]int{x, y}, [2]int{px, py})
		}
	}

	require.Equal(t, -1, h.Index(8, 0))
	_, _, ok := h.Point(64)
	require.False(t, ok)
}

func TestHilbertNeighbours(t *testing.T) {
	h, err := grid.NewHilbert(16)
	require.NoError(t, err)

	// consecutive indices are always adjacent cells
	for i := range 255 {
		x0, y0, _ := h.Point(i)
		x1, y1, _ := h.Point(i + 1)
		require.Equal(t, 1, abs(x1-x0)+abs(y1-y0), "step %d", i)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
