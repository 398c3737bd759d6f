// Package grid describes the logical grid a layer spans and maps grid points
// to linear cell indices.
package grid

import (
	"fmt"

	"github.com/google/hilbert"
)

// Dimension is the size of a layer grid. Depth is carried for callers that
// address 3D chunks and is ignored by layers.
type Dimension struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// Area returns the number of cells in one Width x Height plane.
func (d Dimension) Area() int {
	return int(d.Width) * int(d.Height)
}

func (d Dimension) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < int(d.Width) && y < int(d.Height)
}

// Indexer converts between grid points and linear cell indices.
type Indexer interface {
	// Index returns the linear cell index of (x, y), or -1 if the point is
	// outside of the grid.
	Index(x, y int) int

	// Point is the inverse of Index.
	Point(index int) (x, y int, ok bool)
}

// RowMajor lays cells out row by row.
type RowMajor struct {
	Dimension Dimension
}

func (r RowMajor) Index(x, y int) int {
	if !r.Dimension.Contains(x, y) {
		return -1
	}
	return y*int(r.Dimension.Width) + x
}

func (r RowMajor) Point(index int) (int, int, bool) {
	if index < 0 || index >= r.Dimension.Area() {
		return 0, 0, false
	}
	w := int(r.Dimension.Width)
	return index % w, index / w, true
}

// Hilbert lays cells out along a Hilbert curve, which keeps neighbouring
// cells close in the linear order. The grid must be a square with a
// power-of-two side.
type Hilbert struct {
	h    *hilbert.Hilbert
	side int
}

func NewHilbert(side int) (*Hilbert, error) {
	h, err := hilbert.NewHilbert(side)
	if err != nil {
		return nil, fmt.Errorf("grid: hilbert side %d: %w", side, err)
	}
	return &Hilbert{h: h, side: side}, nil
}

// Dimension returns the square grid covered by the curve.
func (h *Hilbert) Dimension() Dimension {
	return Dimension{Width: uint32(h.side), Height: uint32(h.side)}
}

func (h *Hilbert) Index(x, y int) int {
	t, err := h.h.MapInverse(x, y)
	if err != nil {
		return -1
	}
	return t
}

func (h *Hilbert) Point(index int) (int, int, bool) {
	x, y, err := h.h.Map(index)
	if err != nil {
		return 0, 0, false
	}
	return x, y, true
}
