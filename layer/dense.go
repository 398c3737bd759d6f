package layer

import (
	"iter"

	"github.com/eak1mov/go-tilelayer/attr"
	"github.com/eak1mov/go-tilelayer/grid"
	"github.com/eak1mov/go-tilelayer/tile"
)

// DenseStorage keeps one tile per cell in a fixed-length slice.
type DenseStorage[T tile.Tile[T]] struct {
	tiles  []T
	count  int
	policy CountPolicy
	sink   Sink
}

// NewDense constructs a dense storage owning tiles. The slice length is the
// cell count of the layer and never grows.
//
// With CountEveryWrite the counter starts at zero regardless of the initial
// tiles; with CountVisible it starts at the number of visible tiles.
func NewDense[T tile.Tile[T]](tiles []T, opts ...Option) *DenseStorage[T] {
	c := newConfig(opts)
	s := &DenseStorage[T]{
		tiles:  tiles,
		policy: c.countPolicy,
		sink:   c.sink,
	}
	if s.policy == CountVisible {
		for _, t := range tiles {
			if !t.Hidden() {
				s.count++
			}
		}
	}
	return s
}

// FilledDense constructs a dense storage of length cells all holding fill.
func FilledDense[T tile.Tile[T]](length int, fill T, opts ...Option) *DenseStorage[T] {
	tiles := make([]T, max(length, 0))
	for i := range tiles {
		tiles[i] = fill
	}
	return NewDense(tiles, opts...)
}

func (s *DenseStorage[T]) Kind() Kind { return Dense }

func (s *DenseStorage[T]) SetTile(index int, t T) {
	if index < 0 || index >= len(s.tiles) {
		s.sink.Report(Diagnostic{Kind: Dense, Index: index, Length: len(s.tiles)})
		return
	}
	switch s.policy {
	case CountVisible:
		wasVisible, isVisible := !s.tiles[index].Hidden(), !t.Hidden()
		if !wasVisible && isVisible {
			s.count++
		} else if wasVisible && !isVisible {
			s.count--
		}
	default:
		s.count++
	}
	s.tiles[index] = t
}

func (s *DenseStorage[T]) RemoveTile(index int) {
	if index < 0 || index >= len(s.tiles) {
		return
	}
	switch s.policy {
	case CountVisible:
		if !s.tiles[index].Hidden() {
			s.count--
		}
	default:
		if s.count != 0 {
			s.count--
		}
	}
	s.tiles[index] = s.tiles[index].Hide()
}

func (s *DenseStorage[T]) Tile(index int) (T, bool) {
	if index < 0 || index >= len(s.tiles) || s.tiles[index].Hidden() {
		var zero T
		return zero, false
	}
	return s.tiles[index], true
}

func (s *DenseStorage[T]) UpdateTile(index int, fn func(t *T)) bool {
	if index < 0 || index >= len(s.tiles) || s.tiles[index].Hidden() {
		return false
	}
	fn(&s.tiles[index])
	return true
}

func (s *DenseStorage[T]) Indices() []int {
	indices := make([]int, 0, len(s.tiles))
	for index, t := range s.tiles {
		if !t.Hidden() {
			indices = append(indices, index)
		}
	}
	return indices[:len(indices):len(indices)]
}

// Clear drops every slot and resets the counter. The storage has length
// zero afterwards and every SetTile is out of bounds.
func (s *DenseStorage[T]) Clear() {
	s.tiles = s.tiles[:0]
	s.count = 0
}

// Attributes ignores dimension: the output covers the stored slots.
func (s *DenseStorage[T]) Attributes(grid.Dimension) ([]float32, [][4]float32) {
	return attr.Dense(s.tiles)
}

func (s *DenseStorage[T]) Len() int   { return len(s.tiles) }
func (s *DenseStorage[T]) Count() int { return s.count }

func (s *DenseStorage[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for index, t := range s.tiles {
			if !yield(index, t) {
				return
			}
		}
	}
}
