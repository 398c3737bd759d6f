package layer

import (
	"iter"
	"maps"
	"slices"

	"github.com/eak1mov/go-tilelayer/attr"
	"github.com/eak1mov/go-tilelayer/grid"
	"github.com/eak1mov/go-tilelayer/tile"
)

// SparseStorage keeps tiles in a map keyed by cell index. Hidden tiles are
// stored and returned like any other tile.
type SparseStorage[T tile.Tile[T]] struct {
	tiles map[int]T
	sink  Sink
}

// NewSparse constructs a sparse storage owning tiles. A nil map starts an
// empty storage.
func NewSparse[T tile.Tile[T]](tiles map[int]T, opts ...Option) *SparseStorage[T] {
	c := newConfig(opts)
	if tiles == nil {
		tiles = make(map[int]T)
	}
	return &SparseStorage[T]{tiles: tiles, sink: c.sink}
}

func (s *SparseStorage[T]) Kind() Kind { return Sparse }

func (s *SparseStorage[T]) SetTile(index int, t T) {
	if index < 0 {
		s.sink.Report(Diagnostic{Kind: Sparse, Index: index, Length: -1})
		return
	}
	s.tiles[index] = t
}

func (s *SparseStorage[T]) RemoveTile(index int) {
	delete(s.tiles, index)
}

func (s *SparseStorage[T]) Tile(index int) (T, bool) {
	t, ok := s.tiles[index]
	return t, ok
}

func (s *SparseStorage[T]) UpdateTile(index int, fn func(t *T)) bool {
	t, ok := s.tiles[index]
	if !ok {
		return false
	}
	fn(&t)
	s.tiles[index] = t
	return true
}

func (s *SparseStorage[T]) Indices() []int {
	return slices.Sorted(maps.Keys(s.tiles))
}

func (s *SparseStorage[T]) Clear() {
	clear(s.tiles)
}

func (s *SparseStorage[T]) Attributes(dimension grid.Dimension) ([]float32, [][4]float32) {
	return attr.Sparse(dimension, s.tiles)
}

func (s *SparseStorage[T]) Len() int   { return len(s.tiles) }
func (s *SparseStorage[T]) Count() int { return len(s.tiles) }

func (s *SparseStorage[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for _, index := range s.Indices() {
			if !yield(index, s.tiles[index]) {
				return
			}
		}
	}
}
