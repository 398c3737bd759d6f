package layer

import (
	"iter"

	"github.com/eak1mov/go-tilelayer/grid"
	"github.com/eak1mov/go-tilelayer/tile"
)

// Layer holds one storage strategy and forwards every operation to it. The
// kind of a layer is fixed at construction.
type Layer[T tile.Tile[T]] struct {
	storage Storage[T]
}

// New constructs a layer of the given kind. A dense layer is pre-populated
// with length copies of fill; a sparse layer starts empty and ignores both.
func New[T tile.Tile[T]](kind Kind, length int, fill T, opts ...Option) *Layer[T] {
	if kind == Sparse {
		return Wrap[T](NewSparse[T](nil, opts...))
	}
	return Wrap[T](FilledDense(length, fill, opts...))
}

// Wrap constructs a layer around an existing storage.
func Wrap[T tile.Tile[T]](s Storage[T]) *Layer[T] {
	return &Layer[T]{storage: s}
}

// SpriteLayer is a layer of plain sprite tiles.
type SpriteLayer = Layer[tile.Raw]

// NewSpriteLayer constructs a sprite layer spanning dimension. Dense cells
// start as hidden default tiles.
func NewSpriteLayer(kind Kind, dimension grid.Dimension, opts ...Option) *SpriteLayer {
	return New(kind, dimension.Area(), tile.Default().Hide(), opts...)
}

func (l *Layer[T]) Kind() Kind             { return l.storage.Kind() }
func (l *Layer[T]) Storage() Storage[T]    { return l.storage }
func (l *Layer[T]) SetTile(index int, t T) { l.storage.SetTile(index, t) }
func (l *Layer[T]) RemoveTile(index int)   { l.storage.RemoveTile(index) }
func (l *Layer[T]) Tile(index int) (T, bool) {
	return l.storage.Tile(index)
}

func (l *Layer[T]) UpdateTile(index int, fn func(t *T)) bool {
	return l.storage.UpdateTile(index, fn)
}

func (l *Layer[T]) Indices() []int { return l.storage.Indices() }
func (l *Layer[T]) Clear()         { l.storage.Clear() }

func (l *Layer[T]) Attributes(dimension grid.Dimension) ([]float32, [][4]float32) {
	return l.storage.Attributes(dimension)
}

func (l *Layer[T]) Len() int               { return l.storage.Len() }
func (l *Layer[T]) Count() int             { return l.storage.Count() }
func (l *Layer[T]) All() iter.Seq2[int, T] { return l.storage.All() }

// IsEmpty reports whether the tile counter is zero.
func (l *Layer[T]) IsEmpty() bool { return l.storage.Count() == 0 }
