package layer

import (
	"errors"
	"fmt"
	"math"

	"github.com/eak1mov/go-tilelayer/tile"
)

var ErrInvalidSnapshot = errors.New("tilelayer: invalid snapshot")

// Cell is a stored tile together with its cell index.
type Cell struct {
	Index int
	Tile  tile.Raw
}

// Snapshot is the plain-data form of a layer used by persistence formats.
//
// A dense snapshot lists every slot, hidden ones included, in index order and
// Length is the slot count. A sparse snapshot lists the stored entries in
// index order and Length is zero.
type Snapshot struct {
	Name   string
	Kind   Kind
	Length int
	Cells  []Cell
}

// Capture copies the contents of l into a snapshot.
func Capture[T tile.Tile[T]](name string, l *Layer[T]) Snapshot {
	s := Snapshot{
		Name:  name,
		Kind:  l.Kind(),
		Cells: make([]Cell, 0, l.Len()),
	}
	if s.Kind == Dense {
		s.Length = l.Len()
	}
	for index, t := range l.All() {
		s.Cells = append(s.Cells, Cell{Index: index, Tile: tile.ToRaw(t)})
	}
	return s
}

// Validate checks the snapshot invariants Restore depends on. Sprite
// indices must fit the unsigned 32-bit field used by the stored formats.
func (s *Snapshot) Validate() error {
	for _, c := range s.Cells {
		if c.Tile.Sprite < 0 || int64(c.Tile.Sprite) > math.MaxUint32 {
			return fmt.Errorf("%w: cell %d sprite %d out of range", ErrInvalidSnapshot, c.Index, c.Tile.Sprite)
		}
	}
	switch s.Kind {
	case Dense:
		if s.Length < 0 {
			return fmt.Errorf("%w: negative length %d", ErrInvalidSnapshot, s.Length)
		}
		for _, c := range s.Cells {
			if c.Index < 0 || c.Index >= s.Length {
				return fmt.Errorf("%w: cell %d outside of %d slots", ErrInvalidSnapshot, c.Index, s.Length)
			}
		}
	case Sparse:
		for _, c := range s.Cells {
			if c.Index < 0 {
				return fmt.Errorf("%w: negative cell %d", ErrInvalidSnapshot, c.Index)
			}
		}
	default:
		return fmt.Errorf("%w: unknown kind %v", ErrInvalidSnapshot, s.Kind)
	}
	return nil
}

// Restore builds a sprite layer from a snapshot. Dense slots missing from
// the snapshot hold hidden default tiles.
func Restore(s Snapshot, opts ...Option) (*SpriteLayer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Kind == Sparse {
		tiles := make(map[int]tile.Raw, len(s.Cells))
		for _, c := range s.Cells {
			tiles[c.Index] = c.Tile
		}
		return Wrap[tile.Raw](NewSparse(tiles, opts...)), nil
	}
	tiles := make([]tile.Raw, s.Length)
	for i := range tiles {
		tiles[i] = tile.Default().Hide()
	}
	for _, c := range s.Cells {
		tiles[c.Index] = c.Tile
	}
	return Wrap[tile.Raw](NewDense(tiles, opts...)), nil
}
