// Package layer stores the tiles of a single tilemap layer.
//
// Two strategies implement the Storage contract. DenseStorage keeps one slot
// per cell and suits fully populated backgrounds. SparseStorage keeps a map
// keyed by linear cell index and suits entities, objects and items. Layer
// wraps exactly one of them, so callers never branch on the storage kind.
//
// The strategies differ in how hidden tiles (alpha == 0) are read: a dense
// storage treats them as absent, a sparse storage returns whatever was set.
package layer

import (
	"fmt"
	"iter"

	"github.com/eak1mov/go-tilelayer/grid"
)

// Kind selects the storage strategy of a layer.
type Kind uint8

const (
	Dense Kind = iota
	Sparse
)

func (k Kind) String() string {
	switch k {
	case Dense:
		return "dense"
	case Sparse:
		return "sparse"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "dense":
		return Dense, nil
	case "sparse":
		return Sparse, nil
	}
	return 0, fmt.Errorf("tilelayer: unknown layer kind %q", s)
}

// Storage is the contract shared by the storage strategies. Indices are
// linear cell indices computed by the caller.
type Storage[T any] interface {
	Kind() Kind

	// SetTile stores t at index. Writes a strategy can not hold are
	// dropped and reported to the configured Sink.
	SetTile(index int, t T)

	// RemoveTile hides (dense) or deletes (sparse) the tile at index.
	RemoveTile(index int)

	// Tile returns the tile at index. A dense storage reports hidden tiles
	// as absent, a sparse storage does not filter them.
	Tile(index int) (T, bool)

	// UpdateTile calls fn with a pointer to the stored tile, with the same
	// presence rules as Tile. It reports whether fn was called.
	UpdateTile(index int, fn func(t *T)) bool

	// Indices returns the indices Tile would report as present, ascending.
	Indices() []int

	// Clear drops every tile.
	Clear()

	// Attributes flattens the stored tiles for the renderer.
	Attributes(dimension grid.Dimension) ([]float32, [][4]float32)

	// Len returns the number of stored slots or entries.
	Len() int

	// Count returns the tile counter used for emptiness checks.
	Count() int

	// All iterates over every stored tile, hidden ones included, in index
	// order.
	All() iter.Seq2[int, T]
}
