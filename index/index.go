// Package index provides utilities for the flat layer index format.
package index

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"fmt"
	"io"
	"slices"

	"github.com/eak1mov/go-tilelayer/layer"
	"github.com/eak1mov/go-tilelayer/tile"
)

// Item represents a single record in the index, mapping a cell index to
// the sprite and color stored there.
// It is designed to be easily portable to other languages and utilities.
type Item struct {
	Cell   uint64
	Sprite uint32
	R      float32
	G      float32
	B      float32
	A      float32
}

func (i Item) Tile() tile.Raw {
	return tile.Raw{Sprite: int(i.Sprite), Tint: tile.Color{R: i.R, G: i.G, B: i.B, A: i.A}}
}

func WriteAll(items []Item, writer io.Writer) error {
	return binary.Write(writer, binary.LittleEndian, items)
}

func ReadAll(indexData []byte) ([]Item, error) {
	itemSize := binary.Size(Item{})
	if len(indexData)%itemSize != 0 {
		return nil, fmt.Errorf("index length %d is not a multiple of %d", len(indexData), itemSize)
	}
	count := len(indexData) / itemSize
	items := make([]Item, count)

	err := binary.Read(bytes.NewReader(indexData), binary.LittleEndian, items)
	if err != nil {
		return nil, err
	}

	return items, nil
}

// FromSnapshot lists the stored cells of a layer as index items. The
// snapshot is validated first, so every sprite fits the record field.
func FromSnapshot(s layer.Snapshot) ([]Item, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(s.Cells))
	for _, c := range s.Cells {
		items = append(items, Item{
			Cell:   uint64(c.Index),
			Sprite: uint32(c.Tile.Sprite),
			R:      c.Tile.Tint.R,
			G:      c.Tile.Tint.G,
			B:      c.Tile.Tint.B,
			A:      c.Tile.Tint.A,
		})
	}
	return items, nil
}

// ToSnapshot builds a layer snapshot from index items. Items are sorted by
// cell; when a cell repeats, the last item for it wins.
func ToSnapshot(name string, kind layer.Kind, length int, items []Item) (layer.Snapshot, error) {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		return cmp.Compare(a.Cell, b.Cell)
	})

	s := layer.Snapshot{
		Name:  name,
		Kind:  kind,
		Cells: make([]layer.Cell, 0, len(sorted)),
	}
	if kind == layer.Dense {
		s.Length = length
	}
	for i, item := range sorted {
		if i+1 < len(sorted) && sorted[i+1].Cell == item.Cell {
			continue
		}
		s.Cells = append(s.Cells, layer.Cell{Index: int(item.Cell), Tile: item.Tile()})
	}
	if err := s.Validate(); err != nil {
		return layer.Snapshot{}, err
	}
	return s, nil
}
