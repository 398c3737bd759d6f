// Package internal holds layer fixtures shared by the format tests.
package internal

import (
	"iter"

	"github.com/eak1mov/go-tilelayer/grid"
	"github.com/eak1mov/go-tilelayer/layer"
	"github.com/eak1mov/go-tilelayer/tile"
)

var (
	grass = tile.Raw{Sprite: 1, Tint: tile.White}
	water = tile.Raw{Sprite: 2, Tint: tile.Color{R: 0.25, G: 0.5, B: 1, A: 0.75}}
	chest = tile.Raw{Sprite: 40, Tint: tile.Color{R: 1, G: 0.875, B: 0.125, A: 1}}
	ghost = tile.Raw{Sprite: 41, Tint: tile.Color{R: 0.5, G: 0.5, B: 0.5, A: 0}}
)

// Fixtures yields named layer snapshots covering empty layers, hidden
// tiles, long runs and scattered sparse entries.
func Fixtures() iter.Seq2[string, layer.Snapshot] {
	return func(yield func(string, layer.Snapshot) bool) {
		for _, f := range []struct {
			name  string
			build func() layer.Snapshot
		}{
			{"empty_sparse", emptySparse},
			{"empty_dense", emptyDense},
			{"small_dense", smallDense},
			{"meadow", meadow},
			{"items", items},
			{"hidden_sparse", hiddenSparse},
		} {
			if !yield(f.name, f.build()) {
				return
			}
		}
	}
}

// All returns every fixture in Fixtures order.
func All() []layer.Snapshot {
	var all []layer.Snapshot
	for _, s := range Fixtures() {
		all = append(all, s)
	}
	return all
}

func emptySparse() layer.Snapshot {
	return layer.Capture("empty_sparse", layer.NewSpriteLayer(layer.Sparse, grid.Dimension{}))
}

func emptyDense() layer.Snapshot {
	return layer.Capture("empty_dense", layer.NewSpriteLayer(layer.Dense, grid.Dimension{}))
}

func smallDense() layer.Snapshot {
	l := layer.NewSpriteLayer(layer.Dense, grid.Dimension{Width: 2, Height: 2})
	l.SetTile(2, tile.Raw{Sprite: 7, Tint: tile.Color{R: 1, A: 1}})
	return layer.Capture("small_dense", l)
}

// meadow is a 64x64 background of grass with a water pond and a removed
// patch.
func meadow() layer.Snapshot {
	dim := grid.Dimension{Width: 64, Height: 64}
	rows := grid.RowMajor{Dimension: dim}
	l := layer.New(layer.Dense, dim.Area(), grass)
	for y := 20; y < 30; y++ {
		for x := 10; x < 40; x++ {
			l.SetTile(rows.Index(x, y), water)
		}
	}
	for x := range 5 {
		l.RemoveTile(rows.Index(x, 63))
	}
	return layer.Capture("meadow", l)
}

func items() layer.Snapshot {
	l := layer.NewSpriteLayer(layer.Sparse, grid.Dimension{Width: 64, Height: 64})
	for i := range 100 {
		l.SetTile((i*7919)%4096, chest)
	}
	l.SetTile(1<<20, chest) // outside of the grid
	return layer.Capture("items", l)
}

func hiddenSparse() layer.Snapshot {
	l := layer.NewSpriteLayer(layer.Sparse, grid.Dimension{Width: 4, Height: 4})
	l.SetTile(0, ghost)
	l.SetTile(3, grass)
	return layer.Capture("hidden_sparse", l)
}
