// Package attr flattens layer tiles into the vertex attribute buffers
// consumed by renderers.
//
// Every cell contributes VerticesPerCell consecutive entries to both
// buffers: the sprite index and the color are replicated for each vertex of
// the cell quad.
package attr

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/eak1mov/go-tilelayer/grid"
	"github.com/eak1mov/go-tilelayer/tile"
)

const VerticesPerCell = 4

// Dense flattens tiles in storage order. Hidden tiles are emitted as well,
// since a dense layer keeps one slot per cell.
func Dense[T tile.Tile[T]](tiles []T) ([]float32, [][4]float32) {
	capacity := len(tiles) * VerticesPerCell
	indices := make([]float32, 0, capacity)
	colors := make([][4]float32, 0, capacity)
	for _, t := range tiles {
		index := float32(t.Index())
		color := t.Color().RGBA()
		for range VerticesPerCell {
			indices = append(indices, index)
			colors = append(colors, color)
		}
	}
	return indices, colors
}

// Sparse flattens a cell-index keyed map into buffers covering the whole
// dimension. Cells without a tile keep index 0 and a transparent color.
// Slots of tiles placed outside of the dimension are dropped without error.
func Sparse[T tile.Tile[T]](dimension grid.Dimension, tiles map[int]T) ([]float32, [][4]float32) {
	capacity := dimension.Area() * VerticesPerCell
	indices := make([]float32, capacity)
	colors := make([][4]float32, capacity) // zero value is transparent
	for cell, t := range tiles {
		if cell < 0 || cell >= dimension.Area() {
			continue
		}
		index := float32(t.Index())
		color := t.Color().RGBA()
		for v := range VerticesPerCell {
			Put(indices, cell*VerticesPerCell+v, index)
			Put(colors, cell*VerticesPerCell+v, color)
		}
	}
	return indices, colors
}

// Put stores value at buf[at] if at is inside buf and reports whether the
// write landed.
func Put[E any](buf []E, at int, value E) bool {
	if at < 0 || at >= len(buf) {
		return false
	}
	buf[at] = value
	return true
}

type vertex struct {
	Index float32
	Color [4]float32
}

// Encode writes the buffers as an interleaved little-endian vertex stream:
// one float32 sprite index followed by four float32 color channels per
// vertex.
func Encode(w io.Writer, indices []float32, colors [][4]float32) error {
	if len(indices) != len(colors) {
		return fmt.Errorf("attr: buffer length mismatch (%d indices, %d colors)", len(indices), len(colors))
	}
	bw := bufio.NewWriter(w)
	for i := range indices {
		if err := binary.Write(bw, binary.LittleEndian, vertex{indices[i], colors[i]}); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads a stream written by Encode.
func Decode(data []byte) ([]float32, [][4]float32, error) {
	size := binary.Size(vertex{})
	if len(data)%size != 0 {
		return nil, nil, fmt.Errorf("attr: stream length %d is not a multiple of %d", len(data), size)
	}
	vertices := make([]vertex, len(data)/size)
	if _, err := binary.Decode(data, binary.LittleEndian, vertices); err != nil {
		return nil, nil, err
	}
	indices := make([]float32, len(vertices))
	colors := make([][4]float32, len(vertices))
	for i, v := range vertices {
		indices[i] = v.Index
		colors[i] = v.Color
	}
	return indices, colors, nil
}
