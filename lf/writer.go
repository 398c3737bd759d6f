// Package lf provides API for reading and writing layers in the binary layer
// file format.
//
// A layer file stores any number of named layers. Identical tiles are stored
// once, and cells mapping to the same tile in a row are run-length encoded,
// so fully populated dense layers stay compact.
package lf

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/eak1mov/go-tilelayer/layer"
	"github.com/eak1mov/go-tilelayer/lf/spec"
	"github.com/eak1mov/go-tilelayer/tile"
)

var ErrDuplicateLayer = errors.New("tilelayer: duplicate layer name")

type writerConfig struct {
	Metadata    []byte
	Compression spec.Compression
	Logger      *slog.Logger
}

type WriterOption func(*writerConfig)

func WithMetadata(metadata []byte) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

// WithCompression sets the compression of directories and the layer table.
func WithCompression(compression spec.Compression) WriterOption {
	return func(c *writerConfig) { c.Compression = compression }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// Writer implements layer.Writer interface for layer files.
type Writer struct {
	logger *slog.Logger
	file   *os.File
	header spec.Header

	tileWriter *bufio.Writer
	records    map[tile.Raw]uint64
	record     []byte

	directories []byte
	layers      []spec.LayerEntry
	names       map[string]bool
}

// NewWriter creates a new Writer for writing to a layer file.
//
// The returned Writer must be closed after use; Finalize must be called
// before Close to produce a readable file.
func NewWriter(filePath string, opts ...WriterOption) (w *Writer, err error) {
	config := writerConfig{
		Compression: spec.CompressionGzip,
		Logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}
	if !spec.Supported(config.Compression) {
		return nil, fmt.Errorf("%w (%v)", spec.ErrUnsupportedCompression, config.Compression)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			file.Close()
		}
	}()

	header := spec.Header{
		HeaderMagic:         spec.HeaderMagicV1,
		InternalCompression: config.Compression,
	}
	offset := uint64(spec.HeaderLength)

	if _, err = file.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, err
	}

	if config.Metadata != nil {
		if _, err = file.Write(config.Metadata); err != nil {
			return nil, err
		}
		header.MetadataOffset = offset
		header.MetadataLength = uint64(len(config.Metadata))
		offset += header.MetadataLength
	}
	header.TileDataOffset = offset

	return &Writer{
		logger:     config.Logger,
		file:       file,
		header:     header,
		tileWriter: bufio.NewWriter(file),
		records:    make(map[tile.Raw]uint64),
		names:      make(map[string]bool),
	}, nil
}

func (w *Writer) recordOf(t tile.Raw) (uint64, error) {
	if n, ok := w.records[t]; ok {
		return n, nil
	}
	w.record = spec.AppendRecord(w.record[:0], spec.Record{
		Sprite: uint32(t.Sprite),
		Color:  t.Tint.RGBA(),
	})
	if _, err := w.tileWriter.Write(w.record); err != nil {
		return 0, err
	}
	n := uint64(len(w.records))
	w.records[t] = n
	return n, nil
}

func (w *Writer) WriteLayer(s layer.Snapshot) error {
	if w.tileWriter == nil {
		return errors.New("tilelayer: write after finalize")
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if w.names[s.Name] {
		return fmt.Errorf("%w: %q", ErrDuplicateLayer, s.Name)
	}

	cells := slices.SortedFunc(slices.Values(s.Cells), func(a, b layer.Cell) int {
		return cmp.Compare(a.Index, b.Index)
	})

	entries := make([]spec.Entry, 0, len(cells))
	for _, c := range cells {
		record, err := w.recordOf(c.Tile)
		if err != nil {
			return err
		}
		entries = append(entries, spec.Entry{Cell: uint64(c.Index), Record: record, RunLength: 1})
	}
	entries = spec.CompactEntries(entries)

	directory, err := spec.Compress(spec.SerializeDirectory(entries), w.header.InternalCompression)
	if err != nil {
		return err
	}

	w.logger.Debug("tilelayer: layer written",
		"name", s.Name, "kind", s.Kind, "cells", len(cells), "entries", len(entries))

	w.layers = append(w.layers, spec.LayerEntry{
		Name:            s.Name,
		Kind:            uint8(s.Kind),
		Length:          uint64(s.Length),
		CellsCount:      uint64(len(cells)),
		DirectoryOffset: uint64(len(w.directories)),
		DirectoryLength: uint64(len(directory)),
	})
	w.directories = append(w.directories, directory...)
	w.names[s.Name] = true

	w.header.AddressedCellsCount += uint64(len(cells))
	w.header.CellEntriesCount += uint64(len(entries))
	return nil
}

func (w *Writer) Finalize() error {
	if w.tileWriter == nil {
		panic("tilelayer: finalize called twice")
	}

	w.logger.Debug("tilelayer: flush")
	if err := w.tileWriter.Flush(); err != nil {
		return err
	}
	w.tileWriter = nil
	w.header.TileContentsCount = uint64(len(w.records))
	w.header.TileDataLength = w.header.TileContentsCount * spec.RecordLength

	w.logger.Debug("tilelayer: write directories")
	w.header.DirectoryOffset = w.header.TileDataOffset + w.header.TileDataLength
	w.header.DirectoryLength = uint64(len(w.directories))
	if _, err := w.file.Write(w.directories); err != nil {
		return err
	}

	w.logger.Debug("tilelayer: write layer table")
	table, err := spec.Compress(spec.SerializeLayers(w.layers), w.header.InternalCompression)
	if err != nil {
		return err
	}
	w.header.LayerTableOffset = w.header.DirectoryOffset + w.header.DirectoryLength
	w.header.LayerTableLength = uint64(len(table))
	w.header.LayersCount = uint64(len(w.layers))
	if _, err := w.file.Write(table); err != nil {
		return err
	}

	w.logger.Debug("tilelayer: write header")
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.file.Write(spec.SerializeHeader(&w.header)); err != nil {
		return err
	}

	w.logger.Debug("tilelayer: flush")
	err = w.file.Close()
	w.file = nil
	if err != nil {
		return err
	}

	w.logger.Debug("tilelayer: done!")
	return nil
}

func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
