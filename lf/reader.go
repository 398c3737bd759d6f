package lf

import (
	"errors"
	"fmt"
	"os"

	"github.com/eak1mov/go-tilelayer/layer"
	"github.com/eak1mov/go-tilelayer/lf/spec"
	"github.com/eak1mov/go-tilelayer/tile"
)

type FileAccessFunc = func(offset, length uint64) ([]byte, error)

var ErrCorruptLayer = errors.New("tilelayer: corrupt layer")

// Cell counts come from the file; larger layers grow on append.
const maxPreallocatedCells = 1 << 16

// Reader implements layer.Reader and layer.Visitor interfaces for layer
// files.
type Reader struct {
	fileAccess FileAccessFunc
	fileCloser func() error
	header     *spec.Header
	layers     []spec.LayerEntry
}

// NewFileReader opens the layer file at filePath.
//
// The returned Reader must be closed after use.
func NewFileReader(filePath string) (*Reader, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	fileAccess := func(offset uint64, length uint64) ([]byte, error) {
		buffer := make([]byte, length)
		if _, err := file.ReadAt(buffer, int64(offset)); err != nil {
			return nil, err
		}
		return buffer, nil
	}
	r, err := newReader(fileAccess, file.Close)
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// NewReader creates a Reader over arbitrary storage, e.g. an in-memory
// buffer or a remote object.
func NewReader(fileAccess FileAccessFunc) (*Reader, error) {
	return newReader(fileAccess, func() error { return nil })
}

func newReader(fileAccess FileAccessFunc, fileCloser func() error) (*Reader, error) {
	headerData, err := fileAccess(0, spec.HeaderLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", spec.ErrInvalidHeader, err)
	}
	header, err := spec.DeserializeHeader(headerData)
	if err != nil {
		return nil, err
	}
	tableCompressed, err := fileAccess(header.LayerTableOffset, header.LayerTableLength)
	if err != nil {
		return nil, err
	}
	tableData, err := spec.Decompress(tableCompressed, header.InternalCompression)
	if err != nil {
		return nil, err
	}
	layers, err := spec.DeserializeLayers(tableData)
	if err != nil {
		return nil, err
	}
	return &Reader{
		fileAccess: fileAccess,
		fileCloser: fileCloser,
		header:     header,
		layers:     layers,
	}, nil
}

func (r *Reader) Close() error {
	return r.fileCloser()
}

func (r *Reader) Header() spec.Header {
	return *r.header
}

func (r *Reader) ReadMetadata() ([]byte, error) {
	return r.fileAccess(r.header.MetadataOffset, r.header.MetadataLength)
}

// Layers returns the names of the stored layers in file order.
func (r *Reader) Layers() []string {
	names := make([]string, len(r.layers))
	for i, l := range r.layers {
		names[i] = l.Name
	}
	return names
}

func (r *Reader) findLayer(name string) (spec.LayerEntry, bool) {
	for _, l := range r.layers {
		if l.Name == name {
			return l, true
		}
	}
	return spec.LayerEntry{}, false
}

func (r *Reader) readDirectory(l spec.LayerEntry) ([]spec.Entry, error) {
	dirCompressed, err := r.fileAccess(r.header.DirectoryOffset+l.DirectoryOffset, l.DirectoryLength)
	if err != nil {
		return nil, err
	}
	dirData, err := spec.Decompress(dirCompressed, r.header.InternalCompression)
	if err != nil {
		return nil, err
	}
	return spec.DeserializeDirectory(dirData)
}

func (r *Reader) readRecord(record uint64) (tile.Raw, error) {
	if record >= r.header.TileContentsCount {
		return tile.Raw{}, fmt.Errorf("%w: record %d of %d", spec.ErrInvalidRecord, record, r.header.TileContentsCount)
	}
	data, err := r.fileAccess(r.header.TileDataOffset+record*spec.RecordLength, spec.RecordLength)
	if err != nil {
		return tile.Raw{}, err
	}
	rec, err := spec.DecodeRecord(data)
	if err != nil {
		return tile.Raw{}, err
	}
	return tile.Raw{Sprite: int(rec.Sprite), Tint: tile.FromRGBA(rec.Color)}, nil
}

func (r *Reader) readLayer(l spec.LayerEntry) (layer.Snapshot, error) {
	entries, err := r.readDirectory(l)
	if err != nil {
		return layer.Snapshot{}, err
	}

	s := layer.Snapshot{
		Name:   l.Name,
		Kind:   layer.Kind(l.Kind),
		Length: int(l.Length),
		Cells:  make([]layer.Cell, 0, min(l.CellsCount, maxPreallocatedCells)),
	}
	tiles := make(map[uint64]tile.Raw)
	for _, entry := range entries {
		if uint64(len(s.Cells))+uint64(entry.RunLength) > l.CellsCount {
			return layer.Snapshot{}, fmt.Errorf("%w: layer %q has more than %d cells", ErrCorruptLayer, l.Name, l.CellsCount)
		}
		t, ok := tiles[entry.Record]
		if !ok {
			if t, err = r.readRecord(entry.Record); err != nil {
				return layer.Snapshot{}, err
			}
			tiles[entry.Record] = t
		}
		for i := range uint64(entry.RunLength) {
			s.Cells = append(s.Cells, layer.Cell{Index: int(entry.Cell + i), Tile: t})
		}
	}
	if uint64(len(s.Cells)) != l.CellsCount {
		return layer.Snapshot{}, fmt.Errorf("%w: layer %q has %d of %d cells", ErrCorruptLayer, l.Name, len(s.Cells), l.CellsCount)
	}
	if err := s.Validate(); err != nil {
		return layer.Snapshot{}, err
	}
	return s, nil
}

func (r *Reader) ReadLayer(name string) (layer.Snapshot, error) {
	l, found := r.findLayer(name)
	if !found {
		return layer.Snapshot{}, nil
	}
	return r.readLayer(l)
}

func (r *Reader) VisitLayers(visitor func(layer.Snapshot) error) error {
	for _, l := range r.layers {
		s, err := r.readLayer(l)
		if err != nil {
			return err
		}
		if err := visitor(s); err != nil {
			return err
		}
	}
	return nil
}

// ReadCell reads a single stored cell of a layer without expanding the
// whole layer. For dense layers hidden slots are returned as stored.
func (r *Reader) ReadCell(name string, index int) (tile.Raw, bool, error) {
	l, found := r.findLayer(name)
	if !found || index < 0 {
		return tile.Raw{}, false, nil
	}
	entries, err := r.readDirectory(l)
	if err != nil {
		return tile.Raw{}, false, err
	}
	entry, found := spec.FindEntry(entries, uint64(index))
	if !found {
		return tile.Raw{}, false, nil
	}
	t, err := r.readRecord(entry.Record)
	if err != nil {
		return tile.Raw{}, false, err
	}
	return t, true, nil
}
