package spec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// LayerEntry describes one layer stored in the file.
type LayerEntry struct {
	Name            string
	Kind            uint8
	Length          uint64 // dense slot count, zero for sparse layers
	CellsCount      uint64
	DirectoryOffset uint64 // relative to Header.DirectoryOffset
	DirectoryLength uint64
}

func SerializeLayers(layers []LayerEntry) []byte {
	buffer := make([]byte, 0)
	buffer = binary.AppendUvarint(buffer, uint64(len(layers)))
	for _, l := range layers {
		buffer = binary.AppendUvarint(buffer, uint64(len(l.Name)))
		buffer = append(buffer, l.Name...)
		buffer = append(buffer, l.Kind)
		buffer = binary.AppendUvarint(buffer, l.Length)
		buffer = binary.AppendUvarint(buffer, l.CellsCount)
		buffer = binary.AppendUvarint(buffer, l.DirectoryOffset)
		buffer = binary.AppendUvarint(buffer, l.DirectoryLength)
	}
	return buffer
}

func DeserializeLayers(data []byte) ([]LayerEntry, error) {
	reader := bytes.NewReader(data)

	count, err := binary.ReadUvarint(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read layer table: %w", err)
	}
	if count > uint64(len(data)) {
		return nil, fmt.Errorf("layer count %d exceeds table length %d", count, len(data))
	}

	layers := make([]LayerEntry, count)
	for i := range layers {
		l := &layers[i]
		nameLength, err := binary.ReadUvarint(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read layer %d: %w", i, err)
		}
		if nameLength > uint64(reader.Len()) {
			return nil, fmt.Errorf("failed to read layer %d: %w", i, io.ErrUnexpectedEOF)
		}
		name := make([]byte, nameLength)
		if _, err := io.ReadFull(reader, name); err != nil {
			return nil, fmt.Errorf("failed to read layer %d: %w", i, err)
		}
		l.Name = string(name)
		if l.Kind, err = reader.ReadByte(); err != nil {
			return nil, fmt.Errorf("failed to read layer %d: %w", i, err)
		}
		for _, field := range []*uint64{&l.Length, &l.CellsCount, &l.DirectoryOffset, &l.DirectoryLength} {
			if *field, err = binary.ReadUvarint(reader); err != nil {
				return nil, fmt.Errorf("failed to read layer %d: %w", i, err)
			}
		}
	}
	return layers, nil
}

// RecordLength is the encoded size of one tile record.
const RecordLength = 20

var ErrInvalidRecord = errors.New("invalid tile record")

// Record is the stored form of a tile: a sprite index and a color.
type Record struct {
	Sprite uint32
	Color  [4]float32
}

func AppendRecord(buffer []byte, r Record) []byte {
	buffer = binary.LittleEndian.AppendUint32(buffer, r.Sprite)
	for _, c := range r.Color {
		buffer = binary.LittleEndian.AppendUint32(buffer, math.Float32bits(c))
	}
	return buffer
}

func DecodeRecord(data []byte) (Record, error) {
	if len(data) != RecordLength {
		return Record{}, fmt.Errorf("%w: length %d", ErrInvalidRecord, len(data))
	}
	r := Record{Sprite: binary.LittleEndian.Uint32(data)}
	for i := range r.Color {
		r.Color[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4+i*4:]))
	}
	return r, nil
}
