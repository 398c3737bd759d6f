package spec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

type Compression uint8

const (
	CompressionUnknown Compression = iota
	CompressionNone
	CompressionGzip
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// Header is the fixed-size block at the start of every layer file.
//
// The file is laid out as: header, metadata, tile records, cell directories,
// layer table. Offsets are absolute; directory offsets stored in the layer
// table are relative to DirectoryOffset.
type Header struct {
	HeaderMagic         uint64
	MetadataOffset      uint64
	MetadataLength      uint64
	TileDataOffset      uint64
	TileDataLength      uint64
	DirectoryOffset     uint64
	DirectoryLength     uint64
	LayerTableOffset    uint64
	LayerTableLength    uint64
	LayersCount         uint64
	AddressedCellsCount uint64
	CellEntriesCount    uint64
	TileContentsCount   uint64
	InternalCompression Compression
}

const (
	headerMagic     uint64 = 0x73726579614C54 // "TLayers"
	headerMagicMask uint64 = 1<<56 - 1
	HeaderMagicV1   uint64 = headerMagic | (0x01 << 56)

	HeaderLength = 105
)

var ErrInvalidHeader = errors.New("invalid file header")
var ErrInvalidVersion = errors.New("invalid version")

func SerializeHeader(header *Header) []byte {
	var buffer bytes.Buffer
	writer := bufio.NewWriter(&buffer)
	binary.Write(writer, binary.LittleEndian, header)
	writer.Flush()
	return buffer.Bytes()
}

func DeserializeHeader(buffer []byte) (*Header, error) {
	header := Header{}
	reader := bytes.NewReader(buffer)
	err := binary.Read(reader, binary.LittleEndian, &header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if header.HeaderMagic&headerMagicMask != headerMagic {
		return nil, ErrInvalidHeader
	}
	if header.HeaderMagic != HeaderMagicV1 {
		return nil, ErrInvalidVersion
	}
	return &header, nil
}
