package spec_test

import (
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/eak1mov/go-tilelayer/lf/spec"
	"github.com/stretchr/testify/require"
)

func TestHeaderLength(t *testing.T) {
	require.Equal(t, binary.Size(spec.Header{}), spec.HeaderLength)
}

func TestHeaderSerializer(t *testing.T) {
	header1 := spec.Header{
		HeaderMagic:         spec.HeaderMagicV1,
		MetadataOffset:      spec.HeaderLength,
		TileDataOffset:      120,
		LayersCount:         3,
		InternalCompression: spec.CompressionGzip,
	}
	headerData := spec.SerializeHeader(&header1)
	require.Len(t, headerData, spec.HeaderLength)
	header2, err := spec.DeserializeHeader(headerData)
	require.Nil(t, err)
	require.Equal(t, header1, *header2)
}

func TestHeaderErrors(t *testing.T) {
	buf := []byte("foobar")
	_, err := spec.DeserializeHeader(buf)
	require.Truef(t, errors.Is(err, spec.ErrInvalidHeader), "%v", err)
	require.Truef(t, errors.Is(err, io.ErrUnexpectedEOF), "%v", err)

	wrongMagic := spec.Header{HeaderMagic: 0x0102030405060708}
	_, err = spec.DeserializeHeader(spec.SerializeHeader(&wrongMagic))
	require.Truef(t, errors.Is(err, spec.ErrInvalidHeader), "%v", err)

	futureVersion := spec.Header{HeaderMagic: spec.HeaderMagicV1&(1<<56-1) | 2<<56}
	_, err = spec.DeserializeHeader(spec.SerializeHeader(&futureVersion))
	require.Truef(t, errors.Is(err, spec.ErrInvalidVersion), "%v", err)
}
