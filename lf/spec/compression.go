package spec

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
)

var ErrUnsupportedCompression = errors.New("compression not supported")

type codec struct {
	compress   func(data []byte) ([]byte, error)
	decompress func(data []byte) ([]byte, error)
}

func identity(data []byte) ([]byte, error) { return data, nil }

var codecs = map[Compression]codec{
	CompressionNone: {compress: identity, decompress: identity},
	CompressionGzip: {compress: gzipCompress, decompress: gzipDecompress},
}

// Supported reports whether Compress and Decompress accept compression.
func Supported(compression Compression) bool {
	_, ok := codecs[compression]
	return ok
}

func lookupCodec(compression Compression) (codec, error) {
	c, ok := codecs[compression]
	if !ok {
		return codec{}, fmt.Errorf("%w (%v)", ErrUnsupportedCompression, compression)
	}
	return c, nil
}

func Compress(data []byte, compression Compression) ([]byte, error) {
	c, err := lookupCodec(compression)
	if err != nil {
		return nil, err
	}
	return c.compress(data)
}

func Decompress(data []byte, compression Compression) ([]byte, error) {
	c, err := lookupCodec(compression)
	if err != nil {
		return nil, err
	}
	return c.decompress(data)
}

func gzipCompress(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer, _ := gzip.NewWriterLevel(&buffer, gzip.BestCompression)
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	return buffer.Bytes(), nil
}

func gzipDecompress(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	defer reader.Close()

	result, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return result, nil
}
