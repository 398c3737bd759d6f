package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/eak1mov/go-tilelayer/layer"
	"github.com/eak1mov/go-tilelayer/lf"
	"github.com/eak1mov/go-tilelayer/sqlite"
	"github.com/eak1mov/go-tilelayer/yamldir"
)

type layerSource interface {
	layer.Reader
	layer.Visitor
	Close() error
}

type layerSink interface {
	layer.Writer
	Close() error
}

func deduceFormat(format, filePath string) string {
	if format != "" {
		return format
	}
	switch {
	case strings.Contains(filePath, "{layer}"):
		return "yaml"
	case strings.HasSuffix(filePath, ".tlf"):
		return "lf"
	case strings.HasSuffix(filePath, ".sqlite"), strings.HasSuffix(filePath, ".db"):
		return "sqlite"
	}
	return format
}

type yamlReader struct{ *yamldir.Reader }

func (yamlReader) Close() error { return nil }

type yamlWriter struct{ *yamldir.Writer }

func (yamlWriter) Close() error { return nil }

func openSource(format, filePath string) (layerSource, error) {
	switch deduceFormat(format, filePath) {
	case "lf":
		return lf.NewFileReader(filePath)
	case "sqlite":
		return sqlite.NewReader(filePath)
	case "yaml":
		r, err := yamldir.NewReader(filePath)
		if err != nil {
			return nil, err
		}
		return yamlReader{r}, nil
	}
	return nil, fmt.Errorf("invalid input format: %q (path %q)", format, filePath)
}

func openSink(format, filePath string) (layerSink, error) {
	logger := slog.Default()
	switch deduceFormat(format, filePath) {
	case "lf":
		return lf.NewWriter(filePath, lf.WithLogger(logger))
	case "sqlite":
		return sqlite.NewWriter(filePath, sqlite.WithLogger(logger))
	case "yaml":
		w, err := yamldir.NewWriter(filePath, yamldir.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return yamlWriter{w}, nil
	}
	return nil, fmt.Errorf("invalid output format: %q (path %q)", format, filePath)
}
