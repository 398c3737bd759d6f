package yamldir

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/eak1mov/go-tilelayer/layer"
)

type writerConfig struct {
	Logger *slog.Logger
}

type WriterOption func(*writerConfig)

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// Writer implements layer.Writer interface for layers stored as YAML
// documents.
type Writer struct {
	filePattern string
	logger      *slog.Logger
}

// NewWriter creates a new Writer for the given file pattern (e.g. "/home/user/level1/{layer}.yaml").
func NewWriter(filePattern string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}
	return &Writer{filePattern, config.Logger}, nil
}

func (w *Writer) WriteLayer(s layer.Snapshot) error {
	if err := validateName(s.Name); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}

	data, err := marshalSnapshot(s)
	if err != nil {
		return fmt.Errorf("layer %q: %w", s.Name, err)
	}

	filePath := formatPattern(w.filePattern, s.Name)

	dirPath := filepath.Dir(filePath)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return err
	}

	w.logger.Debug("tilelayer: layer written", "name", s.Name, "path", filePath)
	return os.WriteFile(filePath, data, 0644)
}

func (w *Writer) Finalize() error {
	return nil
}
