package yamldir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/eak1mov/go-tilelayer/layer"
)

// Reader implements layer.Reader and layer.Visitor interfaces for layers
// stored as YAML documents.
type Reader struct {
	filePattern string
	rootDir     string
	pathRegexp  *regexp.Regexp
}

// NewReader creates a new Reader for the given file pattern (e.g. "/home/user/level1/{layer}.yaml").
func NewReader(filePattern string) (*Reader, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}

	prefix, suffix, _ := strings.Cut(filePattern, placeholder)
	regexPattern := regexp.QuoteMeta(prefix) + `(?P<layer>[^/\\]+)` + regexp.QuoteMeta(suffix)
	pathRegex, err := regexp.Compile("^" + regexPattern + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	path0 := formatPattern(filePattern, "a")
	path1 := formatPattern(filePattern, "b")
	for path0 != path1 {
		path0 = filepath.Dir(path0)
		path1 = filepath.Dir(path1)
	}
	rootDir := path0

	return &Reader{filePattern, rootDir, pathRegex}, nil
}

func (r *Reader) ReadLayer(name string) (layer.Snapshot, error) {
	if err := validateName(name); err != nil {
		return layer.Snapshot{}, err
	}
	data, err := os.ReadFile(formatPattern(r.filePattern, name))
	if errors.Is(err, fs.ErrNotExist) {
		return layer.Snapshot{}, nil
	}
	if err != nil {
		return layer.Snapshot{}, err
	}
	return unmarshalSnapshot(data, name)
}

// VisitLayers visits layers in lexical order of their file paths. Files
// not matching the pattern are skipped.
func (r *Reader) VisitLayers(visitor func(layer.Snapshot) error) error {
	return filepath.WalkDir(r.rootDir, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			if filePath == r.rootDir && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}

		if d.IsDir() {
			return nil
		}

		matches := r.pathRegexp.FindStringSubmatch(filePath)
		if matches == nil {
			return nil
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}

		s, err := unmarshalSnapshot(data, matches[r.pathRegexp.SubexpIndex("layer")])
		if err != nil {
			return err
		}
		return visitor(s)
	})
}
