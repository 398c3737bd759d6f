// Package yamldir provides API for reading and writing layers as YAML
// documents in a directory, one file per layer with paths like
// "/level1/{layer}.yaml".
package yamldir

import (
	"errors"
	"fmt"
	"strings"
)

const placeholder = "{layer}"

var (
	ErrInvalidPattern = errors.New("tilelayer: invalid file pattern")
	ErrInvalidName    = errors.New("tilelayer: invalid layer name")
)

func validatePattern(pattern string) error {
	if n := strings.Count(pattern, placeholder); n != 1 {
		return fmt.Errorf("%w: placeholder %v found %d times", ErrInvalidPattern, placeholder, n)
	}
	return nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func formatPattern(pattern string, name string) string {
	return strings.ReplaceAll(pattern, placeholder, name)
}
