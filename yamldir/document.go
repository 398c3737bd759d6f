package yamldir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eak1mov/go-tilelayer/layer"
	"github.com/eak1mov/go-tilelayer/tile"
	"gopkg.in/yaml.v3"
)

type document struct {
	Name   string      `yaml:"name"`
	Kind   string      `yaml:"kind"`
	Length int         `yaml:"length,omitempty"`
	Tiles  []cellEntry `yaml:"tiles"`
}

type cellEntry struct {
	Cell   int   `yaml:"cell"`
	Sprite int   `yaml:"sprite"`
	Color  Color `yaml:"color,flow"`
}

// Color is a tile color as written in layer documents: a sequence of
// [r, g, b, a] floats. A "#rrggbb" or "#rrggbbaa" hex string is accepted
// on read, as is a sequence without alpha.
type Color tile.Color

func (c Color) MarshalYAML() (any, error) {
	return []float32{c.R, c.G, c.B, c.A}, nil
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return c.parseHex(value.Value)
	case yaml.SequenceNode:
		var rgba []float32
		if err := value.Decode(&rgba); err != nil {
			return err
		}
		switch len(rgba) {
		case 3:
			*c = Color{R: rgba[0], G: rgba[1], B: rgba[2], A: 1}
		case 4:
			*c = Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
		default:
			return fmt.Errorf("line %d: color must have 3 or 4 components, got %d", value.Line, len(rgba))
		}
		return nil
	}
	return fmt.Errorf("line %d: color must be a sequence or a string", value.Line)
}

func (c *Color) parseHex(value string) error {
	s := strings.TrimPrefix(value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value)
	}

	parse := func(start int) (float32, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return float32(v) / 255, err
	}

	var rgba [4]float32
	rgba[3] = 1
	for i := range len(s) / 2 {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color format: %s: %w", value, err)
		}
		rgba[i] = v
	}

	*c = Color(tile.FromRGBA(rgba))
	return nil
}

func marshalSnapshot(s layer.Snapshot) ([]byte, error) {
	doc := document{
		Name:   s.Name,
		Kind:   s.Kind.String(),
		Length: s.Length,
		Tiles:  make([]cellEntry, 0, len(s.Cells)),
	}
	for _, c := range s.Cells {
		doc.Tiles = append(doc.Tiles, cellEntry{Cell: c.Index, Sprite: c.Tile.Sprite, Color: Color(c.Tile.Tint)})
	}
	return yaml.Marshal(&doc)
}

func unmarshalSnapshot(data []byte, name string) (layer.Snapshot, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return layer.Snapshot{}, fmt.Errorf("layer %q: %w", name, err)
	}
	kind, err := layer.ParseKind(doc.Kind)
	if err != nil {
		return layer.Snapshot{}, fmt.Errorf("layer %q: %w", name, err)
	}

	s := layer.Snapshot{
		Name:   name,
		Kind:   kind,
		Length: doc.Length,
		Cells:  make([]layer.Cell, 0, len(doc.Tiles)),
	}
	for _, e := range doc.Tiles {
		s.Cells = append(s.Cells, layer.Cell{
			Index: e.Cell,
			Tile:  tile.Raw{Sprite: e.Sprite, Tint: tile.Color(e.Color)},
		})
	}
	if err := s.Validate(); err != nil {
		return layer.Snapshot{}, fmt.Errorf("layer %q: %w", name, err)
	}
	return s, nil
}
