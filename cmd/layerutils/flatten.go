package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/eak1mov/go-tilelayer/attr"
	"github.com/eak1mov/go-tilelayer/grid"
	"github.com/eak1mov/go-tilelayer/layer"
	"github.com/google/subcommands"
)

type flattenCmd struct {
	inputFormat string
	inputPath   string
	layerName   string
	width       uint
	height      uint
	outputPath  string
}

func (c *flattenCmd) Name() string     { return "flatten" }
func (c *flattenCmd) Synopsis() string { return "write per-vertex attributes of a layer" }
func (c *flattenCmd) Usage() string {
	return "layerutils flatten -i <path> -l <layer> -w <width> -h <height> -o <path> [-if <format>]\n"
}
func (c *flattenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path")
	f.StringVar(&c.inputFormat, "if", "", "Input format (lf, sqlite, yaml)")
	f.StringVar(&c.layerName, "l", "", "Layer name")
	f.UintVar(&c.width, "w", 0, "Grid width in cells")
	f.UintVar(&c.height, "h", 0, "Grid height in cells")
	f.StringVar(&c.outputPath, "o", "", "Output attributes file path")
}

func (c *flattenCmd) flatten() error {
	reader, err := openSource(c.inputFormat, c.inputPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	s, err := reader.ReadLayer(c.layerName)
	if err != nil {
		return err
	}
	if s.Name == "" {
		return fmt.Errorf("layer %q not found", c.layerName)
	}

	l, err := layer.Restore(s, layer.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	dimension := grid.Dimension{Width: uint32(c.width), Height: uint32(c.height)}
	indices, colors := l.Attributes(dimension)

	file, err := os.Create(c.outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := attr.Encode(file, indices, colors); err != nil {
		return err
	}
	log.Printf("layer %q: %d vertices, %d visible tiles", s.Name, len(indices), len(l.Indices()))
	return file.Close()
}

func (c *flattenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if err := c.flatten(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
