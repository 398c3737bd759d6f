package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/eak1mov/go-tilelayer/index"
	"github.com/eak1mov/go-tilelayer/layer"
	"github.com/google/subcommands"
)

type importCmd struct {
	inputIndexPath string
	layerName      string
	kind           string
	length         int
	outputFormat   string
	outputPath     string
}

func (c *importCmd) Name() string     { return "import_index" }
func (c *importCmd) Synopsis() string { return "create single-layer storage from flat index records" }
func (c *importCmd) Usage() string {
	return "layerutils import_index -i <path> -l <layer> -o <path> [-k dense|sparse -n <length> -of <format>]\n"
}
func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputIndexPath, "i", "", "Input index file path")
	f.StringVar(&c.layerName, "l", "", "Layer name")
	f.StringVar(&c.kind, "k", "sparse", "Layer kind (dense, sparse)")
	f.IntVar(&c.length, "n", 0, "Slot count of a dense layer")
	f.StringVar(&c.outputPath, "o", "", "Output path")
	f.StringVar(&c.outputFormat, "of", "", "Output format (lf, sqlite, yaml)")
}

func (c *importCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	kind, err := layer.ParseKind(c.kind)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	indexData, err := os.ReadFile(c.inputIndexPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	indexItems, err := index.ReadAll(indexData)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	s, err := index.ToSnapshot(c.layerName, kind, c.length, indexItems)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	writer, err := openSink(c.outputFormat, c.outputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer writer.Close()

	if err := writer.WriteLayer(s); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := writer.Finalize(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
