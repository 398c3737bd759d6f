package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"

	"github.com/eak1mov/go-tilelayer/index"
	"github.com/google/subcommands"
)

type exportCmd struct {
	inputFormat     string
	inputPath       string
	layerName       string
	outputIndexPath string
}

func (c *exportCmd) Name() string     { return "export_index" }
func (c *exportCmd) Synopsis() string { return "export layer cells as flat index records" }
func (c *exportCmd) Usage() string {
	return "layerutils export_index -i <path> -l <layer> -o <path> [-if <format>]\n"
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path")
	f.StringVar(&c.inputFormat, "if", "", "Input format (lf, sqlite, yaml)")
	f.StringVar(&c.layerName, "l", "", "Layer name")
	f.StringVar(&c.outputIndexPath, "o", "", "Output index file path")
}

func (c *exportCmd) export() error {
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
		log.Printf("layer %q not found, writing empty index", c.layerName)
	}

	items, err := index.FromSnapshot(s)
	if err != nil {
		return err
	}

	file, err := os.Create(c.outputIndexPath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := index.WriteAll(items, writer); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return file.Close()
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if err := c.export(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
