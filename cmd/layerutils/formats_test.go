package main

import (
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-tilelayer/internal"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/subcommands"
)

func TestDeduceFormat(t *testing.T) {
	for _, tc := range []struct {
		Format string
		Path   string
		Want   string
	}{
		{Path: "level1.tlf", Want: "lf"},
		{Path: "level1.sqlite", Want: "sqlite"},
		{Path: "level1.db", Want: "sqlite"},
		{Path: "level1/{layer}.yaml", Want: "yaml"},
		{Format: "sqlite", Path: "level1.bin", Want: "sqlite"},
		{Path: "level1.bin", Want: ""},
	} {
		if got := deduceFormat(tc.Format, tc.Path); got != tc.Want {
			t.Errorf("deduceFormat(%q, %q) = %q, want = %q", tc.Format, tc.Path, got, tc.Want)
		}
	}
}

func TestConvertChain(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.tlf")

	writer, err := openSink("", source)
	if err != nil {
		t.Fatalf("openSink failed: %v", err)
	}
	for _, s := range internal.All() {
		if err := writer.WriteLayer(s); err != nil {
			t.Fatalf("WriteLayer(%q) failed: %v", s.Name, err)
		}
	}
	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	writer.Close()

	paths := []string{
		source,
		filepath.Join(dir, "yaml", "{layer}.yaml"),
		filepath.Join(dir, "copy.tlf"),
	}
	for i := 1; i < len(paths); i++ {
		cmd := &convertCmd{inputPath: paths[i-1], outputPath: paths[i]}
		if status := cmd.Execute(t.Context(), nil); status != subcommands.ExitSuccess {
			t.Fatalf("convert %q -> %q = %v", paths[i-1], paths[i], status)
		}
	}

	reader, err := openSource("", paths[len(paths)-1])
	if err != nil {
		t.Fatalf("openSource failed: %v", err)
	}
	defer reader.Close()

	for _, s := range internal.All() {
		got, err := reader.ReadLayer(s.Name)
		if err != nil {
			t.Fatalf("ReadLayer(%q) failed: %v", s.Name, err)
		}
		if diff := cmp.Diff(s, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("ReadLayer(%q) mismatch (-want+got):\n%v", s.Name, diff)
		}
	}
}

func TestOpenInvalidFormat(t *testing.T) {
	if _, err := openSource("", "level1.bin"); err == nil {
		t.Errorf("openSource(level1.bin) succeeded, want error")
	}
	if _, err := openSink("png", "level1.png"); err == nil {
		t.Errorf("openSink(png) succeeded, want error")
	}
}
