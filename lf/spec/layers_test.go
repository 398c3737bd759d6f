package spec_test

import (
	"errors"
	"testing"

	"github.com/eak1mov/go-tilelayer/lf/spec"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLayersSerializer(t *testing.T) {
	layers := []spec.LayerEntry{
		{Name: "ground", Kind: 0, Length: 4096, CellsCount: 4096, DirectoryOffset: 0, DirectoryLength: 57},
		{Name: "", Kind: 1, CellsCount: 0, DirectoryOffset: 57, DirectoryLength: 1},
		{Name: "objects/items", Kind: 1, CellsCount: 100, DirectoryOffset: 58, DirectoryLength: 310},
	}
	got, err := spec.DeserializeLayers(spec.SerializeLayers(layers))
	require.Nil(t, err)
	if diff := cmp.Diff(layers, got); diff != "" {
		t.Errorf("DeserializeLayers mismatch (-want+got):\n%v", diff)
	}
}

func TestLayersErrors(t *testing.T) {
	data := spec.SerializeLayers([]spec.LayerEntry{{Name: "ground", Length: 16}})
	for i := range len(data) {
		if _, err := spec.DeserializeLayers(data[:i]); err == nil {
			t.Errorf("DeserializeLayers(data[:%d]) succeeded, want error", i)
		}
	}
}

func TestRecord(t *testing.T) {
	record := spec.Record{Sprite: 0xdeadbeef, Color: [4]float32{0.25, 0.5, 1, 0}}
	data := spec.AppendRecord(nil, record)
	require.Len(t, data, spec.RecordLength)

	got, err := spec.DecodeRecord(data)
	require.Nil(t, err)
	require.Equal(t, record, got)

	_, err = spec.DecodeRecord(data[:spec.RecordLength-1])
	require.Truef(t, errors.Is(err, spec.ErrInvalidRecord), "%v", err)
}
