// Package spec implements the low-level encoding of layer files.
package spec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
)

// Entry maps RunLength consecutive cells, starting at Cell, to one tile
// record.
type Entry struct {
	Cell      uint64
	Record    uint64
	RunLength uint32
}

// SerializeDirectory encodes entries sorted by Cell: the entry count, then
// cell deltas, run lengths and record numbers, all as uvarints. A record
// number is stored as 0 when it repeats the previous entry's record.
func SerializeDirectory(entries []Entry) []byte {
	buffer := make([]byte, 0)

	buffer = binary.AppendUvarint(buffer, uint64(len(entries)))

	lastCell := uint64(0)
	for _, entry := range entries {
		buffer = binary.AppendUvarint(buffer, entry.Cell-lastCell)
		lastCell = entry.Cell
	}

	for _, entry := range entries {
		buffer = binary.AppendUvarint(buffer, uint64(entry.RunLength))
	}

	for i, entry := range entries {
		if i > 0 && entry.Record == entries[i-1].Record {
			buffer = binary.AppendUvarint(buffer, 0)
		} else {
			buffer = binary.AppendUvarint(buffer, entry.Record+1)
		}
	}

	return buffer
}

func DeserializeDirectory(data []byte) ([]Entry, error) {
	byteReader := bytes.NewReader(data)

	var err error
	readUvarint := func() uint64 {
		if err != nil {
			return 0
		}
		var value uint64
		value, err = binary.ReadUvarint(byteReader)
		return value
	}

	numEntries := readUvarint()
	if err == nil && numEntries > uint64(len(data)) {
		return nil, fmt.Errorf("directory entry count %d exceeds data length %d", numEntries, len(data))
	}
	entries := make([]Entry, numEntries)

	lastCell := uint64(0)
	for i := range numEntries {
		lastCell += readUvarint()
		entries[i].Cell = lastCell
	}

	for i := range numEntries {
		entries[i].RunLength = uint32(readUvarint())
	}

	for i := range numEntries {
		value := readUvarint()
		if value == 0 && i > 0 {
			entries[i].Record = entries[i-1].Record
		} else {
			entries[i].Record = value - 1
		}
	}

	return entries, err
}

// CompactEntries merges adjacent entries covering consecutive cells with the
// same record. Entries must be sorted by Cell.
func CompactEntries(entries []Entry) []Entry {
	if len(entries) == 0 {
		return entries
	}
	wi := 0
	for ri := 1; ri < len(entries); ri++ {
		if entries[ri].Record == entries[wi].Record &&
			entries[ri].Cell == entries[wi].Cell+uint64(entries[wi].RunLength) {
			entries[wi].RunLength += entries[ri].RunLength
		} else {
			wi++
			entries[wi] = entries[ri]
		}
	}
	return entries[:wi+1]
}

// FindEntry returns the entry covering cell.
func FindEntry(entries []Entry, cell uint64) (Entry, bool) {
	idx := sort.Search(len(entries), func(i int) bool {
		return entries[i].Cell > cell
	})

	if idx == 0 {
		return Entry{}, false
	}

	entry := entries[idx-1]
	if cell < entry.Cell+uint64(entry.RunLength) {
		return entry, true
	}

	return Entry{}, false
}
