// Package sqlite provides API for reading and writing layers stored in a
// SQLite database.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/eak1mov/go-tilelayer/layer"
	"github.com/eak1mov/go-tilelayer/tile"
)

// Reader implements layer.Reader and layer.Visitor interfaces for SQLite
// layer databases.
type Reader struct {
	db        *sql.DB
	layerStmt *sql.Stmt
	tilesStmt *sql.Stmt
}

// NewReader creates a new Reader for the given database file path.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	layerStmt, err := db.Prepare("SELECT kind, length FROM layers WHERE name = ?")
	if err != nil {
		db.Close()
		return nil, err
	}

	tilesStmt, err := db.Prepare("SELECT cell, sprite, r, g, b, a FROM tiles WHERE layer = ? ORDER BY cell")
	if err != nil {
		layerStmt.Close()
		db.Close()
		return nil, err
	}

	return &Reader{db: db, layerStmt: layerStmt, tilesStmt: tilesStmt}, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.layerStmt.Close(), r.tilesStmt.Close(), r.db.Close())
}

func (r *Reader) ReadMetadata() (map[string]string, error) {
	metadata := make(map[string]string)

	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metadata, nil
}

func (r *Reader) readCells(s *layer.Snapshot) error {
	rows, err := r.tilesStmt.Query(s.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	s.Cells = make([]layer.Cell, 0)
	for rows.Next() {
		var c layer.Cell
		color := &c.Tile.Tint
		if err := rows.Scan(&c.Index, &c.Tile.Sprite, &color.R, &color.G, &color.B, &color.A); err != nil {
			return err
		}
		s.Cells = append(s.Cells, c)
	}

	if err := rows.Err(); err != nil {
		return err
	}

	return s.Validate()
}

func (r *Reader) ReadLayer(name string) (layer.Snapshot, error) {
	var kind string
	s := layer.Snapshot{Name: name}
	if err := r.layerStmt.QueryRow(name).Scan(&kind, &s.Length); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return layer.Snapshot{}, nil
		}
		return layer.Snapshot{}, err
	}

	var err error
	if s.Kind, err = layer.ParseKind(kind); err != nil {
		return layer.Snapshot{}, err
	}
	if err := r.readCells(&s); err != nil {
		return layer.Snapshot{}, err
	}
	return s, nil
}

// VisitLayers visits layers in the order they were written.
func (r *Reader) VisitLayers(visitor func(layer.Snapshot) error) error {
	rows, err := r.db.Query("SELECT name FROM layers ORDER BY rowid")
	if err != nil {
		return err
	}

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, name := range names {
		s, err := r.ReadLayer(name)
		if err != nil {
			return err
		}
		if err := visitor(s); err != nil {
			return err
		}
	}

	return nil
}

// ReadCell reads one stored cell of a layer.
func (r *Reader) ReadCell(name string, index int) (tile.Raw, bool, error) {
	var t tile.Raw
	color := &t.Tint
	err := r.db.QueryRow("SELECT sprite, r, g, b, a FROM tiles WHERE layer = ? AND cell = ?", name, index).
		Scan(&t.Sprite, &color.R, &color.G, &color.B, &color.A)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tile.Raw{}, false, nil
		}
		return tile.Raw{}, false, err
	}
	return t, true, nil
}
