package sqlite

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/eak1mov/go-tilelayer/layer"
)

// Writer implements layer.Writer interface for SQLite layer databases.
type Writer struct {
	db        *sql.DB
	layerStmt *sql.Stmt
	tileStmt  *sql.Stmt
	logger    *slog.Logger
}

type writerConfig struct {
	Metadata map[string]string
	Logger   *slog.Logger
}

type WriterOption func(*writerConfig)

func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new Writer for writing to a SQLite database.
// It applies given options and creates the tables for layers and tiles.
func NewWriter(filePath string, opts ...WriterOption) (w *Writer, err error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE metadata (name TEXT, value TEXT);
		CREATE TABLE layers (name TEXT PRIMARY KEY, kind TEXT, length INTEGER);
		CREATE TABLE tiles (
			layer TEXT,
			cell INTEGER,
			sprite INTEGER,
			r REAL,
			g REAL,
			b REAL,
			a REAL
		);
	`)
	if err != nil {
		return nil, err
	}

	for k, v := range config.Metadata {
		_, err = db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v)
		if err != nil {
			return nil, err
		}
	}

	layerStmt, err := db.Prepare("INSERT INTO layers (name, kind, length) VALUES (?, ?, ?)")
	if err != nil {
		return nil, err
	}
	tileStmt, err := db.Prepare("INSERT INTO tiles (layer, cell, sprite, r, g, b, a) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		layerStmt.Close()
		return nil, err
	}

	return &Writer{db, layerStmt, tileStmt, config.Logger}, nil
}

func (w *Writer) Close() error {
	return errors.Join(w.layerStmt.Close(), w.tileStmt.Close(), w.db.Close())
}

// WriteLayer stores the layer and its cells in a single transaction.
func (w *Writer) WriteLayer(s layer.Snapshot) (err error) {
	if err := s.Validate(); err != nil {
		return err
	}

	tx, err := w.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Stmt(w.layerStmt).Exec(s.Name, s.Kind.String(), s.Length); err != nil {
		return err
	}
	tileStmt := tx.Stmt(w.tileStmt)
	for _, c := range s.Cells {
		color := c.Tile.Tint
		if _, err = tileStmt.Exec(s.Name, c.Index, c.Tile.Sprite, color.R, color.G, color.B, color.A); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}

	w.logger.Debug("tilelayer: layer written", "name", s.Name, "cells", len(s.Cells))
	return nil
}

func (w *Writer) Finalize() error {
	w.logger.Debug("tilelayer: creating index")
	_, err := w.db.Exec("CREATE UNIQUE INDEX tile_index ON tiles (layer, cell)")

	w.logger.Debug("tilelayer: done!")
	return err
}
