package layer

import (
	"errors"
	"iter"
)

// Writer defines an interface for persisting layers.
type Writer interface {
	// WriteLayer writes a single layer snapshot.
	WriteLayer(s Snapshot) error

	// Finalize completes the writing process: flushes buffers, writes
	// headers and indices. It must be called before closing the Writer.
	Finalize() error
}

type Reader interface {
	// ReadLayer reads a single layer by name.
	// If the layer does not exist, it returns a zero Snapshot with no error.
	ReadLayer(name string) (Snapshot, error)
}

type Visitor interface {
	// VisitLayers calls the visitor for every stored layer.
	// Order of layers is implementation-defined.
	VisitLayers(visitor func(Snapshot) error) error
}

var errVisitCancelled = errors.New("visit cancelled")

// IterLayers returns an iterator over all layers of a store.
// Iteration panics on unrecoverable errors.
func IterLayers(v Visitor) iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		err := v.VisitLayers(func(s Snapshot) error {
			if !yield(s) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}

// CopyLayers writes every layer visited in src to dst and reports each
// copied layer to progress, which may be nil. It does not finalize dst.
func CopyLayers(dst Writer, src Visitor, progress func(Snapshot)) error {
	return src.VisitLayers(func(s Snapshot) error {
		if err := dst.WriteLayer(s); err != nil {
			return err
		}
		if progress != nil {
			progress(s)
		}
		return nil
	})
}
