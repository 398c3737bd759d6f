package layer

import (
	"context"
	"log/slog"
)

// Diagnostic describes a write that a storage dropped instead of applying.
type Diagnostic struct {
	Kind  Kind
	Index int
	// Length is the slot count of a dense storage, or -1 for sparse.
	Length int
}

// Sink receives diagnostics. Storage operations never fail; a sink is the
// only way for a host to observe dropped writes.
type Sink interface {
	Report(d Diagnostic)
}

type SinkFunc func(d Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

type logSink struct {
	logger *slog.Logger
}

// LogSink returns a sink logging every diagnostic at warn level. A nil
// logger discards everything.
func LogSink(logger *slog.Logger) Sink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return logSink{logger}
}

func (s logSink) Report(d Diagnostic) {
	s.logger.LogAttrs(context.Background(), slog.LevelWarn,
		"tilelayer: tile is out of bounds and can not be set",
		slog.String("kind", d.Kind.String()),
		slog.Int("index", d.Index),
		slog.Int("length", d.Length),
	)
}
