package layer

import (
	"log/slog"
)

// CountPolicy selects how a dense storage maintains its tile counter.
type CountPolicy uint8

const (
	// CountEveryWrite increments the counter on every in-range SetTile,
	// including overwrites of visible tiles and writes of hidden tiles, and
	// decrements it (floored at zero) on every in-range RemoveTile. The
	// counter starts at zero and is not an exact visible total.
	//
	// RemoveTile hides the slot even when the counter is already zero, so a
	// removed tile never stays visible. Only the counter follows the
	// write-counting rule.
	CountEveryWrite CountPolicy = iota

	// CountVisible keeps the counter equal to the number of visible tiles.
	CountVisible
)

func (p CountPolicy) String() string {
	switch p {
	case CountEveryWrite:
		return "every-write"
	case CountVisible:
		return "visible"
	}
	return "unknown"
}

type config struct {
	sink        Sink
	countPolicy CountPolicy
}

type Option func(*config)

// WithSink sets the sink receiving dropped-write diagnostics.
func WithSink(sink Sink) Option {
	return func(c *config) { c.sink = sink }
}

// WithLogger reports dropped writes as warnings on logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.sink = LogSink(logger) }
}

func WithCountPolicy(policy CountPolicy) Option {
	return func(c *config) { c.countPolicy = policy }
}

func newConfig(opts []Option) config {
	c := config{
		sink:        LogSink(nil),
		countPolicy: CountEveryWrite,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.sink == nil {
		c.sink = LogSink(nil)
	}
	return c
}
