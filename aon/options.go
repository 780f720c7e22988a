package aon

import (
	"fmt"
	"log/slog"
)

// Order selects how the schema builder walks its pending work.
type Order uint8

const (
	// DepthFirst pops the most recently discovered schema first. Sibling
	// schemas are therefore registered in reverse field order.
	DepthFirst Order = iota

	// BreadthFirst processes schemas in discovery order, level by level.
	BreadthFirst
)

// String returns the order name used in configuration.
func (o Order) String() string {
	switch o {
	case DepthFirst:
		return "lifo"
	case BreadthFirst:
		return "bfs"
	default:
		return "unknown"
	}
}

// ParseOrder parses "lifo" or "bfs".
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "lifo", "dfs", "stack":
		return DepthFirst, nil
	case "bfs", "fifo", "queue":
		return BreadthFirst, nil
	default:
		return DepthFirst, fmt.Errorf("unknown discovery order: %s", s)
	}
}

// Options configures schema inference.
type Options struct {
	// Order is the work list discipline (default DepthFirst).
	Order Order

	// QualifyCollisions registers a nested schema found at a new path under
	// an already used name as parent.field instead of overwriting it.
	QualifyCollisions bool

	// Logger receives debug records for discovered schemas. Nil disables logging.
	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithOrder sets the discovery order.
func WithOrder(o Order) Option {
	return func(opts *Options) {
		opts.Order = o
	}
}

// WithQualifiedCollisions enables path-qualified names for colliding schemas.
func WithQualifiedCollisions() Option {
	return func(opts *Options) {
		opts.QualifyCollisions = true
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = l
	}
}

func applyOptions(opts []Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
