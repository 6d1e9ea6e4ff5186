package alloc

import (
	"context"
	"log/slog"

	"github.com/joshuapare/veckit/internal/logger"
)

// Op identifies an allocator lifecycle event.
type Op uint8

const (
	OpAlloc   Op = iota + 1 // storage obtained
	OpFree                  // storage dropped
	OpGrow                  // live elements moved into storage of a new capacity
	OpFailure               // an operation failed; Event.Err is set
)

func (op Op) String() string {
	switch op {
	case OpAlloc:
		return "alloc"
	case OpFree:
		return "free"
	case OpGrow:
		return "grow"
	case OpFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Event describes one allocator lifecycle event.
type Event struct {
	Op       Op
	Strategy string // "heap", "fixed" or "mapped"
	OldCap   int
	NewCap   int
	Size     int
	Bytes    int // bytes obtained (OpAlloc) or dropped (OpFree)
	Err      error
}

// Observer receives allocator lifecycle events. Observers are called
// synchronously from the allocator operation that produced the event.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// Option configures an allocator.
type Option func(*config)

type config struct {
	limit     int
	observers []Observer
}

func newConfig(opts []Option) *config {
	if len(opts) == 0 {
		return nil
	}
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithLimit caps the byte size of any single arena. Requests beyond it fail
// with types.ErrMemAlloc. Zero or negative means no cap.
func WithLimit(maxBytes int) Option {
	return func(c *config) {
		if maxBytes > 0 {
			c.limit = maxBytes
		}
	}
}

// WithObserver registers an observer for lifecycle events.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

func (c *config) maxBytes() int {
	if c == nil {
		return 0
	}
	return c.limit
}

func (c *config) emit(e Event) {
	if c == nil {
		return
	}
	for _, o := range c.observers {
		o.Observe(e)
	}
}

// LogObserver returns an Observer that writes events to l. A nil l logs to
// the process-wide logger at the time of each event.
func LogObserver(l *slog.Logger) Observer {
	return ObserverFunc(func(e Event) {
		log := l
		if log == nil {
			log = logger.L
		}
		level := slog.LevelDebug
		attrs := []slog.Attr{
			slog.String("strategy", e.Strategy),
			slog.Int("old_cap", e.OldCap),
			slog.Int("new_cap", e.NewCap),
			slog.Int("size", e.Size),
			slog.Int("bytes", e.Bytes),
		}
		if e.Err != nil {
			level = slog.LevelWarn
			attrs = append(attrs, slog.String("err", e.Err.Error()))
		}
		log.LogAttrs(context.Background(), level, "allocator "+e.Op.String(), attrs...)
	})
}
