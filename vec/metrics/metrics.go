// Package metrics exports allocator lifecycle events as Prometheus metrics.
//
// A Collector is an alloc.Observer; register it on any allocator or vector:
//
//	m := metrics.New(prometheus.DefaultRegisterer)
//	v := vec.NewHeap[int](alloc.WithObserver(m))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/joshuapare/veckit/pkg/types"
	"github.com/joshuapare/veckit/vec/alloc"
)

const namespace = "veckit"

// Collector counts allocator events and tracks the bytes currently held per
// strategy.
type Collector struct {
	events     *prometheus.CounterVec
	failures   *prometheus.CounterVec
	bytesInUse *prometheus.GaugeVec
	growCap    *prometheus.HistogramVec
}

var _ alloc.Observer = (*Collector)(nil)

// New creates a Collector and registers its metrics with r. A nil r creates
// unregistered metrics.
func New(r prometheus.Registerer) *Collector {
	return &Collector{
		events: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocator_events_total",
			Help:      "Total number of allocator lifecycle events.",
		}, []string{"strategy", "op"}),
		failures: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocator_failures_total",
			Help:      "Total number of failed allocator operations by error kind.",
		}, []string{"strategy", "kind"}),
		bytesInUse: promauto.With(r).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "allocator_bytes_in_use",
			Help:      "Bytes of backing storage currently held.",
		}, []string{"strategy"}),
		growCap: promauto.With(r).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "allocator_grow_capacity",
			Help:      "Capacity in elements reached by successful grows.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"strategy"}),
	}
}

// Observe implements alloc.Observer.
func (c *Collector) Observe(e alloc.Event) {
	c.events.WithLabelValues(e.Strategy, e.Op.String()).Inc()

	switch e.Op {
	case alloc.OpAlloc:
		c.bytesInUse.WithLabelValues(e.Strategy).Add(float64(e.Bytes))
	case alloc.OpFree:
		c.bytesInUse.WithLabelValues(e.Strategy).Sub(float64(e.Bytes))
	case alloc.OpGrow:
		c.growCap.WithLabelValues(e.Strategy).Observe(float64(e.NewCap))
	case alloc.OpFailure:
		c.failures.WithLabelValues(e.Strategy, kindLabel(types.KindOf(e.Err))).Inc()
	}
}

func kindLabel(k types.ErrKind) string {
	switch k {
	case types.ErrKindMemAlloc:
		return "mem_alloc"
	case types.ErrKindConstruct:
		return "construct"
	case types.ErrKindIndexOutOfBounds:
		return "out_of_bounds"
	case types.ErrKindCapacity:
		return "capacity"
	case types.ErrKindAllocatorInit:
		return "allocator_init"
	default:
		return "other"
	}
}
