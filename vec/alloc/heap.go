package alloc

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/veckit/internal/buf"
	"github.com/joshuapare/veckit/pkg/types"
)

// Heap is a growable slot arena on the Go heap.
//
// The zero value is an empty allocator with default configuration. Grow always
// obtains a new arena; it never extends the current one in place.
type Heap[T any] struct {
	buf  []T // len(buf) == capacity; [size:] is raw
	size int
	cfg  *config
}

var _ Allocator[int] = (*Heap[int])(nil)

// NewHeap returns an empty heap allocator.
func NewHeap[T any](opts ...Option) Heap[T] {
	return Heap[T]{cfg: newConfig(opts)}
}

// NewHeapSized returns a heap allocator with capacity raw slots and no live
// elements.
func NewHeapSized[T any](capacity int, opts ...Option) (Heap[T], error) {
	h := NewHeap[T](opts...)
	err := h.allocate(capacity)
	h.cfg.report(strategyHeap, 0, capacity, 0, err)
	return h, err
}

// NewHeapFilled returns a heap allocator holding n copies of fill, with
// capacity n. On failure no element is left constructed.
func NewHeapFilled[T any](n int, fill T, opts ...Option) (Heap[T], error) {
	h := NewHeap[T](opts...)
	if err := h.allocate(n); err != nil {
		h.cfg.report(strategyHeap, 0, n, 0, err)
		return h, err
	}
	if err := FillInto[T](&h, 0, n, fill); err != nil {
		h.Release()
		err = types.Wrap(types.ErrKindAllocatorInit, "can't copy into allocated memory in heap allocator", err)
		h.cfg.report(strategyHeap, 0, n, 0, err)
		return h, err
	}
	h.cfg.report(strategyHeap, 0, n, n, nil)
	return h, nil
}

// Spare returns an empty allocator sharing h's configuration.
func (h *Heap[T]) Spare() Heap[T] { return Heap[T]{cfg: h.cfg} }

// Swap exchanges the complete state of h and other.
func (h *Heap[T]) Swap(other *Heap[T]) { *h, *other = *other, *h }

func (h *Heap[T]) Data() []T     { return h.buf[:h.size] }
func (h *Heap[T]) Size() int     { return h.size }
func (h *Heap[T]) Cap() int      { return len(h.buf) }
func (h *Heap[T]) SetSize(n int) { h.size = n }

func (h *Heap[T]) At(pos int) *T { return &h.buf[pos] }

func (h *Heap[T]) Slot(pos int) Slot[T] { return Slot[T]{a: h, pos: pos} }

func (h *Heap[T]) Grow(newCap int) error {
	old := len(h.buf)
	err := regrow[T, Heap[T]](h, newCap, nil)
	h.cfg.report(strategyHeap, old, newCap, h.size, err)
	return err
}

func (h *Heap[T]) GrowFill(newCap int, fill T) error {
	old := len(h.buf)
	err := regrow[T, Heap[T]](h, newCap, &fill)
	h.cfg.report(strategyHeap, old, newCap, h.size, err)
	return err
}

func (h *Heap[T]) DestroyRange(from, to int) {
	if from >= to {
		return
	}
	destroySlots(h.buf[from:to])
	h.size -= to - from
}

func (h *Heap[T]) Release() {
	if h.buf == nil {
		h.size = 0
		return
	}
	destroySlots(h.buf[:h.size])
	old := len(h.buf)
	bytes := old * int(unsafe.Sizeof(*new(T)))
	h.buf, h.size = nil, 0
	h.cfg.emit(Event{Op: OpFree, Strategy: strategyHeap, OldCap: old, Bytes: bytes})
}

// allocate installs a fresh arena of n raw slots. h must hold no storage.
func (h *Heap[T]) allocate(n int) (err error) {
	bytes, err := buf.SlotBytes(n, int(unsafe.Sizeof(*new(T))), h.cfg.maxBytes())
	if err != nil {
		return allocError(strategyHeap, err)
	}
	defer func() {
		// makeslice panics on lengths the runtime cannot represent.
		if r := recover(); r != nil {
			err = allocError(strategyHeap, fmt.Errorf("%v", r))
		}
	}()
	h.buf = make([]T, n)
	h.size = 0
	h.cfg.emit(Event{Op: OpAlloc, Strategy: strategyHeap, NewCap: n, Bytes: bytes})
	return nil
}
