package alloc

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/joshuapare/veckit/internal/buf"
	"github.com/joshuapare/veckit/pkg/types"
)

// Mapped is a growable slot arena backed by an anonymous memory mapping on
// platforms that support one, and by a plain byte buffer elsewhere.
//
// The garbage collector does not scan mapped memory, so T must be free of
// pointers; allocating for any other type fails with types.ErrAllocatorInit.
// Storage is only returned to the system by Release (or by the release of an
// old mapping during Grow), so callers must Release a Mapped they are done with.
type Mapped[T any] struct {
	mem  []byte
	buf  []T
	size int
	cfg  *config
}

var _ Allocator[int64] = (*Mapped[int64])(nil)

// NewMapped returns an empty mapped allocator.
func NewMapped[T any](opts ...Option) Mapped[T] {
	return Mapped[T]{cfg: newConfig(opts)}
}

// NewMappedFilled returns a mapped allocator holding n copies of fill.
func NewMappedFilled[T any](n int, fill T, opts ...Option) (Mapped[T], error) {
	m := NewMapped[T](opts...)
	err := m.GrowFill(n, fill)
	if err != nil {
		err = types.Wrap(types.ErrKindAllocatorInit, "can't construct mapped allocator", err)
	}
	return m, err
}

// Spare returns an empty allocator sharing m's configuration.
func (m *Mapped[T]) Spare() Mapped[T] { return Mapped[T]{cfg: m.cfg} }

// Swap exchanges the complete state of m and other.
func (m *Mapped[T]) Swap(other *Mapped[T]) { *m, *other = *other, *m }

func (m *Mapped[T]) Data() []T     { return m.buf[:m.size] }
func (m *Mapped[T]) Size() int     { return m.size }
func (m *Mapped[T]) Cap() int      { return len(m.buf) }
func (m *Mapped[T]) SetSize(n int) { m.size = n }

func (m *Mapped[T]) At(pos int) *T { return &m.buf[pos] }

func (m *Mapped[T]) Slot(pos int) Slot[T] { return Slot[T]{a: m, pos: pos} }

func (m *Mapped[T]) Grow(newCap int) error {
	old := len(m.buf)
	err := regrow[T, Mapped[T]](m, newCap, nil)
	m.cfg.report(strategyMapped, old, newCap, m.size, err)
	return err
}

func (m *Mapped[T]) GrowFill(newCap int, fill T) error {
	old := len(m.buf)
	err := regrow[T, Mapped[T]](m, newCap, &fill)
	m.cfg.report(strategyMapped, old, newCap, m.size, err)
	return err
}

func (m *Mapped[T]) DestroyRange(from, to int) {
	if from >= to {
		return
	}
	destroySlots(m.buf[from:to])
	m.size -= to - from
}

func (m *Mapped[T]) Release() {
	if m.buf == nil {
		m.size = 0
		return
	}
	destroySlots(m.buf[:m.size])
	old, bytes := len(m.buf), len(m.mem)
	if m.mem != nil {
		if err := unmapRegion(m.mem); err != nil {
			m.cfg.emit(Event{Op: OpFailure, Strategy: strategyMapped, OldCap: old, Err: err})
		}
	}
	m.mem, m.buf, m.size = nil, nil, 0
	m.cfg.emit(Event{Op: OpFree, Strategy: strategyMapped, OldCap: old, Bytes: bytes})
}

// allocate installs a fresh mapping of n raw slots. m must hold no storage.
func (m *Mapped[T]) allocate(n int) error {
	et := reflect.TypeFor[T]()
	if !pointerFree(et) {
		return types.Newf(types.ErrKindAllocatorInit, "mapped allocator cannot hold %s: type contains pointers", et)
	}
	bytes, err := buf.SlotBytes(n, int(et.Size()), m.cfg.maxBytes())
	if err != nil {
		return allocError(strategyMapped, err)
	}
	if bytes == 0 {
		// Nothing to map: zero slots or zero-size elements.
		m.buf, m.size = make([]T, n), 0
		return nil
	}
	mem, err := mapRegion(bytes)
	if err != nil {
		return allocError(strategyMapped, fmt.Errorf("map %d bytes: %w", bytes, err))
	}
	m.mem = mem
	m.buf = unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(mem))), n)
	m.size = 0
	m.cfg.emit(Event{Op: OpAlloc, Strategy: strategyMapped, NewCap: n, Bytes: bytes})
	return nil
}

// pointerFree reports whether values of t contain no Go pointers.
func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
