package alloc

import (
	"reflect"
	"unsafe"

	"github.com/joshuapare/veckit/pkg/types"
)

// Fixed is an inline slot arena whose storage is the array type A, which must
// be [N]T. The arena lives inside the allocator value itself: no heap
// allocation is made, and copying a Fixed copies the array.
//
// Cap() is always N. Grow and GrowFill succeed for any request up to N and
// fail with types.ErrCapacity beyond it.
//
//	var f alloc.Fixed[int, [16]int]
//	_ = f.Slot(0).Set(42)
type Fixed[T any, A any] struct {
	arr     A
	size    int
	n       int
	checked bool
	cfg     *config
}

var _ Allocator[int] = (*Fixed[int, [4]int])(nil)

// NewFixed returns an empty fixed allocator. It fails with
// types.ErrAllocatorInit when A is not an array of T.
func NewFixed[T any, A any](opts ...Option) (Fixed[T, A], error) {
	f := Fixed[T, A]{cfg: newConfig(opts)}
	_, err := f.layout()
	return f, err
}

// NewFixedFilled returns a fixed allocator holding n copies of fill. When n
// exceeds the bound it fails with types.ErrCapacity and constructs nothing.
func NewFixedFilled[T any, A any](n int, fill T, opts ...Option) (Fixed[T, A], error) {
	f, err := NewFixed[T, A](opts...)
	if err != nil {
		return f, err
	}
	if err := f.GrowFill(n, fill); err != nil {
		return f, types.Wrap(types.ErrKindAllocatorInit, "can't construct fixed allocator", err)
	}
	return f, nil
}

// Spare returns an empty allocator sharing f's configuration.
func (f *Fixed[T, A]) Spare() Fixed[T, A] {
	return Fixed[T, A]{n: f.n, checked: f.checked, cfg: f.cfg}
}

// Swap exchanges the complete state of f and other, copying both arrays.
func (f *Fixed[T, A]) Swap(other *Fixed[T, A]) { *f, *other = *other, *f }

func (f *Fixed[T, A]) Data() []T {
	return f.slots()[:f.size]
}

func (f *Fixed[T, A]) Size() int     { return f.size }
func (f *Fixed[T, A]) SetSize(n int) { f.size = n }

func (f *Fixed[T, A]) Cap() int {
	n, _ := f.layout()
	return n
}

func (f *Fixed[T, A]) At(pos int) *T { return &f.slots()[pos] }

func (f *Fixed[T, A]) Slot(pos int) Slot[T] { return Slot[T]{a: f, pos: pos} }

// Grow keeps the live elements in place; only a request below Size()
// changes anything, destroying the elements past newCap.
func (f *Fixed[T, A]) Grow(newCap int) error {
	n, err := f.check(newCap)
	if err == nil && newCap < f.size {
		f.DestroyRange(newCap, f.size)
	}
	f.cfg.report(strategyFixed, n, newCap, f.size, err)
	return err
}

// GrowFill constructs copies of fill in [Size(), newCap). The fill is
// all-or-nothing.
func (f *Fixed[T, A]) GrowFill(newCap int, fill T) error {
	n, err := f.check(newCap)
	if err == nil {
		if newCap < f.size {
			f.DestroyRange(newCap, f.size)
		} else {
			err = FillInto[T](f, f.size, newCap-f.size, fill)
		}
	}
	f.cfg.report(strategyFixed, n, newCap, f.size, err)
	return err
}

func (f *Fixed[T, A]) DestroyRange(from, to int) {
	if from >= to {
		return
	}
	destroySlots(f.slots()[from:to])
	f.size -= to - from
}

// Release destroys all live elements. The inline storage stays with f.
func (f *Fixed[T, A]) Release() {
	f.DestroyRange(0, f.size)
}

func (f *Fixed[T, A]) check(newCap int) (int, error) {
	n, err := f.layout()
	switch {
	case err != nil:
		return 0, err
	case newCap < 0:
		return n, types.Newf(types.ErrKindMemAlloc, "negative capacity %d requested from fixed allocator", newCap)
	case newCap > n:
		return n, types.Newf(types.ErrKindCapacity,
			"fixed allocator holds %d elements, %d requested", n, newCap)
	}
	return n, nil
}

func (f *Fixed[T, A]) layout() (int, error) {
	if f.checked {
		return f.n, nil
	}
	at, et := reflect.TypeFor[A](), reflect.TypeFor[T]()
	if at.Kind() != reflect.Array || at.Elem() != et {
		return 0, types.Newf(types.ErrKindAllocatorInit,
			"fixed allocator storage %s is not an array of %s", at, et)
	}
	f.n, f.checked = at.Len(), true
	return f.n, nil
}

// slots views the inline array as a slice. It is recomputed on every call so
// that it always aliases this value's array, never a copy's.
func (f *Fixed[T, A]) slots() []T {
	n, err := f.layout()
	if err != nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&f.arr)), n)
}
