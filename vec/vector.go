package vec

import (
	"iter"
	"unsafe"

	"github.com/joshuapare/veckit/pkg/types"
)

// Vector is a dynamic array of T whose storage strategy is the allocator S.
//
// The vector keeps no bookkeeping of its own: size and capacity are the
// allocator's. The zero value is an empty vector using S's zero
// configuration.
type Vector[T any, S any, P Storage[T, S]] struct {
	store S
}

func (v *Vector[T, S, P]) storage() P { return P(&v.store) }

// Size returns the number of live elements.
func (v *Vector[T, S, P]) Size() int { return v.storage().Size() }

// Cap returns the number of elements the vector holds without growing.
func (v *Vector[T, S, P]) Cap() int { return v.storage().Cap() }

// Empty reports whether the vector has no live elements.
func (v *Vector[T, S, P]) Empty() bool { return v.Size() == 0 }

// Data returns the live elements. The slice aliases the vector's storage.
func (v *Vector[T, S, P]) Data() []T { return v.storage().Data() }

// At returns a pointer to element pos, failing with types.ErrOutOfBounds when
// pos is not below Size().
func (v *Vector[T, S, P]) At(pos int) (*T, error) {
	if size := v.Size(); pos < 0 || pos >= size {
		return nil, outOfBounds(pos, size)
	}
	return v.storage().At(pos), nil
}

// Index returns a pointer to slot pos without checking it against Size().
func (v *Vector[T, S, P]) Index(pos int) *T { return v.storage().At(pos) }

// Front returns the first element. The vector must not be empty.
func (v *Vector[T, S, P]) Front() *T { return v.Index(0) }

// Back returns the last element. The vector must not be empty.
func (v *Vector[T, S, P]) Back() *T { return v.Index(v.Size() - 1) }

// Begin returns a cursor at the first element.
func (v *Vector[T, S, P]) Begin() Iterator[T] {
	return Iterator[T]{base: v.Data(), owner: unsafe.Pointer(v)}
}

// End returns a cursor one past the last element.
func (v *Vector[T, S, P]) End() Iterator[T] {
	data := v.Data()
	return Iterator[T]{base: data, pos: len(data), owner: unsafe.Pointer(v)}
}

// All yields the live elements with their positions.
func (v *Vector[T, S, P]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, e := range v.Data() {
			if !yield(i, e) {
				return
			}
		}
	}
}

// PushBack appends a copy of value. When the vector is full it is rebuilt at
// GrowthCapacity(Cap()) aside and swapped in, so a failure leaves it unchanged.
func (v *Vector[T, S, P]) PushBack(value T) error {
	a := v.storage()
	size := a.Size()
	if size < a.Cap() {
		return wrap(a.Slot(size).Set(value), "can't construct element on push")
	}
	capacity, err := GrowthCapacity(a.Cap())
	if err != nil {
		return wrap(err, "can't grow vector on push")
	}
	next, err := buildAside[T, S, P](a, capacity, a.Data(), 1, value)
	if err != nil {
		return wrap(err, "can't grow vector on push")
	}
	commit[T, S, P](a, next)
	return nil
}

// PopBack destroys the last element. The vector must not be empty.
func (v *Vector[T, S, P]) PopBack() {
	size := v.Size()
	v.storage().DestroyRange(size-1, size)
}

// Reserve grows the capacity to at least n.
func (v *Vector[T, S, P]) Reserve(n int) error {
	a := v.storage()
	if n <= a.Cap() {
		return nil
	}
	return wrap(a.Grow(n), "can't reserve vector capacity")
}

// ShrinkToFit reallocates the storage to exactly Size() elements. Storage
// strategies with a fixed bound keep their capacity.
func (v *Vector[T, S, P]) ShrinkToFit() error {
	a := v.storage()
	if a.Size() == a.Cap() {
		return nil
	}
	return wrap(a.Grow(a.Size()), "can't shrink vector")
}

// Resize rebuilds the vector with n elements: the first min(n, Size())
// elements are kept and the rest are copies of fill.
func (v *Vector[T, S, P]) Resize(n int, fill T) error {
	a := v.storage()
	if n == a.Size() && n == a.Cap() {
		return nil
	}
	return wrap(a.GrowFill(n, fill), "can't resize vector")
}

// Clear destroys all elements. The capacity is unchanged.
func (v *Vector[T, S, P]) Clear() {
	v.storage().DestroyRange(0, v.Size())
}

// AssignFill replaces the contents with count copies of value, leaving
// Size() == Cap() == count.
func (v *Vector[T, S, P]) AssignFill(count int, value T) error {
	a := v.storage()
	next, err := buildAside[T, S, P](a, count, nil, count, value)
	if err != nil {
		return wrap(err, "can't assign vector")
	}
	commit[T, S, P](a, next)
	return nil
}

// AssignRange replaces the contents with copies of the elements in
// [first, last). Both cursors must come from the same storage; the range may
// alias v itself.
func (v *Vector[T, S, P]) AssignRange(first, last Iterator[T]) error {
	src, err := first.span(last)
	if err != nil {
		return wrap(err, "can't assign vector")
	}
	return v.AssignSlice(src)
}

// AssignSlice replaces the contents with copies of src.
func (v *Vector[T, S, P]) AssignSlice(src []T) error {
	var zero T
	a := v.storage()
	next, err := buildAside[T, S, P](a, len(src), src, 0, zero)
	if err != nil {
		return wrap(err, "can't assign vector")
	}
	commit[T, S, P](a, next)
	return nil
}

// Clone returns a deep copy of v sized to its live elements.
func (v *Vector[T, S, P]) Clone() (Vector[T, S, P], error) {
	var zero T
	a := v.storage()
	next, err := buildAside[T, S, P](a, a.Size(), a.Data(), 0, zero)
	if err != nil {
		return Vector[T, S, P]{store: a.Spare()}, wrap(err, "can't copy vector")
	}
	return Vector[T, S, P]{store: next}, nil
}

// CopyFrom replaces the contents of v with a deep copy of other. On failure v
// is unchanged.
func (v *Vector[T, S, P]) CopyFrom(other *Vector[T, S, P]) error {
	if v == other {
		return nil
	}
	var zero T
	src := other.storage()
	next, err := buildAside[T, S, P](v.storage(), src.Size(), src.Data(), 0, zero)
	if err != nil {
		return wrap(err, "can't copy vector")
	}
	commit[T, S, P](v.storage(), next)
	return nil
}

// Move transfers v's storage to the returned vector and leaves v empty.
func (v *Vector[T, S, P]) Move() Vector[T, S, P] {
	out := Vector[T, S, P]{store: v.storage().Spare()}
	out.Swap(v)
	return out
}

// MoveFrom releases v's elements and takes over other's storage, leaving
// other empty.
func (v *Vector[T, S, P]) MoveFrom(other *Vector[T, S, P]) {
	if v == other {
		return
	}
	moved := other.Move()
	v.Swap(&moved)
	moved.Release()
}

// Swap exchanges the complete state of v and other.
func (v *Vector[T, S, P]) Swap(other *Vector[T, S, P]) {
	v.storage().Swap(&other.store)
}

// Release destroys all elements and drops the storage. The vector stays
// usable.
func (v *Vector[T, S, P]) Release() { v.storage().Release() }

// wrap adds container context to an allocator error, keeping its kind.
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	kind := types.KindOf(err)
	if kind == 0 {
		kind = types.ErrKindConstruct
	}
	return types.WrapSkip(1, kind, msg, err)
}
