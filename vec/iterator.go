package vec

import (
	"unsafe"

	"github.com/joshuapare/veckit/pkg/types"
)

// Iterator is a random-access cursor over contiguous element storage.
//
// Iterators are values: Next, Prev, Add and Sub return a moved copy. An
// iterator is invalidated by any operation that reallocates or swaps the
// storage it was taken from. Each cursor records its owner: the container it
// came from, or for SliceRange the slice's first element. Cursors of
// different owners never compare equal and never form a range. Empty or nil
// slices passed to SliceRange have no first element and share one owner.
type Iterator[T any] struct {
	base  []T
	pos   int
	owner unsafe.Pointer
}

// SliceRange returns cursors spanning s, for use with AssignRange.
func SliceRange[T any](s []T) (first, last Iterator[T]) {
	owner := unsafe.Pointer(unsafe.SliceData(s))
	return Iterator[T]{base: s, owner: owner}, Iterator[T]{base: s, pos: len(s), owner: owner}
}

// Pos returns the cursor's offset from the start of its storage.
func (it Iterator[T]) Pos() int { return it.pos }

// Value returns a copy of the element under the cursor.
func (it Iterator[T]) Value() T { return it.base[it.pos] }

// Ptr returns a pointer to the element under the cursor.
func (it Iterator[T]) Ptr() *T { return &it.base[it.pos] }

func (it Iterator[T]) Next() Iterator[T] { return it.Add(1) }
func (it Iterator[T]) Prev() Iterator[T] { return it.Add(-1) }

func (it Iterator[T]) Add(n int) Iterator[T] {
	it.pos += n
	return it
}

func (it Iterator[T]) Sub(n int) Iterator[T] { return it.Add(-n) }

// Distance returns the number of elements from it to other.
func (it Iterator[T]) Distance(other Iterator[T]) int { return other.pos - it.pos }

// Equal reports whether both cursors address the same position of the same
// storage.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.pos == other.pos && it.owner == other.owner
}

func (it Iterator[T]) Less(other Iterator[T]) bool { return it.pos < other.pos }

// Valid reports whether the cursor addresses an element.
func (it Iterator[T]) Valid() bool { return it.pos >= 0 && it.pos < len(it.base) }

// span returns the elements in [it, last).
func (it Iterator[T]) span(last Iterator[T]) ([]T, error) {
	if it.pos < 0 || last.pos < it.pos || last.pos > len(last.base) ||
		it.owner != last.owner {
		return nil, types.Newf(types.ErrKindIndexOutOfBounds,
			"invalid iterator range [%d, %d)", it.pos, last.pos)
	}
	return it.base[it.pos:last.pos], nil
}
