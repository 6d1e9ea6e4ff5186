package vec

import (
	"fmt"

	"github.com/joshuapare/veckit/internal/buf"
	"github.com/joshuapare/veckit/pkg/types"
	"github.com/joshuapare/veckit/vec/alloc"
)

// Storage is the constraint tying an allocator value type S to its pointer
// type, which implements the allocator capability set.
type Storage[T any, S any] interface {
	*S
	alloc.Allocator[T]

	// Spare returns an empty allocator with the same configuration.
	Spare() S

	// Swap exchanges the complete state of two allocators.
	Swap(other *S)
}

// Common instantiations.
type (
	// Heap is a Vector backed by a growable heap arena.
	Heap[T any] = Vector[T, alloc.Heap[T], *alloc.Heap[T]]

	// Fixed is a Vector whose storage is the inline array A = [N]T.
	Fixed[T any, A any] = Vector[T, alloc.Fixed[T, A], *alloc.Fixed[T, A]]

	// Mapped is a Vector backed by an anonymous memory mapping. T must be
	// pointer-free.
	Mapped[T any] = Vector[T, alloc.Mapped[T], *alloc.Mapped[T]]

	// Bools is a bit-packed boolean vector backed by a heap byte arena.
	Bools = Bits[alloc.Heap[byte], *alloc.Heap[byte]]

	// FixedBits is a bit-packed boolean vector stored in the inline byte array A.
	FixedBits[A any] = Bits[alloc.Fixed[byte, A], *alloc.Fixed[byte, A]]
)

// GrowthCapacity returns the capacity a full container grows to, 2*capacity+1.
// It fails with a types.ErrKindMemAlloc error when the result does not fit in
// an int.
func GrowthCapacity(capacity int) (int, error) {
	const (
		growthFactor = 2
		minCapacity  = 1
	)
	doubled, ok := buf.MulOverflowSafe(capacity, growthFactor)
	if ok {
		if next, ok := buf.AddOverflowSafe(doubled, minCapacity); ok {
			return next, nil
		}
	}
	return 0, types.WrapSkip(1, types.ErrKindMemAlloc,
		fmt.Sprintf("capacity %d can't grow without overflow", capacity), nil)
}

// NewHeap returns an empty heap-backed vector.
func NewHeap[T any](opts ...alloc.Option) Heap[T] {
	return Heap[T]{store: alloc.NewHeap[T](opts...)}
}

// NewFixed returns an empty vector with inline storage A. It fails when A is
// not an array of T.
func NewFixed[T any, A any](opts ...alloc.Option) (Fixed[T, A], error) {
	store, err := alloc.NewFixed[T, A](opts...)
	return Fixed[T, A]{store: store}, err
}

// NewMapped returns an empty vector backed by a memory mapping.
func NewMapped[T any](opts ...alloc.Option) Mapped[T] {
	return Mapped[T]{store: alloc.NewMapped[T](opts...)}
}

// NewBools returns an empty heap-backed bit vector.
func NewBools(opts ...alloc.Option) Bools {
	return Bools{store: alloc.NewHeap[byte](opts...)}
}

// NewFixedBits returns an empty bit vector stored in the byte array A.
func NewFixedBits[A any](opts ...alloc.Option) (FixedBits[A], error) {
	store, err := alloc.NewFixed[byte, A](opts...)
	return FixedBits[A]{store: store}, err
}

// buildAside constructs, in a spare allocator of cur's strategy, capacity
// slots holding copies of prefix followed by extra copies of fill. cur is not
// modified. On failure the spare is released before returning.
func buildAside[T any, S any, P Storage[T, S]](cur P, capacity int, prefix []T, extra int, fill T) (S, error) {
	next := cur.Spare()
	p := P(&next)
	if err := p.Grow(capacity); err != nil {
		return next, err
	}
	if err := alloc.CopyInto[T](p, 0, prefix); err != nil {
		p.Release()
		return next, err
	}
	if extra > 0 {
		if err := alloc.FillInto[T](p, len(prefix), extra, fill); err != nil {
			p.Release()
			return next, err
		}
	}
	return next, nil
}

// commit swaps next into cur and releases what cur held before.
func commit[T any, S any, P Storage[T, S]](cur P, next S) {
	cur.Swap(&next)
	P(&next).Release()
}

func outOfBounds(pos, size int) error {
	return types.WrapSkip(1, types.ErrKindIndexOutOfBounds,
		fmt.Sprintf("position %d is out of bounds for size %d", pos, size), nil)
}
