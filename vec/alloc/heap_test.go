package alloc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/veckit/pkg/types"
)

func TestHeap_ZeroValueIsEmpty(t *testing.T) {
	var h Heap[int]

	require.Nil(t, h.Data())
	require.Zero(t, h.Size())
	require.Zero(t, h.Cap())

	h.Release()
	h.Release() // idempotent
	require.Zero(t, h.Cap())
}

func TestHeap_SlotConstructsThenAssigns(t *testing.T) {
	h, err := NewHeapSized[int](4)
	require.NoError(t, err)
	require.Equal(t, 4, h.Cap())
	require.Zero(t, h.Size())

	require.NoError(t, h.Slot(0).Set(10))
	require.NoError(t, h.Slot(1).Set(20))
	require.Equal(t, 2, h.Size())

	// Inside the live range the slot is assigned, not constructed.
	require.NoError(t, h.Slot(0).Set(11))
	require.Equal(t, 2, h.Size())
	require.Equal(t, []int{11, 20}, h.Data())

	s := h.Slot(1)
	require.Equal(t, 1, s.Pos())
	require.Equal(t, 20, s.Get())
	*s.Ptr() = 21
	require.Equal(t, 21, *h.At(1))
}

func TestHeap_AssignFailureKeepsOldValue(t *testing.T) {
	l := &ledger{}
	h, err := NewHeapFilled(2, tracked{id: 7, l: l})
	require.NoError(t, err)
	require.Equal(t, 2, l.live)

	l.failAt = l.clones + 1
	err = h.Slot(0).Set(tracked{id: 9, l: l})
	require.ErrorIs(t, err, errCopyRefused)
	require.Equal(t, 7, h.Data()[0].id)
	require.Equal(t, 2, h.Size())

	h.Release()
	require.Zero(t, l.live)
}

func TestHeap_GrowPreservesElements(t *testing.T) {
	h, err := NewHeapSized[int](2)
	require.NoError(t, err)
	require.NoError(t, CopyInto[int](&h, 0, []int{1, 2}))

	before := &h.Data()[0]
	require.NoError(t, h.Grow(5))

	require.Equal(t, 5, h.Cap())
	require.Equal(t, []int{1, 2}, h.Data())
	require.NotSame(t, before, &h.Data()[0], "grow must always reallocate")
}

func TestHeap_GrowBelowSizeTruncates(t *testing.T) {
	l := &ledger{}
	h := NewHeap[tracked]()
	require.NoError(t, h.Grow(4))
	require.NoError(t, CopyInto[tracked](&h, 0, trackedRange(l, 4)))
	require.Equal(t, 4, l.live)

	require.NoError(t, h.Grow(2))
	require.Equal(t, 2, h.Size())
	require.Equal(t, 2, h.Cap())
	require.Equal(t, []int{0, 1}, ids(h.Data()))
	require.Equal(t, 2, l.live)

	h.Release()
	require.Zero(t, l.live)
}

func TestHeap_GrowFailureLeavesOriginalIntact(t *testing.T) {
	for failAt := 1; failAt <= 3; failAt++ {
		l := &ledger{}
		h := NewHeap[tracked]()
		require.NoError(t, h.Grow(3))
		require.NoError(t, CopyInto[tracked](&h, 0, trackedRange(l, 3)))
		require.Equal(t, 3, l.live)

		l.failAt = l.clones + failAt
		err := h.Grow(7)
		require.Error(t, err)
		require.ErrorIs(t, err, types.ErrConstruct)
		require.ErrorIs(t, err, errCopyRefused)

		require.Equal(t, 3, h.Cap(), "failAt=%d", failAt)
		require.Equal(t, 3, h.Size(), "failAt=%d", failAt)
		require.Equal(t, []int{0, 1, 2}, ids(h.Data()))
		require.Equal(t, 3, l.live, "scratch copies must be destroyed (failAt=%d)", failAt)

		h.Release()
		require.Zero(t, l.live)
	}
}

func TestHeap_GrowFill(t *testing.T) {
	h, err := NewHeapFilled(2, 1)
	require.NoError(t, err)

	require.NoError(t, h.GrowFill(5, 9))
	require.Equal(t, []int{1, 1, 9, 9, 9}, h.Data())
	require.Equal(t, 5, h.Cap())
}

func TestHeap_GrowFillFailureRollsBack(t *testing.T) {
	l := &ledger{}
	h, err := NewHeapFilled(2, tracked{id: 1, l: l})
	require.NoError(t, err)

	// Transfer of the two live elements succeeds, the second fill copy fails.
	l.failAt = l.clones + 4
	err = h.GrowFill(6, tracked{id: 2, l: l})
	require.ErrorIs(t, err, types.ErrConstruct)
	require.Equal(t, 2, h.Size())
	require.Equal(t, 2, h.Cap())
	require.Equal(t, 2, l.live)
}

func TestNewHeapFilled_FailureConstructsNothing(t *testing.T) {
	l := &ledger{failAt: 3}
	h, err := NewHeapFilled(5, tracked{l: l})

	require.ErrorIs(t, err, types.ErrAllocatorInit)
	require.ErrorIs(t, err, types.ErrConstruct)
	require.Zero(t, h.Size())
	require.Zero(t, h.Cap())
	require.Zero(t, l.live)

	nodes := types.Chain(err)
	require.Len(t, nodes, 2)
	require.Equal(t, types.ErrKindAllocatorInit, nodes[0].Kind)
	require.Equal(t, types.ErrKindConstruct, nodes[1].Kind)
	require.Same(t, errCopyRefused, types.Root(err))
}

func TestHeap_AllocationFailures(t *testing.T) {
	tests := []struct {
		name string
		cap  int
		opts []Option
	}{
		{"negative", -1, nil},
		{"overflow", math.MaxInt / 2, nil},
		{"limit", 129, []Option{WithLimit(1024)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeap[int64](tt.opts...)
			require.NoError(t, h.Grow(1))
			require.NoError(t, h.Slot(0).Set(5))

			err := h.Grow(tt.cap)
			require.ErrorIs(t, err, types.ErrMemAlloc)
			require.Equal(t, []int64{5}, h.Data())
			require.Equal(t, 1, h.Cap())
		})
	}
}

func TestHeap_WithinLimit(t *testing.T) {
	h := NewHeap[int64](WithLimit(1024))
	require.NoError(t, h.Grow(128))
	require.Equal(t, 128, h.Cap())
}

func TestHeap_DestroyRange(t *testing.T) {
	l := &ledger{}
	h := NewHeap[tracked]()
	require.NoError(t, h.Grow(5))
	require.NoError(t, CopyInto[tracked](&h, 0, trackedRange(l, 5)))

	h.DestroyRange(3, 5)
	require.Equal(t, 3, h.Size())
	require.Equal(t, 3, l.live)
	require.Zero(t, h.At(3).l, "destroyed slots are zeroed")

	h.DestroyRange(2, 2)
	require.Equal(t, 3, h.Size())
}

func TestHeap_SetSizeIsAdministrative(t *testing.T) {
	h, err := NewHeapSized[byte](4)
	require.NoError(t, err)

	*h.At(0), *h.At(1) = 0xAA, 0xBB
	h.SetSize(2)
	require.Equal(t, []byte{0xAA, 0xBB}, h.Data())
}

func TestHeap_SpareCopyIsDeep(t *testing.T) {
	l := &ledger{}
	h := NewHeap[tracked]()
	require.NoError(t, h.Grow(4))
	require.NoError(t, CopyInto[tracked](&h, 0, trackedRange(l, 3)))

	c := h.Spare()
	require.NoError(t, c.Grow(h.Cap()))
	require.NoError(t, CopyInto[tracked](&c, 0, h.Data()))
	require.Equal(t, 4, c.Cap())
	require.Equal(t, ids(h.Data()), ids(c.Data()))
	require.Equal(t, 6, l.live)

	c.Release()
	h.Release()
	require.Zero(t, l.live)
}

func TestHeap_SpareCopyFailure(t *testing.T) {
	l := &ledger{}
	h := NewHeap[tracked]()
	require.NoError(t, h.Grow(3))
	require.NoError(t, CopyInto[tracked](&h, 0, trackedRange(l, 3)))

	c := h.Spare()
	require.NoError(t, c.Grow(h.Cap()))
	l.failAt = l.clones + 2
	err := CopyInto[tracked](&c, 0, h.Data())
	require.ErrorIs(t, err, types.ErrConstruct)
	require.Zero(t, c.Size())
	require.Equal(t, 3, l.live)
	c.Release()
}

func TestHeap_SwapAndSpare(t *testing.T) {
	rec := &recorder{}
	a, err := NewHeapFilled(2, 1, WithObserver(rec))
	require.NoError(t, err)
	b, err := NewHeapFilled(3, 2)
	require.NoError(t, err)

	a.Swap(&b)
	require.Equal(t, []int{2, 2, 2}, a.Data())
	require.Equal(t, []int{1, 1}, b.Data())
	a.Swap(&b)
	require.Equal(t, []int{1, 1}, a.Data())

	s := a.Spare()
	require.Zero(t, s.Cap())
	rec.events = nil
	require.NoError(t, s.Grow(1))
	require.Equal(t, []Op{OpAlloc, OpGrow}, rec.ops(), "spare shares the observer")
}
