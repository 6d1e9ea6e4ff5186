package alloc

import "github.com/joshuapare/veckit/pkg/types"

const (
	strategyHeap   = "heap"
	strategyFixed  = "fixed"
	strategyMapped = "mapped"
)

// growable is satisfied by strategies whose storage can be replaced wholesale.
type growable[T any, S any] interface {
	*S
	Allocator[T]
	Spare() S
	Swap(other *S)
	allocate(n int) error
}

// regrow builds storage of newCap slots aside, transfers the live prefix into
// it (and fills the remainder when fill is set), then swaps it in. The old
// storage is released only after the swap; on failure a is untouched.
func regrow[T any, S any, P growable[T, S]](a P, newCap int, fill *T) error {
	tmp := a.Spare()
	scratch := P(&tmp)
	if err := scratch.allocate(newCap); err != nil {
		return err
	}

	live := a.Data()
	if len(live) > newCap {
		live = live[:newCap]
	}
	if err := CopyInto[T](scratch, 0, live); err != nil {
		scratch.Release()
		return err
	}
	if fill != nil {
		if err := FillInto[T](scratch, len(live), newCap-len(live), *fill); err != nil {
			scratch.Release()
			return err
		}
	}

	a.Swap(&tmp)
	scratch.Release()
	return nil
}

// report emits the outcome of a capacity-changing operation.
func (c *config) report(strategy string, oldCap, newCap, size int, err error) {
	if err != nil {
		c.emit(Event{Op: OpFailure, Strategy: strategy, OldCap: oldCap, NewCap: newCap, Size: size, Err: err})
		return
	}
	c.emit(Event{Op: OpGrow, Strategy: strategy, OldCap: oldCap, NewCap: newCap, Size: size})
}

func allocError(strategy string, cause error) error {
	return types.WrapSkip(1, types.ErrKindMemAlloc, "failed to allocate memory in "+strategy+" allocator", cause)
}
