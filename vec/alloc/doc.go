// Package alloc provides the storage strategies behind the veckit containers.
//
// # Overview
//
// An allocator owns a contiguous arena of element slots sized for Cap()
// elements and tracks how many of them are live. Slots in [0, Size()) hold
// constructed elements; slots in [Size(), Cap()) are raw storage. Nothing
// records liveness per slot: the size boundary is the only bookkeeping, and
// construction and destruction are explicit operations on index ranges.
//
// # Allocator Interface
//
// The core abstraction is the Allocator interface, which supports:
//
//   - Data/Size/Cap: O(1) views of the live range
//   - Grow(n), GrowFill(n, fill): build-aside reallocation
//   - DestroyRange(from, to): explicit destruction, never fails
//   - Release(): destroy everything and drop the storage
//   - At(pos) and Slot(pos): direct and assignable access
//
// # Implementations
//
// Heap: growable slot arena on the Go heap
//
//   - Grow always reallocates; there is no in-place extension
//   - Byte size is checked against WithLimit before allocation
//
// Fixed: inline arena embedded in the allocator value
//
//   - Storage is an array type [N]T given as a type parameter
//   - No heap allocation; copying the value copies the array
//   - Requests beyond N fail with types.ErrCapacity
//
// Mapped: anonymous memory mapping (unix), for pointer-free element types
//
//   - Storage lives outside the Go heap and is unmapped on Release
//
// # Element Lifecycle
//
// Element types take part in construction and destruction through two
// optional interfaces:
//
//	type Cloner[T any] interface { Clone() (T, error) }
//	type Destroyer interface { Destroy() }
//
// Clone is called whenever an element is copied into a slot, and may fail.
// Destroy is called on a slot pointer before the slot returns to raw storage.
// Types implementing neither are copied by assignment and zeroed on
// destruction.
//
// # Failure Guarantees
//
// Bulk construction (CopyInto, FillInto, Grow, GrowFill) is all-or-nothing:
// on a failed element copy every element constructed by the call is destroyed
// and a chained types.ErrKindConstruct error is returned. Grow and GrowFill
// build the new arena aside and only swap it in once it is complete, so the
// original arena is untouched by a failure.
//
// # Slots
//
// A Slot is a position plus the allocator that owns it. It never caches a
// pointer into storage, but pointers obtained from At, Data or Slot.Ptr are
// invalidated by any Grow, GrowFill, Release or Swap.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally.
package alloc
