// Package vec provides growable array containers built on the storage
// strategies of package alloc.
//
// # Overview
//
// Vector is a generic dynamic array. It owns exactly one allocator, embedded by
// value, and delegates all size and capacity bookkeeping to it. The allocator
// strategy is a type parameter, so calls are resolved at compile time:
//
//	var v vec.Heap[int]          // heap-backed, zero value ready to use
//	var f vec.Fixed[int, [8]int] // inline storage, never touches the heap
//
//	for i := range 10 {
//	    if err := v.PushBack(i); err != nil {
//	        return err
//	    }
//	}
//
// Bits is the bit-packed counterpart for booleans. It stores one element per
// bit in a byte allocator and hands out BitRef proxies instead of pointers.
//
// # Growth
//
// Capacity only grows through PushBack, Reserve, Resize and the Assign
// methods, and always by building the new state aside and swapping it in. A
// full container grows to GrowthCapacity(Cap()) = 2*Cap()+1, and a capacity
// whose growth would overflow int fails with types.ErrMemAlloc. If building
// the new state fails, the container is left exactly as it was.
//
// # Element Lifecycle
//
// Elements implementing alloc.Cloner are copied through Clone, which may fail;
// elements whose pointer implements alloc.Destroyer are destroyed explicitly.
// Every failed operation destroys whatever it had constructed before returning
// the error.
//
// # References
//
// Pointers from Index, At, Front, Back, Data and iterators, and BitRef values
// from Bits, are short-lived views. Any operation that reallocates or swaps
// storage invalidates them.
//
// # Thread Safety
//
// Containers are not thread-safe. Callers must synchronize access externally.
package vec
