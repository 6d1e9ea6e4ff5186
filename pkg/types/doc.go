// Package types defines the error model shared by the veckit containers and
// allocators.
//
// Every fallible operation returns an *Error carrying a stable ErrKind, a
// human-readable reason, the location that raised it, and an optional prior
// cause. Wrapping an error produces a new head node; the innermost root cause
// sits at the tail of the chain:
//
//	err := types.Wrap(types.ErrKindConstruct, "failed to copy elements", cause)
//	for _, e := range types.Chain(err) {
//	    fmt.Println(e.Kind, e.Msg, e.Loc)
//	}
//
// Chains interoperate with errors.Is and errors.As. Comparing against one of
// the package sentinels matches any *Error of the same kind:
//
//	if errors.Is(err, types.ErrOutOfBounds) {
//	    // ...
//	}
//
// All chain walks are iterative, so arbitrarily deep chains never grow the
// goroutine stack.
//
// This package has no dependencies beyond the standard library.
package types
