package types

import (
	"errors"
	"fmt"
	"strings"
)

// maxChainDepth bounds walks over chains that contain a cycle.
const maxChainDepth = 1 << 16

// Chain returns the *Error nodes of err's cause chain, newest first. Non-*Error
// links are skipped but still followed through their Unwrap method.
func Chain(err error) []*Error {
	var out []*Error
	for depth := 0; err != nil && depth < maxChainDepth; depth++ {
		if e, ok := err.(*Error); ok {
			out = append(out, e)
		}
		err = errors.Unwrap(err)
	}
	return out
}

// Root returns the innermost cause of err.
func Root(err error) error {
	for depth := 0; err != nil && depth < maxChainDepth; depth++ {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return err
}

// KindOf returns the kind of the newest *Error in err's chain, or 0 when the
// chain contains none.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Reasons renders err's chain as a numbered list, newest reason first. Links
// that are not *Error nodes are printed with their message only.
func Reasons(err error) string {
	if err == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("error occurred. reasons:\n")
	id := 0
	for depth := 0; err != nil && depth < maxChainDepth; depth++ {
		if e, ok := err.(*Error); ok {
			fmt.Fprintf(&sb, "%d. %s (%s) error code - %d\n", id, e.Msg, e.Loc, int(e.Kind))
			id++
		} else if errors.Unwrap(err) == nil {
			fmt.Fprintf(&sb, "%d. %s\n", id, err.Error())
			id++
		}
		err = errors.Unwrap(err)
	}
	return sb.String()
}
