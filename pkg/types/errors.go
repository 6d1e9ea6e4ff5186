package types

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindMemAlloc         ErrKind = iota + 1 // backing storage could not be sized or obtained
	ErrKindConstruct                           // copy construction failed during a bulk transfer
	ErrKindIndexOutOfBounds                    // checked access past the live range
	ErrKindCapacity                            // fixed-capacity storage cannot hold the request
	ErrKindAllocatorInit                       // allocator construction failed (wraps a copy failure)
)

var kindNames = [...]string{
	ErrKindMemAlloc:         "memory allocation error",
	ErrKindConstruct:        "construction error",
	ErrKindIndexOutOfBounds: "index out of bounds",
	ErrKindCapacity:         "insufficient fixed capacity",
	ErrKindAllocatorInit:    "allocator construction error",
}

func (k ErrKind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

// Location identifies the function, file and line that raised an error.
type Location struct {
	Func string
	File string
	Line int
}

// IsZero reports whether no location was captured.
func (l Location) IsZero() bool {
	return l.Func == "" && l.File == "" && l.Line == 0
}

func (l Location) String() string {
	if l.IsZero() {
		return "unknown location"
	}
	return fmt.Sprintf("func %s, file %s, line %d", l.Func, l.File, l.Line)
}

// Error is a typed error node with an optional underlying cause.
//
// A node exclusively owns its cause; wrapping never shares or mutates an
// existing node.
type Error struct {
	Kind ErrKind
	Msg  string
	Loc  Location
	Err  error // optional underlying cause
}

// Error joins the messages of e and its causes with ": ". Consecutive *Error
// nodes are walked in a loop; the first foreign cause ends the walk with its
// own Error text.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return e.Msg
	}

	var sb strings.Builder
	sb.WriteString(e.Msg)
	next := e.Err
	for depth := 1; next != nil && depth < maxChainDepth; depth++ {
		sb.WriteString(": ")
		n, ok := next.(*Error)
		if !ok {
			sb.WriteString(next.Error())
			break
		}
		if n == nil {
			sb.WriteString("<nil>")
			break
		}
		sb.WriteString(n.Msg)
		next = n.Err
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a sentinel of the same kind. Sentinels carry no
// location and no cause, so any node of their kind matches.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if t.Loc.IsZero() && t.Err == nil {
		return e.Kind == t.Kind
	}
	return e == t
}

// Sentinels commonly returned by implementations.
var (
	// ErrMemAlloc indicates backing storage could not be obtained.
	ErrMemAlloc = &Error{Kind: ErrKindMemAlloc, Msg: "memory allocation error"}
	// ErrConstruct indicates an element copy failed while building a range.
	ErrConstruct = &Error{Kind: ErrKindConstruct, Msg: "construction error"}
	// ErrOutOfBounds indicates a checked access at or past the size.
	ErrOutOfBounds = &Error{Kind: ErrKindIndexOutOfBounds, Msg: "index out of bounds"}
	// ErrCapacity indicates a fixed-capacity allocator was asked to hold too much.
	ErrCapacity = &Error{Kind: ErrKindCapacity, Msg: "insufficient fixed capacity"}
	// ErrAllocatorInit indicates an allocator could not be constructed.
	ErrAllocatorInit = &Error{Kind: ErrKindAllocatorInit, Msg: "allocator construction error"}
)

// New creates a root error of the given kind located at the caller.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Loc: caller(2)}
}

// Newf is New with a formatted message.
func Newf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Loc: caller(2)}
}

// Wrap creates a new head node whose cause is err. A nil cause yields a root
// error, matching New.
func Wrap(kind ErrKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Loc: caller(2), Err: err}
}

// WrapSkip is Wrap for helpers that raise on behalf of their caller. skip
// counts the frames above WrapSkip's caller to attribute the error to.
func WrapSkip(skip int, kind ErrKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Loc: caller(skip + 2), Err: err}
}

func caller(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{}
	}
	name := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
		if i := strings.LastIndexByte(name, '/'); i >= 0 {
			name = name[i+1:]
		}
	}
	return Location{Func: name, File: filepath.Base(file), Line: line}
}
