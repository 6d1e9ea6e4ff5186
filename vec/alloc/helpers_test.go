package alloc

import (
	"errors"
	"reflect"
)

var errCopyRefused = errors.New("element copy refused")

// ledger counts constructed copies of tracked elements and can refuse the
// k-th copy (1-based) to exercise rollback paths.
type ledger struct {
	live   int
	clones int
	failAt int
}

type tracked struct {
	id int
	l  *ledger
}

func (t tracked) Clone() (tracked, error) {
	t.l.clones++
	if t.l.failAt > 0 && t.l.clones == t.l.failAt {
		return tracked{}, errCopyRefused
	}
	t.l.live++
	return t, nil
}

func (t *tracked) Destroy() {
	if t.l != nil {
		t.l.live--
	}
}

func trackedRange(l *ledger, n int) []tracked {
	out := make([]tracked, n)
	for i := range out {
		out[i] = tracked{id: i, l: l}
	}
	return out
}

func ids(ts []tracked) []int {
	out := make([]int, len(ts))
	for i, t := range ts {
		out[i] = t.id
	}
	return out
}

type recorder struct {
	events []Event
}

func (r *recorder) Observe(e Event) { r.events = append(r.events, e) }

func (r *recorder) ops() []Op {
	out := make([]Op, len(r.events))
	for i, e := range r.events {
		out[i] = e.Op
	}
	return out
}

func typeOf[T any]() reflect.Type { return reflect.TypeFor[T]() }
