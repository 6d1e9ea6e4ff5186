package vec_test

import "errors"

var errRefused = errors.New("copy refused")

// census tracks how many copies of token are alive and can refuse the k-th
// copy (1-based).
type census struct {
	alive  int
	copies int
	refuse int
}

type token struct {
	n int
	c *census
}

func (t token) Clone() (token, error) {
	t.c.copies++
	if t.c.refuse > 0 && t.c.copies == t.c.refuse {
		return token{}, errRefused
	}
	t.c.alive++
	return t, nil
}

func (t *token) Destroy() {
	if t.c != nil {
		t.c.alive--
	}
}

// refuseAfter makes the k-th copy from now fail.
func (c *census) refuseAfter(k int) { c.refuse = c.copies + k }

func tokens(c *census, n int) []token {
	out := make([]token, n)
	for i := range out {
		out[i] = token{n: i, c: c}
	}
	return out
}

func values(ts []token) []int {
	out := make([]int, len(ts))
	for i, t := range ts {
		out[i] = t.n
	}
	return out
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
