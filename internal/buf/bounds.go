// Package buf contains overflow-safe size arithmetic for slot arenas.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false when
// the result would overflow int or either operand is negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// SlotBytes returns the byte size of count slots of stride bytes each.
//
// limit caps the result when positive; zero means no cap. The error describes
// the specific failure (negative count, overflow, or over limit).
func SlotBytes(count, stride, limit int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("negative slot count: %d", count)
	}
	total, ok := MulOverflowSafe(count, stride)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * stride=%d", count, stride)
	}
	if limit > 0 && total > limit {
		return 0, fmt.Errorf("limit: %d bytes > %d", total, limit)
	}
	return total, nil
}

// CeilDiv returns ceil(n/d) for non-negative n and positive d.
func CeilDiv(n, d int) int {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}
