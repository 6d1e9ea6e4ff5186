//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package alloc

import "unsafe"

// mapRegion falls back to a word-aligned heap buffer.
func mapRegion(size int) ([]byte, error) {
	words := make([]uint64, (size+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size), nil
}

func unmapRegion([]byte) error { return nil }
