//go:build linux || darwin || freebsd || netbsd || openbsd

package alloc

import "golang.org/x/sys/unix"

// mapRegion returns a private, zero-filled anonymous mapping of size bytes.
func mapRegion(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func unmapRegion(b []byte) error {
	return unix.Munmap(b)
}
