//go:build !unix

package arena

// reserve falls back to a heap-backed byte slice when no mapping facility is
// available. The base address is not guaranteed to be page-aligned here; the
// allocator addresses the segment by offset, so only the unix path promises
// the page boundary.
func reserve(total int) ([]byte, func() error, error) {
	data := make([]byte, total)
	return data, func() error { return nil }, nil
}
