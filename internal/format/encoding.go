package format

import "encoding/binary"

// Binary encoding utilities for little-endian words.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// PutOffset writes a block offset at the specified position. NilOffset is
// stored as an all-ones word.
func PutOffset(b []byte, off int, v int) {
	binary.LittleEndian.PutUint64(b[off:off+8], uint64(int64(v)))
}

// ReadOffset reads a block offset from the specified position.
func ReadOffset(b []byte, off int) int {
	return int(int64(binary.LittleEndian.Uint64(b[off : off+8])))
}
