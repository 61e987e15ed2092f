package format

// Header codec for the block metadata word.
//
// Header layout (little-endian, one 8-byte word):
//
//	bits 63..1  payload size in bytes (always a multiple of 8)
//	bit  0      used flag (0 = free, 1 = used)
//
// The payload immediately follows the header. When the block is free, the
// payload's first word holds the "previous free" offset and its second word
// holds the "next free" offset (either may be NilOffset).

// EncodeHeader packs an alignment-rounded payload size and a used flag into
// one header word.
func EncodeHeader(size int, used bool) uint64 {
	w := uint64(size)
	if used {
		w |= usedBit
	}
	return w
}

// DecodeHeader extracts the payload size and used flag from a header word.
func DecodeHeader(w uint64) (size int, used bool) {
	return int(w &^ usedBit), w&usedBit != 0
}

// PutHeader writes the header word for a block at the given header offset.
func PutHeader(b []byte, off int, size int, used bool) {
	PutU64(b, off, EncodeHeader(size, used))
}

// ReadHeader decodes the header word of the block at the given header offset.
func ReadHeader(b []byte, off int) (size int, used bool) {
	return DecodeHeader(ReadU64(b, off))
}

// SetUsed flips the used bit of an existing header on without touching the
// stored size.
func SetUsed(b []byte, off int) {
	PutU64(b, off, ReadU64(b, off)|usedBit)
}

// SetFree clears the used bit of an existing header without touching the
// stored size.
func SetFree(b []byte, off int) {
	PutU64(b, off, ReadU64(b, off)&^usedBit)
}
