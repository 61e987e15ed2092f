// Package format houses the byte-level layout of heap blocks. The goal is to
// keep the raw encoding focused and allocation-free so higher-level packages
// can orchestrate blocks in a more ergonomic form without duplicating layout
// knowledge.
package format

const (
	// WordSize is the alignment unit. Every block header starts on a
	// WordSize boundary and every payload size is a multiple of it.
	WordSize = 8

	// HeaderSize is the number of bytes used by the header word preceding
	// every block payload (free or in-use).
	HeaderSize = WordSize

	// MinPayload is the smallest legal payload. A free block stores its two
	// list links in its first two payload words, so a payload can never be
	// smaller than two alignment units.
	MinPayload = 2 * WordSize

	// PrevLinkOffset and NextLinkOffset locate the free-list links inside a
	// free block's payload, relative to the block header.
	PrevLinkOffset = HeaderSize
	NextLinkOffset = HeaderSize + WordSize

	// MaxRequest is the largest payload size a caller may request.
	MaxRequest = 1 << 30

	// PageSize is the reservation granularity of the segment provider.
	// Segment base addresses are aligned to this boundary.
	PageSize = 4096

	// WordMask is the bitmask used for aligning to WordSize boundaries.
	WordMask = WordSize - 1

	// usedBit is bit 0 of the header word. Payload sizes are multiples of
	// WordSize, which leaves the low bit free to carry the used flag.
	usedBit = 1
)

// NilOffset marks an absent block reference. Offset 0 is the first header in
// the segment and therefore a valid reference, so the null encoding is -1,
// stored on the wire as an all-ones word.
const NilOffset = -1
