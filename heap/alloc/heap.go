package alloc

import (
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/heapkit/internal/format"
)

// Runtime debug flag for operation logging - controlled by HEAPKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAPKIT_LOG_ALLOC") != ""

// Ref is a caller-visible block reference: the offset of the payload start
// within the segment. NilRef marks an absent reference.
type Ref = int

// NilRef is the absent block reference.
const NilRef Ref = format.NilOffset

// Heap is the allocator context for one segment: segment bytes, free-list
// head, and the used-byte counter. Heaps are independent; any number may
// coexist, each exclusively owning its segment.
type Heap struct {
	data     []byte
	freeHead int // header offset of the free-list head, NilOffset when empty
	used     int // sum of header-recorded payload sizes over used blocks

	stats Stats
}

// Stats holds operation counters for instrumentation and tests.
type Stats struct {
	AllocCalls   int // Alloc invocations, including failed ones
	FreeCalls    int // Free invocations on live references
	ReallocCalls int // Realloc invocations with a live reference
	Splits       int // blocks carved off during Alloc or a shrinking Realloc
	Merges       int // right-neighbor absorptions during Free or Realloc

	UsedBytes  int // payload bytes currently granted (headers excluded)
	FreeBlocks int // blocks currently on the free list
}

// Init binds a new allocator to segment, establishing a single free block
// spanning the entire usable range. Re-initializing over the same bytes
// discards every prior allocation.
//
// Fails when the segment cannot hold one header plus the smallest free block,
// or when its length is not a multiple of the alignment unit.
func Init(segment []byte) (*Heap, error) {
	if len(segment) < format.HeaderSize+format.MinPayload {
		return nil, ErrSegmentSmall
	}
	if !format.Aligned(len(segment)) {
		return nil, ErrSegmentUnaligned
	}

	h := &Heap{data: segment, freeHead: 0}
	format.PutHeader(segment, 0, len(segment)-format.HeaderSize, false)
	h.setPrevFree(0, format.NilOffset)
	h.setNextFree(0, format.NilOffset)
	return h, nil
}

// Bytes returns the segment. The slice aliases live allocator state; it is
// exposed for the validator and for tests.
func (h *Heap) Bytes() []byte { return h.data }

// Size returns the segment size in bytes.
func (h *Heap) Size() int { return len(h.data) }

// UsedBytes returns the running total of payload bytes currently granted to
// callers. Header bytes are excluded. Diagnostic only.
func (h *Heap) UsedBytes() int { return h.used }

// FreeListHead returns the header offset of the first free block, or
// format.NilOffset when the free list is empty.
func (h *Heap) FreeListHead() int { return h.freeHead }

// Stats returns a snapshot of the operation counters.
func (h *Heap) Stats() Stats {
	s := h.stats
	s.UsedBytes = h.used
	for off := h.freeHead; off != format.NilOffset; off = h.nextFree(off) {
		s.FreeBlocks++
	}
	return s
}

// Dump writes a human-readable listing of every block to w. Development aid;
// not called on any production path.
func (h *Heap) Dump(w io.Writer) {
	fmt.Fprintf(w, "segment of %d bytes, %d payload bytes in use\n", len(h.data), h.used)
	for off := 0; !h.pastEnd(off); {
		size, used := format.ReadHeader(h.data, off)
		fmt.Fprintf(w, "  block @%-8d size=%-8d used=%v\n", off, size, used)
		if size == 0 {
			fmt.Fprintf(w, "  (zero-size header, walk aborted)\n")
			return
		}
		off += format.HeaderSize + size
	}
}
