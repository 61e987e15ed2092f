package alloc

import (
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/internal/format"
)

// Realloc resizes the block behind ref to at least n bytes, preserving the
// first min(old, new) payload bytes.
//
// A NilRef behaves as Alloc. n == 0 behaves as Free and returns NilRef; a
// negative or over-the-limit n fails with ErrBadSize, leaving the block. The
// result is in place whenever the request shrinks, or whenever enough free
// right-neighbors can be absorbed to cover the growth; otherwise a fresh
// block is allocated, the payload copied, and the old block freed. When the
// fallback allocation fails, the original block and its content are left
// intact.
func (h *Heap) Realloc(ref Ref, n int) (Ref, []byte, error) {
	if ref == NilRef {
		return h.Alloc(n)
	}
	h.stats.ReallocCalls++

	if n < 0 || n > format.MaxRequest {
		return NilRef, nil, ErrBadSize
	}
	if n == 0 {
		h.Free(ref)
		return NilRef, nil, nil
	}

	hdr := headerOf(ref)
	oldSize := h.blockSize(hdr)
	need := format.RoundPayload(n)

	// Shrink or exact fit: truncate in place, no data movement.
	if need <= oldSize {
		h.shrink(hdr, need)
		return ref, h.data[ref : ref+h.blockSize(hdr)], nil
	}

	// Grow in place: absorb free right-neighbors one at a time, re-checking
	// the accumulated size after each merge.
	size := oldSize
	for {
		nb := hdr + format.HeaderSize + size
		if h.pastEnd(nb) || h.blockUsed(nb) {
			break
		}
		h.unlinkFree(nb)
		gain := format.HeaderSize + h.blockSize(nb)
		size += gain
		h.used += gain
		format.PutHeader(h.data, hdr, size, true)
		h.stats.Merges++
		if size >= need {
			h.shrink(hdr, need)
			return ref, h.data[ref : ref+h.blockSize(hdr)], nil
		}
	}

	// Fall back to a fresh block and copy. Neighbors already absorbed above
	// stay absorbed; the payload bytes they followed are untouched.
	if logAlloc && size > oldSize {
		fmt.Fprintf(os.Stderr, "[REALLOC] in-place grow to %d still short of %d, copying\n",
			size, need)
	}
	newRef, buf, err := h.Alloc(n)
	if err != nil {
		return NilRef, nil, err
	}
	copy(buf, h.data[ref:ref+oldSize])
	h.Free(ref)
	return newRef, buf, nil
}

// shrink truncates the used block at hdr to need bytes. When the cut-off
// tail can still hold a free block it is split off, pushed onto the free
// list, and immediately merged with any free right-neighbors so coalescing
// is never deferred. Otherwise the block keeps its full size.
func (h *Heap) shrink(hdr, need int) {
	size := h.blockSize(hdr)
	if size < need+splitReserve {
		return
	}

	format.PutHeader(h.data, hdr, need, true)
	h.used -= size - need

	rem := h.nextHeader(hdr)
	format.PutHeader(h.data, rem, size-need-format.HeaderSize, false)
	h.pushFree(rem)
	h.stats.Splits++
	h.coalesceRight(rem)
}
