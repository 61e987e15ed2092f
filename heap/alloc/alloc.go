package alloc

import (
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/internal/format"
)

// splitReserve is the slack a free block must have beyond the granted size
// before splitting pays off: one header word plus the smallest payload able
// to hold the two free-list links.
const splitReserve = format.HeaderSize + format.MinPayload

// Alloc grants a payload of at least n usable bytes and returns its
// reference together with the payload slice.
//
// Fails with ErrBadSize when n is not positive or exceeds format.MaxRequest,
// and with ErrNoSpace when no free block is large enough after rounding.
func (h *Heap) Alloc(n int) (Ref, []byte, error) {
	h.stats.AllocCalls++

	if n <= 0 || n > format.MaxRequest {
		return NilRef, nil, ErrBadSize
	}
	need := format.RoundPayload(n)

	cur := h.firstFit(need)
	if cur == format.NilOffset {
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[ALLOC] no fit for %d bytes (rounded %d), used=%d of %d\n",
				n, need, h.used, len(h.data))
		}
		return NilRef, nil, ErrNoSpace
	}

	size := h.blockSize(cur)
	if size < need+splitReserve {
		// The remainder could not hold a header plus its links; grant the
		// whole block rather than leave an unusable sliver.
		need = size
	}

	format.PutHeader(h.data, cur, need, true)
	h.used += need
	h.unlinkFree(cur)

	if size >= need+splitReserve {
		rem := h.nextHeader(cur)
		format.PutHeader(h.data, rem, size-need-format.HeaderSize, false)
		h.pushFree(rem)
		h.stats.Splits++
	}

	ref := payloadOf(cur)
	return ref, h.data[ref : ref+need], nil
}
