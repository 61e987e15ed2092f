package alloc

import "github.com/joshuapare/heapkit/internal/format"

// Free releases the block behind ref. A NilRef is a no-op. Passing any
// reference not previously returned by this heap is undefined behavior and
// is not detected. Released bytes are not cleared.
//
// The freed block becomes the new free-list head and then absorbs every free
// right-neighbor. The left neighbor is never examined.
func (h *Heap) Free(ref Ref) {
	if ref == NilRef {
		return
	}
	h.stats.FreeCalls++

	hdr := headerOf(ref)
	h.used -= h.blockSize(hdr)
	format.SetFree(h.data, hdr)
	h.pushFree(hdr)
	h.coalesceRight(hdr)
}

// coalesceRight merges every free block immediately following hdr in address
// order into the block at hdr, removing each from the free list. The block
// at hdr keeps its position and flag; only its size grows.
func (h *Heap) coalesceRight(hdr int) {
	size, used := format.ReadHeader(h.data, hdr)
	grown := false
	for {
		n := hdr + format.HeaderSize + size
		if h.pastEnd(n) || h.blockUsed(n) {
			break
		}
		h.unlinkFree(n)
		size += format.HeaderSize + h.blockSize(n)
		h.stats.Merges++
		grown = true
	}
	if grown {
		format.PutHeader(h.data, hdr, size, used)
	}
}
