package alloc

import "github.com/joshuapare/heapkit/internal/format"

// Block navigation. Offsets passed around internally are header offsets;
// only the public API deals in payload offsets (Ref).

// headerOf converts a payload reference to its block header offset.
func headerOf(ref Ref) int { return ref - format.HeaderSize }

// payloadOf converts a block header offset to its payload reference.
func payloadOf(off int) Ref { return off + format.HeaderSize }

func (h *Heap) blockSize(off int) int {
	size, _ := format.ReadHeader(h.data, off)
	return size
}

func (h *Heap) blockUsed(off int) bool {
	_, used := format.ReadHeader(h.data, off)
	return used
}

// nextHeader returns the header offset of the block immediately following the
// block at off in address order. The result is past the segment end for the
// last block.
func (h *Heap) nextHeader(off int) int {
	return off + format.HeaderSize + h.blockSize(off)
}

// pastEnd reports whether off lies beyond the last block of the segment.
func (h *Heap) pastEnd(off int) bool {
	return off >= len(h.data)
}
