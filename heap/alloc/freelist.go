package alloc

import "github.com/joshuapare/heapkit/internal/format"

// Free-list management. The list is intrusive: a free block's links live in
// its own first two payload words, as header offsets. Insertion is LIFO; the
// most recently freed block becomes the new head. There is no size or
// address ordering.

func (h *Heap) prevFree(off int) int {
	return format.ReadOffset(h.data, off+format.PrevLinkOffset)
}

func (h *Heap) nextFree(off int) int {
	return format.ReadOffset(h.data, off+format.NextLinkOffset)
}

func (h *Heap) setPrevFree(off, to int) {
	format.PutOffset(h.data, off+format.PrevLinkOffset, to)
}

func (h *Heap) setNextFree(off, to int) {
	format.PutOffset(h.data, off+format.NextLinkOffset, to)
}

// pushFree makes the block at off the new list head.
func (h *Heap) pushFree(off int) {
	h.setPrevFree(off, format.NilOffset)
	h.setNextFree(off, h.freeHead)
	if h.freeHead != format.NilOffset {
		h.setPrevFree(h.freeHead, off)
	}
	h.freeHead = off
}

// unlinkFree splices the block at off out of the list using its stored links.
func (h *Heap) unlinkFree(off int) {
	prev := h.prevFree(off)
	next := h.nextFree(off)
	if prev != format.NilOffset {
		h.setNextFree(prev, next)
	} else {
		h.freeHead = next
	}
	if next != format.NilOffset {
		h.setPrevFree(next, prev)
	}
}

// firstFit scans from the list head and returns the header offset of the
// first free block whose payload holds at least need bytes, or
// format.NilOffset when none does.
func (h *Heap) firstFit(need int) int {
	cur := h.freeHead
	for cur != format.NilOffset && h.blockSize(cur) < need {
		cur = h.nextFree(cur)
	}
	return cur
}
