package heap

import (
	"fmt"
	"io"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/verify"
	"github.com/joshuapare/heapkit/internal/arena"
	"github.com/joshuapare/heapkit/internal/format"
)

// Ref is a block reference. See heap/alloc.
type Ref = alloc.Ref

// NilRef is the absent block reference.
const NilRef = alloc.NilRef

// Options controls heap construction.
type Options struct {
	// Segment supplies the backing byte range instead of reserving one from
	// the operating system. Its length must be a multiple of 8 and at least
	// 24 bytes. The caller keeps ownership; Close will not release it.
	Segment []byte
}

// Heap owns one segment and the allocator bound to it.
type Heap struct {
	seg  *arena.Segment // nil when the caller supplied the segment
	core *alloc.Heap
}

// New builds a heap over size bytes. Without Options.Segment the backing
// range is reserved from the operating system, rounded up to the 4096-byte
// page granularity and released again by Close.
func New(size int, opts Options) (*Heap, error) {
	if opts.Segment != nil {
		core, err := alloc.Init(opts.Segment)
		if err != nil {
			return nil, err
		}
		return &Heap{core: core}, nil
	}

	if size < format.HeaderSize+format.MinPayload {
		return nil, alloc.ErrSegmentSmall
	}
	total := (size + format.PageSize - 1) &^ (format.PageSize - 1)
	seg, err := arena.Reserve(total)
	if err != nil {
		return nil, err
	}
	core, err := alloc.Init(seg.Bytes())
	if err != nil {
		_ = seg.Release()
		return nil, err
	}
	return &Heap{seg: seg, core: core}, nil
}

// Alloc grants at least n bytes and returns the block reference with its
// payload slice.
func (h *Heap) Alloc(n int) (Ref, []byte, error) {
	return h.core.Alloc(n)
}

// Free releases the block behind ref. NilRef is a no-op.
func (h *Heap) Free(ref Ref) {
	h.core.Free(ref)
}

// Realloc resizes the block behind ref to at least n bytes, preserving the
// first min(old, new) payload bytes.
func (h *Heap) Realloc(ref Ref, n int) (Ref, []byte, error) {
	return h.core.Realloc(ref, n)
}

// Validate audits every heap invariant and returns a diagnostic describing
// the first violation, or nil when the heap is consistent.
func (h *Heap) Validate() error {
	return verify.AllInvariants(h.core)
}

// Reset discards every live allocation and re-establishes the single free
// block spanning the whole segment.
func (h *Heap) Reset() error {
	core, err := alloc.Init(h.core.Bytes())
	if err != nil {
		return err
	}
	h.core = core
	return nil
}

// UsedBytes returns the payload bytes currently granted to callers.
func (h *Heap) UsedBytes() int { return h.core.UsedBytes() }

// Size returns the segment size in bytes.
func (h *Heap) Size() int { return h.core.Size() }

// Stats returns a snapshot of the allocator's operation counters.
func (h *Heap) Stats() alloc.Stats { return h.core.Stats() }

// Dump writes a block-by-block listing of the segment to w.
func (h *Heap) Dump(w io.Writer) { h.core.Dump(w) }

// Core exposes the underlying allocator, for the script harness and tests.
func (h *Heap) Core() *alloc.Heap { return h.core }

// Close releases the segment reservation. Every reference into the heap is
// invalid afterwards. Closing a heap built over a caller-supplied segment
// only detaches it.
func (h *Heap) Close() error {
	if h.seg == nil {
		return nil
	}
	if err := h.seg.Release(); err != nil {
		return fmt.Errorf("heap: release segment: %w", err)
	}
	return nil
}
