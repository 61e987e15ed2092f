package verify

import (
	"fmt"
	"os"
	"runtime"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/format"
)

// breakOnViolation stops in the debugger when a check fails - controlled by
// the HEAPKIT_BREAK_ON_VIOLATION env var.
var breakOnViolation = os.Getenv("HEAPKIT_BREAK_ON_VIOLATION") != ""

// ValidationError describes the first violated invariant.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func violation(typ string, off int, msg string, args ...any) error {
	if breakOnViolation {
		runtime.Breakpoint()
	}
	return &ValidationError{Type: typ, Message: fmt.Sprintf(msg, args...), Offset: off}
}

// AllInvariants audits the whole heap in one call. Returns the first error
// encountered, or nil if all checks pass.
func AllInvariants(h *alloc.Heap) error {
	if err := Conservation(h); err != nil {
		return err
	}
	if err := FreeList(h); err != nil {
		return err
	}
	return Membership(h)
}

// Conservation walks blocks in address order and checks that header plus
// payload sizes sum exactly to the segment size. Structural damage that
// would derail the walk (zero, unaligned, or overrunning headers) is
// reported rather than chased.
func Conservation(h *alloc.Heap) error {
	data := h.Bytes()
	total := 0
	for off := 0; off < len(data); {
		size, _ := format.ReadHeader(data, off)
		if size == 0 {
			return violation("Conservation", off, "zero-size block header")
		}
		if !format.Aligned(size) {
			return violation("Conservation", off, "payload size %d not 8-byte aligned", size)
		}
		if off+format.HeaderSize+size > len(data) {
			return violation("Conservation", off,
				"block of %d bytes overruns segment end (%d)", size, len(data))
		}
		total += format.HeaderSize + size
		off += format.HeaderSize + size
	}
	if total != len(data) {
		return violation("Conservation", -1,
			"blocks sum to %d bytes, segment holds %d", total, len(data))
	}
	return nil
}

// FreeList walks the list from the head and checks that the head has no
// predecessor and that every visited node is marked free. A walk longer than
// the maximum possible block count is reported as a cycle.
func FreeList(h *alloc.Heap) error {
	data := h.Bytes()
	head := h.FreeListHead()
	if head == format.NilOffset {
		return nil
	}
	if err := checkNodeOffset(h, head); err != nil {
		return err
	}
	if prev := freeLink(data, head, format.PrevLinkOffset); prev != format.NilOffset {
		return violation("FreeList", head, "list head has predecessor %d", prev)
	}

	maxBlocks := len(data) / (format.HeaderSize + format.MinPayload)
	visited := 0
	for off := head; off != format.NilOffset; off = freeLink(data, off, format.NextLinkOffset) {
		if err := checkNodeOffset(h, off); err != nil {
			return err
		}
		if _, used := format.ReadHeader(data, off); used {
			return violation("FreeList", off, "node on free list is marked used")
		}
		if visited++; visited > maxBlocks {
			return violation("FreeList", off, "walk exceeded %d nodes, list cycles", maxBlocks)
		}
	}
	return nil
}

// Membership checks that every block found free in the address-order walk is
// reachable from the free-list head. Quadratic: one list scan per free block.
func Membership(h *alloc.Heap) error {
	data := h.Bytes()
	for off := 0; off < len(data); {
		size, used := format.ReadHeader(data, off)
		if size == 0 || off+format.HeaderSize+size > len(data) {
			// Conservation reports structural damage with a better message.
			return Conservation(h)
		}
		if !used && !onFreeList(h, off) {
			return violation("Membership", off, "free block not reachable from free-list head")
		}
		off += format.HeaderSize + size
	}
	return nil
}

// UsedAccounting cross-checks the used-byte counter against the sum of
// header-recorded sizes over used blocks. Not part of AllInvariants; the
// counter is diagnostic and this check exists for the allocator's own tests.
func UsedAccounting(h *alloc.Heap) error {
	data := h.Bytes()
	sum := 0
	for off := 0; off < len(data); {
		size, used := format.ReadHeader(data, off)
		if size == 0 || off+format.HeaderSize+size > len(data) {
			return Conservation(h)
		}
		if used {
			sum += size
		}
		off += format.HeaderSize + size
	}
	if sum != h.UsedBytes() {
		return violation("UsedAccounting", -1,
			"counter reports %d used bytes, headers sum to %d", h.UsedBytes(), sum)
	}
	return nil
}

func onFreeList(h *alloc.Heap, target int) bool {
	data := h.Bytes()
	maxBlocks := len(data) / (format.HeaderSize + format.MinPayload)
	visited := 0
	for off := h.FreeListHead(); off != format.NilOffset; off = freeLink(data, off, format.NextLinkOffset) {
		if off == target {
			return true
		}
		if off < 0 || off+format.HeaderSize+format.MinPayload > len(data) {
			return false
		}
		if visited++; visited > maxBlocks {
			return false
		}
	}
	return false
}

func checkNodeOffset(h *alloc.Heap, off int) error {
	if off < 0 || !format.Aligned(off) || off+format.HeaderSize+format.MinPayload > len(h.Bytes()) {
		return violation("FreeList", off, "link points outside the segment")
	}
	return nil
}

func freeLink(data []byte, off, linkOff int) int {
	return format.ReadOffset(data, off+linkOff)
}
