package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/format"
)

func newHeap(t *testing.T, size int) *alloc.Heap {
	t.Helper()
	h, err := alloc.Init(make([]byte, size))
	require.NoError(t, err)
	return h
}

func requireViolation(t *testing.T, err error, typ string) *ValidationError {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, typ, verr.Type)
	return verr
}

func TestAllInvariantsOnFreshHeap(t *testing.T) {
	h := newHeap(t, 256)
	assert.NoError(t, AllInvariants(h))
}

func TestAllInvariantsAfterMixedOps(t *testing.T) {
	h := newHeap(t, 512)
	a, _, err := h.Alloc(40)
	require.NoError(t, err)
	b, _, err := h.Alloc(64)
	require.NoError(t, err)
	_, _, err = h.Alloc(24)
	require.NoError(t, err)
	h.Free(a)
	b, _, err = h.Realloc(b, 120)
	require.NoError(t, err)
	h.Free(b)

	assert.NoError(t, AllInvariants(h))
	assert.NoError(t, UsedAccounting(h))
}

func TestConservationDetectsZeroSizeHeader(t *testing.T) {
	h := newHeap(t, 256)
	format.PutU64(h.Bytes(), 0, 0)

	verr := requireViolation(t, Conservation(h), "Conservation")
	assert.Equal(t, 0, verr.Offset)
	assert.Contains(t, verr.Message, "zero-size")
}

func TestConservationDetectsUnalignedSize(t *testing.T) {
	h := newHeap(t, 256)
	a, _, err := h.Alloc(24)
	require.NoError(t, err)
	format.PutHeader(h.Bytes(), a-format.HeaderSize, 20, true)

	verr := requireViolation(t, Conservation(h), "Conservation")
	assert.Equal(t, a-format.HeaderSize, verr.Offset)
}

func TestConservationDetectsOverrunningBlock(t *testing.T) {
	h := newHeap(t, 256)
	format.PutHeader(h.Bytes(), 0, 1024, false)

	verr := requireViolation(t, Conservation(h), "Conservation")
	assert.Contains(t, verr.Message, "overruns")
}

func TestFreeListDetectsUsedNode(t *testing.T) {
	h := newHeap(t, 256)
	// The head node is the lone free block; flip its used bit without
	// touching the list.
	format.SetUsed(h.Bytes(), h.FreeListHead())

	verr := requireViolation(t, FreeList(h), "FreeList")
	assert.Contains(t, verr.Message, "marked used")
}

func TestFreeListDetectsHeadPredecessor(t *testing.T) {
	h := newHeap(t, 256)
	head := h.FreeListHead()
	format.PutOffset(h.Bytes(), head+format.PrevLinkOffset, 64)

	verr := requireViolation(t, FreeList(h), "FreeList")
	assert.Equal(t, head, verr.Offset)
	assert.Contains(t, verr.Message, "predecessor")
}

func TestFreeListDetectsWildLink(t *testing.T) {
	h := newHeap(t, 256)
	head := h.FreeListHead()
	format.PutOffset(h.Bytes(), head+format.NextLinkOffset, 100000)

	verr := requireViolation(t, FreeList(h), "FreeList")
	assert.Contains(t, verr.Message, "outside")
}

func TestFreeListDetectsCycle(t *testing.T) {
	h := newHeap(t, 256)
	head := h.FreeListHead()
	format.PutOffset(h.Bytes(), head+format.NextLinkOffset, head)

	verr := requireViolation(t, FreeList(h), "FreeList")
	assert.Contains(t, verr.Message, "cycle")
}

func TestMembershipDetectsOrphanedFreeBlock(t *testing.T) {
	h := newHeap(t, 256)
	a, _, err := h.Alloc(32)
	require.NoError(t, err)
	_, _, err = h.Alloc(32)
	require.NoError(t, err)
	// Clear the used bit by hand: the block looks free in the address walk
	// but was never pushed onto the list.
	format.SetFree(h.Bytes(), a-format.HeaderSize)

	verr := requireViolation(t, Membership(h), "Membership")
	assert.Equal(t, a-format.HeaderSize, verr.Offset)
}

func TestUsedAccountingDetectsCounterDrift(t *testing.T) {
	h := newHeap(t, 256)
	a, _, err := h.Alloc(32)
	require.NoError(t, err)
	// Inflate the header size while keeping conservation intact by shrinking
	// the neighbor the same amount.
	next := a - format.HeaderSize + format.HeaderSize + 32
	nextSize, _ := format.ReadHeader(h.Bytes(), next)
	format.PutHeader(h.Bytes(), a-format.HeaderSize, 40, true)
	format.PutHeader(h.Bytes(), a+40, nextSize-format.HeaderSize, false)

	verr := requireViolation(t, UsedAccounting(h), "UsedAccounting")
	assert.Contains(t, verr.Message, "counter")
}

func TestValidationErrorFormats(t *testing.T) {
	withOffset := &ValidationError{Type: "Conservation", Message: "zero-size block header", Offset: 16}
	assert.Equal(t, "Conservation at offset 16: zero-size block header", withOffset.Error())

	noOffset := &ValidationError{Type: "Conservation", Message: "blocks sum short", Offset: -1}
	assert.Equal(t, "Conservation: blocks sum short", noOffset.Error())
}
