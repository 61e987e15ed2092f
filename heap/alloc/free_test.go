package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

func TestFreeNilRefIsNoop(t *testing.T) {
	h := newHeap(t, 200)
	h.Free(NilRef)
	assert.Equal(t, 0, h.Stats().FreeCalls)
}

func TestFreeMergesFreeRightNeighbor(t *testing.T) {
	h := newHeap(t, 200)

	a, _, err := h.Alloc(20)
	require.NoError(t, err)

	// A sits directly left of the 160-byte trailing free block; freeing A
	// merges them back into the initial 192-byte span.
	h.Free(a)

	size, used := format.ReadHeader(h.Bytes(), 0)
	assert.Equal(t, 192, size)
	assert.False(t, used)
	assert.Equal(t, 0, h.FreeListHead())
	assert.Equal(t, format.NilOffset, h.nextFree(0), "merged block is the only list node")
	assert.Equal(t, 0, h.UsedBytes())
	assert.Equal(t, 1, h.Stats().Merges)
}

func TestFreeMergesRunOfRightNeighbors(t *testing.T) {
	h := newHeap(t, 400)

	a, _, err := h.Alloc(32)
	require.NoError(t, err)
	b, _, err := h.Alloc(32)
	require.NoError(t, err)
	c, _, err := h.Alloc(32)
	require.NoError(t, err)

	// C merges with the trailing free block first; freeing B then sweeps
	// across C's former span and the tail in one pass.
	h.Free(c)
	h.Free(b)

	size, used := format.ReadHeader(h.Bytes(), headerOf(b))
	assert.False(t, used)
	assert.Equal(t, h.Size()-(format.HeaderSize+32)-format.HeaderSize, size,
		"everything right of A collapses into one free block")
	_, usedA := format.ReadHeader(h.Bytes(), headerOf(a))
	assert.True(t, usedA, "A stays allocated")
}

func TestFreeDoesNotMergeLeftNeighbor(t *testing.T) {
	h := newHeap(t, 200)

	a, _, err := h.Alloc(24)
	require.NoError(t, err)
	b, _, err := h.Alloc(24)
	require.NoError(t, err)
	c, _, err := h.Alloc(24)
	require.NoError(t, err)
	_ = c

	h.Free(a)
	// B's left neighbor A is free, but release only sweeps rightward: A and
	// B stay separate blocks until A itself is freed or grown again.
	h.Free(b)

	sizeA, usedA := format.ReadHeader(h.Bytes(), headerOf(a))
	sizeB, usedB := format.ReadHeader(h.Bytes(), headerOf(b))
	assert.False(t, usedA)
	assert.False(t, usedB)
	assert.Equal(t, 24, sizeA, "A untouched by B's release")
	assert.Equal(t, 24, sizeB)
}

func TestFreePushesLIFOHead(t *testing.T) {
	h := newHeap(t, 400)

	a, _, err := h.Alloc(24)
	require.NoError(t, err)
	b, _, err := h.Alloc(24)
	require.NoError(t, err)
	_, _, err = h.Alloc(24) // pin so neither free merges with the tail
	require.NoError(t, err)

	h.Free(a)
	assert.Equal(t, headerOf(a), h.FreeListHead())

	h.Free(b)
	assert.Equal(t, headerOf(b), h.FreeListHead(), "most recent release heads the list")
	assert.Equal(t, headerOf(a), h.nextFree(headerOf(b)))
	assert.Equal(t, format.NilOffset, h.prevFree(headerOf(b)))
	assert.Equal(t, headerOf(b), h.prevFree(headerOf(a)))
}

func TestFreeDoesNotClearPayload(t *testing.T) {
	h := newHeap(t, 400)

	a, buf, err := h.Alloc(24)
	require.NoError(t, err)
	_, _, err = h.Alloc(24) // pin: keep A from merging with the tail
	require.NoError(t, err)
	for i := range buf {
		buf[i] = 0xEE
	}

	h.Free(a)

	// Only the two link words are rewritten; the rest of the payload is
	// left as-is.
	for i := 2 * format.WordSize; i < 24; i++ {
		assert.Equal(t, byte(0xEE), h.Bytes()[a+i], "payload byte %d", i)
	}
}

func TestFreeAdjustsUsedCounter(t *testing.T) {
	h := newHeap(t, 400)

	a, _, err := h.Alloc(50) // rounds to 56
	require.NoError(t, err)
	b, _, err := h.Alloc(20) // rounds to 24
	require.NoError(t, err)
	assert.Equal(t, 80, h.UsedBytes())

	h.Free(a)
	assert.Equal(t, 24, h.UsedBytes())
	h.Free(b)
	assert.Equal(t, 0, h.UsedBytes())
}
