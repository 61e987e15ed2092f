// Package alloc implements an explicit free-list allocator over a single
// contiguous byte segment.
//
// # Overview
//
// The segment is carved into blocks. Every block is one 8-byte header word
// followed by a payload whose size is a multiple of 8; bit 0 of the header
// carries the used flag. Free blocks thread a doubly linked list through
// their own payload bytes: the first payload word holds the previous-free
// offset, the second the next-free offset. The list is LIFO ordered and
// searched first-fit.
//
// # Operations
//
//   - Init(segment): establish one free block spanning the whole segment
//   - Alloc(n): first-fit search, splitting off the remainder when it can
//     still hold a free block
//   - Free(ref): mark free, push onto the list head, then merge every free
//     right-neighbor
//   - Realloc(ref, n): shrink in place, grow in place by absorbing free
//     right-neighbors, or fall back to allocate-copy-free
//
// Coalescing is rightward only. Freeing a block never merges it into a free
// left-neighbor; the left block absorbs it the next time the left block
// itself is freed or grown.
//
// # References
//
// Callers hold payload offsets (Ref), never header offsets. A Ref stays
// valid until the block is released or relocated by a copying Realloc.
// Passing a Ref that is not live (double free, stale reference, foreign
// value) is undefined behavior and is not detected.
//
// # Thread Safety
//
// Heap instances are not thread-safe. Callers must synchronize externally.
//
// # Related Packages
//
//   - github.com/joshuapare/heapkit/internal/format: header codec and layout constants
//   - github.com/joshuapare/heapkit/heap/verify: full-heap invariant checking
//   - github.com/joshuapare/heapkit/internal/arena: page-aligned segment reservation
package alloc
