// Package heap is the public facade over the explicit free-list allocator.
// It pairs a page-aligned segment reservation with an allocator bound to it
// and exposes the four block operations plus on-demand validation.
//
// Example:
//
//	h, err := heap.New(1<<20, heap.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Close()
//
//	ref, buf, err := h.Alloc(64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	copy(buf, payload)
//	// ...
//	h.Free(ref)
package heap
