package format

// Alignment utilities for the block layout. Every header and payload must
// start on a WordSize boundary.

// Align8 returns n aligned up to the next 8-byte boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n int) int {
	return (n + WordMask) & ^WordMask
}

// RoundPayload returns the payload size granted for a request of n bytes:
// aligned up to WordSize and floored at MinPayload so the block can later
// hold its free-list links.
func RoundPayload(n int) int {
	r := Align8(n)
	if r < MinPayload {
		return MinPayload
	}
	return r
}

// Aligned reports whether n is a multiple of WordSize.
func Aligned(n int) bool {
	return n&WordMask == 0
}
