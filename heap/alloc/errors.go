package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough was found.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrBadSize indicates a zero or over-the-limit request size.
	ErrBadSize = errors.New("alloc: request size must be 1..2^30 bytes")

	// ErrSegmentSmall indicates the segment cannot hold a header plus the
	// smallest free block.
	ErrSegmentSmall = errors.New("alloc: segment too small for one free block")

	// ErrSegmentUnaligned indicates the segment length is not a multiple of
	// the alignment unit.
	ErrSegmentUnaligned = errors.New("alloc: segment length not 8-byte aligned")
)
