// Package arena provides platform-specific helpers for reserving the raw
// heap segment: a flat, page-aligned byte range obtained once from the
// operating system and owned exclusively by the allocator until released.
package arena

import "fmt"

// Segment is a reserved byte range. The base address is aligned to a 4096-byte
// page boundary on platforms with a real mapping facility.
type Segment struct {
	data    []byte
	release func() error
}

// Reserve obtains a segment of total bytes from the operating system.
func Reserve(total int) (*Segment, error) {
	if total <= 0 {
		return nil, fmt.Errorf("arena: invalid segment size %d", total)
	}
	data, release, err := reserve(total)
	if err != nil {
		return nil, fmt.Errorf("arena: reserve %d bytes: %w", total, err)
	}
	return &Segment{data: data, release: release}, nil
}

// Bytes returns the segment contents. The slice aliases the reservation;
// it is invalid after Release.
func (s *Segment) Bytes() []byte { return s.data }

// Size returns the segment size in bytes.
func (s *Segment) Size() int { return len(s.data) }

// Release returns the segment to the operating system. Releasing twice is a
// no-op.
func (s *Segment) Release() error {
	if s.data == nil {
		return nil
	}
	err := s.release()
	s.data = nil
	return err
}
