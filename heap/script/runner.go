package script

import (
	"fmt"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/verify"
)

// Runner replays a script against one heap, tracking the live reference and
// size bound to each script ID. Each payload is filled with an ID-derived
// byte pattern on allocation and re-checked before every resize and release,
// so content corruption surfaces at the operation that caused it.
type Runner struct {
	// ValidateEvery audits all heap invariants after every n-th operation.
	// Zero disables periodic validation; a final audit always runs.
	ValidateEvery int

	h     *alloc.Heap
	refs  map[int]alloc.Ref
	sizes map[int]int
}

// Result summarizes one replay.
type Result struct {
	Ops       int // operations executed
	PeakUsed  int // high-water mark of granted payload bytes
	FinalUsed int // granted payload bytes after the last operation
}

// NewRunner returns a Runner bound to h.
func NewRunner(h *alloc.Heap) *Runner {
	return &Runner{
		ValidateEvery: 1,
		h:             h,
		refs:          make(map[int]alloc.Ref),
		sizes:         make(map[int]int),
	}
}

// Run executes every operation of s in order. It stops at the first failed
// request, content mismatch, or invariant violation.
func (r *Runner) Run(s *Script) (*Result, error) {
	res := &Result{}
	for i, op := range s.Ops {
		if err := r.step(op); err != nil {
			return res, fmt.Errorf("%s line %d: %w", s.Name, op.Line, err)
		}
		res.Ops++
		if used := r.h.UsedBytes(); used > res.PeakUsed {
			res.PeakUsed = used
		}
		if r.ValidateEvery > 0 && (i+1)%r.ValidateEvery == 0 {
			if err := verify.AllInvariants(r.h); err != nil {
				return res, fmt.Errorf("%s line %d: %w", s.Name, op.Line, err)
			}
		}
	}
	if err := verify.AllInvariants(r.h); err != nil {
		return res, fmt.Errorf("%s: after final op: %w", s.Name, err)
	}
	res.FinalUsed = r.h.UsedBytes()
	return res, nil
}

func (r *Runner) step(op Op) error {
	switch op.Kind {
	case OpAlloc:
		if _, live := r.refs[op.ID]; live {
			return fmt.Errorf("id %d already live", op.ID)
		}
		ref, buf, err := r.h.Alloc(op.Size)
		if err != nil {
			return fmt.Errorf("alloc %d bytes: %w", op.Size, err)
		}
		fill(buf[:op.Size], op.ID)
		r.refs[op.ID] = ref
		r.sizes[op.ID] = op.Size
		return nil

	case OpRealloc:
		ref, live := r.refs[op.ID]
		if !live {
			return fmt.Errorf("id %d not live", op.ID)
		}
		old := r.sizes[op.ID]
		if err := r.checkPattern(op.ID); err != nil {
			return err
		}
		newRef, buf, err := r.h.Realloc(ref, op.Size)
		if err != nil {
			return fmt.Errorf("realloc id %d to %d bytes: %w", op.ID, op.Size, err)
		}
		if op.Size == 0 {
			delete(r.refs, op.ID)
			delete(r.sizes, op.ID)
			return nil
		}
		keep := min(old, op.Size)
		if err := checkFill(buf[:keep], op.ID); err != nil {
			return fmt.Errorf("id %d after realloc: %w", op.ID, err)
		}
		fill(buf[:op.Size], op.ID)
		r.refs[op.ID] = newRef
		r.sizes[op.ID] = op.Size
		return nil

	case OpFree:
		_, live := r.refs[op.ID]
		if !live {
			return fmt.Errorf("id %d not live", op.ID)
		}
		if err := r.checkPattern(op.ID); err != nil {
			return err
		}
		r.h.Free(r.refs[op.ID])
		delete(r.refs, op.ID)
		delete(r.sizes, op.ID)
		return nil

	default:
		return fmt.Errorf("unknown op %q", op.Kind)
	}
}

func (r *Runner) checkPattern(id int) error {
	ref := r.refs[id]
	buf := r.h.Bytes()[ref : ref+r.sizes[id]]
	if err := checkFill(buf, id); err != nil {
		return fmt.Errorf("id %d: %w", id, err)
	}
	return nil
}

func fill(b []byte, id int) {
	for i := range b {
		b[i] = pattern(id, i)
	}
}

func checkFill(b []byte, id int) error {
	for i := range b {
		if b[i] != pattern(id, i) {
			return fmt.Errorf("payload byte %d corrupted: got %#x, want %#x",
				i, b[i], pattern(id, i))
		}
	}
	return nil
}

func pattern(id, i int) byte {
	return byte(id*131 + i)
}
