package vector

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pbnjay/memory"
)

// ErrAllocation is returned when the storage for a vector can't be obtained.
var ErrAllocation = errors.New("can't allocate vector")

// Allocator creates new vectors of a given length.
type Allocator interface {
	Allocate(n int) (Vector, error)
}

// Heap allocates vectors on the Go heap, refusing requests that can't fit in
// the physical memory of the machine.
type Heap struct {
	// Limit overrides the physical memory size when not zero.
	Limit uint64
}

func (h Heap) limit() uint64 {
	if h.Limit > 0 {
		return h.Limit
	}
	return memory.TotalMemory()
}

// Reserve fails if need bytes can't fit in the memory limit.
func (h Heap) Reserve(need uint64) error {
	// a zero limit means the platform doesn't report it
	if limit := h.limit(); limit > 0 && need > limit {
		return fmt.Errorf("%w: %s requested, %s available", ErrAllocation,
			humanize.Bytes(need), humanize.Bytes(limit))
	}
	return nil
}

// Allocate returns a zeroed vector of n elements.
func (h Heap) Allocate(n int) (v Vector, err error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrAllocation, n)
	}

	if err := h.Reserve(SizeOf(n)); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()

	return make(Vector, n), nil
}

// Failing is an Allocator that never succeeds.
type Failing struct{}

// Allocate always returns ErrAllocation.
func (Failing) Allocate(n int) (Vector, error) {
	return nil, fmt.Errorf("%w: %d elements refused", ErrAllocation, n)
}

// Reserver is implemented by allocators that can tell in advance whether a
// number of bytes fits in their memory budget.
type Reserver interface {
	Reserve(need uint64) error
}

// AllocateAll allocates one vector of length n for each element of vs and
// stops at the first failure, in which case none of the vectors is returned.
// If a is a Reserver their total size is checked before allocating any.
func AllocateAll(a Allocator, n int, vs ...*Vector) error {
	if r, ok := a.(Reserver); ok {
		if err := r.Reserve(uint64(len(vs)) * SizeOf(n)); err != nil {
			return err
		}
	}

	for i, dst := range vs {
		v, err := a.Allocate(n)
		if err != nil {
			for _, done := range vs[:i] {
				*done = nil
			}
			return err
		}
		*dst = v
	}
	return nil
}
