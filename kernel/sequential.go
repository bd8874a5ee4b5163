package kernel

import (
	"fmt"
	"io"
	"io/ioutil"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/evilsocket/vecops/backend"
	"github.com/evilsocket/vecops/vector"
	log "github.com/sirupsen/logrus"
)

// Sequential adds two randomly generated vectors in a single process.
type Sequential struct {
	Backend   backend.Backend
	Allocator vector.Allocator
	Generator vector.Generator
	// Out receives the vector previews and the timing line.
	Out io.Writer
}

// SequentialResult holds the vectors and the time spent adding them.
type SequentialResult struct {
	X, Y, Z vector.Vector
	Elapsed time.Duration
}

// NewSequential returns a sequential kernel using the given backend, heap
// allocation and a generator seeded with the current time.
func NewSequential(b backend.Backend, out io.Writer) *Sequential {
	if b == nil {
		b = backend.Default()
	}
	return &Sequential{
		Backend:   b,
		Allocator: vector.Heap{Limit: b.Space()},
		Generator: vector.Random{Base: time.Now().Unix()},
		Out:       out,
	}
}

func (s *Sequential) out() io.Writer {
	if s.Out == nil {
		return ioutil.Discard
	}
	return s.Out
}

func (s *Sequential) allocator() vector.Allocator {
	if s.Allocator == nil {
		return vector.Heap{Limit: s.impl().Space()}
	}
	return s.Allocator
}

func (s *Sequential) generator() vector.Generator {
	if s.Generator == nil {
		return vector.Random{Base: time.Now().Unix()}
	}
	return s.Generator
}

func (s *Sequential) impl() backend.Backend {
	if s.Backend == nil {
		return backend.Default()
	}
	return s.Backend
}

// Run validates n, allocates and generates x and y, times z = x + y and
// prints the previews of the three vectors followed by the elapsed time.
// Nothing is allocated if n is invalid and nothing is computed if any of
// the allocations fails.
func (s *Sequential) Run(n int) (*SequentialResult, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: order of the vectors should be a positive integer, got %d", ErrValidation, n)
	}

	log.Debugf("allocating 3 vectors of %d elements (%s) with the %s backend",
		n, humanize.Bytes(3*vector.SizeOf(n)), s.impl().Name())

	res := &SequentialResult{}
	if err := vector.AllocateAll(s.allocator(), n, &res.X, &res.Y, &res.Z); err != nil {
		return nil, err
	}

	gen := s.generator()
	gen.Fill(res.X, 0, vector.SaltX)
	gen.Fill(res.Y, 0, vector.SaltY)

	start := time.Now()
	AddTo(s.impl(), res.Z, res.X, res.Y)
	res.Elapsed = time.Since(start)

	out := s.out()
	for _, p := range []preview{
		{"=> The first vector is", res.X},
		{"=> The second vector is", res.Y},
		{"=> The sum is", res.Z},
	} {
		if err := vector.Print(out, p.title, p.v); err != nil {
			return nil, err
		}
	}

	if _, err := fmt.Fprintf(out, "Vector addition took %f seconds\n", res.Elapsed.Seconds()); err != nil {
		return nil, err
	}

	return res, nil
}
