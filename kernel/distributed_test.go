package kernel

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/evilsocket/vecops/backend"
	"github.com/evilsocket/vecops/comm"
	"github.com/evilsocket/vecops/vector"
	. "github.com/stretchr/testify/require"
)

var exampleVectors = fixed{
	vector.SaltX: {1, 2, 3, 4},
	vector.SaltY: {4, 3, 2, 1},
}

func runDistributed(size int, args []string, setup func(c comm.Communicator, d *Distributed)) (results []*DistributedResult, errs []error, out, errOut string) {
	outBuf, errBuf := bytes.Buffer{}, bytes.Buffer{}
	results = make([]*DistributedResult, size)
	errs = make([]error, size)

	onWorkers(size, func(c comm.Communicator) {
		d := NewDistributed(backend.Default(), &outBuf, &errBuf)
		if setup != nil {
			setup(c, d)
		}
		results[c.Rank()], errs[c.Rank()] = d.Run(c, args)
	})

	return results, errs, outBuf.String(), errBuf.String()
}

func TestDistributedExample(t *testing.T) {
	for _, mode := range []Mode{Generate, Scatter} {
		results, errs, out, errOut := runDistributed(2, []string{"4", "2"}, func(c comm.Communicator, d *Distributed) {
			d.Generator = exampleVectors
			d.Mode = mode
		})

		for _, err := range errs {
			Nil(t, err, mode.String())
		}
		Empty(t, errOut)

		True(t, results[0].Coordinator)
		Equal(t, 80.0, results[0].Dot, mode.String())
		False(t, results[1].Coordinator)

		lines := strings.Split(out, "\n")
		Equal(t, 11, len(lines), out)
		Equal(t, "=> The first vector is", lines[0])
		Equal(t, "\t1.000000 2.000000 3.000000 4.000000 \t", lines[1])
		Equal(t, "=> The second vector is", lines[2])
		Equal(t, "\t4.000000 3.000000 2.000000 1.000000 \t", lines[3])
		Equal(t, "=> The first vector after scalar multiplication is", lines[4])
		Equal(t, "\t2.000000 4.000000 6.000000 8.000000 \t", lines[5])
		Equal(t, "=> The second vector after scalar multiplication is", lines[6])
		Equal(t, "\t8.000000 6.000000 4.000000 2.000000 \t", lines[7])
		Equal(t, "The dot product is 80.000000", lines[8])
		True(t, strings.HasPrefix(lines[9], "Dot product computation took "))
	}
}

func TestDistributedMatchesSequentialDot(t *testing.T) {
	const n = 60
	full := fixed{
		vector.SaltX: make(vector.Vector, n),
		vector.SaltY: make(vector.Vector, n),
	}
	vector.Random{Base: 99}.Fill(full[vector.SaltX], 0, vector.SaltX)
	vector.Random{Base: 99}.Fill(full[vector.SaltY], 0, vector.SaltY)

	scaledX := append(vector.Vector(nil), full[vector.SaltX]...)
	scaledY := append(vector.Vector(nil), full[vector.SaltY]...)
	ScalarMultiply(backend.Default(), scaledX, 3)
	ScalarMultiply(backend.Default(), scaledY, 3)
	expected := LocalDot(backend.Default(), scaledX, scaledY)

	for _, size := range []int{1, 2, 3, 4, 5, 6} {
		results, errs, _, _ := runDistributed(size, []string{"60", "3"}, func(c comm.Communicator, d *Distributed) {
			d.Generator = full
		})
		for _, err := range errs {
			Nil(t, err)
		}
		InDelta(t, expected, results[0].Dot, 1e-9, "size %d", size)
	}
}

func TestDistributedRandomBlocks(t *testing.T) {
	results, errs, out, _ := runDistributed(4, []string{"40", "1"}, nil)
	for _, err := range errs {
		Nil(t, err)
	}
	True(t, results[0].Dot > 0)
	Contains(t, out, "\t...\n")
}

func TestDistributedValidation(t *testing.T) {
	cases := []struct {
		size int
		args []string
		is   error
	}{
		{1, []string{"0", "2"}, ErrValidation},
		{1, []string{"-5", "2"}, ErrValidation},
		{4, []string{"10", "2"}, ErrValidation},
		{2, []string{"4"}, ErrUsage},
		{2, []string{"4", "x"}, ErrValidation},
	}

	for _, tc := range cases {
		spy := &spyGenerator{}
		_, errs, out, errOut := runDistributed(tc.size, tc.args, func(c comm.Communicator, d *Distributed) {
			d.Allocator = vector.Failing{}
			d.Generator = spy
		})

		for rank, err := range errs {
			True(t, errors.Is(err, ErrAborted), "%v rank %d", tc.args, rank)
			True(t, errors.Is(err, tc.is), "%v rank %d", tc.args, rank)
			// rejected before reaching the allocator
			False(t, errors.Is(err, vector.ErrAllocation))
		}
		Zero(t, spy.calls)
		Empty(t, out)
		Equal(t, 1, strings.Count(errOut, "\n"), errOut)
		True(t, strings.HasPrefix(errOut, "Proc 0 > In Parse_args, "))
	}
}

func TestDistributedAllocationFailureOnOneWorker(t *testing.T) {
	for _, mode := range []Mode{Generate, Scatter} {
		_, errs, out, errOut := runDistributed(3, []string{"6", "2"}, func(c comm.Communicator, d *Distributed) {
			d.Mode = mode
			if c.Rank() == 1 {
				d.Allocator = vector.Failing{}
			}
		})

		for rank, err := range errs {
			True(t, errors.Is(err, ErrAborted), "rank %d", rank)
		}
		True(t, errors.Is(errs[1], vector.ErrAllocation))
		Empty(t, out)
		Equal(t, "Proc 0 > In Allocate_vectors, error detected by another worker\n", errOut)
	}
}

// fullOnly refuses allocations larger than the local blocks.
type fullOnly struct {
	max int
}

func (f fullOnly) Allocate(n int) (vector.Vector, error) {
	if n > f.max {
		return vector.Failing{}.Allocate(n)
	}
	return vector.Heap{}.Allocate(n)
}

func TestDistributedScatterAllocationFailure(t *testing.T) {
	_, errs, out, errOut := runDistributed(2, []string{"8", "2"}, func(c comm.Communicator, d *Distributed) {
		d.Mode = Scatter
		d.Allocator = fullOnly{max: 4}
	})
	for _, err := range errs {
		True(t, errors.Is(err, ErrAborted))
	}
	True(t, errors.Is(errs[0], vector.ErrAllocation))
	Empty(t, out)
	True(t, strings.HasPrefix(errOut, "Proc 0 > In Scatter_vectors, "))
}

func TestModeString(t *testing.T) {
	Equal(t, "generate", Generate.String())
	Equal(t, "scatter", Scatter.String())
	Equal(t, "mode(7)", Mode(7).String())
}

func TestDistributedBackendMemoryLimit(t *testing.T) {
	impl := tinyMemory{Backend: backend.Default(), space: 16}
	Equal(t, vector.Heap{Limit: 16}, NewDistributed(impl, nil, nil).Allocator)

	// each worker needs 2 blocks of 2 elements, 32 bytes
	_, errs, out, errOut := runDistributed(2, []string{"4", "2"}, func(c comm.Communicator, d *Distributed) {
		d.Backend = impl
		d.Allocator = nil
	})
	for _, err := range errs {
		True(t, errors.Is(err, ErrAborted))
		True(t, errors.Is(err, vector.ErrAllocation))
	}
	Empty(t, out)
	True(t, strings.HasPrefix(errOut, "Proc 0 > In Allocate_vectors, "))
}

func TestDistributedDisplayAllocationFailure(t *testing.T) {
	// local blocks of 2 elements fit, the coordinator's display vector doesn't
	_, errs, out, errOut := runDistributed(2, []string{"4", "2"}, func(c comm.Communicator, d *Distributed) {
		d.Generator = exampleVectors
		d.Allocator = fullOnly{max: 2}
	})
	for rank, err := range errs {
		True(t, errors.Is(err, ErrAborted), "rank %d", rank)
	}
	True(t, errors.Is(errs[0], vector.ErrAllocation))
	False(t, errors.Is(errs[1], vector.ErrAllocation))
	Empty(t, out)
	Equal(t, 1, strings.Count(errOut, "\n"))
	True(t, strings.HasPrefix(errOut, "Proc 0 > In Print_vector, "))
}
