package kernel

import (
	"fmt"

	"github.com/evilsocket/vecops/backend"
	"github.com/evilsocket/vecops/comm"
	"github.com/evilsocket/vecops/vector"
)

func mustMatch(a, b vector.Vector) {
	if len(a) != len(b) {
		panic(fmt.Errorf("%w: %d != %d", ErrLength, len(a), len(b)))
	}
}

// AddTo stores x + y in dst, the three vectors must have the same length.
func AddTo(b backend.Backend, dst, x, y vector.Vector) {
	mustMatch(x, y)
	mustMatch(dst, x)
	b.Add(dst, x, y)
}

// Add returns a new vector with the elementwise sum of x and y.
func Add(b backend.Backend, x, y vector.Vector) vector.Vector {
	mustMatch(x, y)
	z := make(vector.Vector, len(x))
	b.Add(z, x, y)
	return z
}

// ScalarMultiply multiplies every element of v by s in place.
func ScalarMultiply(b backend.Backend, v vector.Vector, s float64) {
	b.Scale(s, v)
}

// LocalDot returns the dot product of two blocks of the same length.
func LocalDot(b backend.Backend, x, y vector.Vector) float64 {
	mustMatch(x, y)
	return b.Dot(x, y)
}

// GlobalDot sums the partial dot products of all workers, only the
// coordinator receives the result.
func GlobalDot(c comm.Communicator, partial float64) float64 {
	return c.ReduceSumFloat64(partial, comm.Root)
}

// GatherForDisplay collects the blocks of every worker into a single vector
// on the coordinator, it returns nil on every other worker.
func GatherForDisplay(c comm.Communicator, block vector.Vector) vector.Vector {
	if full := c.GatherFloat64s(block, comm.Root); full != nil {
		return vector.Vector(full)
	}
	return nil
}

// LocalN returns the size of the block owned by each of size workers for
// vectors of order n.
func LocalN(n, size int) (int, error) {
	if n <= 0 || size <= 0 || n%size != 0 {
		return 0, fmt.Errorf("%w: order of the vectors should be a positive integer and evenly divisible by the number of processes (n=%d, processes=%d)",
			ErrValidation, n, size)
	}
	return n / size, nil
}
