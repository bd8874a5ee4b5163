// This file provides minimal MPI support.  It assumes the MPI_ERRORS_ARE_FATAL
// error handler so no error codes are returned.

// +build mpi

package comm

/*
#cgo LDFLAGS: -lmpi
#include <stdlib.h>
#include <mpi.h>
*/
import "C"
import (
	"errors"
	"fmt"
	"unsafe"

	log "github.com/sirupsen/logrus"
)

// maxDoubles bounds the C buffers that can be viewed as a Go slice.
const maxDoubles = 1 << 40

var errBuffer = errors.New("can't allocate MPI buffer")

// Parallel is true when the communicators created by Launch span separate
// processes.
const Parallel = true

// World is the MPI_COMM_WORLD communicator.
type World struct {
	size int
	rank int
}

// MPIInit initializes MPI.
func MPIInit() {
	var argc C.int
	C.MPI_Init(&argc, nil)
}

// MPIFinalize finalizes MPI.
func MPIFinalize() {
	C.MPI_Finalize()
}

// NewWorld returns the communicator of MPI_COMM_WORLD, MPI must have been
// initialized.
func NewWorld() *World {
	var sz, r C.int
	C.MPI_Comm_size(C.MPI_COMM_WORLD, &sz)
	C.MPI_Comm_rank(C.MPI_COMM_WORLD, &r)
	return &World{size: int(sz), rank: int(r)}
}

func (w *World) Size() int {
	return w.size
}

func (w *World) Rank() int {
	return w.rank
}

func (w *World) Barrier() {
	C.MPI_Barrier(C.MPI_COMM_WORLD)
}

func (w *World) AllReduceMinInt(v int) int {
	sBuf := C.long(v)
	var rBuf C.long
	C.MPI_Allreduce(unsafe.Pointer(&sBuf), unsafe.Pointer(&rBuf), 1, C.MPI_LONG, C.MPI_MIN, C.MPI_COMM_WORLD)
	return int(rBuf)
}

func (w *World) ReduceSumFloat64(v float64, root int) float64 {
	sBuf := C.double(v)
	var rBuf C.double
	C.MPI_Reduce(unsafe.Pointer(&sBuf), unsafe.Pointer(&rBuf), 1, C.MPI_DOUBLE, C.MPI_SUM, C.int(root), C.MPI_COMM_WORLD)
	if w.rank != root {
		return 0
	}
	return float64(rBuf)
}

// doubles allocates a C buffer of n doubles which must be released with C.free.
func doubles(n int) (unsafe.Pointer, []C.double, error) {
	if n < 0 || n > maxDoubles {
		return nil, nil, fmt.Errorf("%w: %d elements", errBuffer, n)
	}
	if n == 0 {
		n = 1
	}
	p := C.malloc(C.size_t(n) * C.size_t(unsafe.Sizeof(C.double(0))))
	if p == nil {
		return nil, nil, fmt.Errorf("%w: %d elements", errBuffer, n)
	}
	return p, (*[maxDoubles]C.double)(p)[:n:n], nil
}

// mustDoubles is doubles for callers already inside a collective operation,
// where a single worker can't back out: a failure aborts the whole job.
func (w *World) mustDoubles(n int) (unsafe.Pointer, []C.double) {
	p, buf, err := doubles(n)
	if err != nil {
		log.Errorf("worker %d: %v, aborting", w.rank, err)
		C.MPI_Abort(C.MPI_COMM_WORLD, 255)
	}
	return p, buf
}

func (w *World) GatherFloat64s(local []float64, root int) []float64 {
	n := len(local)
	sPtr, sBuf := w.mustDoubles(n)
	defer C.free(sPtr)
	for i, v := range local {
		sBuf[i] = C.double(v)
	}

	var rPtr unsafe.Pointer
	var rBuf []C.double
	if w.rank == root {
		rPtr, rBuf = w.mustDoubles(n * w.size)
		defer C.free(rPtr)
	}

	C.MPI_Gather(sPtr, C.int(n), C.MPI_DOUBLE, rPtr, C.int(n), C.MPI_DOUBLE, C.int(root), C.MPI_COMM_WORLD)
	if w.rank != root {
		return nil
	}

	out := make([]float64, n*w.size)
	for i := range out {
		out[i] = float64(rBuf[i])
	}
	return out
}

func (w *World) ScatterFloat64s(full []float64, count, root int) []float64 {
	var sPtr unsafe.Pointer
	if w.rank == root {
		var sBuf []C.double
		sPtr, sBuf = w.mustDoubles(count * w.size)
		defer C.free(sPtr)
		for i := 0; i < count*w.size; i++ {
			sBuf[i] = C.double(full[i])
		}
	}

	rPtr, rBuf := w.mustDoubles(count)
	defer C.free(rPtr)

	C.MPI_Scatter(sPtr, C.int(count), C.MPI_DOUBLE, rPtr, C.int(count), C.MPI_DOUBLE, C.int(root), C.MPI_COMM_WORLD)

	out := make([]float64, count)
	for i := range out {
		out[i] = float64(rBuf[i])
	}
	return out
}

// Launch initializes MPI, runs fn on the world communicator and finalizes
// MPI. The number of workers is decided by the MPI launcher, np is ignored.
func Launch(np int, fn func(c Communicator) error) error {
	MPIInit()
	defer MPIFinalize()

	world := NewWorld()
	if np > 0 && np != world.Size() {
		log.Debugf("ignoring requested %d workers, launched with %d", np, world.Size())
	}

	return fn(world)
}
