package kernel

import (
	"fmt"
	"io"
	"io/ioutil"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/evilsocket/vecops/backend"
	"github.com/evilsocket/vecops/comm"
	"github.com/evilsocket/vecops/vector"
	log "github.com/sirupsen/logrus"
)

// Mode selects how the local blocks are populated.
type Mode int

const (
	// Generate makes each worker generate its own block.
	Generate Mode = iota
	// Scatter makes the coordinator generate the full vectors and scatter
	// them to the workers.
	Scatter
)

func (m Mode) String() string {
	switch m {
	case Generate:
		return "generate"
	case Scatter:
		return "scatter"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Distributed multiplies two block distributed vectors by a scalar and
// computes their dot product. A Distributed object is driven by one worker
// and can be shared by all the workers of an in-process group.
type Distributed struct {
	Backend   backend.Backend
	Allocator vector.Allocator
	Generator vector.Generator
	Mode      Mode
	// Out receives the previews and results, only the coordinator writes to it.
	Out io.Writer
	// Err receives the diagnostic line of a collective abort.
	Err io.Writer
}

type preview struct {
	title string
	v     vector.Vector
}

// DistributedResult is what a worker gets out of a run.
type DistributedResult struct {
	// Dot is the global dot product, only meaningful on the coordinator.
	Dot         float64
	Elapsed     time.Duration
	Coordinator bool
}

// NewDistributed returns a distributed kernel using the given backend, heap
// allocation and a generator seeded with the current time.
func NewDistributed(b backend.Backend, out, errOut io.Writer) *Distributed {
	if b == nil {
		b = backend.Default()
	}
	return &Distributed{
		Backend:   b,
		Allocator: vector.Heap{Limit: b.Space()},
		Generator: vector.Random{Base: time.Now().Unix()},
		Out:       out,
		Err:       errOut,
	}
}

func (d *Distributed) impl() backend.Backend {
	if d.Backend == nil {
		return backend.Default()
	}
	return d.Backend
}

func (d *Distributed) allocator() vector.Allocator {
	if d.Allocator == nil {
		return vector.Heap{Limit: d.impl().Space()}
	}
	return d.Allocator
}

func (d *Distributed) generator() vector.Generator {
	if d.Generator == nil {
		return vector.Random{Base: time.Now().Unix()}
	}
	return d.Generator
}

func (d *Distributed) out() io.Writer {
	if d.Out == nil {
		return ioutil.Discard
	}
	return d.Out
}

// show gathers the blocks on the coordinator and prints their preview. The
// coordinator allocates the full display vector first and a failure aborts
// every worker.
func (d *Distributed) show(c comm.Communicator, title string, block vector.Vector) error {
	var display vector.Vector
	var allocErr error
	if comm.IsRoot(c) {
		display, allocErr = d.allocator().Allocate(len(block) * c.Size())
	}
	if err := CheckForError(c, allocErr, "Print_vector", d.Err); err != nil {
		return err
	}

	if full := GatherForDisplay(c, block); full != nil {
		copy(display, full)
		if err := vector.Print(d.out(), title, display); err != nil {
			log.Errorf("Cannot print '%s': %v", title, err)
		}
	}
	return nil
}

// populate fills the local blocks x and y according to the mode.
func (d *Distributed) populate(c comm.Communicator, n int, x, y vector.Vector) error {
	gen := d.generator()
	if d.Mode != Scatter {
		gen.Fill(x, c.Rank(), vector.SaltX)
		gen.Fill(y, c.Rank(), vector.SaltY)
		return nil
	}

	var fullX, fullY vector.Vector
	var allocErr error
	if comm.IsRoot(c) {
		log.Debugf("allocating 2 full vectors of %d elements (%s)", n, humanize.Bytes(2*vector.SizeOf(n)))
		if allocErr = vector.AllocateAll(d.allocator(), n, &fullX, &fullY); allocErr == nil {
			gen.Fill(fullX, comm.Root, vector.SaltX)
			gen.Fill(fullY, comm.Root, vector.SaltY)
		}
	}
	if err := CheckForError(c, allocErr, "Scatter_vectors", d.Err); err != nil {
		return err
	}

	copy(x, c.ScatterFloat64s(fullX, len(x), comm.Root))
	copy(y, c.ScatterFloat64s(fullY, len(y), comm.Root))

	return nil
}

// Run executes the kernel on the calling worker with the raw positional
// arguments <order of the vectors> <scalar>. Every worker of the group must
// call Run with the same arguments. On any error, wherever it is detected,
// every worker returns an error matching ErrAborted.
func (d *Distributed) Run(c comm.Communicator, rawArgs []string) (*DistributedResult, error) {
	args, argsErr := ParseDistributedArgs(rawArgs)
	localN := 0
	if argsErr == nil {
		localN, argsErr = LocalN(args.N, c.Size())
	}
	if err := CheckForError(c, argsErr, "Parse_args", d.Err); err != nil {
		return nil, err
	}

	log.Debugf("worker %d/%d allocating 2 blocks of %d elements (%s)",
		c.Rank(), c.Size(), localN, humanize.Bytes(2*vector.SizeOf(localN)))

	var x, y vector.Vector
	allocErr := vector.AllocateAll(d.allocator(), localN, &x, &y)
	if err := CheckForError(c, allocErr, "Allocate_vectors", d.Err); err != nil {
		return nil, err
	}

	if err := d.populate(c, args.N, x, y); err != nil {
		return nil, err
	}

	for _, p := range []preview{
		{"=> The first vector is", x},
		{"=> The second vector is", y},
	} {
		if err := d.show(c, p.title, p.v); err != nil {
			return nil, err
		}
	}

	impl := d.impl()
	ScalarMultiply(impl, x, args.Scalar)
	ScalarMultiply(impl, y, args.Scalar)

	c.Barrier()
	start := time.Now()
	dot := GlobalDot(c, LocalDot(impl, x, y))
	elapsed := time.Since(start)

	for _, p := range []preview{
		{"=> The first vector after scalar multiplication is", x},
		{"=> The second vector after scalar multiplication is", y},
	} {
		if err := d.show(c, p.title, p.v); err != nil {
			return nil, err
		}
	}

	res := &DistributedResult{
		Dot:         dot,
		Elapsed:     elapsed,
		Coordinator: comm.IsRoot(c),
	}

	if res.Coordinator {
		fmt.Fprintf(d.out(), "The dot product is %f\n", res.Dot)
		fmt.Fprintf(d.out(), "Dot product computation took %f seconds\n", res.Elapsed.Seconds())
	}

	return res, nil
}
