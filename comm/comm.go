package comm

// Root is the rank of the coordinator by convention.
const Root = 0

// Communicator is the view a single worker has of its group.
type Communicator interface {
	// Size returns the number of workers in the group.
	Size() int
	// Rank returns the index of the caller within the group.
	Rank() int

	// Barrier blocks until every worker has reached it.
	Barrier()
	// AllReduceMinInt returns the minimum of v over all workers, to all workers.
	AllReduceMinInt(v int) int
	// ReduceSumFloat64 returns the sum of v over all workers to root, other
	// workers get zero.
	ReduceSumFloat64(v float64, root int) float64
	// GatherFloat64s concatenates the local blocks of all workers in rank
	// order on root, other workers get nil.
	GatherFloat64s(local []float64, root int) []float64
	// ScatterFloat64s splits full, which is only read on root, in blocks of
	// count elements and returns to each worker the block of its rank.
	ScatterFloat64s(full []float64, count, root int) []float64
}

// IsRoot returns true if c is the coordinator of its group.
func IsRoot(c Communicator) bool {
	return c.Rank() == Root
}
