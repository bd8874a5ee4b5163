package comm

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// rendezvous is where the members of a local group meet for each collective
// operation. Every collective is a single exchange round: each member
// deposits its contribution and the last one to arrive publishes all of them.
type rendezvous struct {
	sync.Mutex
	cond    *sync.Cond
	size    int
	arrived int
	round   uint64
	slots   []interface{}
	result  []interface{}
}

// exchange blocks until all members have deposited a value for the current
// round and returns the values indexed by rank. The returned slice is shared
// and must not be modified.
func (r *rendezvous) exchange(rank int, v interface{}) []interface{} {
	r.Lock()
	defer r.Unlock()

	round := r.round
	r.slots[rank] = v
	r.arrived++

	if r.arrived == r.size {
		r.result = r.slots
		r.slots = make([]interface{}, r.size)
		r.arrived = 0
		r.round++
		r.cond.Broadcast()
	} else {
		for round == r.round {
			r.cond.Wait()
		}
	}

	// result can't be replaced before this member joins the next round
	return r.result
}

// Local is a member of an in-process group of workers.
type Local struct {
	rank int
	rv   *rendezvous
}

// NewGroup creates the members of an in-process group of the given size,
// each of them must be driven by its own goroutine.
func NewGroup(size int) []*Local {
	if size <= 0 {
		panic(fmt.Sprintf("invalid group size %d", size))
	}

	rv := &rendezvous{
		size:  size,
		slots: make([]interface{}, size),
	}
	rv.cond = sync.NewCond(rv)

	members := make([]*Local, size)
	for rank := range members {
		members[rank] = &Local{rank: rank, rv: rv}
	}

	log.Debugf("created local group of %d workers", size)

	return members
}

func (l *Local) Size() int {
	return l.rv.size
}

func (l *Local) Rank() int {
	return l.rank
}

func (l *Local) Barrier() {
	l.rv.exchange(l.rank, nil)
}

func (l *Local) AllReduceMinInt(v int) int {
	all := l.rv.exchange(l.rank, v)
	min := all[0].(int)
	for _, other := range all[1:] {
		if o := other.(int); o < min {
			min = o
		}
	}
	return min
}

func (l *Local) ReduceSumFloat64(v float64, root int) float64 {
	all := l.rv.exchange(l.rank, v)
	if l.rank != root {
		return 0
	}

	sum := float64(0.0)
	for _, other := range all {
		sum += other.(float64)
	}
	return sum
}

func (l *Local) GatherFloat64s(local []float64, root int) []float64 {
	// contribute a copy, the caller is free to modify local afterwards
	own := append([]float64(nil), local...)
	all := l.rv.exchange(l.rank, own)
	if l.rank != root {
		return nil
	}

	n := 0
	for _, block := range all {
		n += len(block.([]float64))
	}

	full := make([]float64, 0, n)
	for _, block := range all {
		full = append(full, block.([]float64)...)
	}
	return full
}

func (l *Local) ScatterFloat64s(full []float64, count, root int) []float64 {
	var own []float64
	if l.rank == root {
		if len(full) < count*l.rv.size {
			panic(fmt.Sprintf("scatter of %d elements to %d workers with %d elements each", len(full), l.rv.size, count))
		}
		own = append([]float64(nil), full[:count*l.rv.size]...)
	}

	all := l.rv.exchange(l.rank, own)
	src := all[root].([]float64)
	from := l.rank * count

	return append([]float64(nil), src[from:from+count]...)
}
