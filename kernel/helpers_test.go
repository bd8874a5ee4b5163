package kernel

import (
	"sync"

	"github.com/evilsocket/vecops/backend"
	"github.com/evilsocket/vecops/comm"
	"github.com/evilsocket/vecops/vector"
)

// fixed fills blocks with the slice of a known logical vector selected by
// salt, starting at rank*len(block).
type fixed map[int]vector.Vector

func (f fixed) Fill(v vector.Vector, rank, salt int) {
	copy(v, f[salt][rank*len(v):])
}

// onWorkers runs fn on every member of an in-process group of the given size
// and waits for all of them.
func onWorkers(size int, fn func(c comm.Communicator)) {
	wg := sync.WaitGroup{}
	wg.Add(size)
	for _, member := range comm.NewGroup(size) {
		go func(c comm.Communicator) {
			defer wg.Done()
			fn(c)
		}(member)
	}
	wg.Wait()
}

// tinyMemory is a backend reporting only a few bytes of memory.
type tinyMemory struct {
	backend.Backend
	space uint64
}

func (b tinyMemory) Space() uint64 {
	return b.space
}
