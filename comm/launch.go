// +build !mpi

package comm

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Parallel is true when the communicators created by Launch span separate
// processes.
const Parallel = false

// Launch runs fn on np workers of an in-process group and waits for all of
// them, it returns the first error any worker returned. Workers must abort
// collectively; a worker returning early while others are blocked in a
// collective operation makes Launch hang.
func Launch(np int, fn func(c Communicator) error) error {
	if np <= 0 {
		np = 1
	}

	var eg errgroup.Group
	for _, member := range NewGroup(np) {
		member := member
		eg.Go(func() error {
			log.Debugf("worker %d/%d started", member.Rank(), member.Size())
			return fn(member)
		})
	}

	return eg.Wait()
}
