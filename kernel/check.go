package kernel

import (
	"fmt"
	"io"

	"github.com/evilsocket/vecops/comm"
	log "github.com/sirupsen/logrus"
)

// CheckForError lets every worker know whether any of them found an error.
// localErr is the error detected by the caller, if any. When at least one
// worker failed the coordinator writes a single diagnostic line to errOut and
// every worker returns an *AbortError, otherwise nil is returned to all.
func CheckForError(c comm.Communicator, localErr error, fname string, errOut io.Writer) error {
	ok := 1
	if localErr != nil {
		ok = 0
		log.Debugf("worker %d failed in %s: %v", c.Rank(), fname, localErr)
	}

	if c.AllReduceMinInt(ok) == 1 {
		return nil
	}

	cause := localErr
	if cause == nil {
		cause = errRemote
	}
	abort := &AbortError{Func: fname, Cause: cause}

	if comm.IsRoot(c) && errOut != nil {
		fmt.Fprintf(errOut, "Proc %d > %s\n", c.Rank(), abort.Error())
	}

	return abort
}
