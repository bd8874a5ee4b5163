package common

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Report writes err to w as a single line, unless it matches one of the
// errors in reported, which have already been printed. It returns true if
// something was written.
func Report(w io.Writer, err error, reported ...error) bool {
	for _, r := range reported {
		if errors.Is(err, r) {
			return false
		}
	}
	fmt.Fprintln(w, err)
	return true
}

// ExitWithError reports err to stderr, runs the cleanup functions and
// terminates the process with ExitFailure.
func ExitWithError(err error, reported []error, cleanup ...func()) {
	Report(os.Stderr, err, reported...)
	for _, fn := range cleanup {
		fn()
	}
	os.Exit(ExitFailure)
}
