package kernel

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage is returned for a wrong number of arguments.
	ErrUsage = errors.New("usage error")
	// ErrValidation is returned for invalid argument values.
	ErrValidation = errors.New("validation error")
	// ErrLength is the panic value of operations on vectors of different lengths.
	ErrLength = errors.New("vectors length mismatch")
	// ErrAborted is matched by every error returned after a collective abort.
	ErrAborted = errors.New("collectively aborted")

	errRemote = errors.New("error detected by another worker")
)

// AbortError is returned by every worker of a group when at least one of them
// detected an error in the named function.
type AbortError struct {
	Func  string
	Cause error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("In %s, %v", e.Func, e.Cause)
}

func (e *AbortError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrAborted) true for any *AbortError.
func (e *AbortError) Is(target error) bool {
	return target == ErrAborted
}
