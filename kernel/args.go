package kernel

import (
	"fmt"
	"strconv"
)

// Args are the positional arguments of the distributed kernel.
type Args struct {
	N      int
	Scalar float64
}

// ParseOrder parses the order of the vectors, which must be a positive integer.
func ParseOrder(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: order of the vectors should be a positive integer, got '%s'", ErrValidation, s)
	}
	return n, nil
}

// ParseSequentialArgs parses the <order of the vectors> argument list.
func ParseSequentialArgs(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected <order of the vectors>, got %d arguments", ErrUsage, len(args))
	}
	return ParseOrder(args[0])
}

// ParseDistributedArgs parses the <order of the vectors> <scalar> argument list.
func ParseDistributedArgs(args []string) (Args, error) {
	if len(args) != 2 {
		return Args{}, fmt.Errorf("%w: expected <order of the vectors> <scalar>, got %d arguments", ErrUsage, len(args))
	}

	n, err := ParseOrder(args[0])
	if err != nil {
		return Args{}, err
	}

	s, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return Args{}, fmt.Errorf("%w: scalar should be a number, got '%s'", ErrValidation, args[1])
	}

	return Args{N: n, Scalar: s}, nil
}
