package backend

import (
	"fmt"
	"sort"
	"strings"
)

// Backend is implemented by each arithmetic backend. Vectors passed to the
// same call are expected to have the same length.
type Backend interface {
	Name() string
	Space() uint64

	// dst[i] = x[i] + y[i]
	Add(dst, x, y []float64)
	// x[i] *= alpha
	Scale(alpha float64, x []float64)
	Dot(x, y []float64) float64
}

// DefaultName is the backend used when none is requested.
const DefaultName = "naive"

var available = map[string]Backend{
	"naive":  naive{},
	"blas64": blas{},
	"gonum":  gonum{},
}

// Names returns the sorted names of the available backends.
func Names() []string {
	names := make([]string, 0, len(available))
	for name := range available {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the backend registered with the given name, an empty name
// selects the default one.
func Get(name string) (Backend, error) {
	if name == "" {
		name = DefaultName
	}
	if impl, found := available[name]; found {
		return impl, nil
	}
	return nil, fmt.Errorf("unknown backend '%s', available: %s", name, strings.Join(Names(), ", "))
}

// Default returns the default backend.
func Default() Backend {
	return available[DefaultName]
}
