package vector

import (
	"fmt"
	"math/rand"
)

// SaltSpace is the number of distinct salts each rank can use when deriving
// seeds, salts must be in the [0, SaltSpace) range.
const SaltSpace = 256

// Salts identifying the two logical vectors of the kernels.
const (
	SaltX = 1
	SaltY = 2
)

// Seed derives the seed of a vector block from a base value (usually the wall
// clock time in seconds), the rank of the worker and a salt. Distinct
// (rank, salt) pairs always produce distinct seeds for the same base.
func Seed(base int64, rank, salt int) int64 {
	if salt < 0 || salt >= SaltSpace {
		panic(fmt.Sprintf("salt %d out of range [0, %d)", salt, SaltSpace))
	}
	return base + int64(rank)*SaltSpace + int64(salt)
}

// Generator fills vectors with values.
type Generator interface {
	Fill(v Vector, rank, salt int)
}

// Random fills vectors with uniformly distributed values in [0, 1).
type Random struct {
	Base int64
}

// Fill overwrites every element of v with values drawn from a source seeded
// with Seed(r.Base, rank, salt).
func (r Random) Fill(v Vector, rank, salt int) {
	rng := rand.New(rand.NewSource(Seed(r.Base, rank, salt)))
	for i := range v {
		v[i] = rng.Float64()
	}
}
