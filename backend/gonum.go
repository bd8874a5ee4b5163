package backend

import (
	"github.com/pbnjay/memory"
	"gonum.org/v1/gonum/mat"
)

// mat.NewVecDense panics on zero length vectors, every method here
// short-circuits them.
type gonum struct {
}

func (impl gonum) Name() string {
	return "gonum"
}

func (impl gonum) Space() uint64 {
	return memory.TotalMemory()
}

func (impl gonum) Add(dst, x, y []float64) {
	n := len(dst)
	if n == 0 {
		return
	}
	mat.NewVecDense(n, dst).AddVec(mat.NewVecDense(n, x), mat.NewVecDense(n, y))
}

func (impl gonum) Scale(alpha float64, x []float64) {
	n := len(x)
	if n == 0 {
		return
	}
	v := mat.NewVecDense(n, x)
	v.ScaleVec(alpha, v)
}

func (impl gonum) Dot(x, y []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	return mat.Dot(mat.NewVecDense(n, x), mat.NewVecDense(n, y))
}
