package backend

import (
	"github.com/pbnjay/memory"
	"gonum.org/v1/gonum/blas/blas64"
)

type blas struct {
}

func wrap(data []float64) blas64.Vector {
	return blas64.Vector{
		N:    len(data),
		Inc:  1,
		Data: data,
	}
}

func (impl blas) Name() string {
	return "blas64"
}

func (impl blas) Space() uint64 {
	return memory.TotalMemory()
}

func (impl blas) Add(dst, x, y []float64) {
	if len(dst) == 0 {
		return
	}
	d := wrap(dst)
	blas64.Copy(wrap(x), d)
	blas64.Axpy(1.0, wrap(y), d)
}

func (impl blas) Scale(alpha float64, x []float64) {
	if len(x) == 0 {
		return
	}
	blas64.Scal(alpha, wrap(x))
}

func (impl blas) Dot(x, y []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return blas64.Dot(wrap(x), wrap(y))
}
