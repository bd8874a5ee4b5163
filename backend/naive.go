package backend

import (
	"github.com/pbnjay/memory"
)

type naive struct {
}

func (impl naive) Name() string {
	return "naive"
}

func (impl naive) Space() uint64 {
	return memory.TotalMemory()
}

func (impl naive) Add(dst, x, y []float64) {
	for i := range dst {
		dst[i] = x[i] + y[i]
	}
}

func (impl naive) Scale(alpha float64, x []float64) {
	for i := range x {
		x[i] *= alpha
	}
}

func (impl naive) Dot(x, y []float64) float64 {
	dot := float64(0.0)
	for i, vx := range x {
		dot += vx * y[i]
	}
	return dot
}
