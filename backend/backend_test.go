package backend

import (
	"math/rand"
	"testing"

	. "github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func randomSlice(r *rand.Rand, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = r.Float64()
	}
	return s
}

func TestGet(t *testing.T) {
	for _, name := range Names() {
		impl, err := Get(name)
		Nil(t, err)
		Equal(t, name, impl.Name())
		True(t, impl.Space() > 0)
	}

	impl, err := Get("")
	Nil(t, err)
	Equal(t, DefaultName, impl.Name())
	Equal(t, DefaultName, Default().Name())

	_, err = Get("cuda")
	NotNil(t, err)
	Contains(t, err.Error(), "blas64, gonum, naive")
}

func TestAddExample(t *testing.T) {
	for _, name := range Names() {
		impl, _ := Get(name)
		z := make([]float64, 4)
		impl.Add(z, []float64{1, 2, 3, 4}, []float64{5, 6, 7, 8})
		Equal(t, []float64{6, 8, 10, 12}, z, name)
	}
}

func TestScaleIdentityAndZero(t *testing.T) {
	for _, name := range Names() {
		impl, _ := Get(name)
		v := []float64{0.5, -1.25, 3}
		impl.Scale(1.0, v)
		Equal(t, []float64{0.5, -1.25, 3}, v, name)

		impl.Scale(0.0, v)
		Equal(t, []float64{0, 0, 0}, v, name)
	}
}

func TestDotCommutative(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	x := randomSlice(r, 100)
	y := randomSlice(r, 100)
	for _, name := range Names() {
		impl, _ := Get(name)
		InDelta(t, impl.Dot(x, y), impl.Dot(y, x), epsilon, name)
	}
}

func TestEmptyVectors(t *testing.T) {
	for _, name := range Names() {
		impl, _ := Get(name)
		NotPanics(t, func() {
			impl.Add([]float64{}, []float64{}, []float64{})
			impl.Scale(2, []float64{})
			Zero(t, impl.Dot([]float64{}, []float64{}))
		}, name)
	}
}

func TestBackendsAgree(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	x := randomSlice(r, 1024)
	y := randomSlice(r, 1024)
	ref := naive{}

	refSum := make([]float64, len(x))
	ref.Add(refSum, x, y)
	refDot := ref.Dot(x, y)

	for _, name := range Names() {
		impl, _ := Get(name)

		sum := make([]float64, len(x))
		impl.Add(sum, x, y)
		InDeltaSlice(t, refSum, sum, epsilon, name)

		InDelta(t, refDot, impl.Dot(x, y), epsilon*float64(len(x)), name)

		scaled := append([]float64(nil), x...)
		impl.Scale(3.5, scaled)
		for i := range x {
			InDelta(t, x[i]*3.5, scaled[i], epsilon, name)
		}
	}
}
