package vector

// Vector is a fixed length sequence of float64 values, it is never resized
// after allocation.
type Vector []float64

// Len returns the number of elements of the vector.
func (v Vector) Len() int {
	return len(v)
}

// Bytes returns the memory footprint of the vector data.
func (v Vector) Bytes() uint64 {
	return SizeOf(len(v))
}

// SizeOf returns the number of bytes needed to store n float64 values.
func SizeOf(n int) uint64 {
	if n <= 0 {
		return 0
	}
	return uint64(n) * 8
}
