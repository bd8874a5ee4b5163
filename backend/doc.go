/*
Package backend provides an abstraction layer to the available computational backends, currently implemented:

	- naive (plain loops, no optimizations)
	- blas64 (gonum blas64 interface)
	- gonum (gonum mat.VecDense)

Future:

	- cuda
	- opencl
*/
package backend
