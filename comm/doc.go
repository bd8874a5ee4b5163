/*
Package comm provides the collective communication primitives the distributed
kernel relies on. Every operation is collective: all the members of a group
must call it, in the same order, before any of them can proceed past it.

Two implementations are provided:

	- an in-process group of goroutines (default build)
	- MPI_COMM_WORLD through cgo (build with -tags mpi)
*/
package comm
