/*
Package kernel implements the two vector kernels: the sequential vector
addition and the distributed scalar multiplication and dot product, where
each worker of a comm.Communicator group owns one contiguous block of the
two logical vectors.

Errors detected by a single worker of the distributed kernel are always
turned into a collective decision with CheckForError, so either every worker
proceeds or every worker aborts.
*/
package kernel
