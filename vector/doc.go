/*
Package vector provides the owned float64 buffers the kernels operate on,
together with the allocators used to create them, seeded generators used to
fill them and the preview printer used by the commands.
*/
package vector
