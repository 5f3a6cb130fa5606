// Package kernel implements the data-parallel numeric kernels that apply
// gate operations to an amplitude buffer: the control-mask builder, the
// general per-qubit linear-operator applier, the universal-NOT transform,
// the modular register increment, and the Fourier-transform butterfly
// stage.
//
// Every kernel is a pure function over the index space [0, N): each output
// cell depends only on its own index and on cells of completed input
// buffers, never on cells of the buffer being written. Callers therefore
// evaluate kernels with ping-pong buffering (a fresh output buffer per
// pass) and may dispatch cells in any order, including in parallel.
//
// Kernels never inspect amplitude values for validity: NaN and Inf
// introduced by degenerate operators are legal buffer contents and
// propagate as data.
package kernel
