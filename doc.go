// Package lvmarray is an in-memory engine for n-dimensional arrays: one set
// of coordinate arithmetic shared by owning arrays, zero-copy views and the
// file adapters built on top of them.
//
// 🚀 What is inside?
//
//	• geometry/   : shapes, strides, coordinate orders, index <-> offset maps
//	• marray/     : View (strided window over caller memory), Array (owning
//	                buffer), Iterator, elementwise arithmetic, reductions,
//	                fused Expr
//	• ndio/       : NPY (with hyperslab I/O), PGM and BMP adapters
//	• envconfig/  : LVMARRAY_* environment settings
//	• cmd/lvmarray : info / convert / slice / env command line tool
//
// ✨ Highlights
//
//   - Runtime dimension: one View type serves scalars, vectors and volumes.
//   - Both coordinate orders (first-major and last-major) with the same API.
//   - Sub-views, transposition, permutation and squeezing never copy.
//   - In-place arithmetic on overlapping windows of one buffer is safe.
//
// Quick ASCII example: a 2x2 window at (1,1) of a 4x4 first-major array
//
//	. . . .
//	. X X .
//	. X X .
//	. . . .
//
// shares memory with the array; writing through it updates the array.
//
//	go get github.com/katalvlaran/lvmarray/marray
package lvmarray
