// SPDX-License-Identifier: MIT

// Package ndio moves marray views and arrays in and out of external formats.
//
// Formats:
//   - NPY (NumPy .npy v1/v2/v3): typed n-dimensional data with a stored
//     reversed-axis flag (fortran_order), including hyperslab reads and writes
//     through io.ReaderAt / io.WriterAt so a window can be exchanged without
//     touching the rest of the file.
//   - PGM (binary P5, 8 or 16 bit): two-dimensional grayscale images.
//   - BMP: grayscale or RGB pixel maps via golang.org/x/image/bmp.
//
// Conventions:
//   - Images use shape (width, height[, channel]) in LastMajorOrder, so the
//     flat buffer of a loaded array is row by row.
//   - NPY arrays keep the file's layout: fortran_order maps to LastMajorOrder.
//   - Loads allocate a fresh array; a failed load never touches a destination.
//   - Element types are converted with Go conversion semantics; half precision
//     data only loads into float element types.
package ndio
