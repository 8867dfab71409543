// SPDX-License-Identifier: MIT
// Package marray_test contains test helpers.
//
// Purpose:
//   - Small deterministic fixtures: ascending sequences, arrays built from
//     them, and a strided view that defeats every flat fast path.

package marray_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmarray/geometry"
	"github.com/katalvlaran/lvmarray/marray"
)

// seq returns [0, 1, ..., n-1] converted to T.
func seq[T marray.Number](n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = T(i)
	}

	return out
}

// mustArray builds an array from values or fails the test.
func mustArray[T any](tb testing.TB, values []T, shape []int, opts ...marray.Option) *marray.Array[T] {
	tb.Helper()
	a, err := marray.FromSlice(values, shape, opts...)
	require.NoError(tb, err)

	return a
}

// mustView builds a contiguous view or fails the test.
func mustView[T any](tb testing.TB, data []T, shape []int, opts ...marray.Option) *marray.View[T] {
	tb.Helper()
	v, err := marray.NewView(data, shape, opts...)
	require.NoError(tb, err)

	return v
}

// mustAt reads coords or fails the test.
func mustAt[T any](tb testing.TB, v *marray.View[T], coords ...int) T {
	tb.Helper()
	x, err := v.At(coords...)
	require.NoError(tb, err)

	return x
}

// mustBeginOrder starts an iterator under order or fails the test.
func mustBeginOrder[T any](tb testing.TB, v *marray.View[T], order marray.Order) *marray.Iterator[T] {
	tb.Helper()
	it, err := v.BeginOrder(order)
	require.NoError(tb, err)

	return it
}

// stridedCopy returns a non-simple view with the same values as v: every
// element lives at twice its contiguous offset inside a fresh buffer.
func stridedCopy[T any](tb testing.TB, v *marray.View[T]) *marray.View[T] {
	tb.Helper()
	shape := v.Shape()
	contiguous := geometry.StridesFromShape(shape, geometry.FirstMajorOrder)
	strides := make([]int, len(contiguous))
	for i, s := range contiguous {
		strides[i] = 2 * s
	}
	buf := make([]T, 2*max(v.Size(), 1))
	s, err := marray.NewStridedView(buf, shape, strides, marray.FirstMajorOrder)
	require.NoError(tb, err)
	require.NoError(tb, s.CopyFrom(v))

	return s
}

// forEachCoord calls fn for every coordinate tuple of shape in first-major order.
func forEachCoord(shape []int, fn func(c []int)) {
	n := 1
	for _, e := range shape {
		n *= e
	}
	c := make([]int, len(shape))
	for k := 0; k < n; k++ {
		r := k
		for i := len(shape) - 1; i >= 0; i-- {
			c[i] = r % shape[i]
			r /= shape[i]
		}
		fn(c)
	}
}
