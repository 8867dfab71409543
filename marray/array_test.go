// SPDX-License-Identifier: MIT
// Package marray_test contains unit tests for the owning Array.

package marray_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmarray/marray"
)

func TestNewArray(t *testing.T) {
	a, err := marray.NewArray[float32]([]int{2, 3})
	require.NoError(t, err)
	require.Equal(t, 2, a.Dimension())
	require.Equal(t, 6, a.Size())
	require.Equal(t, marray.FirstMajorOrder, a.Order())
	require.Empty(t, cmp.Diff([]int{3, 1}, a.Strides()))
	require.Empty(t, cmp.Diff(make([]float32, 6), a.Data()))
	require.True(t, a.AsView().IsSimple())

	_, err = marray.NewArray[int]([]int{2, -3})
	require.ErrorIs(t, err, marray.ErrInvalidShape)

	_, err = marray.NewArray[int]([]int{10, 10}, marray.WithMaxElements(50))
	require.ErrorIs(t, err, marray.ErrTooLarge)
}

func TestNewArrayFilled(t *testing.T) {
	a, err := marray.NewArrayFilled([]int{2, 2}, int16(5), marray.WithOrder(marray.LastMajorOrder))
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]int16{5, 5, 5, 5}, a.Data()))
	require.Empty(t, cmp.Diff([]int{1, 2}, a.Strides()))

	skipped, err := marray.NewArrayFilled([]int{3}, 5, marray.WithSkipInit())
	require.NoError(t, err)
	require.Equal(t, 3, skipped.Size())
}

func TestNewScalar(t *testing.T) {
	s := marray.NewScalar(3.5)
	require.Equal(t, 0, s.Dimension())
	require.Equal(t, 1, s.Size())
	x, err := s.At()
	require.NoError(t, err)
	require.Equal(t, 3.5, x)
	require.True(t, s.AsView().IsScalar())
}

func TestFromSlice(t *testing.T) {
	a := mustArray(t, seq[int](6), []int{2, 3}, marray.WithOrder(marray.LastMajorOrder))
	x, err := a.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 5, x)

	_, err = marray.FromSlice(seq[int](5), []int{2, 3})
	require.ErrorIs(t, err, marray.ErrSizeMismatch)
}

func TestNewArrayFrom(t *testing.T) {
	src := mustView(t, seq[int](12), []int{3, 4})
	sub, err := src.View([]int{1, 1}, []int{2, 3})
	require.NoError(t, err)

	a, err := marray.NewArrayFrom(sub)
	require.NoError(t, err)
	require.Equal(t, marray.FirstMajorOrder, a.Order())
	require.Empty(t, cmp.Diff([]int{5, 6, 7, 9, 10, 11}, a.Data()))

	lm, err := marray.NewArrayFrom(sub, marray.WithOrder(marray.LastMajorOrder))
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]int{5, 9, 6, 10, 7, 11}, lm.Data()))
	require.True(t, marray.Equal(sub, lm.AsView()))

	// Deep copy: the source is not shared.
	a.Fill(0)
	require.Equal(t, 5, mustAt(t, sub, 0, 0))

	_, err = marray.NewArrayFrom[int](nil)
	require.ErrorIs(t, err, marray.ErrNilView)
	_, err = marray.NewArrayFrom(&marray.View[int]{})
	require.ErrorIs(t, err, marray.ErrEmptyView)
}

// A 1-D array of 12 X values resized to (5,5,2) with fill Y.
func TestResizeAcrossDimensions(t *testing.T) {
	const x, y = 7, -1
	a, err := marray.NewArrayFilled([]int{12}, x)
	require.NoError(t, err)
	require.NoError(t, a.Resize([]int{5, 5, 2}, y))
	require.Empty(t, cmp.Diff([]int{5, 5, 2}, a.Shape()))
	require.Equal(t, 50, a.Size())

	kept := 0
	forEachCoord(a.Shape(), func(c []int) {
		got, err := a.At(c...)
		require.NoError(t, err)
		if c[1] == 0 && c[2] == 0 {
			require.Equal(t, x, got, "coords %v", c)
			kept++
			return
		}
		require.Equal(t, y, got, "coords %v", c)
	})
	require.Equal(t, 5, kept)
}

func TestResizeKeepsCommonRegion(t *testing.T) {
	for _, order := range []marray.Order{marray.FirstMajorOrder, marray.LastMajorOrder} {
		t.Run(order.String(), func(t *testing.T) {
			a, err := marray.NewArray[int]([]int{2, 3}, marray.WithOrder(order))
			require.NoError(t, err)
			forEachCoord(a.Shape(), func(c []int) {
				require.NoError(t, a.Set(10*c[0]+c[1], c...))
			})
			require.NoError(t, a.Resize([]int{3, 2}, 99))
			require.Equal(t, order, a.Order())
			require.True(t, a.AsView().IsSimple())
			forEachCoord(a.Shape(), func(c []int) {
				want := 99
				if c[0] < 2 {
					want = 10*c[0] + c[1]
				}
				got, err := a.At(c...)
				require.NoError(t, err)
				require.Equal(t, want, got, "coords %v", c)
			})
		})
	}
}

func TestResizeErrorsKeepArray(t *testing.T) {
	a, err := marray.NewArrayFilled([]int{2, 2}, 1, marray.WithMaxElements(10))
	require.NoError(t, err)
	require.ErrorIs(t, a.Resize([]int{4, 4}, 0), marray.ErrTooLarge)
	require.ErrorIs(t, a.Resize([]int{-1}, 0), marray.ErrInvalidShape)
	require.Empty(t, cmp.Diff([]int{2, 2}, a.Shape()))
	require.Empty(t, cmp.Diff([]int{1, 1, 1, 1}, a.Data()))

	var zero marray.Array[int]
	require.NoError(t, zero.Resize([]int{2}, 3))
	require.Empty(t, cmp.Diff([]int{3, 3}, zero.Data()))
}

func TestArrayReshape(t *testing.T) {
	a := mustArray(t, seq[int](12), []int{2, 6})
	require.NoError(t, a.Reshape([]int{3, 4}))
	x, err := a.At(2, 1)
	require.NoError(t, err)
	require.Equal(t, 9, x)
	require.ErrorIs(t, a.Reshape([]int{5}), marray.ErrSizeMismatch)

	one := mustArray(t, []int{4}, []int{1, 1})
	require.NoError(t, one.Reshape(nil))
	require.Equal(t, 0, one.Dimension())
}

func TestAssign(t *testing.T) {
	a := mustArray(t, seq[int](4), []int{2, 2})
	src := mustView(t, seq[int](6), []int{3, 2}, marray.WithOrder(marray.LastMajorOrder))
	require.NoError(t, a.Assign(src))
	require.Empty(t, cmp.Diff([]int{3, 2}, a.Shape()))
	require.Equal(t, marray.FirstMajorOrder, a.Order())
	require.True(t, marray.Equal(a.AsView(), src))

	// Same size: buffer reused, values replaced.
	buf := a.Data()
	require.NoError(t, a.Assign(mustView(t, []int{9, 8, 7, 6, 5, 4}, []int{6})))
	require.Same(t, &buf[0], &a.Data()[0])
	require.Empty(t, cmp.Diff([]int{9, 8, 7, 6, 5, 4}, a.Data()))

	require.ErrorIs(t, a.Assign(nil), marray.ErrNilView)
	limited, err := marray.NewArray[int]([]int{2}, marray.WithMaxElements(4))
	require.NoError(t, err)
	require.ErrorIs(t, limited.Assign(src), marray.ErrTooLarge)
	require.Equal(t, 2, limited.Size())
}

func TestAssignFromSelf(t *testing.T) {
	a := mustArray(t, seq[int](6), []int{2, 3})
	require.NoError(t, a.Assign(a.AsView().Transposed()))
	require.Empty(t, cmp.Diff([]int{3, 2}, a.Shape()))
	require.Empty(t, cmp.Diff([]int{0, 3, 1, 4, 2, 5}, a.Data()))

	sub, err := a.View([]int{1, 0}, []int{2, 2})
	require.NoError(t, err)
	require.NoError(t, a.Assign(sub))
	require.Empty(t, cmp.Diff([]int{1, 4, 2, 5}, a.Data()))
}

func TestCloneAndSwap(t *testing.T) {
	a := mustArray(t, seq[int](4), []int{2, 2})
	c := a.Clone()
	require.NoError(t, c.Set(100, 0, 0))
	x, err := a.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 0, x)

	b := mustArray(t, seq[int](3), []int{3}, marray.WithOrder(marray.LastMajorOrder))
	a.Swap(b)
	require.Empty(t, cmp.Diff([]int{3}, a.Shape()))
	require.Equal(t, marray.LastMajorOrder, a.Order())
	require.Empty(t, cmp.Diff([]int{2, 2}, b.Shape()))
}

func TestArrayViewsAlias(t *testing.T) {
	a := mustArray(t, seq[int](12), []int{3, 4})
	row, err := a.BoundView(0, 2)
	require.NoError(t, err)
	require.NoError(t, row.Fill(0))
	require.Empty(t, cmp.Diff([]int{0, 1, 2, 3, 4, 5, 6, 7, 0, 0, 0, 0}, a.Data()))

	// Transforming the descriptor returned by AsView leaves the array alone.
	v := a.AsView()
	require.NoError(t, v.Transpose(0, 1))
	require.Empty(t, cmp.Diff([]int{3, 4}, a.Shape()))
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { marray.WithOrder(marray.Order(9)) })
	require.Panics(t, func() { marray.WithMaxElements(-1) })
	require.NotPanics(t, func() { marray.WithMaxElements(0) })
}

func TestArrayString(t *testing.T) {
	a, err := marray.NewArray[float64]([]int{2, 3}, marray.WithOrder(marray.LastMajorOrder))
	require.NoError(t, err)
	require.Equal(t, "Array[float64](2x3 last-major)", a.String())
	require.Equal(t, "Array[int](scalar first-major)", marray.NewScalar(1).String())
}
