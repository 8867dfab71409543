// SPDX-License-Identifier: MIT

package marray_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmarray/marray"
)

// a*a + 2*a*b + b*b evaluated in one pass matches the eager chain bit for bit.
func TestExprMatchesEager(t *testing.T) {
	av := mustView(t, []float64{0.1, 1.7, -3.3, 1e10, 7.25, 1.0 / 3}, []int{2, 3})
	bv := mustView(t, []float64{2.9, -0.4, 0.3, 1e-7, 5, 2.0 / 3}, []int{2, 3}, marray.WithOrder(marray.LastMajorOrder))

	aa, err := marray.Mul(av, av)
	require.NoError(t, err)
	ab, err := marray.Mul(av, bv)
	require.NoError(t, err)
	ab2, err := marray.MulScalar(ab.AsView(), 2)
	require.NoError(t, err)
	bb, err := marray.Mul(bv, bv)
	require.NoError(t, err)
	eager, err := marray.Add(aa.AsView(), ab2.AsView())
	require.NoError(t, err)
	require.NoError(t, marray.AddAssign(eager.AsView(), bb.AsView()))

	a, b := marray.Leaf(av), marray.Leaf(bv)
	e := a.Mul(a).Add(a.Mul(b).MulScalar(2)).Add(b.Mul(b))
	shape, err := e.Shape()
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]int{2, 3}, shape))

	fused, err := e.Eval()
	require.NoError(t, err)
	require.Equal(t, av.Order(), fused.Order())
	require.Empty(t, cmp.Diff(eager.Data(), fused.Data()))
}

func TestExprScalarsAndNeg(t *testing.T) {
	v := mustView(t, []int{1, 2, 3}, []int{3})
	out, err := marray.Scalar(10).Sub(marray.Leaf(v)).Neg().DivScalar(1).AddScalar(1).SubScalar(2).Eval()
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]int{-10, -9, -8}, out.Data()))

	// Without leaves the expression is a scalar that broadcasts into dst.
	dst := mustView(t, make([]int, 4), []int{2, 2})
	require.NoError(t, marray.Scalar(3).MulScalar(2).EvalInto(dst))
	require.Empty(t, cmp.Diff([]int{6, 6, 6, 6}, dst.Flatten()))

	s, err := marray.Scalar(1.5).Eval()
	require.NoError(t, err)
	require.Equal(t, 0, s.Dimension())
}

func TestExprEvalIntoOverlapping(t *testing.T) {
	a := mustArray(t, seq[int](9), []int{3, 3})
	v := a.AsView()
	// a = a + transpose(a) in place.
	require.NoError(t, marray.Leaf(v).Add(marray.Leaf(v.Transposed())).EvalInto(v))
	require.Empty(t, cmp.Diff([]int{0, 4, 8, 4, 8, 12, 8, 12, 16}, a.Data()))

	// Shifted overlap matches the same chain evaluated out of place.
	b := mustArray(t, seq[int](9), []int{3, 3})
	dst, err := b.View([]int{0, 0}, []int{2, 2})
	require.NoError(t, err)
	src, err := b.View([]int{1, 1}, []int{2, 2})
	require.NoError(t, err)
	want, err := marray.Leaf(src).MulScalar(3).Add(marray.Leaf(dst)).Eval()
	require.NoError(t, err)
	require.NoError(t, marray.Leaf(src).MulScalar(3).Add(marray.Leaf(dst)).EvalInto(dst))
	require.Empty(t, cmp.Diff(want.Data(), dst.Flatten()))
}

func TestExprErrors(t *testing.T) {
	v := mustView(t, []int{1, 2, 3, 4}, []int{4})
	w := mustView(t, []int{1, 0, 1, 1}, []int{4})

	dst := mustView(t, []int{9, 9, 9, 9}, []int{4})
	require.ErrorIs(t, marray.Leaf(v).Div(marray.Leaf(w)).EvalInto(dst), marray.ErrDivideByZero)
	require.Empty(t, cmp.Diff([]int{9, 9, 9, 9}, dst.Flatten()))

	_, err := marray.Leaf(v).Add(marray.Leaf(mustView(t, []int{1, 2}, []int{2}))).Eval()
	require.ErrorIs(t, err, marray.ErrDimensionMismatch)
	require.ErrorIs(t, marray.Leaf(v).EvalInto(mustView(t, make([]int, 4), []int{2, 2})), marray.ErrDimensionMismatch)
	require.ErrorIs(t, marray.Leaf(v).EvalInto(dst.Const()), marray.ErrReadOnly)
	_, err = marray.Leaf(v).Add(nil).Eval()
	require.ErrorIs(t, err, marray.ErrNilView)
	_, err = marray.Leaf[int](nil).Eval()
	require.ErrorIs(t, err, marray.ErrNilView)
}
