// SPDX-License-Identifier: MIT

// Package marray - reductions and value-range helpers over views.
//
// Policy:
//   - Every function reads elements by scalar index in the (first) view's
//     order, so strided and transposed views behave like their copies.
//   - Bounds and tolerances must be finite (ErrNaNInf).
//   - A view without elements has no mean or extrema (ErrEmptyView).
//
// Complexity quicksheet:
//   - Sum/Mean/MinMax/Clip/AllClose: O(n) time, O(1) extra space.

package marray

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sum returns the sum of v's elements accumulated in T (integer sums wrap).
// Errors: ErrNilView, ErrEmptyView.
func Sum[T Number](v *View[T]) (T, error) {
	if err := ValidateNotNil(v); err != nil {
		return 0, opErrorf("Sum", err)
	}
	n := v.Size()
	if v.simple {
		if d, ok := any(v.data[v.offset : v.offset+n]).([]float64); ok {
			return any(floats.Sum(d)).(T), nil
		}
	}
	var s T
	for i := 0; i < n; i++ {
		s += v.data[v.offsetOf(i, v.order)]
	}

	return s, nil
}

// Mean returns the arithmetic mean of v's elements as float64.
// Errors: ErrNilView, ErrEmptyView (also for zero-size views).
func Mean[T Number](v *View[T]) (float64, error) {
	if err := ValidateNotNil(v); err != nil {
		return 0, opErrorf("Mean", err)
	}
	n := v.Size()
	if n == 0 {
		return 0, opErrorf("Mean", ErrEmptyView)
	}
	s := 0.0
	for i := 0; i < n; i++ {
		s += float64(v.data[v.offsetOf(i, v.order)])
	}

	return s / float64(n), nil
}

// MinMax returns the smallest and the largest element of v. NaN elements are
// skipped; a view holding only NaN yields NaN for both.
// Errors: ErrNilView, ErrEmptyView (also for zero-size views).
func MinMax[T Number](v *View[T]) (lo, hi T, err error) {
	if err = ValidateNotNil(v); err != nil {
		return 0, 0, opErrorf("MinMax", err)
	}
	n := v.Size()
	if n == 0 {
		return 0, 0, opErrorf("MinMax", ErrEmptyView)
	}
	first := true
	for i := 0; i < n; i++ {
		x := v.data[v.offsetOf(i, v.order)]
		if math.IsNaN(float64(x)) {
			continue
		}
		if first {
			lo, hi, first = x, x, false
			continue
		}
		lo, hi = min(lo, x), max(hi, x)
	}
	if first {
		nan := v.data[v.offsetOf(0, v.order)]
		return nan, nan, nil
	}

	return lo, hi, nil
}

// Clip clamps every element of v into [lo, hi] in place. Reversed bounds are
// swapped. NaN elements stay NaN.
// Errors: ErrNilView, ErrEmptyView, ErrReadOnly, ErrNaNInf.
func Clip[T Number](v *View[T], lo, hi T) error {
	if err := ValidateNotNil(v); err != nil {
		return opErrorf("Clip", err)
	}
	if err := ValidateWritable(v); err != nil {
		return opErrorf("Clip", err)
	}
	if !finite(lo) || !finite(hi) {
		return opErrorf("Clip", ErrNaNInf)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	for i, n := 0, v.Size(); i < n; i++ {
		o := v.offsetOf(i, v.order)
		if x := v.data[o]; x < lo {
			v.data[o] = lo
		} else if x > hi {
			v.data[o] = hi
		}
	}

	return nil
}

// AllClose reports whether |a(c)-b(c)| <= atol + rtol*|b(c)| for every
// coordinate c. NaN never matches; equal infinities match. Negative
// tolerances are taken by absolute value.
// Errors: ErrNilView, ErrEmptyView, ErrDimensionMismatch, ErrNaNInf.
func AllClose[T Number](a, b *View[T], rtol, atol float64) (bool, error) {
	if !finite(rtol) || !finite(atol) {
		return false, opErrorf("AllClose", ErrNaNInf)
	}
	if err := validatePair(a, b); err != nil {
		return false, opErrorf("AllClose", err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for i, n := 0, a.Size(); i < n; i++ {
		x := float64(a.data[a.offsetOf(i, a.order)])
		y := float64(b.data[b.offsetOf(i, a.order)])
		if x == y {
			continue
		}
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return false, nil
		}
		if math.Abs(x-y) > atol+rtol*math.Abs(y) {
			return false, nil
		}
	}

	return true, nil
}

func finite[T Number](x T) bool {
	f := float64(x)

	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
