// SPDX-License-Identifier: MIT

// Package marray - View layout transforms.
//
// Purpose:
//   - Derive new windows over the same memory (View, ConstView, BoundView).
//   - Rewrite a view's own shape/stride metadata in place (Transpose, Permute,
//     Shift, Squeeze, Reshape) without touching any element.
//
// Behavior highlights:
//   - Every transform recomputes the simple flag.
//   - On error the receiver is unchanged.

package marray

import (
	"github.com/katalvlaran/lvmarray/geometry"
)

// View returns a sub-view over the hyperslab [base, base+shape) of v. The
// result aliases v: writes through either are visible in both. The read-only
// flag is inherited.
// Errors: ErrEmptyView, ErrDimensionMismatch, ErrOutOfRange.
// Complexity: O(d).
func (v *View[T]) View(base, shape []int) (*View[T], error) {
	sub, err := v.subView(base, shape)
	if err != nil {
		return nil, viewErrorf(ctxView, err)
	}

	return sub, nil
}

// ConstView is View with a read-only result.
func (v *View[T]) ConstView(base, shape []int) (*View[T], error) {
	sub, err := v.subView(base, shape)
	if err != nil {
		return nil, viewErrorf("Const"+ctxView, err)
	}
	sub.readOnly = true

	return sub, nil
}

func (v *View[T]) subView(base, shape []int) (*View[T], error) {
	if !v.bound {
		return nil, ErrEmptyView
	}
	if err := geometry.ValidateRegion(base, shape, v.shape); err != nil {
		return nil, err
	}
	sub := &View[T]{
		data:     v.data,
		offset:   v.offset + geometry.CoordinatesToOffset(base, v.strides),
		shape:    cloneInts(shape),
		strides:  cloneInts(v.strides),
		order:    v.order,
		readOnly: v.readOnly,
		bound:    true,
	}
	// A zero-size sub-view may sit on the far edge; it never dereferences.
	if geometry.Size(shape) == 0 {
		sub.offset = v.offset
	}
	sub.refresh()

	return sub, nil
}

// BoundView fixes axis at coord and returns the (d-1)-dimensional view of the
// remaining axes. Binding the only axis of a 1-D view yields a scalar view.
// Errors: ErrEmptyView, ErrOutOfRange (axis or coordinate).
// Complexity: O(d).
func (v *View[T]) BoundView(axis, coord int) (*View[T], error) {
	if !v.bound {
		return nil, viewErrorf(ctxBound, ErrEmptyView)
	}
	if err := geometry.ValidateAxis(axis, len(v.shape)); err != nil {
		return nil, viewErrorf(ctxBound, err)
	}
	if err := geometry.ValidateIndex(coord, v.shape[axis]); err != nil {
		return nil, viewErrorf(ctxBound, err)
	}
	d := len(v.shape) - 1
	b := &View[T]{
		data:     v.data,
		offset:   v.offset + coord*v.strides[axis],
		order:    v.order,
		readOnly: v.readOnly,
		bound:    true,
	}
	if d > 0 {
		b.shape = make([]int, 0, d)
		b.strides = make([]int, 0, d)
		b.shape = append(append(b.shape, v.shape[:axis]...), v.shape[axis+1:]...)
		b.strides = append(append(b.strides, v.strides[:axis]...), v.strides[axis+1:]...)
	}
	b.refresh()

	return b, nil
}

// Transpose swaps axes a and b in place; a == b is a no-op.
// Errors: ErrEmptyView, ErrOutOfRange.
// Complexity: O(d).
func (v *View[T]) Transpose(a, b int) error {
	if !v.bound {
		return viewErrorf(ctxTranspose, ErrEmptyView)
	}
	d := len(v.shape)
	if err := geometry.ValidateAxis(a, d); err != nil {
		return viewErrorf(ctxTranspose, err)
	}
	if err := geometry.ValidateAxis(b, d); err != nil {
		return viewErrorf(ctxTranspose, err)
	}
	if a == b {
		return nil
	}
	v.shape[a], v.shape[b] = v.shape[b], v.shape[a]
	v.strides[a], v.strides[b] = v.strides[b], v.strides[a]
	v.refresh()

	return nil
}

// Transposed returns an alias of v with the order of all axes reversed, so
// that Transposed().At(reverse(c)) == At(c).
func (v *View[T]) Transposed() *View[T] {
	t := v.Alias()
	for i, j := 0, len(t.shape)-1; i < j; i, j = i+1, j-1 {
		t.shape[i], t.shape[j] = t.shape[j], t.shape[i]
		t.strides[i], t.strides[j] = t.strides[j], t.strides[i]
	}
	t.refresh()

	return t
}

// Permute reorders axes in place so that new axis i is old axis perm[i].
// Errors: ErrEmptyView, ErrInvalidPermutation.
// Complexity: O(d).
func (v *View[T]) Permute(perm []int) error {
	if !v.bound {
		return viewErrorf(ctxPermute, ErrEmptyView)
	}
	if err := geometry.ValidatePermutation(perm, len(v.shape)); err != nil {
		return viewErrorf(ctxPermute, err)
	}
	v.shape = geometry.PermuteAxes(v.shape, perm)
	v.strides = geometry.PermuteAxes(v.strides, perm)
	v.refresh()

	return nil
}

// Shift rotates the axes cyclically by n positions: for n > 0 the last n axes
// move to the front, for n < 0 the first |n| axes move to the back. |n| is
// taken modulo the dimension. Scalars and empty views are unchanged.
// Complexity: O(d).
func (v *View[T]) Shift(n int) {
	if len(v.shape) == 0 {
		return
	}
	v.shape = geometry.ShiftAxes(v.shape, n)
	v.strides = geometry.ShiftAxes(v.strides, n)
	v.refresh()
}

// Squeeze removes every axis of extent 1. A view made only of unit axes
// becomes a scalar view of its single element.
// Complexity: O(d).
func (v *View[T]) Squeeze() {
	if len(v.shape) == 0 {
		return
	}
	shape := make([]int, 0, len(v.shape))
	strides := make([]int, 0, len(v.strides))
	for i, e := range v.shape {
		if e == 1 {
			continue
		}
		shape = append(shape, e)
		strides = append(strides, v.strides[i])
	}
	if len(shape) == len(v.shape) {
		return
	}
	if len(shape) == 0 {
		shape, strides = nil, nil
	}
	v.shape, v.strides = shape, strides
	v.refresh()
}

// Reshape gives v a new shape with the same element count, recomputing the
// strides under v's order. Only simple views can be reshaped: on a strided
// view the element sequence of the new shape would be ambiguous.
// Errors: ErrEmptyView, ErrInvalidShape, ErrNotSimple, ErrSizeMismatch.
// Complexity: O(d).
func (v *View[T]) Reshape(shape []int) error {
	if !v.bound {
		return viewErrorf(ctxReshape, ErrEmptyView)
	}
	if err := geometry.ValidateShape(shape); err != nil {
		return viewErrorf(ctxReshape, err)
	}
	if !v.simple {
		return viewErrorf(ctxReshape, ErrNotSimple)
	}
	if geometry.Size(shape) != v.Size() {
		return viewErrorf(ctxReshape, ErrSizeMismatch)
	}
	v.shape = cloneInts(shape)
	v.strides = geometry.StridesFromShape(shape, v.order)
	v.refresh()

	return nil
}
