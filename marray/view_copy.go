// SPDX-License-Identifier: MIT

// Package marray - element transfer between views.
//
// Purpose:
//   - Copy element sequences between views of any layouts, in scalar-index
//     order of the destination, with an overlap-safe protocol.
//   - Provide flat fast paths when both sides are simple in the same order.

package marray

import (
	"log/slog"

	"github.com/katalvlaran/lvmarray/geometry"
)

// CopyFrom assigns the elements of src to v without changing v's geometry.
// MAIN DESCRIPTION:
//   - Equal shapes: v(c) = src(c) for every coordinate c.
//   - Different shapes with equal size: the linear sequence of src is written
//     into v, both decomposed under v's order (flatten src, refill v).
//
// Behavior highlights:
//   - When src overlaps v and the two do not address the same elements in the
//     same positions, src is snapshotted first, so the result never depends on
//     traversal order.
//
// Errors:
//   - ErrNilView, ErrEmptyView, ErrReadOnly, ErrSizeMismatch.
//
// Complexity:
//   - Time O(n) simple/same-order, O(n*d) otherwise; Space O(n) when snapshotting.
func (v *View[T]) CopyFrom(src *View[T]) error {
	if src == nil {
		return viewErrorf(ctxCopyFrom, ErrNilView)
	}
	if !v.bound || !src.bound {
		return viewErrorf(ctxCopyFrom, ErrEmptyView)
	}
	if v.readOnly {
		return viewErrorf(ctxCopyFrom, ErrReadOnly)
	}
	if v.Size() != src.Size() {
		return viewErrorf(ctxCopyFrom, ErrSizeMismatch)
	}
	if v.sameElements(src) {
		return nil
	}
	from := src
	if equalInts(v.shape, src.shape) {
		from = src.prepareSource(v)
	} else {
		// Reinterpret src's linear sequence under v's shape: snapshot in v's
		// order, which also removes any overlap.
		from = src.snapshot(v.order)
		from = &View[T]{data: from.data, shape: cloneInts(v.shape), strides: geometry.StridesFromShape(v.shape, v.order), order: v.order, bound: true}
		from.refresh()
	}
	v.copyAligned(from)

	return nil
}

// copyAligned writes src(i) into v(i) for every scalar index i in v's order.
// src must have v's shape and must not overlap v unless it is identical.
func (v *View[T]) copyAligned(src *View[T]) {
	n := v.Size()
	if v.simple && src.simple && v.order == src.order {
		copy(v.data[v.offset:v.offset+n], src.data[src.offset:src.offset+n])
		return
	}
	for i := 0; i < n; i++ {
		v.data[v.offsetOf(i, v.order)] = src.data[src.offsetOf(i, v.order)]
	}
}

// prepareSource returns w itself, or a contiguous snapshot of w in dst's order
// when writing dst could clobber elements of w before they are read.
func (w *View[T]) prepareSource(dst *View[T]) *View[T] {
	if !dst.Overlaps(w) || dst.sameElements(w) {
		return w
	}
	slog.Debug("marray: snapshotting overlapping operand",
		"dst", dst.String(), "src", w.String(), "elements", w.Size())

	return w.snapshot(dst.order)
}

// snapshot copies w into a fresh contiguous buffer laid out in order and
// returns a simple view of it with w's shape.
func (w *View[T]) snapshot(order Order) *View[T] {
	buf := make([]T, w.Size())
	w.flattenInto(buf, order)
	s := &View[T]{
		data:    buf,
		shape:   cloneInts(w.shape),
		strides: geometry.StridesFromShape(w.shape, order),
		order:   order,
		bound:   true,
	}
	s.refresh()

	return s
}

// flattenInto writes w's elements into dst in scalar-index order under order.
// len(dst) must be w.Size().
func (w *View[T]) flattenInto(dst []T, order Order) {
	n := len(dst)
	if w.simple && w.order == order {
		copy(dst, w.data[w.offset:w.offset+n])
		return
	}
	for i := 0; i < n; i++ {
		dst[i] = w.data[w.offsetOf(i, order)]
	}
}

// Flatten returns a new slice holding v's elements in scalar-index order under
// the view's own order.
func (v *View[T]) Flatten() []T { return v.FlattenOrder(v.order) }

// FlattenOrder is Flatten with the scalar indices decomposed under order.
// Adapters use it to emit elements in a file's storage order. Panics on an
// order outside the enumeration, as WithOrder does.
func (v *View[T]) FlattenOrder(order Order) []T {
	if !order.Valid() {
		panic(panicOrderInvalid)
	}
	out := make([]T, v.Size())
	if v.bound {
		v.flattenInto(out, order)
	}

	return out
}

// Fill assigns val to every element of v.
// Errors: ErrEmptyView, ErrReadOnly.
func (v *View[T]) Fill(val T) error {
	if !v.bound {
		return viewErrorf("Fill", ErrEmptyView)
	}
	if v.readOnly {
		return viewErrorf("Fill", ErrReadOnly)
	}
	n := v.Size()
	if v.simple {
		seg := v.data[v.offset : v.offset+n]
		for i := range seg {
			seg[i] = val
		}

		return nil
	}
	for i := 0; i < n; i++ {
		v.data[v.offsetOf(i, v.order)] = val
	}

	return nil
}

// Equal reports whether a and b have the same shape and a(c) == b(c) for
// every coordinate c. Orders and strides may differ.
func Equal[T comparable](a, b *View[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.bound != b.bound || !equalInts(a.shape, b.shape) {
		return false
	}
	for i, n := 0, a.Size(); i < n; i++ {
		if a.data[a.offsetOf(i, a.order)] != b.data[b.offsetOf(i, a.order)] {
			return false
		}
	}

	return true
}
