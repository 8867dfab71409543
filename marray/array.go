// SPDX-License-Identifier: MIT

// Package marray - Array: owning n-dimensional buffer.
//
// Purpose:
//   - Own a contiguous buffer and expose it through a View that is always
//     simple in the array's coordinate order.
//   - Manage allocation: construction, resize with fill, reshape, full
//     replace from another view, deep copy.
//
// AI-Hints:
//   - Use AsView() to take part in elementwise operations; the returned
//     descriptor is independent, so transforming it never breaks the array.
//   - Use View(base, shape) for no-copy windows; writes show in the array.
//
// Complexity quicksheet:
//   - NewArray/NewArrayFilled/Clone/Assign: O(n); Resize: O(n_new + n_common*d);
//     Reshape: O(d); At/Set: O(d); AtIndex/SetIndex: O(1).

package marray

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/katalvlaran/lvmarray/geometry"
)

const (
	ctxNewArray  = "NewArray"
	ctxFromSlice = "FromSlice"
	ctxNewFrom   = "NewArrayFrom"
	ctxResize    = "Resize"
	ctxAssign    = "Assign"
)

func arrayErrorf(method string, err error) error {
	return fmt.Errorf("Array.%s: %w", method, err)
}

// Array owns a contiguous buffer addressed through a simple View.
//   - view.data is exactly the buffer (len == Size()), view.offset is 0.
//   - maxElements is the allocation cap inherited by Resize and Assign.
type Array[T any] struct {
	view        View[T]
	maxElements int
}

var _ fmt.Stringer = (*Array[float64])(nil)

// NewArray allocates a zero-valued array of the given shape. An empty shape
// makes a scalar array holding one element.
// Errors: ErrInvalidShape, ErrTooLarge.
// Complexity: O(n).
func NewArray[T any](shape []int, opts ...Option) (*Array[T], error) {
	o := gatherOptions(opts...)
	a, err := allocArray[T](shape, o.order, o.maxElements)
	if err != nil {
		return nil, arrayErrorf(ctxNewArray, err)
	}

	return a, nil
}

// NewArrayFilled allocates an array with every element set to fill. With
// WithSkipInit the fill pass is skipped and the elements keep Go's zero value.
func NewArrayFilled[T any](shape []int, fill T, opts ...Option) (*Array[T], error) {
	o := gatherOptions(opts...)
	a, err := allocArray[T](shape, o.order, o.maxElements)
	if err != nil {
		return nil, arrayErrorf(ctxNewArray, err)
	}
	if !o.skipInit {
		a.fill(fill)
	}

	return a, nil
}

// NewScalar returns a 0-dimensional array holding val.
func NewScalar[T any](val T) *Array[T] {
	a := &Array[T]{}
	a.install([]T{val}, nil, DefaultOrder)

	return a
}

// NewArrayFrom deep-copies src into a new array of the same shape. The array
// uses the order given by WithOrder, or src's order otherwise; either way
// a(c) == src(c) for every coordinate c.
// Errors: ErrNilView, ErrEmptyView, ErrTooLarge.
func NewArrayFrom[T any](src *View[T], opts ...Option) (*Array[T], error) {
	if src == nil {
		return nil, arrayErrorf(ctxNewFrom, ErrNilView)
	}
	if !src.bound {
		return nil, arrayErrorf(ctxNewFrom, ErrEmptyView)
	}
	o := gatherOptions(opts...)
	order := o.orderOr(src.order)
	a, err := allocArray[T](src.shape, order, o.maxElements)
	if err != nil {
		return nil, arrayErrorf(ctxNewFrom, err)
	}
	src.flattenInto(a.view.data, order)

	return a, nil
}

// FromSlice copies values into a new array of the given shape. values is taken
// in scalar-index order of the array's order (its memory order).
// Errors: ErrInvalidShape, ErrSizeMismatch, ErrTooLarge.
func FromSlice[T any](values []T, shape []int, opts ...Option) (*Array[T], error) {
	o := gatherOptions(opts...)
	a, err := allocArray[T](shape, o.order, o.maxElements)
	if err != nil {
		return nil, arrayErrorf(ctxFromSlice, err)
	}
	if len(values) != len(a.view.data) {
		return nil, arrayErrorf(ctxFromSlice, fmt.Errorf("%d values for %d elements: %w", len(values), len(a.view.data), ErrSizeMismatch))
	}
	copy(a.view.data, values)

	return a, nil
}

func allocArray[T any](shape []int, order Order, limit int) (*Array[T], error) {
	n, err := geometry.CheckedSize(shape, limit)
	if err != nil {
		return nil, err
	}
	a := &Array[T]{maxElements: limit}
	a.install(make([]T, n), cloneInts(shape), order)

	return a, nil
}

// install makes buf the array's buffer with contiguous strides for shape.
// len(buf) must equal Size(shape).
func (a *Array[T]) install(buf []T, shape []int, order Order) {
	if len(shape) == 0 {
		shape = nil
	}
	a.view = View[T]{
		data:    buf,
		shape:   shape,
		strides: geometry.StridesFromShape(shape, order),
		order:   order,
		bound:   true,
	}
	a.view.refresh()
}

func (a *Array[T]) fill(val T) {
	for i := range a.view.data {
		a.view.data[i] = val
	}
}

// ---------- Introspection ----------

// Dimension returns the number of axes.
func (a *Array[T]) Dimension() int { return len(a.view.shape) }

// Shape returns a copy of the extents.
func (a *Array[T]) Shape() []int { return cloneInts(a.view.shape) }

// ShapeAt returns the extent of axis; it panics on an invalid axis.
func (a *Array[T]) ShapeAt(axis int) int { return a.view.shape[axis] }

// AxisExtent is ShapeAt with the axis checked.
func (a *Array[T]) AxisExtent(axis int) (int, error) { return a.view.AxisExtent(axis) }

// Strides returns a copy of the contiguous strides.
func (a *Array[T]) Strides() []int { return cloneInts(a.view.strides) }

// Size returns the element count.
func (a *Array[T]) Size() int { return len(a.view.data) }

// Order returns the array's coordinate order.
func (a *Array[T]) Order() Order { return a.view.order }

// Data returns the owned buffer in scalar-index order of Order(). The slice
// aliases the array until the next Resize or Assign that reallocates.
func (a *Array[T]) Data() []T { return a.view.data }

// String returns a one-line description, e.g. "Array[float64](2x3 last-major)".
func (a *Array[T]) String() string {
	s := a.view.String()

	return "Array" + strings.TrimSuffix(strings.TrimPrefix(s, "View"), " simple)") + ")"
}

// ---------- Views ----------

// AsView returns a writable view of the whole array. The descriptor is
// independent of the array: transforming it does not reshape the array.
func (a *Array[T]) AsView() *View[T] { return a.view.Alias() }

// AsConstView returns a read-only view of the whole array.
func (a *Array[T]) AsConstView() *View[T] { return a.view.Const() }

// View returns a writable sub-view over [base, base+shape).
func (a *Array[T]) View(base, shape []int) (*View[T], error) { return a.view.View(base, shape) }

// ConstView returns a read-only sub-view over [base, base+shape).
func (a *Array[T]) ConstView(base, shape []int) (*View[T], error) {
	return a.view.ConstView(base, shape)
}

// BoundView fixes axis at coord; see View.BoundView.
func (a *Array[T]) BoundView(axis, coord int) (*View[T], error) {
	return a.view.BoundView(axis, coord)
}

// ---------- Element access ----------

// At returns the element at coords.
func (a *Array[T]) At(coords ...int) (T, error) { return a.view.At(coords...) }

// Set stores val at coords.
func (a *Array[T]) Set(val T, coords ...int) error { return a.view.Set(val, coords...) }

// AtIndex returns the element at scalar index i.
func (a *Array[T]) AtIndex(i int) (T, error) { return a.view.AtIndex(i) }

// SetIndex stores val at scalar index i.
func (a *Array[T]) SetIndex(i int, val T) error { return a.view.SetIndex(i, val) }

// Fill sets every element to val.
func (a *Array[T]) Fill(val T) { a.fill(val) }

// ---------- Lifecycle ----------

// Clone returns a deep copy with the same shape, order and limit.
func (a *Array[T]) Clone() *Array[T] {
	buf := make([]T, len(a.view.data))
	copy(buf, a.view.data)
	c := &Array[T]{maxElements: a.maxElements}
	c.install(buf, cloneInts(a.view.shape), a.view.order)

	return c
}

// Swap exchanges the contents of a and other in O(1).
func (a *Array[T]) Swap(other *Array[T]) {
	*a, *other = *other, *a
}

// Reshape changes the shape without touching the buffer. The element at every
// scalar index is unchanged.
// Errors: ErrInvalidShape, ErrSizeMismatch.
// Complexity: O(d).
func (a *Array[T]) Reshape(shape []int) error {
	if err := a.view.Reshape(shape); err != nil {
		return arrayErrorf("Reshape", err)
	}
	if len(a.view.shape) == 0 {
		a.view.shape, a.view.strides = nil, nil
	}

	return nil
}

// Resize reallocates the array with a new shape, keeping the order.
// MAIN DESCRIPTION:
//   - Every coordinate valid in both the old and the new shape keeps its value.
//   - All other positions take fill.
//
// Behavior highlights:
//   - When the dimensions differ the shorter coordinate tuple is padded with
//     trailing zero coordinates: a 1-D array of 12 resized to (5,5,2) keeps its
//     first five values at (i,0,0).
//   - On error the array is unchanged.
//
// Errors:
//   - ErrInvalidShape, ErrTooLarge.
//
// Complexity:
//   - Time O(n_new + n_common*d), Space O(n_new).
func (a *Array[T]) Resize(shape []int, fill T) error {
	n, err := geometry.CheckedSize(shape, a.maxElements)
	if err != nil {
		return arrayErrorf(ctxResize, err)
	}
	order := a.view.order
	if !a.view.bound {
		order = DefaultOrder
	}
	buf := make([]T, n)
	for i := range buf {
		buf[i] = fill
	}
	next := Array[T]{maxElements: a.maxElements}
	next.install(buf, cloneInts(shape), order)
	if a.view.bound {
		copyCommon(&next.view, &a.view)
	}
	slog.Debug("marray: array resized", "from", shapeString(a.view.shape), "to", shapeString(shape), "elements", n)
	*a = next

	return nil
}

// copyCommon copies src into dst on the coordinates both shapes share, with
// missing trailing axes treated as extent 1.
func copyCommon[T any](dst, src *View[T]) {
	d := max(len(dst.shape), len(src.shape))
	common := make([]int, d)
	for i := range common {
		common[i] = min(extentOr1(dst.shape, i), extentOr1(src.shape, i))
	}
	n := geometry.Size(common)
	if n == 0 {
		return
	}
	coords := make([]int, d)
	for k := 0; k < n; k++ {
		geometry.IndexToCoordinates(k, common, FirstMajorOrder, coords)
		dst.data[dst.offset+partialOffset(coords, dst.strides)] = src.data[src.offset+partialOffset(coords, src.strides)]
	}
}

func extentOr1(shape []int, axis int) int {
	if axis < len(shape) {
		return shape[axis]
	}

	return 1
}

// partialOffset sums coords[i]*strides[i] over the axes strides covers; the
// remaining coordinates are zero by construction.
func partialOffset(coords, strides []int) int {
	off := 0
	for i, s := range strides {
		off += coords[i] * s
	}

	return off
}

// Assign replaces the array's contents with src.
// MAIN DESCRIPTION:
//   - The array adopts src's shape and keeps its own order.
//   - Values are copied as src's linear sequence under the array's order, so
//     a(c) == src(c) for every coordinate c afterwards.
//
// Behavior highlights:
//   - The buffer is reused when the element count matches.
//   - src may be a view of this very array (or overlap it): it is read into a
//     temporary first.
//
// Errors:
//   - ErrNilView, ErrEmptyView, ErrTooLarge. On error the array is unchanged.
func (a *Array[T]) Assign(src *View[T]) error {
	if src == nil {
		return arrayErrorf(ctxAssign, ErrNilView)
	}
	if !src.bound {
		return arrayErrorf(ctxAssign, ErrEmptyView)
	}
	n, err := geometry.CheckedSize(src.shape, a.maxElements)
	if err != nil {
		return arrayErrorf(ctxAssign, err)
	}
	order := a.view.order
	if !a.view.bound {
		order = DefaultOrder
	}
	buf := a.view.data
	if len(buf) != n || a.view.Overlaps(src) {
		buf = make([]T, n)
	}
	src.flattenInto(buf, order)
	a.install(buf, cloneInts(src.shape), order)

	return nil
}
