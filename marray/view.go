// SPDX-License-Identifier: MIT

// Package marray - View: non-owning n-dimensional window over a slice.
//
// Purpose:
//   - Address caller-owned memory as an n-dimensional array through
//     (shape, strides, order, offset).
//   - Guarantee safety at the public surface: every element access is
//     bounds-checked and returns an error instead of panicking. The axis
//     accessors ShapeAt/StrideAt index like a slice; AxisExtent and
//     AxisStride are their checked forms.
//   - Keep a runtime "simple" flag so contiguous views take flat fast paths.
//
// Complexity quicksheet:
//   - At/Set: O(d); AtIndex/SetIndex: O(1) when simple, O(d) otherwise.
//   - Construction and every layout transform: O(d), no element is touched.

package marray

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"github.com/katalvlaran/lvmarray/geometry"
)

// ---------- error context tags ----------

const (
	ctxNewView       = "NewView"
	ctxStridedView   = "NewStridedView"
	ctxScalarView    = "NewScalarView"
	ctxAt            = "At"
	ctxSet           = "Set"
	ctxAtIndex       = "AtIndex"
	ctxSetIndex      = "SetIndex"
	ctxRebind        = "Rebind"
	ctxCollapse      = "Collapse"
	ctxView          = "View"
	ctxBound         = "BoundView"
	ctxTranspose     = "Transpose"
	ctxPermute       = "Permute"
	ctxReshape       = "Reshape"
	ctxCopyFrom      = "CopyFrom"
	ctxCoordsToIndex = "CoordinatesToIndex"
	ctxAxis          = "Axis"
	ctxBeginOrder    = "BeginOrder"
)

// viewErrorf wraps a sentinel with the View method that detected it.
func viewErrorf(method string, err error) error {
	return fmt.Errorf("View.%s: %w", method, err)
}

// View is a non-owning descriptor of an n-dimensional region of a slice.
//   - data is the caller's slice; the view addresses data[offset + sum(c[i]*strides[i])].
//   - The zero View is empty: it addresses nothing and is only usable as a
//     Rebind target.
//   - A view of dimension 0 is a scalar holding data[offset].
type View[T any] struct {
	data     []T
	offset   int
	shape    []int
	strides  []int
	order    Order
	simple   bool // strides are the contiguous strides of shape under order
	readOnly bool
	bound    bool // false only for the empty view
}

// NewView builds a view over data with strides derived from shape under the
// order chosen by WithOrder (default FirstMajorOrder).
// MAIN DESCRIPTION:
//   - Contiguous view of the first Size(shape) elements of data.
//
// Inputs:
//   - data: backing slice; must hold at least Size(shape) elements.
//   - shape: non-negative extents; nil or empty makes a scalar view of data[0].
//
// Errors:
//   - ErrInvalidShape, ErrOutOfRange (data too short).
//
// Complexity:
//   - Time O(d), Space O(d).
func NewView[T any](data []T, shape []int, opts ...Option) (*View[T], error) {
	o := gatherOptions(opts...)
	if err := geometry.ValidateShape(shape); err != nil {
		return nil, viewErrorf(ctxNewView, err)
	}
	v := &View[T]{}
	if err := v.bind(data, 0, cloneInts(shape), geometry.StridesFromShape(shape, o.order), o.order); err != nil {
		return nil, viewErrorf(ctxNewView, err)
	}

	return v, nil
}

// NewStridedView builds a view with explicit strides. order only decides how
// scalar indices are decomposed; the strides decide where elements live.
// Errors: ErrInvalidShape, ErrInvalidStrides, ErrDimensionMismatch,
// ErrInvalidOrder, ErrOutOfRange (largest addressed offset outside data).
// Complexity: O(d).
func NewStridedView[T any](data []T, shape, strides []int, order Order) (*View[T], error) {
	if err := validateLayout(shape, strides, order); err != nil {
		return nil, viewErrorf(ctxStridedView, err)
	}
	v := &View[T]{}
	if err := v.bind(data, 0, cloneInts(shape), cloneInts(strides), order); err != nil {
		return nil, viewErrorf(ctxStridedView, err)
	}

	return v, nil
}

// NewScalarView wraps data[0] as a 0-dimensional view.
// Errors: ErrOutOfRange when data is empty.
func NewScalarView[T any](data []T) (*View[T], error) {
	v := &View[T]{}
	if err := v.bind(data, 0, nil, nil, DefaultOrder); err != nil {
		return nil, viewErrorf(ctxScalarView, err)
	}

	return v, nil
}

func validateLayout(shape, strides []int, order Order) error {
	if err := geometry.ValidateShape(shape); err != nil {
		return err
	}
	if err := geometry.ValidateStrides(strides, shape); err != nil {
		return err
	}

	return geometry.ValidateOrder(order)
}

// bind installs a validated layout, checking that the element count and every
// addressed offset fit in an int and that every offset lies inside data. shape and strides are owned by the view afterwards.
func (v *View[T]) bind(data []T, offset int, shape, strides []int, order Order) error {
	hi, ok, err := geometry.CheckedOffsetRange(shape, strides)
	if err != nil {
		return err
	}
	if ok && (offset < 0 || hi >= len(data)-offset) {
		return fmt.Errorf("layout reaches offset %d+%d of %d elements: %w", offset, hi, len(data), ErrOutOfRange)
	}
	v.data = data
	v.offset = offset
	v.shape = shape
	v.strides = strides
	v.order = order
	v.bound = true
	v.refresh()

	return nil
}

// refresh recomputes the simple flag after any metadata change.
func (v *View[T]) refresh() {
	v.simple = geometry.IsSimple(v.shape, v.strides, v.order)
}

// ---------- Introspection ----------

// Dimension returns the number of axes (0 for scalars and the empty view).
func (v *View[T]) Dimension() int { return len(v.shape) }

// Shape returns a copy of the extents.
func (v *View[T]) Shape() []int { return cloneInts(v.shape) }

// ShapeAt returns the extent of axis; it panics on an invalid axis like a
// slice index would.
func (v *View[T]) ShapeAt(axis int) int { return v.shape[axis] }

// Strides returns a copy of the strides, in elements.
func (v *View[T]) Strides() []int { return cloneInts(v.strides) }

// StrideAt returns the stride of axis; it panics on an invalid axis.
func (v *View[T]) StrideAt(axis int) int { return v.strides[axis] }

// AxisExtent is ShapeAt with the axis checked.
// Errors: ErrOutOfRange.
func (v *View[T]) AxisExtent(axis int) (int, error) {
	if err := geometry.ValidateAxis(axis, len(v.shape)); err != nil {
		return 0, viewErrorf(ctxAxis, err)
	}

	return v.shape[axis], nil
}

// AxisStride is StrideAt with the axis checked.
// Errors: ErrOutOfRange.
func (v *View[T]) AxisStride(axis int) (int, error) {
	if err := geometry.ValidateAxis(axis, len(v.shape)); err != nil {
		return 0, viewErrorf(ctxAxis, err)
	}

	return v.strides[axis], nil
}

// Size returns the number of addressed elements: 0 for the empty view, 1 for
// scalars, the product of extents otherwise.
func (v *View[T]) Size() int {
	if !v.bound {
		return 0
	}

	return geometry.Size(v.shape)
}

// Order returns the view's coordinate order.
func (v *View[T]) Order() Order { return v.order }

// IsSimple reports whether the view is contiguous in its own order.
func (v *View[T]) IsSimple() bool { return v.bound && v.simple }

// IsReadOnly reports whether writes through this view are rejected.
func (v *View[T]) IsReadOnly() bool { return v.readOnly }

// IsEmpty reports whether the view was never bound to memory.
func (v *View[T]) IsEmpty() bool { return !v.bound }

// IsScalar reports whether the view is a bound 0-dimensional view.
func (v *View[T]) IsScalar() bool { return v.bound && len(v.shape) == 0 }

// Offset returns the position of the first addressed element in the backing slice.
func (v *View[T]) Offset() int { return v.offset }

// Data returns the backing slice from the first addressed element up to the
// last one. For simple views this is exactly the Size() elements in scalar
// index order; for strided views it includes the gaps. Writes through the
// returned slice bypass the read-only flag, so adapters only use it for
// reading or on views they own.
func (v *View[T]) Data() []T {
	if !v.bound {
		return nil
	}
	_, hi, ok := geometry.OffsetRange(v.shape, v.strides)
	if !ok {
		return v.data[:0:0]
	}

	return v.data[v.offset : v.offset+hi+1]
}

// String returns a one-line description, e.g. "View[int](3x4 first-major simple)".
func (v *View[T]) String() string {
	var b strings.Builder
	b.WriteString("View[")
	b.WriteString(reflect.TypeFor[T]().String())
	b.WriteString("](")
	if !v.bound {
		b.WriteString("empty)")
		return b.String()
	}
	b.WriteString(shapeString(v.shape))
	b.WriteString(" ")
	b.WriteString(v.order.String())
	if v.simple {
		b.WriteString(" simple")
	}
	if v.readOnly {
		b.WriteString(" read-only")
	}
	b.WriteString(")")

	return b.String()
}

// ---------- Coordinate helpers ----------

// CoordinatesToOffset returns the position of coords in the backing slice.
// Errors: ErrEmptyView, ErrDimensionMismatch, ErrOutOfRange.
func (v *View[T]) CoordinatesToOffset(coords ...int) (int, error) {
	if err := v.checkCoords(coords); err != nil {
		return 0, err
	}

	return v.offset + geometry.CoordinatesToOffset(coords, v.strides), nil
}

// CoordinatesToIndex returns the scalar index of coords under order.
// Errors: ErrInvalidOrder, ErrEmptyView, ErrDimensionMismatch, ErrOutOfRange.
func (v *View[T]) CoordinatesToIndex(order Order, coords ...int) (int, error) {
	if err := geometry.ValidateOrder(order); err != nil {
		return 0, viewErrorf(ctxCoordsToIndex, err)
	}
	if err := v.checkCoords(coords); err != nil {
		return 0, viewErrorf(ctxCoordsToIndex, err)
	}

	return geometry.CoordinatesToIndex(coords, v.shape, order), nil
}

// IndexToCoordinates decomposes scalar index i under order into out (which is
// grown when too small) and returns it.
// Errors: ErrInvalidOrder, ErrEmptyView, ErrOutOfRange.
func (v *View[T]) IndexToCoordinates(i int, order Order, out []int) ([]int, error) {
	if err := v.checkIndexOrder(i, order); err != nil {
		return nil, err
	}

	return geometry.IndexToCoordinates(i, v.shape, order, out), nil
}

// IndexToOffset returns the position in the backing slice of scalar index i
// decomposed under the view's own order.
// Errors: ErrEmptyView, ErrOutOfRange.
func (v *View[T]) IndexToOffset(i int) (int, error) {
	if err := v.checkIndex(i); err != nil {
		return 0, err
	}

	return v.offsetOf(i, v.order), nil
}

// offsetOf maps a valid scalar index to a slice position without checks.
// Simple views in the requested order map index i to offset+i directly.
func (v *View[T]) offsetOf(i int, order Order) int {
	if v.simple && order == v.order {
		return v.offset + i
	}

	return v.offset + geometry.IndexToOffset(i, v.shape, v.strides, order)
}

func (v *View[T]) checkCoords(coords []int) error {
	if !v.bound {
		return ErrEmptyView
	}

	return geometry.ValidateCoordinates(coords, v.shape)
}

func (v *View[T]) checkIndex(i int) error {
	if !v.bound {
		return ErrEmptyView
	}

	return geometry.ValidateIndex(i, v.Size())
}

func (v *View[T]) checkIndexOrder(i int, order Order) error {
	if err := geometry.ValidateOrder(order); err != nil {
		return err
	}

	return v.checkIndex(i)
}

// ---------- Element access ----------

// At returns the element at coords (len(coords) must equal Dimension()).
// Errors: ErrEmptyView, ErrDimensionMismatch, ErrOutOfRange.
// Complexity: O(d).
func (v *View[T]) At(coords ...int) (T, error) {
	var zero T
	if err := v.checkCoords(coords); err != nil {
		return zero, viewErrorf(ctxAt, err)
	}

	return v.data[v.offset+geometry.CoordinatesToOffset(coords, v.strides)], nil
}

// Set stores val at coords.
// Errors: ErrReadOnly, ErrEmptyView, ErrDimensionMismatch, ErrOutOfRange.
// Complexity: O(d).
func (v *View[T]) Set(val T, coords ...int) error {
	if v.readOnly {
		return viewErrorf(ctxSet, ErrReadOnly)
	}
	if err := v.checkCoords(coords); err != nil {
		return viewErrorf(ctxSet, err)
	}
	v.data[v.offset+geometry.CoordinatesToOffset(coords, v.strides)] = val

	return nil
}

// AtIndex returns the element at scalar index i in the view's own order.
// Errors: ErrEmptyView, ErrOutOfRange.
// Complexity: O(1) simple, O(d) strided.
func (v *View[T]) AtIndex(i int) (T, error) {
	return v.AtIndexOrder(i, v.order)
}

// SetIndex stores val at scalar index i in the view's own order.
func (v *View[T]) SetIndex(i int, val T) error {
	return v.SetIndexOrder(i, v.order, val)
}

// AtIndexOrder returns the element at scalar index i decomposed under order,
// which may differ from the view's own order.
// Errors: ErrInvalidOrder, ErrEmptyView, ErrOutOfRange.
func (v *View[T]) AtIndexOrder(i int, order Order) (T, error) {
	var zero T
	if err := v.checkIndexOrder(i, order); err != nil {
		return zero, viewErrorf(ctxAtIndex, err)
	}

	return v.data[v.offsetOf(i, order)], nil
}

// SetIndexOrder stores val at scalar index i decomposed under order.
func (v *View[T]) SetIndexOrder(i int, order Order, val T) error {
	if v.readOnly {
		return viewErrorf(ctxSetIndex, ErrReadOnly)
	}
	if err := v.checkIndexOrder(i, order); err != nil {
		return viewErrorf(ctxSetIndex, err)
	}
	v.data[v.offsetOf(i, order)] = val

	return nil
}

// ---------- Mutability ----------

// Const returns a read-only view of the same elements. There is no inverse:
// a read-only view never yields a writable one.
func (v *View[T]) Const() *View[T] {
	c := v.Alias()
	c.readOnly = true

	return c
}

// Alias returns an independent descriptor over the same memory. Transforming
// the alias leaves v untouched; writes through either are visible in both.
func (v *View[T]) Alias() *View[T] {
	c := *v
	c.shape = cloneInts(v.shape)
	c.strides = cloneInts(v.strides)

	return &c
}

// ---------- Re-targeting ----------

// Rebind re-targets v to data with strides derived from shape under the
// order chosen by opts (default: v's current order when bound, else
// DefaultOrder). An empty shape makes v a scalar view of data[0]: the first
// element of the new mapping, whatever the old dimension was.
// The read-only flag is kept. On error v is unchanged.
// Errors: ErrInvalidShape, ErrOutOfRange.
func (v *View[T]) Rebind(data []T, shape []int, opts ...Option) error {
	fallback := DefaultOrder
	if v.bound {
		fallback = v.order
	}
	order := gatherOptions(opts...).orderOr(fallback)
	if err := geometry.ValidateShape(shape); err != nil {
		return viewErrorf(ctxRebind, err)
	}
	nv := View[T]{readOnly: v.readOnly}
	if err := nv.bind(data, 0, cloneInts(shape), geometry.StridesFromShape(shape, order), order); err != nil {
		return viewErrorf(ctxRebind, err)
	}
	*v = nv

	return nil
}

// RebindStrided re-targets v with explicit strides. On error v is unchanged.
func (v *View[T]) RebindStrided(data []T, shape, strides []int, order Order) error {
	if err := validateLayout(shape, strides, order); err != nil {
		return viewErrorf(ctxRebind, err)
	}
	nv := View[T]{readOnly: v.readOnly}
	if err := nv.bind(data, 0, cloneInts(shape), cloneInts(strides), order); err != nil {
		return viewErrorf(ctxRebind, err)
	}
	*v = nv

	return nil
}

// Collapse turns v into a scalar view of the first element it addresses,
// discarding the rest of the shape. The other elements are dropped silently.
// Errors: ErrEmptyView, ErrOutOfRange (zero-size view).
func (v *View[T]) Collapse() error {
	if !v.bound {
		return viewErrorf(ctxCollapse, ErrEmptyView)
	}
	if v.Size() == 0 {
		return viewErrorf(ctxCollapse, ErrOutOfRange)
	}
	v.shape = nil
	v.strides = nil
	v.refresh()

	return nil
}

// ---------- helpers ----------

func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}
	out := make([]int, len(s))
	copy(out, s)

	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func shapeString(shape []int) string {
	if len(shape) == 0 {
		return "scalar"
	}
	parts := make([]string, len(shape))
	for i, e := range shape {
		parts[i] = fmt.Sprint(e)
	}

	return strings.Join(parts, "x")
}

// addressRange returns the byte address interval [lo, hi] addressed by v.
// ok is false when v addresses nothing.
func (v *View[T]) addressRange() (lo, hi uintptr, ok bool) {
	if !v.bound {
		return 0, 0, false
	}
	_, last, ok := geometry.OffsetRange(v.shape, v.strides)
	if !ok {
		return 0, 0, false
	}
	var zero T
	width := unsafe.Sizeof(zero)
	lo = uintptr(unsafe.Pointer(&v.data[v.offset]))

	return lo, lo + uintptr(last)*width + width - 1, true
}

// Overlaps reports whether v and w may address a common element. The check is
// conservative: it compares the address intervals spanned by each view, so
// interleaved strided views that never share an element can still report true.
func (v *View[T]) Overlaps(w *View[T]) bool {
	if v == nil || w == nil {
		return false
	}
	vlo, vhi, ok := v.addressRange()
	if !ok {
		return false
	}
	wlo, whi, ok := w.addressRange()
	if !ok {
		return false
	}

	return vlo <= whi && wlo <= vhi
}

// sameElements reports whether v and w map every coordinate to the same
// address, i.e. an elementwise in-place update reads each element before it
// is written.
func (v *View[T]) sameElements(w *View[T]) bool {
	if !equalInts(v.shape, w.shape) || !equalInts(v.strides, w.strides) {
		return false
	}
	vlo, _, vok := v.addressRange()
	wlo, _, wok := w.addressRange()

	return vok && wok && vlo == wlo
}
