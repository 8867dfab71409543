// SPDX-License-Identifier: MIT

// Package marray - random-access iterator over a view's scalar-index sequence.
//
// Purpose:
//   - Walk contiguous and strided views alike, forwards, backwards or by any
//     offset, locating each element through the view's index-to-offset map.
//
// Behavior highlights:
//   - Valid positions are [0, Size()]; Size() is one-past-the-end and is not
//     dereferenceable. Moves that would leave that range fail and leave the
//     iterator where it was.
//   - Comparisons look at the index only; iterators of different views are
//     not meaningfully comparable.

package marray

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/lvmarray/geometry"
)

func iterErrorf(method string, index int, err error) error {
	return fmt.Errorf("Iterator.%s(%d): %w", method, index, err)
}

// Iterator is a position in the scalar-index sequence of a view.
type Iterator[T any] struct {
	view     *View[T]
	index    int
	order    Order
	readOnly bool
}

// Begin returns an iterator at index 0 walking in the view's own order.
func (v *View[T]) Begin() *Iterator[T] { return v.begin(v.order) }

// End returns the one-past-the-end iterator in the view's own order.
func (v *View[T]) End() *Iterator[T] {
	it := v.begin(v.order)
	it.index = v.Size()

	return it
}

// BeginOrder returns an iterator at index 0 that decomposes indices under
// order instead of the view's own order.
// Errors: ErrInvalidOrder.
func (v *View[T]) BeginOrder(order Order) (*Iterator[T], error) {
	if err := geometry.ValidateOrder(order); err != nil {
		return nil, viewErrorf(ctxBeginOrder, err)
	}

	return v.begin(order), nil
}

func (v *View[T]) begin(order Order) *Iterator[T] {
	return &Iterator[T]{view: v, order: order, readOnly: v.readOnly}
}

// ConstBegin returns a read-only iterator at index 0.
func (v *View[T]) ConstBegin() *Iterator[T] {
	it := v.Begin()
	it.readOnly = true

	return it
}

// All returns a range function over (scalar index, value) pairs in the view's
// own order:
//
//	for i, x := range v.All() { ... }
func (v *View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, n := 0, v.Size(); i < n; i++ {
			if !yield(i, v.data[v.offsetOf(i, v.order)]) {
				return
			}
		}
	}
}

// Begin returns an iterator at the first element of the array.
func (a *Array[T]) Begin() *Iterator[T] { return a.view.Begin() }

// End returns the one-past-the-end iterator of the array.
func (a *Array[T]) End() *Iterator[T] { return a.view.End() }

// All ranges over (scalar index, value) pairs of the array.
func (a *Array[T]) All() iter.Seq2[int, T] { return a.view.All() }

// Index returns the current scalar index.
func (it *Iterator[T]) Index() int { return it.index }

// Order returns the order indices are decomposed under.
func (it *Iterator[T]) Order() Order { return it.order }

// IsReadOnly reports whether Set is rejected.
func (it *Iterator[T]) IsReadOnly() bool { return it.readOnly }

// Valid reports whether the iterator points at an element.
func (it *Iterator[T]) Valid() bool {
	return it.index >= 0 && it.index < it.view.Size()
}

// Value returns the current element.
// Errors: ErrOutOfRange at End().
func (it *Iterator[T]) Value() (T, error) {
	var zero T
	if !it.Valid() {
		return zero, iterErrorf("Value", it.index, ErrOutOfRange)
	}

	return it.view.data[it.view.offsetOf(it.index, it.order)], nil
}

// Set writes val to the current element.
// Errors: ErrReadOnly, ErrOutOfRange.
func (it *Iterator[T]) Set(val T) error {
	if it.readOnly {
		return iterErrorf("Set", it.index, ErrReadOnly)
	}
	if !it.Valid() {
		return iterErrorf("Set", it.index, ErrOutOfRange)
	}
	it.view.data[it.view.offsetOf(it.index, it.order)] = val

	return nil
}

// Next moves one element forward and reports whether the new position is an
// element (false once End() is reached or when already there).
func (it *Iterator[T]) Next() bool {
	if it.index >= it.view.Size() {
		return false
	}
	it.index++

	return it.index < it.view.Size()
}

// Prev moves one element back and reports whether it moved. Prev from End()
// reaches the last element.
func (it *Iterator[T]) Prev() bool {
	if it.index <= 0 {
		return false
	}
	it.index--

	return true
}

// Advance moves by n elements (negative n moves back).
// Errors: ErrOutOfRange when the target leaves [0, Size()]; the iterator does
// not move.
func (it *Iterator[T]) Advance(n int) error {
	target := it.index + n
	if target < 0 || target > it.view.Size() {
		return iterErrorf("Advance", target, ErrOutOfRange)
	}
	it.index = target

	return nil
}

// Seek moves to the absolute index i in [0, Size()].
func (it *Iterator[T]) Seek(i int) error {
	if i < 0 || i > it.view.Size() {
		return iterErrorf("Seek", i, ErrOutOfRange)
	}
	it.index = i

	return nil
}

// At returns the element n positions away from the current one.
func (it *Iterator[T]) At(n int) (T, error) {
	var zero T
	target := it.index + n
	if target < 0 || target >= it.view.Size() {
		return zero, iterErrorf("At", target, ErrOutOfRange)
	}

	return it.view.data[it.view.offsetOf(target, it.order)], nil
}

// Distance returns it.Index() - other.Index().
func (it *Iterator[T]) Distance(other *Iterator[T]) int { return it.index - other.index }

// Equal reports whether both iterators are at the same index.
func (it *Iterator[T]) Equal(other *Iterator[T]) bool { return it.index == other.index }

// Less reports it.Index() < other.Index().
func (it *Iterator[T]) Less(other *Iterator[T]) bool { return it.index < other.index }

// LessEqual reports it.Index() <= other.Index().
func (it *Iterator[T]) LessEqual(other *Iterator[T]) bool { return it.index <= other.index }

// Greater reports it.Index() > other.Index().
func (it *Iterator[T]) Greater(other *Iterator[T]) bool { return it.index > other.index }

// GreaterEqual reports it.Index() >= other.Index().
func (it *Iterator[T]) GreaterEqual(other *Iterator[T]) bool { return it.index >= other.index }

// Coordinates writes the coordinates of the current element into out (grown
// when too small) and returns it.
// Errors: ErrOutOfRange at End().
func (it *Iterator[T]) Coordinates(out []int) ([]int, error) {
	if !it.Valid() {
		return nil, iterErrorf("Coordinates", it.index, ErrOutOfRange)
	}

	return geometry.IndexToCoordinates(it.index, it.view.shape, it.order, out), nil
}

// Offset returns the position of the current element in the backing slice.
// Errors: ErrOutOfRange at End().
func (it *Iterator[T]) Offset() (int, error) {
	if !it.Valid() {
		return 0, iterErrorf("Offset", it.index, ErrOutOfRange)
	}

	return it.view.offsetOf(it.index, it.order), nil
}

// Const returns a read-only iterator at the same position. There is no way
// back to a writable iterator.
func (it *Iterator[T]) Const() *Iterator[T] {
	c := *it
	c.readOnly = true

	return &c
}

// Clone returns an independent iterator at the same position.
func (it *Iterator[T]) Clone() *Iterator[T] {
	c := *it

	return &c
}
