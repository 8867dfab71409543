// SPDX-License-Identifier: MIT
// Package marray: sentinel error set.
// Methods wrap these with fmt.Errorf("View.<Method>(...): %w", err) at the
// detection site; tests and callers match them with errors.Is.

package marray

import (
	"errors"

	"github.com/katalvlaran/lvmarray/geometry"
)

// NOTE ON GROUPS
// --------------
// Argument errors: ErrInvalidShape, ErrInvalidStrides, ErrInvalidOrder,
// ErrOutOfRange, ErrDimensionMismatch, ErrInvalidPermutation, ErrNotSimple,
// ErrSizeMismatch, ErrReadOnly, ErrEmptyView, ErrNilView, ErrDivideByZero,
// ErrInvalidOp, ErrNaNInf.
// Resource errors: ErrTooLarge.

// Geometry sentinels re-exported so callers need a single import.
// errors.Is(err, marray.ErrOutOfRange) and errors.Is(err, geometry.ErrOutOfRange)
// are equivalent.
var (
	ErrInvalidShape       = geometry.ErrInvalidShape
	ErrInvalidStrides     = geometry.ErrInvalidStrides
	ErrInvalidOrder       = geometry.ErrInvalidOrder
	ErrOutOfRange         = geometry.ErrOutOfRange
	ErrDimensionMismatch  = geometry.ErrDimensionMismatch
	ErrInvalidPermutation = geometry.ErrInvalidPermutation
	ErrTooLarge           = geometry.ErrTooLarge
)

var (
	// ErrNotSimple is returned by Reshape on a view whose strides are not the
	// contiguous strides of its shape and order (e.g. a strided sub-view).
	ErrNotSimple = errors.New("marray: view is not simple")

	// ErrSizeMismatch indicates element counts that must agree but do not
	// (reshape target, flat copy source, slice length).
	ErrSizeMismatch = errors.New("marray: size mismatch")

	// ErrReadOnly is returned when writing through a read-only view or iterator.
	ErrReadOnly = errors.New("marray: view is read-only")

	// ErrEmptyView is returned when reading from or transforming a view that
	// was never bound to memory.
	ErrEmptyView = errors.New("marray: view is empty")

	// ErrNilView indicates a nil *View or *Array argument.
	ErrNilView = errors.New("marray: nil view")

	// ErrDivideByZero is returned by integer division when a divisor is zero.
	// It is detected before any element is written.
	ErrDivideByZero = errors.New("marray: integer division by zero")

	// ErrInvalidOp indicates an Op value outside the enumeration.
	ErrInvalidOp = errors.New("marray: invalid operation")

	// ErrNaNInf is returned when a bound or tolerance is NaN or infinite.
	ErrNaNInf = errors.New("marray: NaN or Inf parameter")
)
