// SPDX-License-Identifier: MIT
// Package geometry: sentinel error set.
// Validators return these sentinels wrapped with axis context; callers match
// them with errors.Is.

package geometry

import "errors"

var (
	// ErrInvalidShape is returned when an extent is negative.
	ErrInvalidShape = errors.New("geometry: invalid shape")

	// ErrInvalidStrides is returned when a stride is negative.
	ErrInvalidStrides = errors.New("geometry: invalid strides")

	// ErrInvalidOrder is returned for a coordinate order outside the enumeration.
	ErrInvalidOrder = errors.New("geometry: invalid coordinate order")

	// ErrOutOfRange indicates a coordinate, scalar index or region that lies
	// outside the extents it is checked against.
	ErrOutOfRange = errors.New("geometry: index out of range")

	// ErrDimensionMismatch indicates tuples whose length differs from the
	// dimension they are used with.
	ErrDimensionMismatch = errors.New("geometry: dimension mismatch")

	// ErrInvalidPermutation is returned when an axis permutation is not a
	// bijection of 0..d-1.
	ErrInvalidPermutation = errors.New("geometry: invalid axis permutation")

	// ErrTooLarge signals that a shape's element count overflows int or exceeds
	// the caller's allocation limit. It is a resource failure, not an argument
	// error.
	ErrTooLarge = errors.New("geometry: shape too large")
)
