// SPDX-License-Identifier: MIT
// Package: marray
//
// Purpose:
//  - Single source of truth for the operand checks of the elementwise layer.
//  - Return sentinels wrapped with the validator tag so call sites can wrap
//    once more with their own context.
//
// Note:
//  - Composite checks follow a fixed sequence: NotNil -> Bound -> Shape.

package marray

import "fmt"

func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures v is a non-nil, bound view.
// Errors: ErrNilView, ErrEmptyView.
// Complexity: O(1).
func ValidateNotNil[T any](v *View[T]) error {
	if v == nil {
		return validatorErrorf("ValidateNotNil", ErrNilView)
	}
	if !v.bound {
		return validatorErrorf("ValidateNotNil", ErrEmptyView)
	}

	return nil
}

// ValidateWritable ensures v accepts writes. Assumes v is not nil.
// Complexity: O(1).
func ValidateWritable[T any](v *View[T]) error {
	if v.readOnly {
		return validatorErrorf("ValidateWritable", ErrReadOnly)
	}

	return nil
}

// ValidateSameShape ensures a and b have identical extents. A scalar view
// matches only another scalar view: there is no implicit broadcast.
// Assumes both are non-nil.
// Complexity: O(d).
func ValidateSameShape[A, B any](a *View[A], b *View[B]) error {
	if len(a.shape) != len(b.shape) {
		return validatorErrorf("ValidateSameShape: Dimension", ErrDimensionMismatch)
	}
	if !equalInts(a.shape, b.shape) {
		return validatorErrorf("ValidateSameShape: Extents", ErrDimensionMismatch)
	}

	return nil
}

// validatePair runs NotNil on both operands, then SameShape.
func validatePair[A, B any](a *View[A], b *View[B]) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}

	return ValidateSameShape(a, b)
}
