// SPDX-License-Identifier: MIT
// Package: geometry
//
// Purpose:
//  - Canonical guards for shapes, strides, coordinates, regions and permutations.
//  - Return sentinel errors wrapped with the offending axis so callers can add
//    their own method context and still match with errors.Is.

package geometry

import "fmt"

// ValidateShape checks that every extent is non-negative.
// Complexity: O(d).
func ValidateShape(shape []int) error {
	for axis, e := range shape {
		if e < 0 {
			return fmt.Errorf("axis %d extent %d: %w", axis, e, ErrInvalidShape)
		}
	}

	return nil
}

// ValidateStrides checks that strides match shape in length and are non-negative.
// Complexity: O(d).
func ValidateStrides(strides, shape []int) error {
	if len(strides) != len(shape) {
		return fmt.Errorf("%d strides for %d axes: %w", len(strides), len(shape), ErrDimensionMismatch)
	}
	for axis, s := range strides {
		if s < 0 {
			return fmt.Errorf("axis %d stride %d: %w", axis, s, ErrInvalidStrides)
		}
	}

	return nil
}

// ValidateOrder rejects values outside the Order enumeration.
func ValidateOrder(o Order) error {
	if !o.Valid() {
		return fmt.Errorf("%s: %w", o, ErrInvalidOrder)
	}

	return nil
}

// ValidateCoordinates checks len(coords) == len(shape) and 0 <= coords[i] < shape[i].
// Complexity: O(d).
func ValidateCoordinates(coords, shape []int) error {
	if len(coords) != len(shape) {
		return fmt.Errorf("%d coordinates for %d axes: %w", len(coords), len(shape), ErrDimensionMismatch)
	}
	for axis, c := range coords {
		if c < 0 || c >= shape[axis] {
			return fmt.Errorf("axis %d coordinate %d not in [0,%d): %w", axis, c, shape[axis], ErrOutOfRange)
		}
	}

	return nil
}

// ValidateIndex checks 0 <= index < size.
func ValidateIndex(index, size int) error {
	if index < 0 || index >= size {
		return fmt.Errorf("index %d not in [0,%d): %w", index, size, ErrOutOfRange)
	}

	return nil
}

// ValidateAxis checks 0 <= axis < dim.
func ValidateAxis(axis, dim int) error {
	if axis < 0 || axis >= dim {
		return fmt.Errorf("axis %d not in [0,%d): %w", axis, dim, ErrOutOfRange)
	}

	return nil
}

// ValidateRegion checks that the hyperslab [base, base+sub) lies inside shape.
// All three tuples must have the same length; sub may contain zero extents.
// Complexity: O(d).
func ValidateRegion(base, sub, shape []int) error {
	if len(base) != len(shape) || len(sub) != len(shape) {
		return fmt.Errorf("region of %d/%d axes in %d axes: %w", len(base), len(sub), len(shape), ErrDimensionMismatch)
	}
	for axis := range shape {
		if base[axis] < 0 || sub[axis] < 0 {
			return fmt.Errorf("axis %d base %d extent %d: %w", axis, base[axis], sub[axis], ErrOutOfRange)
		}
		if base[axis]+sub[axis] > shape[axis] {
			return fmt.Errorf("axis %d region [%d,%d) exceeds extent %d: %w",
				axis, base[axis], base[axis]+sub[axis], shape[axis], ErrOutOfRange)
		}
	}

	return nil
}

// ValidatePermutation checks that perm is a bijection of 0..dim-1.
// Complexity: O(d) time and space.
func ValidatePermutation(perm []int, dim int) error {
	if len(perm) != dim {
		return fmt.Errorf("%d entries for %d axes: %w", len(perm), dim, ErrInvalidPermutation)
	}
	seen := make([]bool, dim)
	for i, p := range perm {
		if p < 0 || p >= dim || seen[p] {
			return fmt.Errorf("entry %d is %d: %w", i, p, ErrInvalidPermutation)
		}
		seen[p] = true
	}

	return nil
}
