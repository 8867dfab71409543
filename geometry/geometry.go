// SPDX-License-Identifier: MIT

// Package geometry - shape/stride derivation and coordinate conversions.
//
// Purpose:
//   - Single source of truth for the mapping between coordinate tuples,
//     scalar indices and memory offsets.
//   - Keep every conversion allocation-free so views can call them on hot paths.
//
// Index formulas (d = len(shape)):
//   - FirstMajorOrder: index = ((c0*s1 + c1)*s2 + c2)... (last axis fastest).
//   - LastMajorOrder:  index = ((c{d-1}*s{d-2} + c{d-2})...) (first axis fastest).
//   - Offset is always literal: offset = sum(c[i] * strides[i]).

package geometry

import "math"

// Size returns the number of elements addressed by shape.
// The empty shape is a scalar and has size 1.
// Complexity: O(d).
func Size(shape []int) int {
	n := 1
	for _, e := range shape {
		n *= e
	}

	return n
}

// CheckedSize validates shape and returns its element count, failing with
// ErrTooLarge when the product overflows int or exceeds limit (limit <= 0
// disables the limit).
// Complexity: O(d).
func CheckedSize(shape []int, limit int) (int, error) {
	if err := ValidateShape(shape); err != nil {
		return 0, err
	}
	// A zero extent makes the whole product zero regardless of the others.
	for _, e := range shape {
		if e == 0 {
			return 0, nil
		}
	}
	n := 1
	for _, e := range shape {
		if n > math.MaxInt/e {
			return 0, ErrTooLarge
		}
		n *= e
	}
	if limit > 0 && n > limit {
		return 0, ErrTooLarge
	}

	return n, nil
}

// StridesFromShape derives contiguous strides for shape under order.
// MAIN DESCRIPTION:
//   - FirstMajorOrder: stride[i] = prod(shape[i+1:]).
//   - LastMajorOrder:  stride[i] = prod(shape[:i]).
//
// Behavior highlights:
//   - A scalar shape yields nil.
//   - Axes after a zero extent receive stride 0; such shapes address nothing.
//
// Complexity:
//   - Time O(d), Space O(d).
func StridesFromShape(shape []int, order Order) []int {
	if len(shape) == 0 {
		return nil
	}

	return StridesInto(make([]int, len(shape)), shape, order)
}

// StridesInto writes the contiguous strides of shape into dst and returns it.
// dst must have len(shape) entries.
func StridesInto(dst, shape []int, order Order) []int {
	acc := 1
	if order == LastMajorOrder {
		for i := 0; i < len(shape); i++ {
			dst[i] = acc
			acc *= shape[i]
		}

		return dst
	}
	for i := len(shape) - 1; i >= 0; i-- {
		dst[i] = acc
		acc *= shape[i]
	}

	return dst
}

// CoordinatesToOffset returns sum(coords[i] * strides[i]).
// The mapping is geometrically literal and independent of any order.
// Complexity: O(d).
func CoordinatesToOffset(coords, strides []int) int {
	off := 0
	for i, c := range coords {
		off += c * strides[i]
	}

	return off
}

// CoordinatesToIndex returns the scalar index of coords in a contiguous
// traversal of shape under order. The result equals the memory offset only
// when the strides in use are the contiguous strides of shape under order.
// Complexity: O(d), no allocation.
func CoordinatesToIndex(coords, shape []int, order Order) int {
	idx := 0
	if order == LastMajorOrder {
		for i := len(shape) - 1; i >= 0; i-- {
			idx = idx*shape[i] + coords[i]
		}

		return idx
	}
	for i := 0; i < len(shape); i++ {
		idx = idx*shape[i] + coords[i]
	}

	return idx
}

// IndexToCoordinates decomposes index into a coordinate tuple of shape under
// order, writing into out when it has room and allocating otherwise.
// MAIN DESCRIPTION:
//   - FirstMajorOrder peels the last axis first (most significant axis is 0).
//   - LastMajorOrder peels the first axis first.
//
// Behavior highlights:
//   - Zero extents yield coordinate 0 on that axis (nothing is addressable).
//
// Complexity:
//   - Time O(d); Space O(d) only when out is too small.
func IndexToCoordinates(index int, shape []int, order Order, out []int) []int {
	d := len(shape)
	if cap(out) < d {
		out = make([]int, d)
	}
	out = out[:d]
	if order == LastMajorOrder {
		for i := 0; i < d; i++ {
			if shape[i] == 0 {
				out[i] = 0
				continue
			}
			out[i] = index % shape[i]
			index /= shape[i]
		}

		return out
	}
	for i := d - 1; i >= 0; i-- {
		if shape[i] == 0 {
			out[i] = 0
			continue
		}
		out[i] = index % shape[i]
		index /= shape[i]
	}

	return out
}

// IndexToOffset is CoordinatesToOffset(IndexToCoordinates(index, shape, order), strides)
// fused into a single allocation-free loop.
// Complexity: O(d).
func IndexToOffset(index int, shape, strides []int, order Order) int {
	off := 0
	if order == LastMajorOrder {
		for i := 0; i < len(shape); i++ {
			if shape[i] == 0 {
				continue
			}
			off += (index % shape[i]) * strides[i]
			index /= shape[i]
		}

		return off
	}
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] == 0 {
			continue
		}
		off += (index % shape[i]) * strides[i]
		index /= shape[i]
	}

	return off
}

// IsSimple reports whether strides are the contiguous strides of shape under
// order. Unit axes are ignored: their only coordinate is 0, so their stride
// never contributes to an offset. Zero-size shapes are simple.
// Complexity: O(d).
func IsSimple(shape, strides []int, order Order) bool {
	if len(shape) != len(strides) {
		return false
	}
	for _, e := range shape {
		if e == 0 {
			return true
		}
	}
	acc := 1
	if order == LastMajorOrder {
		for i := 0; i < len(shape); i++ {
			if shape[i] != 1 && strides[i] != acc {
				return false
			}
			acc *= shape[i]
		}

		return true
	}
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] != 1 && strides[i] != acc {
			return false
		}
		acc *= shape[i]
	}

	return true
}

// OffsetRange returns the smallest and largest offsets addressed by shape and
// strides relative to the first element. ok is false for zero-size shapes.
// Complexity: O(d).
func OffsetRange(shape, strides []int) (lo, hi int, ok bool) {
	for i, e := range shape {
		if e == 0 {
			return 0, 0, false
		}
		hi += (e - 1) * strides[i]
	}

	return 0, hi, true
}

// CheckedOffsetRange is OffsetRange for untrusted layouts: it fails with
// ErrTooLarge when the element count or the largest offset overflows int.
// strides must be non-negative (ValidateStrides).
// Complexity: O(d).
func CheckedOffsetRange(shape, strides []int) (hi int, ok bool, err error) {
	n, err := CheckedSize(shape, 0)
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	for i, e := range shape {
		if strides[i] > 0 && e-1 > (math.MaxInt-hi)/strides[i] {
			return 0, false, ErrTooLarge
		}
		hi += (e - 1) * strides[i]
	}

	return hi, true, nil
}

// PermuteAxes returns values reordered so that out[i] = values[perm[i]].
// perm must already be validated with ValidatePermutation.
func PermuteAxes(values, perm []int) []int {
	out := make([]int, len(values))
	for i, p := range perm {
		out[i] = values[p]
	}

	return out
}

// ShiftAxes rotates values cyclically by n positions: positive n moves every
// entry n places toward the end (the last n entries wrap to the front),
// negative n moves them toward the front. |n| is taken modulo len(values).
func ShiftAxes(values []int, n int) []int {
	d := len(values)
	out := make([]int, d)
	if d == 0 {
		return out
	}
	n %= d
	if n < 0 {
		n += d
	}
	for i, v := range values {
		out[(i+n)%d] = v
	}

	return out
}
