// SPDX-License-Identifier: MIT

package marray

// Convert returns a new array holding R(src(c)) for every coordinate c, with
// src's shape and order. Conversions follow Go's numeric conversion rules.
// Errors: ErrNilView, ErrEmptyView.
// Complexity: O(n) (O(n*d) for strided sources).
func Convert[R, S Number](src *View[S]) (*Array[R], error) {
	if err := ValidateNotNil(src); err != nil {
		return nil, opErrorf("Convert", err)
	}
	out, err := allocArray[R](src.shape, src.order, 0)
	if err != nil {
		return nil, opErrorf("Convert", err)
	}
	for i := range out.view.data {
		out.view.data[i] = R(src.data[src.offsetOf(i, src.order)])
	}

	return out, nil
}

// Combine applies op to operands of different element types. Both are
// converted to R before the operation: r(c) = R(a(c)) op R(b(c)). Pick R with
// Promote(KindOf[A](), KindOf[B]()) for the usual widening result.
// MAIN DESCRIPTION:
//   - Shapes must match exactly; traversal is in a's order, so the result is
//     coordinate-wise whatever the two layouts are.
//
// Errors:
//   - ErrNilView, ErrEmptyView, ErrDimensionMismatch, ErrDivideByZero
//     (integer R with a zero divisor after conversion).
//
// Complexity:
//   - Time O(n*d) worst case, Space O(n) for the result.
func Combine[R, A, B Number](op Op, a *View[A], b *View[B]) (*Array[R], error) {
	if !op.Valid() {
		return nil, opErrorf("Combine", ErrInvalidOp)
	}
	if err := validatePair(a, b); err != nil {
		return nil, opErrorf("Combine", err)
	}
	n := a.Size()
	rhs := make([]R, n)
	for i := range rhs {
		rhs[i] = R(b.data[b.offsetOf(i, a.order)])
	}
	if op == OpDiv && isIntegerType[R]() {
		for _, x := range rhs {
			if x == 0 {
				return nil, opErrorf("Combine", ErrDivideByZero)
			}
		}
	}
	out, err := allocArray[R](a.shape, a.order, 0)
	if err != nil {
		return nil, opErrorf("Combine", err)
	}
	for i := range out.view.data {
		out.view.data[i] = R(a.data[a.offsetOf(i, a.order)])
	}
	applyFlat(op, out.view.data, rhs)

	return out, nil
}
