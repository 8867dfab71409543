// SPDX-License-Identifier: MIT
// Package: marray
//
// Purpose:
//   - Elementwise arithmetic between two views of equal shape and between a
//     view and a scalar, in place (…Assign) and out of place (returning a new
//     Array).
//
// Semantics:
//   - Operands are traversed by scalar index decomposed in the left operand's
//     order: result(c) = op(lhs(c), rhs(c)) for every coordinate c.
//   - In-place forms read the right operand from a snapshot when it overlaps
//     the destination and the two do not address the same elements in the same
//     positions.
//   - Integer division checks every divisor before the first write.
//
// Determinism & Performance:
//   - Flat loops when both operands are simple in the same order; float64 flat
//     loops go through gonum/floats.
//   - Every kernel result is converted to T explicitly so no fused
//     multiply-add changes the rounding.

package marray

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Op selects an elementwise binary operation.
type Op uint8

// Supported operations.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

// String returns the operator symbol.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return fmt.Sprintf("op(%d)", uint8(op))
	}
}

// Valid reports whether op is one of the enumerated operations.
func (op Op) Valid() bool { return op <= OpDiv }

// opErrorf wraps err with the operation name.
func opErrorf(name string, err error) error {
	return fmt.Errorf("marray.%s: %w", name, err)
}

// kernel returns the scalar function of op.
func kernel[T Number](op Op) func(x, y T) T {
	switch op {
	case OpSub:
		return func(x, y T) T { return T(x - y) }
	case OpMul:
		return func(x, y T) T { return T(x * y) }
	case OpDiv:
		return func(x, y T) T { return T(x / y) }
	default:
		return func(x, y T) T { return T(x + y) }
	}
}

// applyFlat computes dst[i] = dst[i] op src[i].
func applyFlat[T Number](op Op, dst, src []T) {
	if d, ok := any(dst).([]float64); ok {
		s := any(src).([]float64)
		switch op {
		case OpAdd:
			floats.Add(d, s)
		case OpSub:
			floats.Sub(d, s)
		case OpMul:
			floats.Mul(d, s)
		case OpDiv:
			floats.Div(d, s)
		}

		return
	}
	f := kernel[T](op)
	for i := range dst {
		dst[i] = f(dst[i], src[i])
	}
}

// applyScalarFlat computes dst[i] = dst[i] op s.
func applyScalarFlat[T Number](op Op, dst []T, s T) {
	if d, ok := any(dst).([]float64); ok {
		c := any(s).(float64)
		switch op {
		case OpAdd:
			floats.AddConst(c, d)
			return
		case OpSub:
			floats.AddConst(-c, d)
			return
		case OpMul:
			floats.Scale(c, d)
			return
		}
	}
	f := kernel[T](op)
	for i := range dst {
		dst[i] = f(dst[i], s)
	}
}

// applyScalarLeftFlat computes dst[i] = s op dst[i].
func applyScalarLeftFlat[T Number](op Op, s T, dst []T) {
	f := kernel[T](op)
	for i := range dst {
		dst[i] = f(s, dst[i])
	}
}

// containsZero reports whether any element of v is zero.
func containsZero[T Number](v *View[T]) bool {
	for i, n := 0, v.Size(); i < n; i++ {
		if v.data[v.offsetOf(i, v.order)] == 0 {
			return true
		}
	}

	return false
}

// ---------- In place ----------

// assignBinary is the shared body of the view-view in-place operations.
func assignBinary[T Number](name string, op Op, v, w *View[T]) error {
	if err := validatePair(v, w); err != nil {
		return opErrorf(name, err)
	}
	if err := ValidateWritable(v); err != nil {
		return opErrorf(name, err)
	}
	if op == OpDiv && isIntegerType[T]() && containsZero(w) {
		return opErrorf(name, ErrDivideByZero)
	}
	src := w.prepareSource(v)
	n := v.Size()
	if v.simple && src.simple && v.order == src.order {
		applyFlat(op, v.data[v.offset:v.offset+n], src.data[src.offset:src.offset+n])
		return nil
	}
	f := kernel[T](op)
	for i := 0; i < n; i++ {
		o := v.offsetOf(i, v.order)
		v.data[o] = f(v.data[o], src.data[src.offsetOf(i, v.order)])
	}

	return nil
}

// assignScalar is the shared body of the view-scalar in-place operations.
func assignScalar[T Number](name string, op Op, v *View[T], s T) error {
	if err := ValidateNotNil(v); err != nil {
		return opErrorf(name, err)
	}
	if err := ValidateWritable(v); err != nil {
		return opErrorf(name, err)
	}
	if op == OpDiv && isIntegerType[T]() && s == 0 {
		return opErrorf(name, ErrDivideByZero)
	}
	n := v.Size()
	if v.simple {
		applyScalarFlat(op, v.data[v.offset:v.offset+n], s)
		return nil
	}
	f := kernel[T](op)
	for i := 0; i < n; i++ {
		o := v.offsetOf(i, v.order)
		v.data[o] = f(v.data[o], s)
	}

	return nil
}

// AddAssign computes v(c) += w(c).
// Errors: ErrNilView, ErrEmptyView, ErrDimensionMismatch, ErrReadOnly.
func AddAssign[T Number](v, w *View[T]) error { return assignBinary("AddAssign", OpAdd, v, w) }

// SubAssign computes v(c) -= w(c).
func SubAssign[T Number](v, w *View[T]) error { return assignBinary("SubAssign", OpSub, v, w) }

// MulAssign computes v(c) *= w(c).
func MulAssign[T Number](v, w *View[T]) error { return assignBinary("MulAssign", OpMul, v, w) }

// DivAssign computes v(c) /= w(c). For integer T a zero anywhere in w fails
// with ErrDivideByZero and v is left untouched.
func DivAssign[T Number](v, w *View[T]) error { return assignBinary("DivAssign", OpDiv, v, w) }

// AddScalarAssign adds s to every element of v.
func AddScalarAssign[T Number](v *View[T], s T) error {
	return assignScalar("AddScalarAssign", OpAdd, v, s)
}

// SubScalarAssign subtracts s from every element of v.
func SubScalarAssign[T Number](v *View[T], s T) error {
	return assignScalar("SubScalarAssign", OpSub, v, s)
}

// MulScalarAssign multiplies every element of v by s.
func MulScalarAssign[T Number](v *View[T], s T) error {
	return assignScalar("MulScalarAssign", OpMul, v, s)
}

// DivScalarAssign divides every element of v by s.
func DivScalarAssign[T Number](v *View[T], s T) error {
	return assignScalar("DivScalarAssign", OpDiv, v, s)
}

// Negate replaces every element of v with its negation. Unsigned types wrap.
func Negate[T Number](v *View[T]) error {
	if err := ValidateNotNil(v); err != nil {
		return opErrorf("Negate", err)
	}
	if err := ValidateWritable(v); err != nil {
		return opErrorf("Negate", err)
	}
	for i, n := 0, v.Size(); i < n; i++ {
		o := v.offsetOf(i, v.order)
		v.data[o] = -v.data[o]
	}

	return nil
}

// ---------- Out of place ----------

// materialize copies a into a new array with a's shape and order.
func materialize[T Number](name string, a *View[T]) (*Array[T], error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, opErrorf(name, err)
	}
	out, err := NewArrayFrom(a)
	if err != nil {
		return nil, opErrorf(name, err)
	}

	return out, nil
}

func binary[T Number](name string, op Op, a, b *View[T]) (*Array[T], error) {
	if err := validatePair(a, b); err != nil {
		return nil, opErrorf(name, err)
	}
	if op == OpDiv && isIntegerType[T]() && containsZero(b) {
		return nil, opErrorf(name, ErrDivideByZero)
	}
	out, err := materialize(name, a)
	if err != nil {
		return nil, err
	}
	if err := assignBinary(name, op, &out.view, b); err != nil {
		return nil, err
	}

	return out, nil
}

func scalarRight[T Number](name string, op Op, a *View[T], s T) (*Array[T], error) {
	if op == OpDiv && isIntegerType[T]() && s == 0 {
		return nil, opErrorf(name, ErrDivideByZero)
	}
	out, err := materialize(name, a)
	if err != nil {
		return nil, err
	}
	applyScalarFlat(op, out.view.data, s)

	return out, nil
}

func scalarLeft[T Number](name string, op Op, s T, a *View[T]) (*Array[T], error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, opErrorf(name, err)
	}
	if op == OpDiv && isIntegerType[T]() && containsZero(a) {
		return nil, opErrorf(name, ErrDivideByZero)
	}
	out, err := materialize(name, a)
	if err != nil {
		return nil, err
	}
	applyScalarLeftFlat(op, s, out.view.data)

	return out, nil
}

// Add returns a new array r with r(c) = a(c) + b(c), shaped and ordered like a.
// Errors: ErrNilView, ErrEmptyView, ErrDimensionMismatch.
func Add[T Number](a, b *View[T]) (*Array[T], error) { return binary("Add", OpAdd, a, b) }

// Sub returns a - b elementwise.
func Sub[T Number](a, b *View[T]) (*Array[T], error) { return binary("Sub", OpSub, a, b) }

// Mul returns a * b elementwise.
func Mul[T Number](a, b *View[T]) (*Array[T], error) { return binary("Mul", OpMul, a, b) }

// Div returns a / b elementwise; integer T fails with ErrDivideByZero when b
// holds a zero.
func Div[T Number](a, b *View[T]) (*Array[T], error) { return binary("Div", OpDiv, a, b) }

// AddScalar returns a + s for every element.
func AddScalar[T Number](a *View[T], s T) (*Array[T], error) {
	return scalarRight("AddScalar", OpAdd, a, s)
}

// SubScalar returns a - s for every element.
func SubScalar[T Number](a *View[T], s T) (*Array[T], error) {
	return scalarRight("SubScalar", OpSub, a, s)
}

// MulScalar returns a * s for every element.
func MulScalar[T Number](a *View[T], s T) (*Array[T], error) {
	return scalarRight("MulScalar", OpMul, a, s)
}

// DivScalar returns a / s for every element.
func DivScalar[T Number](a *View[T], s T) (*Array[T], error) {
	return scalarRight("DivScalar", OpDiv, a, s)
}

// ScalarSub returns s - a for every element.
func ScalarSub[T Number](s T, a *View[T]) (*Array[T], error) {
	return scalarLeft("ScalarSub", OpSub, s, a)
}

// ScalarDiv returns s / a for every element.
func ScalarDiv[T Number](s T, a *View[T]) (*Array[T], error) {
	return scalarLeft("ScalarDiv", OpDiv, s, a)
}

// Neg returns -a.
func Neg[T Number](a *View[T]) (*Array[T], error) {
	out, err := materialize("Neg", a)
	if err != nil {
		return nil, err
	}
	for i, x := range out.view.data {
		out.view.data[i] = -x
	}

	return out, nil
}

// Plus returns a copy of a (unary +).
func Plus[T Number](a *View[T]) (*Array[T], error) { return materialize("Plus", a) }
