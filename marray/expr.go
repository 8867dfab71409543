// SPDX-License-Identifier: MIT

// Package marray - Expr: single-pass evaluation of elementwise chains.
//
// Purpose:
//   - Describe a chain such as a*a + 2*a*b + b*b as a tree and evaluate it in
//     one pass per element, without materializing intermediate arrays.
//
// Behavior highlights:
//   - Results are bit-identical to the eager functions (Add, Mul, ...): every
//     node result is converted to T before it feeds the next node.
//   - Leaves must share one shape; scalar nodes broadcast.
//   - Evaluation goes through a temporary when the destination overlaps a
//     leaf, and when integer division has to be checked before any write.
//
// Example:
//
//	a, b := x.AsView(), y.AsView()
//	e := marray.Leaf(a).Mul(marray.Leaf(a)).
//		Add(marray.Scalar(2.0).Mul(marray.Leaf(a)).Mul(marray.Leaf(b))).
//		Add(marray.Leaf(b).Mul(marray.Leaf(b)))
//	out, err := e.Eval()

package marray

import (
	"fmt"
	"log/slog"
)

type exprKind uint8

const (
	exprLeaf exprKind = iota
	exprScalar
	exprBinary
	exprNeg
)

// Expr is an immutable node of an elementwise expression tree. Build it with
// Leaf and Scalar and combine nodes with the arithmetic methods.
type Expr[T Number] struct {
	kind     exprKind
	op       Op
	leaf     *View[T]
	value    T
	lhs, rhs *Expr[T]
}

// Leaf wraps a view as an expression operand. The view is read at evaluation
// time, not when the tree is built.
func Leaf[T Number](v *View[T]) *Expr[T] { return &Expr[T]{kind: exprLeaf, leaf: v} }

// Scalar wraps a constant that broadcasts over every element.
func Scalar[T Number](s T) *Expr[T] { return &Expr[T]{kind: exprScalar, value: s} }

func (e *Expr[T]) binary(op Op, f *Expr[T]) *Expr[T] {
	return &Expr[T]{kind: exprBinary, op: op, lhs: e, rhs: f}
}

// Add returns the node e + f.
func (e *Expr[T]) Add(f *Expr[T]) *Expr[T] { return e.binary(OpAdd, f) }

// Sub returns the node e - f.
func (e *Expr[T]) Sub(f *Expr[T]) *Expr[T] { return e.binary(OpSub, f) }

// Mul returns the node e * f.
func (e *Expr[T]) Mul(f *Expr[T]) *Expr[T] { return e.binary(OpMul, f) }

// Div returns the node e / f.
func (e *Expr[T]) Div(f *Expr[T]) *Expr[T] { return e.binary(OpDiv, f) }

// AddScalar returns the node e + s.
func (e *Expr[T]) AddScalar(s T) *Expr[T] { return e.binary(OpAdd, Scalar(s)) }

// SubScalar returns the node e - s.
func (e *Expr[T]) SubScalar(s T) *Expr[T] { return e.binary(OpSub, Scalar(s)) }

// MulScalar returns the node e * s.
func (e *Expr[T]) MulScalar(s T) *Expr[T] { return e.binary(OpMul, Scalar(s)) }

// DivScalar returns the node e / s.
func (e *Expr[T]) DivScalar(s T) *Expr[T] { return e.binary(OpDiv, Scalar(s)) }

// Neg returns the node -e.
func (e *Expr[T]) Neg() *Expr[T] { return &Expr[T]{kind: exprNeg, lhs: e} }

// exprInfo collects what evaluation needs to know about a tree.
type exprInfo[T Number] struct {
	shape  []int
	order  Order
	leaves []*View[T]
	hasDiv bool
}

func (e *Expr[T]) inspect(info *exprInfo[T]) error {
	if e == nil {
		return ErrNilView
	}
	switch e.kind {
	case exprLeaf:
		if err := ValidateNotNil(e.leaf); err != nil {
			return err
		}
		if len(info.leaves) == 0 {
			info.shape = e.leaf.shape
			info.order = e.leaf.order
		} else if !equalInts(info.shape, e.leaf.shape) {
			return fmt.Errorf("leaf %s against %s: %w", shapeString(e.leaf.shape), shapeString(info.shape), ErrDimensionMismatch)
		}
		info.leaves = append(info.leaves, e.leaf)
	case exprBinary:
		if e.op == OpDiv {
			info.hasDiv = true
		}
		if err := e.lhs.inspect(info); err != nil {
			return err
		}
		return e.rhs.inspect(info)
	case exprNeg:
		return e.lhs.inspect(info)
	}

	return nil
}

// Shape returns the shape of the expression's result: the common shape of its
// leaves, or nil (a scalar) when it has none.
// Errors: ErrNilView, ErrEmptyView, ErrDimensionMismatch.
func (e *Expr[T]) Shape() ([]int, error) {
	var info exprInfo[T]
	if err := e.inspect(&info); err != nil {
		return nil, opErrorf("Expr.Shape", err)
	}

	return cloneInts(info.shape), nil
}

// at evaluates the tree at scalar index i decomposed under order. ok is false
// when an integer division met a zero divisor.
func (e *Expr[T]) at(i int, order Order, intDiv bool) (T, bool) {
	switch e.kind {
	case exprLeaf:
		return e.leaf.data[e.leaf.offsetOf(i, order)], true
	case exprScalar:
		return e.value, true
	case exprNeg:
		x, ok := e.lhs.at(i, order, intDiv)
		return T(-x), ok
	}
	x, ok := e.lhs.at(i, order, intDiv)
	if !ok {
		return x, false
	}
	y, ok := e.rhs.at(i, order, intDiv)
	if !ok {
		return y, false
	}
	switch e.op {
	case OpSub:
		return T(x - y), true
	case OpMul:
		return T(x * y), true
	case OpDiv:
		if intDiv && y == 0 {
			return 0, false
		}
		return T(x / y), true
	default:
		return T(x + y), true
	}
}

// EvalInto evaluates e into dst: dst(c) = e(c) for every coordinate c of dst.
// A leaf-free expression is broadcast over dst.
// MAIN DESCRIPTION:
//   - One pass over the scalar indices of dst in dst's order.
//
// Errors:
//   - ErrNilView, ErrEmptyView, ErrReadOnly, ErrDimensionMismatch,
//     ErrDivideByZero (integer T; dst is untouched).
func (e *Expr[T]) EvalInto(dst *View[T]) error {
	if err := ValidateNotNil(dst); err != nil {
		return opErrorf("Expr.EvalInto", err)
	}
	if err := ValidateWritable(dst); err != nil {
		return opErrorf("Expr.EvalInto", err)
	}
	var info exprInfo[T]
	if err := e.inspect(&info); err != nil {
		return opErrorf("Expr.EvalInto", err)
	}
	if len(info.leaves) > 0 && !equalInts(info.shape, dst.shape) {
		return opErrorf("Expr.EvalInto", ErrDimensionMismatch)
	}
	intDiv := info.hasDiv && isIntegerType[T]()
	direct := !intDiv
	for _, l := range info.leaves {
		if dst.Overlaps(l) && !dst.sameElements(l) {
			direct = false
			break
		}
	}
	n := dst.Size()
	if direct {
		for i := 0; i < n; i++ {
			x, _ := e.at(i, dst.order, false)
			dst.data[dst.offsetOf(i, dst.order)] = x
		}

		return nil
	}
	slog.Debug("marray: evaluating expression through a temporary", "dst", dst.String(), "elements", n, "integer_division", intDiv)
	tmp := make([]T, n)
	for i := range tmp {
		x, ok := e.at(i, dst.order, intDiv)
		if !ok {
			return opErrorf("Expr.EvalInto", ErrDivideByZero)
		}
		tmp[i] = x
	}
	for i, x := range tmp {
		dst.data[dst.offsetOf(i, dst.order)] = x
	}

	return nil
}

// Eval evaluates e into a new array with the leaves' shape. The array uses the
// order given by WithOrder, or the first leaf's order.
// Errors: as EvalInto, plus ErrTooLarge.
func (e *Expr[T]) Eval(opts ...Option) (*Array[T], error) {
	var info exprInfo[T]
	if err := e.inspect(&info); err != nil {
		return nil, opErrorf("Expr.Eval", err)
	}
	o := gatherOptions(opts...)
	fallback := DefaultOrder
	if len(info.leaves) > 0 {
		fallback = info.order
	}
	out, err := allocArray[T](info.shape, o.orderOr(fallback), o.maxElements)
	if err != nil {
		return nil, opErrorf("Expr.Eval", err)
	}
	if err := e.EvalInto(&out.view); err != nil {
		return nil, err
	}

	return out, nil
}
