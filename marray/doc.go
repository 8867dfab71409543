// Package marray provides runtime-flexible n-dimensional arrays and zero-copy
// views over strided memory.
//
// What:
//
//   - View[T] addresses caller-owned memory through a shape, per-axis strides,
//     a coordinate order and an offset. It never allocates its data. Sub-views,
//     transposition, permutation, axis shifting, squeezing, binding and
//     reshaping only rewrite the descriptor; the memory is shared.
//   - Array[T] owns a contiguous buffer and wraps a View that is always simple
//     (contiguous) in the array's coordinate order.
//   - Iterator[T] walks a view's elements in scalar-index order, forwards,
//     backwards or by arbitrary offsets, for contiguous and strided views alike.
//   - Elementwise arithmetic (Add, Sub, Mul, Div, scalar forms, in-place forms,
//     Combine for mixed element types) and the Expr builder for fused chains.
//
// Why:
//
//   - Image stacks, simulation grids and file hyperslabs all need the same
//     coordinate arithmetic; keeping it in one engine keeps every consumer
//     consistent (scalar index, coordinates and offsets always agree).
//
// Semantics:
//
//   - Scalar index i of a view is decomposed into coordinates under the view's
//     own order unless an order is passed explicitly (AtIndexOrder, BeginOrder).
//   - Binary operations traverse both operands by scalar index in the left
//     operand's order, so result(c) = op(lhs(c), rhs(c)) for every coordinate c
//     whatever the physical layouts are.
//   - In-place operations on overlapping views read the right operand from a
//     snapshot when the two descriptors are not element-for-element identical.
//
// Errors:
//
//   - Every access is bounds-checked; failures return sentinels (ErrOutOfRange,
//     ErrDimensionMismatch, ErrNotSimple, ErrReadOnly, ...) wrapped with the
//     method context. Allocation limits report ErrTooLarge.
//
// Concurrency:
//
//   - No internal locking. Views alias memory; callers serialize writers.
package marray
