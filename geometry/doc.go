// Package geometry holds the coordinate, index and offset arithmetic shared by
// every n-dimensional view in lvmarray.
//
// What:
//
//   - Order selects how a shape is weighted when strides are derived:
//     FirstMajorOrder (first axis slowest, C layout) or LastMajorOrder
//     (first axis fastest, Fortran layout).
//   - StridesFromShape derives contiguous strides for a shape and an order.
//   - CoordinatesToOffset maps a coordinate tuple to a memory offset using
//     explicit strides; CoordinatesToIndex and IndexToCoordinates map between
//     tuples and scalar indices under an order; IndexToOffset composes both.
//   - IsSimple reports whether strides are exactly the contiguous strides of a
//     shape under an order.
//
// Conventions:
//
//   - A shape of length 0 is a scalar: Size returns 1 (empty product).
//   - Extents and strides are non-negative; strides are counted in elements.
//   - Every function is pure and allocation-free unless it returns a slice.
//
// Complexity:
//
//   - All conversions run in O(d) for dimension d.
package geometry
