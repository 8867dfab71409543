// SPDX-License-Identifier: MIT

package geometry

import "strconv"

// Order is the axis-to-stride weighting convention of a view.
type Order uint8

const (
	// FirstMajorOrder makes the first axis vary slowest:
	// stride[i] = shape[i+1] * ... * shape[d-1].
	FirstMajorOrder Order = iota

	// LastMajorOrder makes the first axis vary fastest:
	// stride[i] = shape[0] * ... * shape[i-1].
	LastMajorOrder
)

// DefaultOrder is the order used by constructors when none is given.
const DefaultOrder = FirstMajorOrder

// Valid reports whether o is one of the two defined orders.
func (o Order) Valid() bool { return o == FirstMajorOrder || o == LastMajorOrder }

// Reverse returns the other order. Reversing the axes of a shape and its
// strides turns a view simple in o into one simple in o.Reverse().
func (o Order) Reverse() Order {
	if o == FirstMajorOrder {
		return LastMajorOrder
	}

	return FirstMajorOrder
}

// String returns "first-major", "last-major" or "order(N)".
func (o Order) String() string {
	switch o {
	case FirstMajorOrder:
		return "first-major"
	case LastMajorOrder:
		return "last-major"
	default:
		return "order(" + strconv.Itoa(int(o)) + ")"
	}
}

