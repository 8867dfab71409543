// SPDX-License-Identifier: MIT

package marray_test

import (
	"fmt"

	"github.com/katalvlaran/lvmarray/marray"
)

// ExampleArray_View takes a window of a column-major array without copying.
func ExampleArray_View() {
	values := make([]int, 24)
	for i := range values {
		values[i] = i
	}
	a, _ := marray.FromSlice(values, []int{6, 4}, marray.WithOrder(marray.LastMajorOrder))

	sub, _ := a.View([]int{2, 1}, []int{3, 2})
	fmt.Println(sub.Flatten())
	fmt.Println(sub)

	// Output:
	// [8 9 10 14 15 16]
	// View[int](3x2 last-major)
}

// ExampleView_Transposed reads a matrix through a transposed descriptor.
func ExampleView_Transposed() {
	v, _ := marray.NewView([]float64{1, 2, 3, 4, 5, 6}, []int{2, 3})
	t := v.Transposed()
	x, _ := t.At(2, 1)
	fmt.Println(t.Shape(), x)

	// Output:
	// [3 2] 6
}

// ExampleAddAssign adds two overlapping windows of the same array.
func ExampleAddAssign() {
	a, _ := marray.FromSlice([]int{0, 1, 2, 3, 4, 5, 6, 7, 8}, []int{3, 3})
	v, _ := a.View([]int{1, 1}, []int{2, 2})
	w, _ := a.View([]int{0, 0}, []int{2, 2})
	_ = marray.AddAssign(v, w)
	fmt.Println(a.Data())

	// Output:
	// [0 1 2 3 4 6 6 10 12]
}

// ExampleArray_Resize grows a vector into a 3-D block.
func ExampleArray_Resize() {
	a, _ := marray.NewArrayFilled([]int{3}, 1)
	_ = a.Resize([]int{2, 2, 2}, 0)
	fmt.Println(a.Data())

	// Output:
	// [1 0 0 0 1 0 0 0]
}

// ExampleExpr evaluates (a+b)*(a-b) in a single pass.
func ExampleExpr() {
	a, _ := marray.NewView([]float64{3, 4, 5}, []int{3})
	b, _ := marray.NewView([]float64{1, 2, 3}, []int{3})
	out, _ := marray.Leaf(a).Add(marray.Leaf(b)).Mul(marray.Leaf(a).Sub(marray.Leaf(b))).Eval()
	fmt.Println(out.Data())

	// Output:
	// [8 12 16]
}
