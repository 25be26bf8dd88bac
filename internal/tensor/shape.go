package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
// An empty shape has one element, which is what the flattened channel and
// batch groups rely on.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Concat joins shapes end to end into a new shape.
//
//	Concat(Shape{2}, Shape{3, 4}, nil, Shape{5}) → (2, 3, 4, 5)
func Concat(shapes ...Shape) Shape {
	n := 0
	for _, s := range shapes {
		n += len(s)
	}
	out := make(Shape, 0, n)
	for _, s := range shapes {
		out = append(out, s...)
	}
	return out
}

// Offset returns the linear offset of a multi-index under the given strides.
// No bounds checking is done.
func Offset(indices, strides []int) int {
	off := 0
	for i, idx := range indices {
		off += idx * strides[i]
	}
	return off
}

// Unravel writes the row-major multi-index of the linear position flat into dst.
// len(dst) must equal len(s).
func (s Shape) Unravel(flat int, dst []int) {
	for i := len(s) - 1; i >= 0; i-- {
		dst[i] = flat % s[i]
		flat /= s[i]
	}
}
