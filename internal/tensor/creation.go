package tensor

import (
	"math/rand/v2"

	"github.com/x448/float16"
)

// Zeros creates a tensor filled with zeros.
// Panics if shape has a non-positive dimension.
//
// Example:
//
//	t := tensor.Zeros[float32](Shape{3, 4})
func Zeros[T DType](shape Shape) *Tensor[T] {
	raw, err := NewRaw(shape, DataTypeOf[T]())
	if err != nil {
		panic(err)
	}

	// Data is already zero-initialized by make()
	return New[T](raw)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14)
func Full[T DType](shape Shape, value T) *Tensor[T] {
	t := Zeros[T](shape)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Arange creates a tensor of the given shape holding 0, 1, 2, ... in row-major order.
// Distinct values make index arithmetic mistakes visible in tests.
func Arange[T DType](shape Shape) *Tensor[T] {
	t := Zeros[T](shape)
	data := t.Data()
	for i := range data {
		data[i] = fromInt[T](i)
	}
	return t
}

// Rand creates a tensor with pseudo-random values drawn from rng.
// Float types are uniform in [-1, 1); integer types are uniform in [-4, 4]
// (uint8 in [0, 8]) so products and sums stay exactly representable.
//
//nolint:gosec // G404: math/rand is intended; callers seed rng for reproducibility
func Rand[T DType](shape Shape, rng *rand.Rand) *Tensor[T] {
	t := Zeros[T](shape)
	data := t.Data()

	switch d := any(data).(type) {
	case []float32:
		for i := range d {
			d[i] = float32(2*rng.Float64() - 1)
		}
	case []float64:
		for i := range d {
			d[i] = 2*rng.Float64() - 1
		}
	case []float16.Float16:
		for i := range d {
			d[i] = float16.Fromfloat32(float32(2*rng.Float64() - 1))
		}
	case []int32:
		for i := range d {
			d[i] = int32(rng.IntN(9) - 4)
		}
	case []int64:
		for i := range d {
			d[i] = int64(rng.IntN(9) - 4)
		}
	case []uint8:
		for i := range d {
			d[i] = uint8(rng.IntN(9))
		}
	}
	return t
}

func fromInt[T DType](v int) T {
	var out T
	switch p := any(&out).(type) {
	case *float32:
		*p = float32(v)
	case *float64:
		*p = float64(v)
	case *int32:
		*p = int32(v) //nolint:gosec // G115: test-sized values
	case *int64:
		*p = int64(v)
	case *uint8:
		*p = uint8(v) //nolint:gosec // G115: values past 255 wrap
	case *float16.Float16:
		*p = float16.Fromfloat32(float32(v))
	}
	return out
}
