// Package tensor provides the dense storage types used by the Hankel views and contractions.
package tensor

import "github.com/x448/float16"

// DType is a constraint for supported tensor element types.
// It uses Go generics to ensure compile-time type safety.
type DType interface {
	float16.Float16 | float32 | float64 | int32 | int64 | uint8
}

// Numeric is the subset of DType that contraction kernels compute in.
// Narrow types (float16, uint8) are widened into one of these first, see Promote.
type Numeric interface {
	float32 | float64 | int32 | int64
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Float16
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Float16:
		return 2
	case Uint8:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Float16:
		return "float16"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float16 || dt == Float32 || dt == Float64
}

// DataTypeOf returns the runtime DataType for T.
func DataTypeOf[T DType]() DataType {
	var dummy T
	return inferDataType(dummy)
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case float16.Float16:
		return Float16
	default:
		panic("unsupported type")
	}
}
