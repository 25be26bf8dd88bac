package tensor

// Promote returns the data type two operands are computed and accumulated in.
//
// Rules:
//   - float64 with anything → float64
//   - float16 with float32, or float16 with float16 → float32
//   - uint8 with float16/float32 → float32
//   - int32/int64 with float16/float32 → float64 (float32 cannot hold every int32)
//   - int64 with int32/uint8 → int64
//   - uint8 with int32, or uint8 with uint8 → int32
//
// The result is always a Numeric type, so float16 and uint8 never reach a kernel.
func Promote(a, b DataType) DataType {
	if a == b {
		return Widen(a)
	}
	if a == Float64 || b == Float64 {
		return Float64
	}

	switch {
	case a.IsFloat() && b.IsFloat():
		return Float32
	case a.IsFloat() || b.IsFloat():
		other := a
		if a.IsFloat() {
			other = b
		}
		if other == Uint8 {
			return Float32
		}
		return Float64
	case a == Int64 || b == Int64:
		return Int64
	default:
		return Int32
	}
}

// Widen maps storage-only types to the type their sums are accumulated in.
func Widen(dt DataType) DataType {
	switch dt {
	case Float16:
		return Float32
	case Uint8:
		return Int32
	default:
		return dt
	}
}
