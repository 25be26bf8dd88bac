package tensor

import (
	"fmt"

	"github.com/x448/float16"
)

// plain is every storage type Go can convert between with a plain conversion.
type plain interface {
	float32 | float64 | int32 | int64 | uint8
}

// Cast converts the tensor to a different data type.
// Returns x itself if it already has the requested type.
//
// Float to integer conversion truncates toward zero; narrowing integer
// conversion wraps. float16 values go through float32.
func Cast(x *RawTensor, dtype DataType) *RawTensor {
	// No-op if same dtype
	if x.DType() == dtype {
		return x
	}

	result, err := NewRaw(x.Shape(), dtype)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	switch x.DType() {
	case Float16:
		src := x.AsFloat16()
		wide := make([]float32, len(src))
		for i, v := range src {
			wide[i] = v.Float32()
		}
		castInto(result, wide)
	case Float32:
		castInto(result, x.AsFloat32())
	case Float64:
		castInto(result, x.AsFloat64())
	case Int32:
		castInto(result, x.AsInt32())
	case Int64:
		castInto(result, x.AsInt64())
	case Uint8:
		castInto(result, x.AsUint8())
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %v", x.DType()))
	}

	return result
}

func castInto[S plain](result *RawTensor, src []S) {
	switch result.DType() {
	case Float16:
		dst := result.AsFloat16()
		for i, v := range src {
			dst[i] = float16.Fromfloat32(float32(v))
		}
	case Float32:
		convert(result.AsFloat32(), src)
	case Float64:
		convert(result.AsFloat64(), src)
	case Int32:
		convert(result.AsInt32(), src)
	case Int64:
		convert(result.AsInt64(), src)
	case Uint8:
		convert(result.AsUint8(), src)
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %v", result.DType()))
	}
}

func convert[D, S plain](dst []D, src []S) {
	for i, v := range src {
		dst[i] = D(v)
	}
}
