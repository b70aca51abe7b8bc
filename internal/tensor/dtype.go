package tensor

import (
	"fmt"

	gt "gorgonia.org/tensor"
)

// DType is the element type of a tensor.
type DType = gt.Dtype

// Element types supported by the harness.
var (
	Float32 = gt.Float32
	Float64 = gt.Float64
	Int8    = gt.Int8
	Int32   = gt.Int32
	Int64   = gt.Int64
	Bool    = gt.Bool
)

// ScalarTypeName returns the scalar type name used by class annotation
// reprs, e.g. "Float" for Float32.
func ScalarTypeName(d DType) string {
	switch d {
	case Float32:
		return "Float"
	case Float64:
		return "Double"
	case Int8:
		return "Char"
	case Int32:
		return "Int"
	case Int64:
		return "Long"
	case Bool:
		return "Bool"
	}
	return d.String()
}

// IsFloat reports whether d is a floating point type.
func IsFloat(d DType) bool {
	return d == Float32 || d == Float64
}

// backing converts values to a backing slice of dtype. Integer values are
// truncated toward zero and wrap on overflow.
func backing(dtype DType, values []float64) (interface{}, error) {
	switch dtype {
	case Float32:
		out := make([]float32, len(values))
		for i, v := range values {
			out[i] = float32(v)
		}
		return out, nil
	case Float64:
		out := make([]float64, len(values))
		copy(out, values)
		return out, nil
	case Int8:
		out := make([]int8, len(values))
		for i, v := range values {
			out[i] = int8(int64(v))
		}
		return out, nil
	case Int32:
		out := make([]int32, len(values))
		for i, v := range values {
			out[i] = int32(int64(v))
		}
		return out, nil
	case Int64:
		out := make([]int64, len(values))
		for i, v := range values {
			out[i] = int64(v)
		}
		return out, nil
	case Bool:
		out := make([]bool, len(values))
		for i, v := range values {
			out[i] = v != 0
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unsupported dtype %s", ErrDTypeMismatch, dtype)
}

// toFloat64 converts one element as returned by the backing storage.
func toFloat64(v interface{}) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	case int8:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	}
	panic(fmt.Sprintf("tensor: unsupported element type %T", v))
}
