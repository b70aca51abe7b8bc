// Package tensor adapts gorgonia dense tensors to the small surface the
// suite modules and argument checks need.
package tensor

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	gt "gorgonia.org/tensor"
)

var (
	// ErrShapeMismatch indicates incompatible tensor shapes for an operation.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrInvalidShape indicates an invalid tensor shape.
	ErrInvalidShape = errors.New("tensor: invalid shape")

	// ErrDTypeMismatch indicates operands with different or unsupported element types.
	ErrDTypeMismatch = errors.New("tensor: dtype mismatch")
)

// engine runs the kernels behind MM and Tanh.
var engine = gt.StdEng{}

// Tensor is a dense row-major array backed by a gorgonia *Dense.
//
// Tensor is not safe for concurrent mutation.
type Tensor struct {
	dense *gt.Dense
}

func checkShape(shape []int) error {
	if len(shape) == 0 {
		return fmt.Errorf("%w: rank 0 tensors are not supported", ErrInvalidShape)
	}
	for _, dim := range shape {
		if dim <= 0 {
			return fmt.Errorf("%w: %v", ErrInvalidShape, shape)
		}
	}
	return nil
}

// New creates a zero-filled tensor of the given dtype and shape.
// Panics on an empty shape or non-positive dimensions.
func New(dtype DType, shape ...int) *Tensor {
	if err := checkShape(shape); err != nil {
		panic(err)
	}
	return &Tensor{dense: gt.New(gt.WithShape(append([]int(nil), shape...)...), gt.Of(dtype))}
}

// FromValues creates a tensor holding values in row-major order.
func FromValues(dtype DType, shape []int, values []float64) (*Tensor, error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	size := gt.Shape(shape).TotalSize()
	if size != len(values) {
		return nil, fmt.Errorf("%w: shape %v holds %d elements, got %d values", ErrInvalidShape, shape, size, len(values))
	}

	data, err := backing(dtype, values)
	if err != nil {
		return nil, err
	}
	return &Tensor{dense: gt.New(gt.WithShape(append([]int(nil), shape...)...), gt.WithBacking(data))}, nil
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() []int {
	return []int(t.dense.Shape().Clone())
}

// DType returns the element type.
func (t *Tensor) DType() DType {
	return t.dense.Dtype()
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return t.dense.Dims()
}

// Size returns the total number of elements.
func (t *Tensor) Size() int {
	return t.dense.Size()
}

// Values returns a copy of the elements in row-major order.
func (t *Tensor) Values() []float64 {
	out := make([]float64, 0, t.Size())
	switch data := t.dense.Data().(type) {
	case []float32:
		for _, v := range data {
			out = append(out, float64(v))
		}
	case []float64:
		out = append(out, data...)
	case []int8:
		for _, v := range data {
			out = append(out, float64(v))
		}
	case []int32:
		for _, v := range data {
			out = append(out, float64(v))
		}
	case []int64:
		for _, v := range data {
			out = append(out, float64(v))
		}
	case []bool:
		for _, v := range data {
			out = append(out, toFloat64(v))
		}
	}
	return out
}

// At returns the element at the given indices.
// Panics if indices are invalid.
func (t *Tensor) At(indices ...int) float64 {
	v, err := t.dense.At(indices...)
	if err != nil {
		panic(fmt.Sprintf("tensor: %v", err))
	}
	return toFloat64(v)
}

// String renders the tensor header, e.g. "tensor<[4,4]:float32>".
func (t *Tensor) String() string {
	shape := t.Shape()
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = fmt.Sprint(d)
	}
	return fmt.Sprintf("tensor<[%s]:%s>", strings.Join(dims, ","), t.DType())
}

// MM multiplies two rank-2 floating point tensors: (M, K) x (K, N) -> (M, N).
func MM(a, b *Tensor) (*Tensor, error) {
	if a.Rank() != 2 || b.Rank() != 2 {
		return nil, fmt.Errorf("%w: mm expects 2D operands, got %v and %v", ErrShapeMismatch, a.Shape(), b.Shape())
	}
	if a.DType() != b.DType() {
		return nil, fmt.Errorf("%w: mm got %s and %s", ErrDTypeMismatch, a.DType(), b.DType())
	}
	if !IsFloat(a.DType()) {
		return nil, fmt.Errorf("%w: mm requires floating point operands, got %s", ErrDTypeMismatch, a.DType())
	}
	as, bs := a.Shape(), b.Shape()
	if as[1] != bs[0] {
		return nil, fmt.Errorf("%w: mm inner dimensions %d and %d differ", ErrShapeMismatch, as[1], bs[0])
	}

	out := gt.New(gt.WithShape(as[0], bs[1]), gt.Of(a.DType()))
	if err := engine.MatMul(a.dense, b.dense, out); err != nil {
		return nil, fmt.Errorf("mm: %w", err)
	}
	return &Tensor{dense: out}, nil
}

// Tanh applies the hyperbolic tangent elementwise. Only floating point
// tensors are accepted.
func Tanh(x *Tensor) (*Tensor, error) {
	if !IsFloat(x.DType()) {
		return nil, fmt.Errorf("%w: tanh requires a floating point tensor, got %s", ErrDTypeMismatch, x.DType())
	}
	res, err := engine.Tanh(x.dense)
	if err != nil {
		return nil, fmt.Errorf("tanh: %w", err)
	}
	out, ok := res.(*gt.Dense)
	if !ok {
		return nil, fmt.Errorf("tanh: unexpected result type %T", res)
	}
	return &Tensor{dense: out}, nil
}

// Equal reports whether a and b have the same dtype, shape and values.
func Equal(a, b *Tensor) bool {
	if a.DType() != b.DType() || !ShapeEqual(a.Shape(), b.Shape()) {
		return false
	}
	return a.dense.Eq(b.dense)
}

// ShapeEqual reports whether two shapes are identical. Unlike Shape.Eq a
// row vector [1, n] does not equal [n].
func ShapeEqual(a, b []int) bool {
	return slices.Equal(a, b)
}
