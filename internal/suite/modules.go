package suite

import (
	"fmt"

	"tse2e/internal/annotations"
	"tse2e/internal/tensor"
)

func expectArgs(method string, want int, args []*tensor.Tensor) error {
	if len(args) != want {
		return fmt.Errorf("%s() takes %d arguments but %d were given", method, want, len(args))
	}
	return nil
}

func dynamicMatrix() *annotations.ArgAnnotation {
	return annotations.Arg([]int{-1, -1}, tensor.Float32)
}

// MmModule multiplies two matrices.
type MmModule struct{}

func (m *MmModule) ClassType() *annotations.ClassType {
	return &annotations.ClassType{
		QualifiedName: "__torch__.MmModule",
		Attributes:    []annotations.Attribute{{Name: "training"}},
		Methods: []annotations.Method{
			{
				Name:    "forward",
				NumArgs: 3,
				Export:  true,
				Args:    []*annotations.ArgAnnotation{nil, dynamicMatrix(), dynamicMatrix()},
			},
		},
	}
}

func (m *MmModule) Forward(args ...*tensor.Tensor) (*tensor.Tensor, error) {
	if err := expectArgs("forward", 2, args); err != nil {
		return nil, err
	}
	return tensor.MM(args[0], args[1])
}

// TanhModule applies tanh to a [2, 3, ?] tensor.
type TanhModule struct{}

func (m *TanhModule) ClassType() *annotations.ClassType {
	return &annotations.ClassType{
		QualifiedName: "__torch__.TanhModule",
		Attributes:    []annotations.Attribute{{Name: "training"}},
		Methods: []annotations.Method{
			{
				Name:    "forward",
				NumArgs: 2,
				Export:  true,
				Args: []*annotations.ArgAnnotation{
					nil,
					annotations.Arg([]int{2, 3, -1}, tensor.Float32),
				},
			},
		},
	}
}

func (m *TanhModule) Forward(args ...*tensor.Tensor) (*tensor.Tensor, error) {
	if err := expectArgs("forward", 1, args); err != nil {
		return nil, err
	}
	return tensor.Tanh(args[0])
}

// MmTanhModule computes tanh(lhs x rhs) through an internal matmul method
// that is not exported.
type MmTanhModule struct{}

func (m *MmTanhModule) ClassType() *annotations.ClassType {
	return &annotations.ClassType{
		QualifiedName: "__torch__.MmTanhModule",
		Attributes:    []annotations.Attribute{{Name: "training"}},
		Methods: []annotations.Method{
			{
				Name:    "forward",
				NumArgs: 3,
				Export:  true,
				Args:    []*annotations.ArgAnnotation{nil, dynamicMatrix(), dynamicMatrix()},
			},
			{Name: "matmul", NumArgs: 3},
		},
	}
}

func (m *MmTanhModule) Forward(args ...*tensor.Tensor) (*tensor.Tensor, error) {
	if err := expectArgs("forward", 2, args); err != nil {
		return nil, err
	}
	product, err := m.matmul(args[0], args[1])
	if err != nil {
		return nil, err
	}
	return tensor.Tanh(product)
}

func (m *MmTanhModule) matmul(lhs, rhs *tensor.Tensor) (*tensor.Tensor, error) {
	return tensor.MM(lhs, rhs)
}
