package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMM(t *testing.T) {
	a, err := FromValues(Float32, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	b, err := FromValues(Float32, []int{3, 2}, []float64{7, 8, 9, 10, 11, 12})
	require.NoError(t, err)

	got, err := MM(a, b)
	require.NoError(t, err)

	want, err := FromValues(Float32, []int{2, 2}, []float64{58, 64, 139, 154})
	require.NoError(t, err)
	assert.True(t, Equal(got, want), "expected %v, got %v", want.Values(), got.Values())
	assert.Equal(t, Float32, got.DType())
}

func TestMM_Errors(t *testing.T) {
	tests := []struct {
		name    string
		a, b    *Tensor
		wantErr error
	}{
		{
			name:    "inner dimension mismatch",
			a:       New(Float32, 2, 3),
			b:       New(Float32, 2, 3),
			wantErr: ErrShapeMismatch,
		},
		{
			name:    "rank 3 operand",
			a:       New(Float32, 2, 3, 1),
			b:       New(Float32, 3, 2),
			wantErr: ErrShapeMismatch,
		},
		{
			name:    "dtype mismatch",
			a:       New(Float32, 2, 2),
			b:       New(Float64, 2, 2),
			wantErr: ErrDTypeMismatch,
		},
		{
			name:    "integer operands",
			a:       New(Int64, 2, 2),
			b:       New(Int64, 2, 2),
			wantErr: ErrDTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MM(tt.a, tt.b)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTanh(t *testing.T) {
	x, err := FromValues(Float64, []int{3}, []float64{-1, 0, 1})
	require.NoError(t, err)

	got, err := Tanh(x)
	require.NoError(t, err)
	for i, v := range []float64{-1, 0, 1} {
		assert.InDelta(t, math.Tanh(v), got.At(i), 1e-12, "element %d", i)
	}

	_, err = Tanh(New(Int8, 2))
	assert.ErrorIs(t, err, ErrDTypeMismatch)
}

func TestFromValues_InvalidShape(t *testing.T) {
	_, err := FromValues(Float32, []int{2, 2}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = FromValues(Float32, []int{-1}, nil)
	assert.ErrorIs(t, err, ErrInvalidShape)

	assert.Panics(t, func() { New(Float32) })
}

func TestFromValues_IntegerConversion(t *testing.T) {
	tests := []struct {
		name  string
		dtype DType
		in    float64
		want  float64
	}{
		{name: "int8 truncates toward zero", dtype: Int8, in: 3.9, want: 3},
		{name: "int8 truncates negative", dtype: Int8, in: -3.9, want: -3},
		{name: "int8 wraps above range", dtype: Int8, in: 300, want: 44},
		{name: "int8 wraps below range", dtype: Int8, in: -200, want: 56},
		{name: "int32 wraps above range", dtype: Int32, in: 1 << 31, want: -(1 << 31)},
		{name: "bool nonzero", dtype: Bool, in: -2, want: 1},
		{name: "bool zero", dtype: Bool, in: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := FromValues(tt.dtype, []int{1}, []float64{tt.in})
			require.NoError(t, err)
			assert.Equal(t, tt.want, x.At(0))
			assert.Equal(t, tt.dtype, x.DType())
		})
	}
}

func TestScalarTypeName(t *testing.T) {
	names := map[DType]string{
		Float32: "Float",
		Float64: "Double",
		Int8:    "Char",
		Int32:   "Int",
		Int64:   "Long",
		Bool:    "Bool",
	}
	for dtype, want := range names {
		assert.Equal(t, want, ScalarTypeName(dtype), "dtype %s", dtype)
	}
	assert.True(t, IsFloat(Float64))
	assert.False(t, IsFloat(Int32))
}

func TestEqual(t *testing.T) {
	a, err := FromValues(Float64, []int{2}, []float64{1, 2})
	require.NoError(t, err)
	b, err := FromValues(Float64, []int{2}, []float64{1, 2})
	require.NoError(t, err)
	c, err := FromValues(Float64, []int{2}, []float64{1, 3})
	require.NoError(t, err)

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.True(t, ShapeEqual(a.Shape(), []int{2}))
	assert.False(t, ShapeEqual(a.Shape(), []int{1, 2}))

	row, err := FromValues(Float64, []int{1, 2}, []float64{1, 2})
	require.NoError(t, err)
	assert.False(t, Equal(a, row), "a row vector is not equal to a vector")

	f32, err := FromValues(Float32, []int{2}, []float64{1, 2})
	require.NoError(t, err)
	assert.False(t, Equal(a, f32))
}

func TestString(t *testing.T) {
	assert.Equal(t, "tensor<[4,2]:float32>", New(Float32, 4, 2).String())
	assert.Equal(t, 2, New(Float32, 4, 2).Rank())
	assert.Equal(t, 8, New(Float32, 4, 2).Size())
}
