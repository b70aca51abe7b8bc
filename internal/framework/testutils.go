package framework

import (
	"math/rand"

	"tse2e/internal/tensor"
)

// DefaultSeed seeds TestUtils when no seed is configured.
const DefaultSeed int64 = 0

// TestUtils generates pseudo-random tensors for test invocations. Two
// instances created with the same seed produce the same sequence.
type TestUtils struct {
	rng *rand.Rand
}

// NewTestUtils creates a TestUtils seeded with seed.
func NewTestUtils(seed int64) *TestUtils {
	return &TestUtils{rng: rand.New(rand.NewSource(seed))}
}

// Rand returns a float32 tensor of the given shape with values uniform in [0, 1).
func (tu *TestUtils) Rand(shape ...int) *tensor.Tensor {
	return tu.RandDType(tensor.Float32, shape...)
}

// RandDType returns a tensor of the given dtype and shape. Floating point
// values are uniform in [0, 1); integer values are uniform in [0, 10);
// booleans are 0 or 1.
func (tu *TestUtils) RandDType(dtype tensor.DType, shape ...int) *tensor.Tensor {
	t := tensor.New(dtype, shape...)
	values := make([]float64, t.Size())
	for i := range values {
		switch {
		case dtype == tensor.Float32:
			values[i] = float64(tu.rng.Float32())
		case tensor.IsFloat(dtype):
			values[i] = tu.rng.Float64()
		case dtype == tensor.Bool:
			values[i] = float64(tu.rng.Intn(2))
		default:
			values[i] = float64(tu.rng.Intn(10))
		}
	}
	out, err := tensor.FromValues(dtype, shape, values)
	if err != nil {
		// the value count always matches the shape
		panic(err)
	}
	return out
}
