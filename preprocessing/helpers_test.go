package preprocessing_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/scimlstudio/scimlstudio/core/tensor"
)

const tol = 1e-6

func randomTensor(t *testing.T, seed uint64, rows, cols int, p tensor.Placement) *tensor.Tensor {
	t.Helper()
	rng := rand.New(rand.NewSource(int64(seed)))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.Float64()
	}
	x, err := tensor.NewTensorOn(p, data, rows, cols)
	require.NoError(t, err)
	return x
}

func vector(t *testing.T, values ...float64) *tensor.Tensor {
	t.Helper()
	v, err := tensor.NewVector(values)
	require.NoError(t, err)
	return v
}

func matrix(t *testing.T, rows, cols int, values ...float64) *tensor.Tensor {
	t.Helper()
	x, err := tensor.NewTensor(values, rows, cols)
	require.NoError(t, err)
	return x
}

func requireClose(t *testing.T, expected, actual *tensor.Tensor, delta float64) {
	t.Helper()
	require.Equal(t, expected.Shape(), actual.Shape())
	require.True(t, floats.EqualApprox(expected.RawData(), actual.RawData(), delta),
		"expected %v, got %v", expected.RawData(), actual.RawData())
}
