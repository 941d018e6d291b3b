package preprocessing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/scimlstudio/scimlstudio/core/tensor"
	scigoErrors "github.com/scimlstudio/scimlstudio/pkg/errors"
	"github.com/scimlstudio/scimlstudio/preprocessing"
)

func columnStats(t *testing.T, X *tensor.Tensor) (means, stds []float64) {
	t.Helper()
	_, c := X.Dims()
	for j := 0; j < c; j++ {
		m, s := stat.MeanStdDev(X.Col(j), nil)
		means = append(means, m)
		stds = append(stds, s)
	}
	return means, stds
}

func TestStandardScaler_BasicFunctionality(t *testing.T) {
	// Feature 1: [1, 2, 3] -> mean=2, sample std=1
	// Feature 2: [4, 6, 8] -> mean=6, sample std=2
	X := matrix(t, 3, 2,
		1.0, 4.0,
		2.0, 6.0,
		3.0, 8.0,
	)

	scaler, err := preprocessing.NewStandardScaler(X)
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 6}, scaler.Mean().RawData())
	assert.InDeltaSlice(t, []float64{1, 2}, scaler.Std().RawData(), 1e-12)

	XScaled, err := scaler.Transform(X)
	require.NoError(t, err)
	requireClose(t, matrix(t, 3, 2, -1, -1, 0, 0, 1, 1), XScaled, 1e-12)
}

func TestStandardScaler_DerivedStatistics(t *testing.T) {
	Y := randomTensor(t, 10, 20, 5, tensor.DefaultPlacement)

	scaler, err := preprocessing.NewStandardScaler(Y)
	require.NoError(t, err)

	YScaled, err := scaler.Transform(Y)
	require.NoError(t, err)

	means, stds := columnStats(t, YScaled)
	for j := range means {
		assert.InDelta(t, 0.0, means[j], tol, "mean of column %d", j)
		assert.InDelta(t, 1.0, stds[j], tol, "std of column %d", j)
	}

	YRecovered, err := scaler.InverseTransform(YScaled)
	require.NoError(t, err)
	requireClose(t, Y, YRecovered, tol)
}

func TestStandardScaler_ExplicitParameters(t *testing.T) {
	Y := randomTensor(t, 11, 20, 5, tensor.DefaultPlacement)

	means, stds := columnStats(t, Y)
	for j := range stds {
		stds[j] = math.Max(stds[j], preprocessing.StdFloor)
	}

	scaler, err := preprocessing.NewStandardScaler(Y,
		preprocessing.WithMean(vector(t, means...)),
		preprocessing.WithStd(vector(t, stds...)))
	require.NoError(t, err)

	YScaled, err := scaler.Transform(Y)
	require.NoError(t, err)

	YRecovered, err := scaler.InverseTransform(YScaled)
	require.NoError(t, err)
	requireClose(t, Y, YRecovered, tol)

	scaledMeans, scaledStds := columnStats(t, YScaled)
	for j := range scaledMeans {
		assert.InDelta(t, 0.0, scaledMeans[j], tol)
		assert.InDelta(t, 1.0, scaledStds[j], tol)
	}
	assert.Equal(t, Y.Placement(), YScaled.Placement())
}

func TestStandardScaler_PartialParameters(t *testing.T) {
	X := matrix(t, 3, 2,
		1.0, 4.0,
		2.0, 6.0,
		3.0, 8.0,
	)

	// a supplied mean does not change the derived std
	scaler, err := preprocessing.NewStandardScaler(X, preprocessing.WithMean(vector(t, 0, 0)))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, scaler.Mean().RawData())
	assert.InDeltaSlice(t, []float64{1, 2}, scaler.Std().RawData(), 1e-12)

	scaler, err = preprocessing.NewStandardScaler(X, preprocessing.WithStd(vector(t, 4, 4)))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 6}, scaler.Mean().RawData())
	assert.Equal(t, []float64{4, 4}, scaler.Std().RawData())
}

func TestStandardScaler_InvalidStd(t *testing.T) {
	X := randomTensor(t, 12, 5, 3, tensor.DefaultPlacement)

	tests := []struct {
		name  string
		std   []float64
		index int
	}{
		{"zero", []float64{1, 0, 1}, 1},
		{"negative", []float64{1, 1, -0.5}, 2},
		{"nan", []float64{math.NaN(), 1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := preprocessing.NewStandardScaler(X, preprocessing.WithStd(vector(t, tt.std...)))
			require.ErrorIs(t, err, scigoErrors.ErrInvalidParameter)

			var paramErr *scigoErrors.ParameterError
			require.ErrorAs(t, err, &paramErr)
			assert.Equal(t, "std", paramErr.Param)
			assert.Equal(t, tt.index, paramErr.Index)
		})
	}
}

func TestStandardScaler_ShapeErrors(t *testing.T) {
	X := randomTensor(t, 13, 5, 3, tensor.DefaultPlacement)

	_, err := preprocessing.NewStandardScaler(vector(t, 1, 2, 3))
	assert.ErrorIs(t, err, scigoErrors.ErrShapeMismatch)

	_, err = preprocessing.NewStandardScaler(X, preprocessing.WithMean(matrix(t, 3, 1, 0, 0, 0)))
	var rankErr *scigoErrors.RankError
	require.ErrorAs(t, err, &rankErr)
	assert.Equal(t, "mean", rankErr.Name)

	_, err = preprocessing.NewStandardScaler(X, preprocessing.WithMean(vector(t, 0, 0)))
	assert.ErrorIs(t, err, scigoErrors.ErrShapeMismatch)

	_, err = preprocessing.NewStandardScaler(X,
		preprocessing.WithMean(vector(t, 0, 0, 0)),
		preprocessing.WithStd(vector(t, 1, 1, 1, 1)))
	var dimErr *scigoErrors.DimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 3, dimErr.Expected)
	assert.Equal(t, 4, dimErr.Got)

	scaler, err := preprocessing.NewStandardScaler(X)
	require.NoError(t, err)

	_, err = scaler.Transform(randomTensor(t, 14, 5, 2, tensor.DefaultPlacement))
	assert.ErrorIs(t, err, scigoErrors.ErrShapeMismatch)
	_, err = scaler.InverseTransform(randomTensor(t, 14, 5, 4, tensor.DefaultPlacement))
	assert.ErrorIs(t, err, scigoErrors.ErrShapeMismatch)
}

func TestStandardScaler_DeviceMismatch(t *testing.T) {
	X := randomTensor(t, 15, 5, 2, tensor.DefaultPlacement)

	gpuMean := vector(t, 0, 0).To(tensor.On("cuda:0", tensor.Float64))
	_, err := preprocessing.NewStandardScaler(X, preprocessing.WithMean(gpuMean))
	assert.ErrorIs(t, err, scigoErrors.ErrDeviceMismatch)

	halfStd := vector(t, 1, 1).To(tensor.On(tensor.CPU, tensor.Float32))
	_, err = preprocessing.NewStandardScaler(X, preprocessing.WithStd(halfStd))
	assert.ErrorIs(t, err, scigoErrors.ErrDeviceMismatch)

	scaler, err := preprocessing.NewStandardScaler(X)
	require.NoError(t, err)

	_, err = scaler.Transform(X.To(tensor.On("cuda:0", tensor.Float64)))
	assert.ErrorIs(t, err, scigoErrors.ErrDeviceMismatch)
	_, err = scaler.InverseTransform(X.To(tensor.On(tensor.CPU, tensor.Float32)))
	assert.ErrorIs(t, err, scigoErrors.ErrDeviceMismatch)
}

func TestStandardScaler_TypeErrors(t *testing.T) {
	_, err := preprocessing.NewStandardScaler(nil)
	assert.ErrorIs(t, err, scigoErrors.ErrTypeMismatch)

	scaler, err := preprocessing.NewStandardScaler(randomTensor(t, 16, 4, 2, tensor.DefaultPlacement))
	require.NoError(t, err)
	_, err = scaler.Transform(nil)
	assert.ErrorIs(t, err, scigoErrors.ErrTypeMismatch)
}

func TestStandardScaler_SingleSample(t *testing.T) {
	X := matrix(t, 1, 2, 3.0, 4.0)

	_, err := preprocessing.NewStandardScaler(X)
	assert.ErrorIs(t, err, scigoErrors.ErrShapeMismatch)
	var countErr *scigoErrors.SampleCountError
	require.ErrorAs(t, err, &countErr)
	assert.Equal(t, 1, countErr.Got)

	scaler, err := preprocessing.NewStandardScaler(X, preprocessing.WithStd(vector(t, 1, 2)))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, scaler.Mean().RawData())
}

func TestStandardScaler_ConstantFeature(t *testing.T) {
	X := matrix(t, 3, 2,
		5.0, 1.0,
		5.0, 2.0,
		5.0, 3.0,
	)

	scaler, err := preprocessing.NewStandardScaler(X)
	require.NoError(t, err)
	assert.Equal(t, preprocessing.StdFloor, scaler.Std().AtVec(0))

	XScaled, err := scaler.Transform(X)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, XScaled.At(i, 0))
	}
}

func TestStandardScaler_Float32Placement(t *testing.T) {
	p := tensor.On(tensor.CPU, tensor.Float32)
	Y := randomTensor(t, 17, 20, 3, p)

	scaler, err := preprocessing.NewStandardScaler(Y)
	require.NoError(t, err)
	assert.Equal(t, p, scaler.Mean().Placement())

	for _, v := range append(scaler.Mean().RawData(), scaler.Std().RawData()...) {
		assert.Equal(t, float64(float32(v)), v)
	}

	YScaled, err := scaler.Transform(Y)
	require.NoError(t, err)
	assert.Equal(t, p, YScaled.Placement())

	YRecovered, err := scaler.InverseTransform(YScaled)
	require.NoError(t, err)
	requireClose(t, Y, YRecovered, 1e-5)
}

func TestStandardScaler_String(t *testing.T) {
	scaler, err := preprocessing.NewStandardScaler(matrix(t, 2, 2, 1, 2, 3, 4))
	require.NoError(t, err)

	assert.Equal(t, "StandardScaler(n_features=2, placement=cpu/float64)", scaler.String())
	assert.Equal(t, preprocessing.StdFloor, scaler.GetParams()["std_floor"])
}
