// Package preprocessing provides feature-scaling utilities for machine learning.
//
// This package implements two per-column affine transforms:
//
//   - RangeScaler: maps every column from its observed [min, max] into an
//     independently chosen target interval
//   - StandardScaler: maps every column to zero mean and unit variance
//
// Both scalers are fitted once, at construction, from a reference dataset and
// are immutable afterwards. Transform and InverseTransform are pure functions
// of the fitted parameters and their input, so a scaler can be shared by any
// number of goroutines.
//
// Example usage:
//
//	scaler, err := preprocessing.NewRangeScaler(trainingData,
//		preprocessing.WithFeatureRange(-1, 1))
//	if err != nil {
//		log.Fatal(err)
//	}
//	scaled, err := scaler.Transform(testData)
//
// Inputs are *tensor.Tensor values. Fitted parameters live on the placement
// (device and precision) of the reference dataset, and every transformed array
// must share that placement.
package preprocessing

import (
	"github.com/scimlstudio/scimlstudio/core/model"
	"github.com/scimlstudio/scimlstudio/core/tensor"
	scigoErrors "github.com/scimlstudio/scimlstudio/pkg/errors"
	"github.com/scimlstudio/scimlstudio/pkg/log"
)

var (
	_ model.Transformer = (*RangeScaler)(nil)
	_ model.Transformer = (*StandardScaler)(nil)
)

func newLogger(component string) log.Logger {
	return log.GetLoggerWithName("preprocessing").With(log.ComponentKey, component)
}

// checkData validates a dataset argument: present and 2D.
func checkData(op, name string, X *tensor.Tensor) error {
	if X == nil {
		return scigoErrors.NewTypeError(op, nil)
	}
	if X.Ndim() != 2 {
		return scigoErrors.NewRankError(op, name, 2, X.Ndim())
	}
	return nil
}

// checkVector validates a per-column parameter vector: 1D with one entry per
// feature.
func checkVector(op, name string, v *tensor.Tensor, nFeatures int) error {
	if v.Ndim() != 1 {
		return scigoErrors.NewRankError(op, name, 1, v.Ndim())
	}
	if v.Len() != nFeatures {
		return scigoErrors.NewDimensionError(op, nFeatures, v.Len(), 0)
	}
	return nil
}

// checkInput validates an array passed to a fitted scaler.
func checkInput(op string, X *tensor.Tensor, nFeatures int, p tensor.Placement) error {
	if err := checkData(op, "input", X); err != nil {
		return err
	}
	if _, c := X.Dims(); c != nFeatures {
		return scigoErrors.NewDimensionError(op, nFeatures, c, 1)
	}
	if X.Placement() != p {
		return scigoErrors.NewPlacementError(op, p, X.Placement())
	}
	return nil
}

// mapColumns applies f to every element of X and returns the result on X's
// placement.
func mapColumns(X *tensor.Tensor, f func(j int, v float64) float64) (*tensor.Tensor, error) {
	r, c := X.Dims()
	out := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			k := i*c + j
			out[k] = f(j, X.AtVec(k))
		}
	}
	return tensor.NewTensorOn(X.Placement(), out, r, c)
}

// vectorOn returns a copy of values as a 1D tensor on p.
func vectorOn(p tensor.Placement, values []float64) *tensor.Tensor {
	t, err := tensor.NewTensorOn(p, append([]float64(nil), values...), len(values))
	if err != nil {
		panic(err)
	}
	return t
}
