// Package metrics provides evaluation metrics for regression models.
//
//   - MSE: Mean Squared Error
//   - RMSE: Root Mean Squared Error
//   - MAE: Mean Absolute Error
//   - R2Score: coefficient of determination
//
// Every metric accepts two equally shaped gonum matrices (tensors qualify)
// and averages over all elements, so multi-output targets are scored as one
// flattened sample.
//
// Example usage:
//
//	mse, err := metrics.MSE(yTrue, yPred)
//	if err != nil {
//		log.Fatal(err)
//	}
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	scigoErrors "github.com/scimlstudio/scimlstudio/pkg/errors"
)

// flattenPair validates that yTrue and yPred have the same non-empty shape
// and returns their elements in row-major order.
func flattenPair(op string, yTrue, yPred mat.Matrix) ([]float64, []float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return nil, nil, scigoErrors.NewValueError(op, "empty input")
	}
	if rTrue != rPred {
		return nil, nil, scigoErrors.NewDimensionError(op, rTrue, rPred, 0)
	}
	if cTrue != cPred {
		return nil, nil, scigoErrors.NewDimensionError(op, cTrue, cPred, 1)
	}

	t := make([]float64, 0, rTrue*cTrue)
	p := make([]float64, 0, rTrue*cTrue)
	for i := 0; i < rTrue; i++ {
		for j := 0; j < cTrue; j++ {
			t = append(t, yTrue.At(i, j))
			p = append(p, yPred.At(i, j))
		}
	}
	return t, p, nil
}

// MSE calculates the Mean Squared Error between true and predicted values.
//
// Errors:
//   - ValueError: if the inputs are empty
//   - ErrShapeMismatch: if yTrue and yPred have different shapes
func MSE(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := flattenPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	d := floats.Distance(t, p, 2)
	return d * d / float64(len(t)), nil
}

// RMSE calculates the Root Mean Squared Error, in the units of the target.
func RMSE(yTrue, yPred mat.Matrix) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE calculates the Mean Absolute Error between true and predicted values.
func MAE(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := flattenPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Distance(t, p, 1) / float64(len(t)), nil
}

// R2Score calculates the coefficient of determination R² = 1 - RSS/TSS.
// It fails when yTrue has no variance.
func R2Score(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := flattenPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if floats.Max(t) == floats.Min(t) {
		return 0, scigoErrors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}
	return stat.RSquaredFrom(p, t, nil), nil
}
