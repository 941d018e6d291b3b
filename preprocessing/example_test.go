package preprocessing_test

import (
	"fmt"

	"github.com/scimlstudio/scimlstudio/core/tensor"
	"github.com/scimlstudio/scimlstudio/preprocessing"
)

// ExampleStandardScaler demonstrates basic usage of StandardScaler
func ExampleStandardScaler() {
	X, _ := tensor.NewTensor([]float64{
		1.0, 2.0,
		3.0, 4.0,
		5.0, 6.0,
		7.0, 8.0,
	}, 4, 2)

	scaler, err := preprocessing.NewStandardScaler(X)
	if err != nil {
		return
	}

	scaled, err := scaler.Transform(X)
	if err != nil {
		return
	}

	fmt.Printf("Scaled first row: [%.2f, %.2f]\n", scaled.At(0, 0), scaled.At(0, 1))

	// Output: Scaled first row: [-1.16, -1.16]
}

// ExampleRangeScaler demonstrates per-column target intervals
func ExampleRangeScaler() {
	X, _ := tensor.NewTensor([]float64{
		1.0, 10.0,
		2.0, 20.0,
		3.0, 30.0,
	}, 3, 2)
	low, _ := tensor.NewVector([]float64{-1.0, 0.0})
	high, _ := tensor.NewVector([]float64{1.0, 100.0})

	scaler, err := preprocessing.NewRangeScaler(X,
		preprocessing.WithTargetLow(low),
		preprocessing.WithTargetHigh(high))
	if err != nil {
		return
	}

	scaled, _ := scaler.Transform(X)
	for i := 0; i < 3; i++ {
		fmt.Printf("[%.1f, %.1f]\n", scaled.At(i, 0), scaled.At(i, 1))
	}

	// Output: [-1.0, 0.0]
	// [0.0, 50.0]
	// [1.0, 100.0]
}

// ExampleRangeScaler_InverseTransform demonstrates recovering original units
func ExampleRangeScaler_InverseTransform() {
	X, _ := tensor.NewTensor([]float64{
		0.0, 100.0,
		5.0, 200.0,
		10.0, 300.0,
	}, 3, 2)

	scaler, err := preprocessing.NewRangeScaler(X, preprocessing.WithFeatureRange(-1, 1))
	if err != nil {
		return
	}

	scaled, _ := tensor.NewTensor([]float64{0.5, -0.5}, 1, 2)
	original, _ := scaler.InverseTransform(scaled)
	fmt.Printf("[%.1f, %.1f]\n", original.At(0, 0), original.At(0, 1))

	// Output: [7.5, 125.0]
}
