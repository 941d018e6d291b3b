package model

import "github.com/scimlstudio/scimlstudio/core/tensor"

// Trainer is implemented by models that learn from labelled data.
type Trainer interface {
	Train(X, y *tensor.Tensor) error
}

// Predictor is implemented by models that produce predictions.
type Predictor interface {
	Predict(X *tensor.Tensor) (*tensor.Tensor, error)
}

// Evaluator is implemented by models that score themselves on labelled data.
type Evaluator interface {
	Evaluate(X, y *tensor.Tensor) (float64, error)
}

// Model is the capability set of a trainable model. It carries no behaviour;
// concrete models provide all three operations.
type Model interface {
	Trainer
	Predictor
	Evaluator
}

// Transformer is a fitted, invertible per-column transform.
type Transformer interface {
	// Transform maps X into the transformed space.
	Transform(X *tensor.Tensor) (*tensor.Tensor, error)

	// InverseTransform maps transformed data back to the original space.
	InverseTransform(X *tensor.Tensor) (*tensor.Tensor, error)
}
