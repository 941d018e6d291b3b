package pipeline

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/scimlstudio/scimlstudio/core/model"
	"github.com/scimlstudio/scimlstudio/core/tensor"
	"github.com/scimlstudio/scimlstudio/metrics"
	"github.com/scimlstudio/scimlstudio/pkg/errors"
	"github.com/scimlstudio/scimlstudio/pkg/log"
)

// MetricFunc scores predictions against true values. Lower or higher being
// better is up to the metric.
type MetricFunc func(yTrue, yPred mat.Matrix) (float64, error)

// ScaledModel runs a model on transformed data. Inputs pass through the input
// transformer before reaching the model; targets pass through the target
// transformer for training, and predictions are mapped back with its inverse.
type ScaledModel struct {
	model.BaseEstimator

	inner   model.Model
	inputs  model.Transformer
	targets model.Transformer
	metric  MetricFunc
}

var _ model.Model = (*ScaledModel)(nil)

// ScaledModelOption configures NewScaledModel.
type ScaledModelOption func(*ScaledModel)

// WithInputTransformer scales features before they reach the model.
func WithInputTransformer(t model.Transformer) ScaledModelOption {
	return func(m *ScaledModel) { m.inputs = t }
}

// WithTargetTransformer scales targets for training and unscales predictions.
func WithTargetTransformer(t model.Transformer) ScaledModelOption {
	return func(m *ScaledModel) { m.targets = t }
}

// WithMetric sets the metric used by Evaluate. Defaults to metrics.MSE.
func WithMetric(f MetricFunc) ScaledModelOption {
	return func(m *ScaledModel) { m.metric = f }
}

// NewScaledModel wraps inner. Transformers are used as given; fit them on the
// reference data before wrapping.
func NewScaledModel(inner model.Model, opts ...ScaledModelOption) (*ScaledModel, error) {
	if inner == nil {
		return nil, errors.NewValidationError("model", "must not be nil", nil)
	}

	m := &ScaledModel{
		inner:  inner,
		metric: metrics.MSE,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.metric == nil {
		return nil, errors.NewValidationError("metric", "must not be nil", nil)
	}

	m.ModelType = "ScaledModel"
	m.SetLogger(log.GetLoggerWithName("pipeline").With(log.ModelNameKey, m.ModelType))
	return m, nil
}

// Train scales X and y and trains the wrapped model on them.
func (m *ScaledModel) Train(X, y *tensor.Tensor) (err error) {
	defer errors.Recover(&err, "ScaledModel.Train")
	start := time.Now()

	Xs, err := apply(m.inputs, X, false)
	if err != nil {
		return errors.Wrap(err, "failed to scale inputs")
	}
	ys, err := apply(m.targets, y, false)
	if err != nil {
		return errors.Wrap(err, "failed to scale targets")
	}

	if err := m.inner.Train(Xs, ys); err != nil {
		m.LogError("Training failed", err, log.OperationKey, log.OperationTrain)
		return errors.NewModelError("ScaledModel.Train", "inner model failed", err)
	}

	m.SetFitted()
	r, c := X.Dims()
	m.LogInfo("Training completed",
		log.OperationKey, log.OperationTrain,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict scales X, predicts with the wrapped model and maps the predictions
// back to target units.
func (m *ScaledModel) Predict(X *tensor.Tensor) (_ *tensor.Tensor, err error) {
	defer errors.Recover(&err, "ScaledModel.Predict")
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError(m.ModelType, "Predict")
	}

	Xs, err := apply(m.inputs, X, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to scale inputs")
	}
	pred, err := m.inner.Predict(Xs)
	if err != nil {
		return nil, errors.NewModelError("ScaledModel.Predict", "inner model failed", err)
	}
	pred, err = apply(m.targets, pred, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unscale predictions")
	}

	m.LogDebug("Prediction completed",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
	)
	return pred, nil
}

// Evaluate scores Predict(X) against y in the target's original units.
func (m *ScaledModel) Evaluate(X, y *tensor.Tensor) (_ float64, err error) {
	defer errors.Recover(&err, "ScaledModel.Evaluate")
	if !m.IsFitted() {
		return 0, errors.NewNotFittedError(m.ModelType, "Evaluate")
	}
	if y == nil {
		return 0, errors.NewTypeError("ScaledModel.Evaluate", nil)
	}

	pred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	score, err := m.metric(y, pred)
	if err != nil {
		return 0, errors.Wrap(err, "failed to score predictions")
	}

	m.LogDebug("Evaluation completed",
		log.OperationKey, log.OperationEvaluate,
		"score", score,
	)
	return score, nil
}

// Inner returns the wrapped model.
func (m *ScaledModel) Inner() model.Model {
	return m.inner
}

func apply(t model.Transformer, X *tensor.Tensor, inverse bool) (*tensor.Tensor, error) {
	if X == nil {
		return nil, errors.NewTypeError("ScaledModel", nil)
	}
	if t == nil {
		return X, nil
	}
	if inverse {
		return t.InverseTransform(X)
	}
	return t.Transform(X)
}
