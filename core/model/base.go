// Package model defines the capability sets shared by scimlstudio components.
//
// Model is the contract a trainable model provides: Train, Predict and
// Evaluate. Transformer is the contract of a fitted, invertible preprocessing
// step such as the scalers in package preprocessing. Models consume
// transformers; transformers never depend on models.
//
// BaseEstimator carries the state every concrete model needs:
//
//	type MyModel struct {
//		model.BaseEstimator
//		// model-specific fields
//	}
//
//	func (m *MyModel) Train(X, y *tensor.Tensor) error {
//		// training logic
//		m.SetFitted()
//		return nil
//	}
package model

import (
	"github.com/scimlstudio/scimlstudio/pkg/log"
)

// EstimatorState represents the learning state of a model
type EstimatorState int

const (
	// NotFitted indicates the model is not yet trained
	NotFitted EstimatorState = iota
	// Fitted indicates the model has been trained
	Fitted
)

func (s EstimatorState) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "not_fitted"
}

// BaseEstimator is the base structure for models
type BaseEstimator struct {
	// State holds the model's learning state.
	State EstimatorState

	// ModelType identifies the type of model
	ModelType string

	logger log.Logger
}

// IsFitted returns whether the model has been trained.
func (e *BaseEstimator) IsFitted() bool {
	return e.State == Fitted
}

// SetFitted marks the estimator as trained. Called by model implementations
// at the end of a successful Train.
func (e *BaseEstimator) SetFitted() {
	e.State = Fitted
}

// Reset returns the estimator to its initial untrained state.
func (e *BaseEstimator) Reset() {
	e.State = NotFitted
}

// SetLogger sets the logger for this estimator.
//
// Example:
//
//	m.SetLogger(log.GetLoggerWithName("models").With(log.ModelNameKey, "Ridge"))
func (e *BaseEstimator) SetLogger(logger log.Logger) {
	e.logger = logger
}

// Logger returns the configured logger, or nil.
func (e *BaseEstimator) Logger() log.Logger {
	return e.logger
}

// LogInfo logs an info-level message if a logger is configured.
func (e *BaseEstimator) LogInfo(msg string, fields ...interface{}) {
	if e.logger != nil {
		e.logger.Info(msg, fields...)
	}
}

// LogDebug logs a debug-level message if a logger is configured.
func (e *BaseEstimator) LogDebug(msg string, fields ...interface{}) {
	if e.logger != nil {
		e.logger.Debug(msg, fields...)
	}
}

// LogWarn logs a warn-level message if a logger is configured.
func (e *BaseEstimator) LogWarn(msg string, fields ...interface{}) {
	if e.logger != nil {
		e.logger.Warn(msg, fields...)
	}
}

// LogError logs err at error level if a logger is configured.
func (e *BaseEstimator) LogError(msg string, err error, fields ...interface{}) {
	if e.logger != nil {
		e.logger.Error(msg, append([]interface{}{log.ErrorKey, err}, fields...)...)
	}
}
