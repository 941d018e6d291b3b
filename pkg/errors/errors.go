// Package errors defines the error kinds raised by scimlstudio.
//
// Every failure is surfaced as a typed error that unwraps to one of the
// package sentinels, so callers can branch with errors.Is on the kind and
// errors.As on the concrete type:
//
//	_, err := scaler.Transform(X)
//	if errors.Is(err, errors.ErrShapeMismatch) {
//		var dimErr *errors.DimensionError
//		if errors.As(err, &dimErr) {
//			fmt.Println(dimErr.Expected, dimErr.Got)
//		}
//	}
//
// Wrapping helpers delegate to github.com/cockroachdb/errors so that wrapped
// errors carry a stack trace, printable with %+v.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors. Typed errors below unwrap to one of these.
var (
	// ErrTypeMismatch is returned when an input is not the expected array type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrShapeMismatch is returned on a wrong rank or column-count disagreement.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrInvalidBounds is returned when a target upper bound is not above its lower bound.
	ErrInvalidBounds = errors.New("invalid bounds")
	// ErrInvalidParameter is returned when a supplied parameter is out of its domain.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDeviceMismatch is returned when two arrays live on different placements.
	ErrDeviceMismatch = errors.New("device mismatch")
	// ErrNotFitted is returned when a model is used before training.
	ErrNotFitted = errors.New("not fitted")
	// ErrEmptyData is returned when an operation receives no samples.
	ErrEmptyData = errors.New("empty data")
	// ErrNotImplemented marks functionality a concrete model does not provide.
	ErrNotImplemented = errors.New("not implemented")
)

// DimensionError reports a length disagreement along one axis.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

// NewDimensionError creates a DimensionError.
func NewDimensionError(op string, expected, got, axis int) *DimensionError {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("scimlstudio: %s: dimension mismatch on axis %d: expected %d, got %d",
		e.Op, e.Axis, e.Expected, e.Got)
}

func (e *DimensionError) Unwrap() error { return ErrShapeMismatch }

// RankError reports an array with the wrong number of dimensions.
type RankError struct {
	Op       string
	Name     string
	Expected int
	Got      int
}

// NewRankError creates a RankError for the named argument.
func NewRankError(op, name string, expected, got int) *RankError {
	return &RankError{Op: op, Name: name, Expected: expected, Got: got}
}

func (e *RankError) Error() string {
	return fmt.Sprintf("scimlstudio: %s: %s must be %dD, got %dD", e.Op, e.Name, e.Expected, e.Got)
}

func (e *RankError) Unwrap() error { return ErrShapeMismatch }

// SampleCountError reports a dataset with too few rows for an estimate.
type SampleCountError struct {
	Op  string
	Min int
	Got int
}

// NewSampleCountError creates a SampleCountError.
func NewSampleCountError(op string, min, got int) *SampleCountError {
	return &SampleCountError{Op: op, Min: min, Got: got}
}

func (e *SampleCountError) Error() string {
	return fmt.Sprintf("scimlstudio: %s: at least %d samples are required, got %d", e.Op, e.Min, e.Got)
}

func (e *SampleCountError) Unwrap() error { return ErrShapeMismatch }

// TypeError reports an input that is not a supported array type.
type TypeError struct {
	Op  string
	Got string
}

// NewTypeError creates a TypeError describing the offending value.
func NewTypeError(op string, got interface{}) *TypeError {
	return &TypeError{Op: op, Got: fmt.Sprintf("%T", got)}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("scimlstudio: %s: unsupported input type %s", e.Op, e.Got)
}

func (e *TypeError) Unwrap() error { return ErrTypeMismatch }

// BoundsError reports a column whose target interval is empty or inverted.
type BoundsError struct {
	Op     string
	Column int
	Low    float64
	High   float64
}

// NewBoundsError creates a BoundsError for column.
func NewBoundsError(op string, column int, low, high float64) *BoundsError {
	return &BoundsError{Op: op, Column: column, Low: low, High: high}
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("scimlstudio: %s: upper bound %g must be greater than lower bound %g (column %d)",
		e.Op, e.High, e.Low, e.Column)
}

func (e *BoundsError) Unwrap() error { return ErrInvalidBounds }

// ParameterError reports an element of a parameter vector outside its domain.
type ParameterError struct {
	Op     string
	Param  string
	Index  int
	Value  float64
	Reason string
}

// NewParameterError creates a ParameterError for param[index].
func NewParameterError(op, param string, index int, value float64, reason string) *ParameterError {
	return &ParameterError{Op: op, Param: param, Index: index, Value: value, Reason: reason}
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("scimlstudio: %s: %s[%d]=%g: %s", e.Op, e.Param, e.Index, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }

// PlacementError reports arrays allocated on different devices or precisions.
type PlacementError struct {
	Op       string
	Expected string
	Got      string
}

// NewPlacementError creates a PlacementError. Placements are passed as
// fmt.Stringer values to keep this package free of array dependencies.
func NewPlacementError(op string, expected, got fmt.Stringer) *PlacementError {
	return &PlacementError{Op: op, Expected: expected.String(), Got: got.String()}
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("scimlstudio: %s: placement mismatch: expected %s, got %s", e.Op, e.Expected, e.Got)
}

func (e *PlacementError) Unwrap() error { return ErrDeviceMismatch }

// NotFittedError is returned when a model is used before it was trained.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError.
func NewNotFittedError(modelName, method string) *NotFittedError {
	return &NotFittedError{ModelName: modelName, Method: method}
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("scimlstudio: %s: this instance is not fitted yet; call Train before %s",
		e.ModelName, e.Method)
}

func (e *NotFittedError) Unwrap() error { return ErrNotFitted }

// ValueError reports an argument with an unusable value.
type ValueError struct {
	Op      string
	Message string
}

// NewValueError creates a ValueError.
func NewValueError(op, message string) *ValueError {
	return &ValueError{Op: op, Message: message}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("scimlstudio: %s: %s", e.Op, e.Message)
}

// ModelError attaches operation context to an underlying error.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

// NewModelError creates a ModelError wrapping err.
func NewModelError(op, kind string, err error) *ModelError {
	return &ModelError{Op: op, Kind: kind, Err: err}
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("scimlstudio: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// ValidationError reports a configuration value rejected at construction.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

// NewValidationError creates a ValidationError.
func NewValidationError(param, reason string, value interface{}) *ValidationError {
	return &ValidationError{ParamName: param, Reason: reason, Value: value}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scimlstudio: invalid %s (%v): %s", e.ParamName, e.Value, e.Reason)
}

// New creates an error with a stack trace.
func New(msg string) error { return errors.New(msg) }

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error { return errors.Newf(format, args...) }

// Wrap annotates err with msg. It returns nil if err is nil.
func Wrap(err error, msg string) error { return errors.Wrap(err, msg) }

// Wrapf annotates err with a formatted message. It returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Recover converts a panic in the calling function into an error stored in
// *errp. Use it as the first deferred call of a public operation:
//
//	func (s *RangeScaler) Transform(X *tensor.Tensor) (_ *tensor.Tensor, err error) {
//		defer errors.Recover(&err, "RangeScaler.Transform")
//		...
//	}
func Recover(errp *error, op string) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok {
		*errp = errors.Wrapf(e, "%s: recovered from panic", op)
		return
	}
	*errp = errors.Newf("%s: recovered from panic: %v", op, r)
}
