package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/scimlstudio/scimlstudio/core/tensor"
	scigoErrors "github.com/scimlstudio/scimlstudio/pkg/errors"
	"github.com/scimlstudio/scimlstudio/pkg/log"
)

// RangeScaler rescales each column affinely from its observed [min, max]
// into an independently specified target interval [low, high].
type RangeScaler struct {
	observedMin []float64
	observedMax []float64
	targetLow   []float64
	targetHigh  []float64

	placement tensor.Placement
	logger    log.Logger
}

type rangeConfig struct {
	low, high    *tensor.Tensor
	featureRange *[2]float64
}

// RangeOption configures NewRangeScaler.
type RangeOption func(*rangeConfig)

// WithTargetLow sets the per-column lower bounds of the target interval.
// low must be 1D with one entry per column. Defaults to zeros.
func WithTargetLow(low *tensor.Tensor) RangeOption {
	return func(c *rangeConfig) { c.low = low }
}

// WithTargetHigh sets the per-column upper bounds of the target interval.
// high must be 1D with one entry per column. Defaults to ones.
func WithTargetHigh(high *tensor.Tensor) RangeOption {
	return func(c *rangeConfig) { c.high = high }
}

// WithFeatureRange uses the same target interval [low, high] for every
// column. WithTargetLow and WithTargetHigh take precedence over it.
func WithFeatureRange(low, high float64) RangeOption {
	return func(c *rangeConfig) { c.featureRange = &[2]float64{low, high} }
}

// NewRangeScaler fits a RangeScaler to X.
//
// The observed minimum and maximum of every column are computed from X. The
// target interval of column j is [low[j], high[j]], where low and high come
// from the options or default to 0 and 1. Bounds are converted to X's
// placement.
//
// Parameters:
//   - X: reference dataset of shape (n_samples, n_features)
//   - opts: optional target bounds
//
// Errors:
//   - ErrTypeMismatch: X is nil
//   - ErrShapeMismatch: X is not 2D, or a bound is not 1D with n_features entries
//   - ErrInvalidBounds: high[j] <= low[j] for some column j
//
// Columns whose minimum equals their maximum are accepted, but transforming
// them divides by zero and yields non-finite values; a warning is logged.
//
// Example:
//
//	lb, _ := tensor.NewVector([]float64{-0.2, 0.0, 0.3, -1.0})
//	ub, _ := tensor.NewVector([]float64{0.7, 1.0, 1.2, -0.2})
//	scaler, err := preprocessing.NewRangeScaler(X,
//		preprocessing.WithTargetLow(lb), preprocessing.WithTargetHigh(ub))
func NewRangeScaler(X *tensor.Tensor, opts ...RangeOption) (_ *RangeScaler, err error) {
	const op = "NewRangeScaler"
	defer scigoErrors.Recover(&err, op)

	if err := checkData(op, "data", X); err != nil {
		return nil, err
	}

	var cfg rangeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r, c := X.Dims()
	p := X.Placement()

	defaultLow, defaultHigh := 0.0, 1.0
	if cfg.featureRange != nil {
		defaultLow, defaultHigh = cfg.featureRange[0], cfg.featureRange[1]
	}
	low, err := boundOrDefault(op, "targetLow", cfg.low, c, p, defaultLow)
	if err != nil {
		return nil, err
	}
	high, err := boundOrDefault(op, "targetHigh", cfg.high, c, p, defaultHigh)
	if err != nil {
		return nil, err
	}
	for j := 0; j < c; j++ {
		// negated to reject NaN bounds as well
		if !(high[j] > low[j]) {
			return nil, scigoErrors.NewBoundsError(op, j, low[j], high[j])
		}
	}

	s := &RangeScaler{
		observedMin: make([]float64, c),
		observedMax: make([]float64, c),
		targetLow:   low,
		targetHigh:  high,
		placement:   p,
		logger:      newLogger("RangeScaler"),
	}
	for j := 0; j < c; j++ {
		col := X.Col(j)
		s.observedMin[j] = floats.Min(col)
		s.observedMax[j] = floats.Max(col)
		if s.observedMin[j] == s.observedMax[j] {
			s.logger.Warn("Constant feature: transform will not be finite",
				log.ColumnKey, j,
			)
		}
	}

	s.logger.Debug("Scaler fitted",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhasePreprocessing,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.PlacementKey, p.String(),
	)
	return s, nil
}

func boundOrDefault(op, name string, b *tensor.Tensor, nFeatures int, p tensor.Placement, def float64) ([]float64, error) {
	if b == nil {
		t, err := tensor.Full(p, def, nFeatures)
		if err != nil {
			return nil, err
		}
		return t.RawData(), nil
	}
	if err := checkVector(op, name, b, nFeatures); err != nil {
		return nil, err
	}
	return b.To(p).RawData(), nil
}

// Transform scales every column of X into its target interval:
//
//	scaled = (X[:,j] - min[j]) / (max[j] - min[j])
//	result = scaled * (high[j] - low[j]) + low[j]
//
// Errors:
//   - ErrTypeMismatch: X is nil
//   - ErrShapeMismatch: X is not 2D or has a different number of columns than the fitted data
//   - ErrDeviceMismatch: X is on a different placement than the fitted data
func (s *RangeScaler) Transform(X *tensor.Tensor) (_ *tensor.Tensor, err error) {
	const op = "RangeScaler.Transform"
	defer scigoErrors.Recover(&err, op)

	if err := checkInput(op, X, s.NFeatures(), s.placement); err != nil {
		return nil, err
	}

	return mapColumns(X, func(j int, v float64) float64 {
		scaled := (v - s.observedMin[j]) / (s.observedMax[j] - s.observedMin[j])
		return scaled*(s.targetHigh[j]-s.targetLow[j]) + s.targetLow[j]
	})
}

// InverseTransform maps data from the target intervals back to the observed
// ranges. It is the exact inverse of Transform and has the same preconditions.
func (s *RangeScaler) InverseTransform(X *tensor.Tensor) (_ *tensor.Tensor, err error) {
	const op = "RangeScaler.InverseTransform"
	defer scigoErrors.Recover(&err, op)

	if err := checkInput(op, X, s.NFeatures(), s.placement); err != nil {
		return nil, err
	}

	return mapColumns(X, func(j int, v float64) float64 {
		unit := (v - s.targetLow[j]) / (s.targetHigh[j] - s.targetLow[j])
		return unit*(s.observedMax[j]-s.observedMin[j]) + s.observedMin[j]
	})
}

// NFeatures returns the number of columns the scaler was fitted on.
func (s *RangeScaler) NFeatures() int {
	return len(s.observedMin)
}

// Placement returns the placement of the fitted parameters.
func (s *RangeScaler) Placement() tensor.Placement {
	return s.placement
}

// ObservedMin returns the per-column minimum of the fitted data.
func (s *RangeScaler) ObservedMin() *tensor.Tensor {
	return vectorOn(s.placement, s.observedMin)
}

// ObservedMax returns the per-column maximum of the fitted data.
func (s *RangeScaler) ObservedMax() *tensor.Tensor {
	return vectorOn(s.placement, s.observedMax)
}

// TargetLow returns the per-column lower target bounds.
func (s *RangeScaler) TargetLow() *tensor.Tensor {
	return vectorOn(s.placement, s.targetLow)
}

// TargetHigh returns the per-column upper target bounds.
func (s *RangeScaler) TargetHigh() *tensor.Tensor {
	return vectorOn(s.placement, s.targetHigh)
}

// GetParams returns the scaler's configuration.
func (s *RangeScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"target_low":  append([]float64(nil), s.targetLow...),
		"target_high": append([]float64(nil), s.targetHigh...),
		"n_features":  s.NFeatures(),
		"placement":   s.placement.String(),
	}
}

func (s *RangeScaler) String() string {
	return fmt.Sprintf("RangeScaler(n_features=%d, placement=%s)", s.NFeatures(), s.placement)
}
