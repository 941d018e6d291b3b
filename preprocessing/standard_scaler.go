package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/scimlstudio/scimlstudio/core/tensor"
	scigoErrors "github.com/scimlstudio/scimlstudio/pkg/errors"
	"github.com/scimlstudio/scimlstudio/pkg/log"
)

// StdFloor is the smallest standard deviation NewStandardScaler derives from
// data. Columns with less spread are divided by StdFloor instead.
const StdFloor = 1e-8

// StandardScaler standardizes each column to zero mean and unit variance.
type StandardScaler struct {
	mean []float64
	std  []float64

	placement tensor.Placement
	logger    log.Logger
}

type standardConfig struct {
	mean, std *tensor.Tensor
}

// StandardOption configures NewStandardScaler.
type StandardOption func(*standardConfig)

// WithMean uses precomputed per-column means instead of deriving them from
// the data. mean must be 1D with one entry per column.
func WithMean(mean *tensor.Tensor) StandardOption {
	return func(c *standardConfig) { c.mean = mean }
}

// WithStd uses precomputed per-column standard deviations instead of deriving
// them from the data. std must be 1D with one strictly positive entry per
// column.
func WithStd(std *tensor.Tensor) StandardOption {
	return func(c *standardConfig) { c.std = std }
}

// NewStandardScaler fits a StandardScaler to X.
//
// Means default to the per-column arithmetic mean of X. Standard deviations
// default to the per-column sample standard deviation of X (n-1 denominator)
// floored at StdFloor; deriving them needs at least two rows. Supplied
// vectors are used as is and must already live on X's placement.
//
// Parameters:
//   - X: reference dataset of shape (n_samples, n_features)
//   - opts: optional precomputed mean and standard deviation
//
// Errors:
//   - ErrTypeMismatch: X is nil
//   - ErrShapeMismatch: X is not 2D, mean/std is not 1D with n_features entries,
//     or std is derived from fewer than two rows
//   - ErrInvalidParameter: a supplied std entry is not strictly positive
//   - ErrDeviceMismatch: a supplied mean/std is on a different placement than X
//
// Example:
//
//	scaler, err := preprocessing.NewStandardScaler(Y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	Z, err := scaler.Transform(Y) // column means ≈ 0, sample std ≈ 1
func NewStandardScaler(X *tensor.Tensor, opts ...StandardOption) (_ *StandardScaler, err error) {
	const op = "NewStandardScaler"
	defer scigoErrors.Recover(&err, op)

	if err := checkData(op, "data", X); err != nil {
		return nil, err
	}

	var cfg standardConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r, c := X.Dims()
	p := X.Placement()

	if cfg.mean != nil {
		if err := checkVector(op, "mean", cfg.mean, c); err != nil {
			return nil, err
		}
	}
	if cfg.std != nil {
		if err := checkVector(op, "std", cfg.std, c); err != nil {
			return nil, err
		}
		for j := 0; j < c; j++ {
			if v := cfg.std.AtVec(j); !(v > 0) {
				return nil, scigoErrors.NewParameterError(op, "std", j, v,
					"must be strictly positive; clamp to a small value to avoid division by zero")
			}
		}
	} else if r < 2 {
		return nil, scigoErrors.NewSampleCountError(op, 2, r)
	}
	for _, v := range []*tensor.Tensor{cfg.mean, cfg.std} {
		if v != nil && v.Placement() != p {
			return nil, scigoErrors.NewPlacementError(op, p, v.Placement())
		}
	}

	s := &StandardScaler{
		mean:      make([]float64, c),
		std:       make([]float64, c),
		placement: p,
		logger:    newLogger("StandardScaler"),
	}
	for j := 0; j < c; j++ {
		mean, std := stat.MeanStdDev(X.Col(j), nil)
		if cfg.mean != nil {
			mean = cfg.mean.AtVec(j)
		}
		if cfg.std != nil {
			std = cfg.std.AtVec(j)
		} else {
			std = math.Max(std, StdFloor)
		}
		s.mean[j] = p.Round(mean)
		s.std[j] = p.Round(std)
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

// Transform standardizes X column by column: (X - mean) / std.
//
// Errors:
//   - ErrTypeMismatch: X is nil
//   - ErrShapeMismatch: X is not 2D or has a different number of columns than the fitted data
//   - ErrDeviceMismatch: X is on a different placement than the fitted parameters
func (s *StandardScaler) Transform(X *tensor.Tensor) (_ *tensor.Tensor, err error) {
	const op = "StandardScaler.Transform"
	defer scigoErrors.Recover(&err, op)

	if err := checkInput(op, X, s.NFeatures(), s.placement); err != nil {
		return nil, err
	}

	return mapColumns(X, func(j int, v float64) float64 {
		return (v - s.mean[j]) / s.std[j]
	})
}

// InverseTransform removes the standardization: X * std + mean. It has the
// same preconditions as Transform.
func (s *StandardScaler) InverseTransform(X *tensor.Tensor) (_ *tensor.Tensor, err error) {
	const op = "StandardScaler.InverseTransform"
	defer scigoErrors.Recover(&err, op)

	if err := checkInput(op, X, s.NFeatures(), s.placement); err != nil {
		return nil, err
	}

	return mapColumns(X, func(j int, v float64) float64 {
		return v*s.std[j] + s.mean[j]
	})
}

// NFeatures returns the number of columns the scaler was fitted on.
func (s *StandardScaler) NFeatures() int {
	return len(s.mean)
}

// Placement returns the placement of the fitted parameters.
func (s *StandardScaler) Placement() tensor.Placement {
	return s.placement
}

// Mean returns the per-column means.
func (s *StandardScaler) Mean() *tensor.Tensor {
	return vectorOn(s.placement, s.mean)
}

// Std returns the per-column standard deviations.
func (s *StandardScaler) Std() *tensor.Tensor {
	return vectorOn(s.placement, s.std)
}

// GetParams returns the scaler's configuration.
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_features": s.NFeatures(),
		"placement":  s.placement.String(),
		"std_floor":  StdFloor,
	}
}

func (s *StandardScaler) String() string {
	return fmt.Sprintf("StandardScaler(n_features=%d, placement=%s)", s.NFeatures(), s.placement)
}
