// Package pipeline composes fitted transformers and wraps models with
// preprocessing and postprocessing steps.
//
// A Pipeline chains model.Transformer steps: Transform applies them in order
// and InverseTransform undoes them in reverse order. A ScaledModel runs a
// model.Model on scaled inputs and reports predictions in the target's
// original units.
package pipeline

import (
	"fmt"
	"time"

	"github.com/scimlstudio/scimlstudio/core/model"
	"github.com/scimlstudio/scimlstudio/core/tensor"
	"github.com/scimlstudio/scimlstudio/pkg/errors"
	"github.com/scimlstudio/scimlstudio/pkg/log"
)

// Step is a named transformer in a Pipeline.
type Step struct {
	Name        string
	Transformer model.Transformer
}

// Pipeline chains fitted transformers. It is immutable and itself a
// model.Transformer, so pipelines nest.
type Pipeline struct {
	steps  []Step
	logger log.Logger
}

var _ model.Transformer = (*Pipeline)(nil)

// New creates a Pipeline from steps. Step names must be non-empty and unique
// and every step needs a transformer.
func New(steps ...Step) (*Pipeline, error) {
	if len(steps) == 0 {
		return nil, errors.NewValidationError("steps", "pipeline needs at least one step", 0)
	}

	seen := make(map[string]struct{}, len(steps))
	for i, step := range steps {
		if step.Name == "" {
			return nil, errors.NewValidationError("step name", "must not be empty", i)
		}
		if _, dup := seen[step.Name]; dup {
			return nil, errors.NewValidationError("step name", "duplicate step name", step.Name)
		}
		seen[step.Name] = struct{}{}
		if step.Transformer == nil {
			return nil, errors.NewValidationError("pipeline step", "transformer must not be nil", step.Name)
		}
	}

	return &Pipeline{
		steps:  append([]Step(nil), steps...),
		logger: log.GetLoggerWithName("Pipeline"),
	}, nil
}

// Make creates a Pipeline naming the steps step1, step2, ...
func Make(transformers ...model.Transformer) (*Pipeline, error) {
	steps := make([]Step, len(transformers))
	for i, t := range transformers {
		steps[i] = Step{Name: fmt.Sprintf("step%d", i+1), Transformer: t}
	}
	return New(steps...)
}

// Transform applies every step in order.
func (p *Pipeline) Transform(X *tensor.Tensor) (_ *tensor.Tensor, err error) {
	defer errors.Recover(&err, "Pipeline.Transform")
	start := time.Now()

	Xt := X
	for _, step := range p.steps {
		Xt, err = step.Transformer.Transform(Xt)
		if err != nil {
			p.logger.Debug("Pipeline step failed", log.StepKey, step.Name, log.OperationKey, log.OperationTransform)
			return nil, errors.Wrapf(err, "failed to transform at step '%s'", step.Name)
		}
	}

	p.logger.Debug("Pipeline transform completed",
		log.OperationKey, log.OperationTransform,
		log.PhaseKey, log.PhasePreprocessing,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return Xt, nil
}

// InverseTransform applies the inverse of every step in reverse order.
func (p *Pipeline) InverseTransform(X *tensor.Tensor) (_ *tensor.Tensor, err error) {
	defer errors.Recover(&err, "Pipeline.InverseTransform")

	Xt := X
	for i := len(p.steps) - 1; i >= 0; i-- {
		step := p.steps[i]
		Xt, err = step.Transformer.InverseTransform(Xt)
		if err != nil {
			p.logger.Debug("Pipeline step failed", log.StepKey, step.Name, log.OperationKey, log.OperationInverseTransform)
			return nil, errors.Wrapf(err, "failed to inverse transform at step '%s'", step.Name)
		}
	}
	return Xt, nil
}

// Steps returns a copy of the steps.
func (p *Pipeline) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// NamedStep returns the transformer registered under name.
func (p *Pipeline) NamedStep(name string) (model.Transformer, bool) {
	for _, step := range p.steps {
		if step.Name == name {
			return step.Transformer, true
		}
	}
	return nil, false
}

// Len returns the number of steps.
func (p *Pipeline) Len() int {
	return len(p.steps)
}
