package cubicspiral

import (
	"math"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// default values for solver options.
const (
	// Number of continuation steps used to build the Newton seed.
	defaultRelaxationIterations = 16

	// Max number of Newton-Raphson steps against the real goal.
	defaultNewtonIterations = 16

	// A candidate is accepted once |dx| + |dy| + |dtheta| drops below this.
	defaultConvergenceError = 0.01

	// Number of Simpson's rule intervals used to integrate the path. Must be even.
	defaultSimpsonIntervals = 16

	// Jacobians whose determinant magnitude is at or below this are treated as singular.
	defaultSingularityThreshold = 1e-12
)

// defaultSimpsonCoeffs are the Simpson's rule weights for defaultSimpsonIntervals intervals.
// These two must stay in sync.
var defaultSimpsonCoeffs = [defaultSimpsonIntervals + 1]float64{1, 4, 2, 4, 2, 4, 2, 4, 2, 4, 2, 4, 2, 4, 2, 4, 1}

// Options are the tunables of the cubic spiral solver. Fields left at their zero value are filled in from
// NewBasicOptions by OptionsFromAttributes.
type Options struct {
	// Number of continuation steps taken from the trivial problem to the real one.
	RelaxationIterations int `json:"relaxation_iterations"`

	// Max number of Newton steps against the real goal.
	NewtonIterations int `json:"newton_iterations"`

	// L1 pose error under which a path is considered to reach the goal.
	ConvergenceError float64 `json:"convergence_error"`

	// Number of Simpson's rule intervals; must be even and at least 2.
	SimpsonIntervals int `json:"simpson_intervals"`

	// Jacobian determinant magnitude at or below which a Newton step is abandoned.
	SingularityThreshold float64 `json:"singularity_threshold"`
}

// NewBasicOptions returns the default solver options.
func NewBasicOptions() *Options {
	return &Options{
		RelaxationIterations: defaultRelaxationIterations,
		NewtonIterations:     defaultNewtonIterations,
		ConvergenceError:     defaultConvergenceError,
		SimpsonIntervals:     defaultSimpsonIntervals,
		SingularityThreshold: defaultSingularityThreshold,
	}
}

// Validate ensures all options are usable by the solver.
func (opts *Options) Validate() error {
	if opts.RelaxationIterations < 1 {
		return errors.Errorf("relaxation_iterations must be at least 1, got %d", opts.RelaxationIterations)
	}
	if opts.NewtonIterations < 0 {
		return errors.Errorf("newton_iterations cannot be negative, got %d", opts.NewtonIterations)
	}
	if !(opts.ConvergenceError > 0) {
		return errors.Errorf("convergence_error must be positive, got %v", opts.ConvergenceError)
	}
	if opts.SimpsonIntervals < 2 || opts.SimpsonIntervals%2 != 0 {
		return errors.Errorf("simpson_intervals must be an even number of at least 2, got %d", opts.SimpsonIntervals)
	}
	if opts.SingularityThreshold < 0 {
		return errors.Errorf("singularity_threshold cannot be negative, got %v", opts.SingularityThreshold)
	}
	return nil
}

// OptionsFromAttributes decodes an attribute map, keyed by the json names of the Options fields, on top of the
// default options and validates the result.
func OptionsFromAttributes(attributes map[string]interface{}) (*Options, error) {
	opts := NewBasicOptions()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           opts,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncType(wholeNumberHook),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "invalid cubic spiral options")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// wholeNumberHook rejects fractional numbers bound for integer options, which mapstructure would otherwise truncate.
func wholeNumberHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.Int || (from.Kind() != reflect.Float64 && from.Kind() != reflect.Float32) {
		return data, nil
	}
	if f := reflect.ValueOf(data).Float(); f != math.Trunc(f) {
		return nil, errors.Errorf("expected an integer, got %v", f)
	}
	return data, nil
}

// simpsonWeights returns the composite Simpson's rule weights for an even number of intervals.
func simpsonWeights(intervals int) []float64 {
	if intervals == defaultSimpsonIntervals {
		return defaultSimpsonCoeffs[:]
	}
	weights := make([]float64, intervals+1)
	for i := range weights {
		switch {
		case i == 0 || i == intervals:
			weights[i] = 1
		case i%2 == 1:
			weights[i] = 4
		default:
			weights[i] = 2
		}
	}
	return weights
}
