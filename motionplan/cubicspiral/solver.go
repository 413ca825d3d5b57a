// Package cubicspiral solves for cubic curvature spirals, paths whose curvature is a cubic polynomial of arc
// length, connecting a start pose to an end pose. Each solve seeds Newton's method with a continuation from
// the straight path and then refines it against the real goal for a bounded number of iterations.
package cubicspiral

import (
	"context"

	"github.com/pkg/errors"

	"go.viam.com/cubicspiral/logging"
)

// Solver solves for cubic spirals. It holds no mutable state and is safe for concurrent use.
type Solver struct {
	opts     Options
	weights  []float64
	logger   logging.Logger
	executor Executor
}

// NewSolver creates a Solver with the given options; nil options select NewBasicOptions.
func NewSolver(logger logging.Logger, opts *Options) (*Solver, error) {
	if opts == nil {
		opts = NewBasicOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewBlankLogger("")
	}
	return &Solver{
		opts:     *opts,
		weights:  simpsonWeights(opts.SimpsonIntervals),
		logger:   logger.Sublogger("cubicspiral"),
		executor: ParallelExecutor{},
	}, nil
}

// WithExecutor returns a copy of the solver that dispatches batches on the given executor.
func (s *Solver) WithExecutor(executor Executor) *Solver {
	solver := *s
	solver.executor = executor
	return &solver
}

// Options returns the options the solver was created with.
func (s *Solver) Options() Options {
	return s.opts
}

// Solve finds the spiral from start to end. Failing to find one is not an error; it is reported by the result.
func (s *Solver) Solve(start, end Pose) Result {
	if !start.finite() || !end.finite() {
		s.logger.Debugw("refusing to solve cubic spiral", "start", start.String(), "end", end.String())
		return Result{Status: StatusInvalidPose}
	}
	goal := ToLocalGoal(start, end)
	seed := s.Relax(start.Curvature, goal)
	result := s.Refine(goal, seed)
	if result.Status == StatusSingularJacobian {
		s.logger.Warnw("singular jacobian while solving cubic spiral", "start", start.String(), "end", end.String())
	}
	s.logger.Debugw("solved cubic spiral",
		"status", result.Status.String(),
		"iterations", result.Iterations,
		"residual", result.Residual,
		"arc_length", result.ArcLength,
	)
	return result
}

// SolveBatch solves every (starts[i], ends[i]) pair independently and returns the results in the same order. An error
// is only returned if the inputs are mismatched or ctx is done before every pair is solved.
func (s *Solver) SolveBatch(ctx context.Context, starts, ends []Pose) ([]Result, error) {
	if len(starts) != len(ends) {
		return nil, errors.Errorf("got %d start poses but %d end poses", len(starts), len(ends))
	}
	results := make([]Result, len(starts))
	if err := s.executor.Run(ctx, len(starts), func(i int) {
		results[i] = s.Solve(starts[i], ends[i])
	}); err != nil {
		return nil, errors.Wrap(err, "cubic spiral batch interrupted")
	}

	converged := 0
	for _, r := range results {
		if r.Converged {
			converged++
		}
	}
	s.logger.CDebugw(ctx, "solved cubic spiral batch", "pairs", len(results), "converged", converged)
	return results, nil
}
