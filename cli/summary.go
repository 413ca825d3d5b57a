package cli

import (
	"github.com/montanaflynn/stats"

	"go.viam.com/cubicspiral/motionplan/cubicspiral"
)

// batchSummary aggregates the results of a batch for logging and table footers.
type batchSummary struct {
	Pairs          int
	Converged      int
	MeanIterations float64
	MaxResidual    float64
}

func summarize(results []cubicspiral.Result) batchSummary {
	summary := batchSummary{Pairs: len(results)}
	if len(results) == 0 {
		return summary
	}
	iterations := make([]float64, 0, len(results))
	residuals := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Converged {
			summary.Converged++
		}
		iterations = append(iterations, float64(r.Iterations))
		if r.Status != cubicspiral.StatusInvalidPose {
			residuals = append(residuals, r.Residual)
		}
	}
	// stats only fails on empty input
	//nolint:errcheck
	summary.MeanIterations, _ = stats.Mean(iterations)
	if len(residuals) > 0 {
		//nolint:errcheck
		summary.MaxResidual, _ = stats.Max(residuals)
	}
	return summary
}

func (s batchSummary) keysAndValues() []interface{} {
	return []interface{}{
		"pairs", s.Pairs,
		"converged", s.Converged,
		"mean_iterations", s.MeanIterations,
		"max_residual", s.MaxResidual,
	}
}
