package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"go.viam.com/cubicspiral/motionplan/cubicspiral"
)

const plotSize = 6 * vg.Inch

// PlotAction solves every pair of a request file and draws the resulting spirals in the world frame.
func PlotAction(c *cli.Context) error {
	samples := c.Int(plotFlagSamples)
	if samples < 1 {
		return errors.Errorf("--%s must be at least 1, got %d", plotFlagSamples, samples)
	}
	req, err := readRequest(c.Path(batchFlagInput))
	if err != nil {
		return err
	}
	starts, ends, err := req.Poses()
	if err != nil {
		return err
	}
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	solver, err := newSolver(c, logger, req.Options)
	if err != nil {
		return err
	}
	results, err := solver.SolveBatch(batchContext(c), starts, ends)
	if err != nil {
		return err
	}

	p, err := plotSpirals(starts, ends, results, samples)
	if err != nil {
		return err
	}
	output := c.Path(batchFlagOutput)
	if err := p.Save(plotSize, plotSize, output); err != nil {
		return errors.Wrapf(err, "saving plot to %q", output)
	}
	logger.Infow("plot written", append([]interface{}{"output", output}, summarize(results).keysAndValues()...)...)
	return nil
}

// plotSpirals draws one line per converged spiral and marks every start and end pose. Pairs that did not converge
// only get their end markers.
func plotSpirals(starts, ends []cubicspiral.Pose, results []cubicspiral.Result, samples int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "cubic spirals"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	endpoints := make(plotter.XYs, 0, 2*len(results))
	for i, result := range results {
		endpoints = append(endpoints,
			plotter.XY{X: starts[i].X, Y: starts[i].Y},
			plotter.XY{X: ends[i].X, Y: ends[i].Y},
		)
		if !result.Converged {
			continue
		}
		poses := result.Spiral().Sample(starts[i], samples)
		points := make(plotter.XYs, len(poses))
		for j, pose := range poses {
			points[j].X = pose.X
			points[j].Y = pose.Y
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			return nil, errors.Wrapf(err, "plotting pair %d", i)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("pair %d", i), line)
	}

	p.Legend.Top = true
	if len(endpoints) > 0 {
		scatter, err := plotter.NewScatter(endpoints)
		if err != nil {
			return nil, errors.Wrap(err, "plotting endpoints")
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
	}
	return p, nil
}
