package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/cubicspiral/logging"
	"go.viam.com/cubicspiral/motionplan/cubicspiral"
)

// newLogger logs to the app's error writer so that results printed to the writer stay machine readable.
func newLogger(c *cli.Context) (logging.Logger, error) {
	level, err := logging.LevelFromString(c.String(generalFlagLogLevel))
	if err != nil {
		return nil, errors.Wrapf(err, "--%s", generalFlagLogLevel)
	}
	logger := logging.NewBlankLogger("cli")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	logger.SetLevel(level)
	return logger, nil
}

// batchContext enables debug logging of batch diagnostics for the command when --debug is set, whatever the level.
func batchContext(c *cli.Context) context.Context {
	if c.Bool(generalFlagDebug) {
		return logging.EnableDebugMode(c.Context, "")
	}
	return c.Context
}

// newSolver builds a solver from the --config file, with any options of a request file layered on top.
func newSolver(c *cli.Context, logger logging.Logger, requestOptions map[string]interface{}) (*cubicspiral.Solver, error) {
	attributes, err := readOptions(c.Path(generalFlagConfig))
	if err != nil {
		return nil, err
	}
	if attributes == nil {
		attributes = map[string]interface{}{}
	}
	for k, v := range requestOptions {
		attributes[k] = v
	}
	opts, err := cubicspiral.OptionsFromAttributes(attributes)
	if err != nil {
		return nil, err
	}
	return cubicspiral.NewSolver(logger, opts)
}

// SolveAction solves for the spiral between the --start and --end poses.
func SolveAction(c *cli.Context) error {
	degrees := c.Bool(solveFlagDegrees)
	start, err := parsePose(c.String(solveFlagStart), degrees)
	if err != nil {
		return err
	}
	end, err := parsePose(c.String(solveFlagEnd), degrees)
	if err != nil {
		return err
	}
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	solver, err := newSolver(c, logger, nil)
	if err != nil {
		return err
	}

	result := solver.Solve(start, end)
	logger.Debugw("solve finished", "start", start, "end", end, "status", result.Status)
	if c.Bool(flagJSON) {
		return writeJSON(c.App.Writer, result)
	}
	printf(c.App.Writer, "%s", renderTable([]cubicspiral.Pose{start}, []cubicspiral.Pose{end}, []cubicspiral.Result{result}, degrees))
	return nil
}

// BatchAction solves every pair of a request file in parallel.
func BatchAction(c *cli.Context) error {
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
	logger.Infow("batch finished", summarize(results).keysAndValues()...)

	if output := c.Path(batchFlagOutput); output != "" {
		if err := writeJSONFile(output, results); err != nil {
			return err
		}
	} else if err := writeJSON(c.App.Writer, results); err != nil {
		return err
	}
	if c.Bool(batchFlagTable) {
		printf(c.App.Writer, "%s", renderTable(starts, ends, results, false))
	}
	return nil
}

func renderTable(starts, ends []cubicspiral.Pose, results []cubicspiral.Result, degrees bool) string {
	t := table.NewWriter()
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"#", "start", "end", "status", "iterations", "p1", "p2", "arc length"})
	for i, r := range results {
		t.AppendRow(table.Row{
			i,
			formatPose(starts[i], degrees),
			formatPose(ends[i], degrees),
			r.Status,
			r.Iterations,
			fmt.Sprintf("%.5f", r.P1),
			fmt.Sprintf("%.5f", r.P2),
			fmt.Sprintf("%.4f", r.ArcLength),
		})
	}
	summary := summarize(results)
	t.AppendFooter(table.Row{
		"", "", "",
		fmt.Sprintf("%d/%d converged", summary.Converged, summary.Pairs),
		fmt.Sprintf("%.1f", summary.MeanIterations),
	})
	return t.Render() + "\n"
}

func writeJSON(out io.Writer, v interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(v), "encoding results")
}

func writeJSONFile(path string, v interface{}) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %q", path)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return writeJSON(f, v)
}

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format, a...)
}
