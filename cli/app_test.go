package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/cubicspiral/motionplan/cubicspiral"
)

type resultSummary struct {
	ArcLength  float64 `json:"arc_length"`
	Converged  bool    `json:"converged"`
	Status     string  `json:"status"`
	Iterations int     `json:"iterations"`
}

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"cubicspiral"}, args...))
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name string, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	test.That(t, err, test.ShouldBeNil)
	path := filepath.Join(t.TempDir(), name)
	test.That(t, os.WriteFile(path, data, 0o600), test.ShouldBeNil)
	return path
}

func testRequest(options map[string]interface{}) Request {
	return Request{
		Options: options,
		Pairs: []PairRequest{
			{Start: &cubicspiral.Pose{}, End: &cubicspiral.Pose{X: 10}},
			{Start: &cubicspiral.Pose{Curvature: 0.05}, End: &cubicspiral.Pose{X: 10, Y: 2, Theta: 0.3, Curvature: -0.02}},
		},
	}
}

func TestParsePose(t *testing.T) {
	pose, err := parsePose("1, 2.5,-0.5,0.01", false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose, test.ShouldResemble, cubicspiral.NewPose(1, 2.5, -0.5, 0.01))

	pose, err = parsePose("1,2,3", false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Curvature, test.ShouldEqual, 0)

	pose, err = parsePose("1,2,90", true)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Theta, test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, formatPose(pose, true), test.ShouldEqual, "1.000,2.000,90.000,0.000")

	_, err = parsePose("1,2", false)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = parsePose("1,2,x,0", false)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRequestPoses(t *testing.T) {
	req := testRequest(nil)
	starts, ends, err := req.Poses()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(starts), test.ShouldEqual, 2)
	test.That(t, ends[1].Theta, test.ShouldEqual, 0.3)

	req.Pairs = append(req.Pairs, PairRequest{Start: &cubicspiral.Pose{}}, PairRequest{})
	_, _, err = req.Poses()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "pair 2 is missing an end pose")
	test.That(t, err.Error(), test.ShouldContainSubstring, "pair 3 is missing a start pose")
	test.That(t, err.Error(), test.ShouldContainSubstring, "pair 3 is missing an end pose")
}

func TestSolveAction(t *testing.T) {
	out, _, err := runApp(t, "solve", "--start", "0,0,0,0", "--end", "10,0,0,0", "--json")
	test.That(t, err, test.ShouldBeNil)
	var result resultSummary
	test.That(t, json.Unmarshal([]byte(out), &result), test.ShouldBeNil)
	test.That(t, result.Converged, test.ShouldBeTrue)
	test.That(t, result.Status, test.ShouldEqual, "converged")
	test.That(t, result.ArcLength, test.ShouldAlmostEqual, 10, 1e-6)

	out, _, err = runApp(t, "solve", "--start", "0,0,0,0", "--end", "10,0,0,0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "converged")
	test.That(t, out, test.ShouldContainSubstring, "1/1 converged")

	out, _, err = runApp(t, "solve", "--degrees", "--start", "0,0,0,0", "--end", "10,0,0,0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "10.000,0.000,0.000,0.000")

	_, _, err = runApp(t, "solve", "--start", "0,0", "--end", "10,0,0,0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSolveActionConfig(t *testing.T) {
	config := writeFile(t, "options.json", map[string]interface{}{"newton_iterations": 0})
	out, _, err := runApp(t, "--config", config, "solve", "--start", "0,0,0,0", "--end", "10,0,0,0", "--json")
	test.That(t, err, test.ShouldBeNil)
	var result resultSummary
	test.That(t, json.Unmarshal([]byte(out), &result), test.ShouldBeNil)
	test.That(t, result.Status, test.ShouldEqual, "iteration_limit")
	test.That(t, result.Iterations, test.ShouldEqual, 0)

	config = writeFile(t, "options.json", map[string]interface{}{"simpson_intervals": 3})
	_, _, err = runApp(t, "--config", config, "solve", "--start", "0,0,0,0", "--end", "10,0,0,0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "simpson_intervals")
}

func TestBatchAction(t *testing.T) {
	input := writeFile(t, "pairs.json", testRequest(nil))
	output := filepath.Join(t.TempDir(), "results.json")

	out, _, err := runApp(t, "batch", "--input", input, "--output", output, "--table")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "2/2 converged")

	//nolint:gosec
	data, err := os.ReadFile(output)
	test.That(t, err, test.ShouldBeNil)
	var results []resultSummary
	test.That(t, json.Unmarshal(data, &results), test.ShouldBeNil)
	test.That(t, len(results), test.ShouldEqual, 2)
	for _, r := range results {
		test.That(t, r.Converged, test.ShouldBeTrue)
	}
	test.That(t, results[0].ArcLength, test.ShouldAlmostEqual, 10, 1e-6)

	out, _, err = runApp(t, "batch", "--input", input)
	test.That(t, err, test.ShouldBeNil)
	results = nil
	test.That(t, json.Unmarshal([]byte(out), &results), test.ShouldBeNil)
	test.That(t, len(results), test.ShouldEqual, 2)
}

func TestBatchActionLogging(t *testing.T) {
	input := writeFile(t, "pairs.json", testRequest(nil))

	_, errOut, err := runApp(t, "batch", "--input", input)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "batch finished")
	test.That(t, errOut, test.ShouldNotContainSubstring, "solved cubic spiral")

	_, errOut, err = runApp(t, "--debug", "batch", "--input", input)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "cli.cubicspiral")
	test.That(t, errOut, test.ShouldContainSubstring, "solved cubic spiral batch")
	test.That(t, errOut, test.ShouldNotContainSubstring, "solved cubic spiral\t")

	_, errOut, err = runApp(t, "--log-level", "debug", "batch", "--input", input)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "solved cubic spiral\t")

	_, errOut, err = runApp(t, "--log-level", "error", "batch", "--input", input)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldBeEmpty)

	_, _, err = runApp(t, "--log-level", "loud", "batch", "--input", input)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "log-level")
}

func TestBatchActionRequestOptions(t *testing.T) {
	input := writeFile(t, "pairs.json", testRequest(map[string]interface{}{"newton_iterations": 0}))
	out, _, err := runApp(t, "batch", "--input", input)
	test.That(t, err, test.ShouldBeNil)
	var results []resultSummary
	test.That(t, json.Unmarshal([]byte(out), &results), test.ShouldBeNil)
	test.That(t, results[0].Status, test.ShouldEqual, "iteration_limit")

	input = writeFile(t, "pairs.json", testRequest(map[string]interface{}{"not_an_option": 1}))
	_, _, err = runApp(t, "batch", "--input", input)
	test.That(t, err, test.ShouldNotBeNil)

	req := testRequest(nil)
	req.Pairs[1].End = nil
	input = writeFile(t, "pairs.json", req)
	_, _, err = runApp(t, "batch", "--input", input)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "pair 1 is missing an end pose")

	_, _, err = runApp(t, "batch", "--input", filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPlotAction(t *testing.T) {
	input := writeFile(t, "pairs.json", testRequest(nil))
	output := filepath.Join(t.TempDir(), "spirals.png")

	_, errOut, err := runApp(t, "plot", "--input", input, "--output", output, "--samples", "16")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.Contains(errOut, "plot written"), test.ShouldBeTrue)
	info, err := os.Stat(output)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)

	_, _, err = runApp(t, "plot", "--input", input, "--output", output, "--samples", "0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPlotSpirals(t *testing.T) {
	starts := []cubicspiral.Pose{{}, {}}
	ends := []cubicspiral.Pose{{X: 10}, {Y: 1}}
	results := []cubicspiral.Result{
		{ArcLength: 10, Converged: true, Status: cubicspiral.StatusConverged},
		{Status: cubicspiral.StatusSingularJacobian},
	}
	p, err := plotSpirals(starts, ends, results, 8)
	test.That(t, err, test.ShouldBeNil)
	xmin, xmax, ymin, ymax := p.X.Min, p.X.Max, p.Y.Min, p.Y.Max
	test.That(t, xmin, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, xmax, test.ShouldAlmostEqual, 10, 1e-6)
	test.That(t, ymin, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, ymax, test.ShouldAlmostEqual, 1, 1e-9)
}
