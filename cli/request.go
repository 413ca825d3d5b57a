package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/cubicspiral/motionplan/cubicspiral"
	"go.viam.com/cubicspiral/utils"
)

// PairRequest is one start/end pair in a request file.
type PairRequest struct {
	Start *cubicspiral.Pose `json:"start"`
	End   *cubicspiral.Pose `json:"end"`
}

// Request is the contents of a request file: optional solver options, keyed like cubicspiral.Options, and the pairs
// to solve.
type Request struct {
	Options map[string]interface{} `json:"options"`
	Pairs   []PairRequest          `json:"pairs"`
}

// Poses splits the pairs of the request into index aligned start and end poses. Every incomplete pair is reported.
func (req *Request) Poses() ([]cubicspiral.Pose, []cubicspiral.Pose, error) {
	starts := make([]cubicspiral.Pose, 0, len(req.Pairs))
	ends := make([]cubicspiral.Pose, 0, len(req.Pairs))
	var errs error
	for i, pair := range req.Pairs {
		if pair.Start == nil {
			errs = multierr.Append(errs, errors.Errorf("pair %d is missing a start pose", i))
		}
		if pair.End == nil {
			errs = multierr.Append(errs, errors.Errorf("pair %d is missing an end pose", i))
		}
		if pair.Start == nil || pair.End == nil {
			continue
		}
		starts = append(starts, *pair.Start)
		ends = append(ends, *pair.End)
	}
	if errs != nil {
		return nil, nil, errs
	}
	return starts, ends, nil
}

func readRequest(path string) (*Request, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading request %q", path)
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrapf(err, "parsing request %q", path)
	}
	return &req, nil
}

// readOptions loads an attribute map of solver options from a json file. An empty path selects the defaults.
func readOptions(path string) (map[string]interface{}, error) {
	if path == "" {
		return nil, nil
	}
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading options %q", path)
	}
	attributes := map[string]interface{}{}
	if err := json.Unmarshal(data, &attributes); err != nil {
		return nil, errors.Wrapf(err, "parsing options %q", path)
	}
	return attributes, nil
}

// parsePose parses "x,y,theta,curvature". The curvature may be omitted and defaults to zero. If degrees is set theta
// is converted from degrees.
func parsePose(raw string, degrees bool) (cubicspiral.Pose, error) {
	fields := strings.Split(raw, ",")
	if len(fields) != 3 && len(fields) != 4 {
		return cubicspiral.Pose{}, errors.Errorf("pose %q must be x,y,theta[,curvature]", raw)
	}
	values := make([]float64, 4)
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return cubicspiral.Pose{}, errors.Wrapf(err, "pose %q", raw)
		}
		values[i] = v
	}
	if degrees {
		values[2] = utils.DegToRad(values[2])
	}
	return cubicspiral.NewPose(values[0], values[1], values[2], values[3]), nil
}

func formatPose(p cubicspiral.Pose, degrees bool) string {
	theta := p.Theta
	if degrees {
		theta = utils.RadToDeg(theta)
	}
	return fmt.Sprintf("%.3f,%.3f,%.3f,%.3f", p.X, p.Y, theta, p.Curvature)
}
