// Package pipeline runs a complete profiling job: sample a track (or take raw points),
// split and classify the path into segments, then synthesise the speed profile.
//
// The stages mirror the command-line tools built on top of it:
//
//  1. Points - a declarative track is sampled into points; raw points pass through.
//
//  2. Segments - points are split into straight and curved runs and every run is
//     classified. Segment input skips this stage.
//
//  3. Profile - the segments are planned and integrated at the configured time step.
package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cxd309/speed-profile/internal/config"
	"github.com/cxd309/speed-profile/internal/geometry"
	"github.com/cxd309/speed-profile/internal/kinematics"
	"github.com/cxd309/speed-profile/internal/profile"
	"github.com/cxd309/speed-profile/internal/segment"
	"github.com/cxd309/speed-profile/internal/track"
)

// ErrNoInput is returned when an Input carries no track, points or segments.
var ErrNoInput = errors.New("input has no track, points or segments")

// Run executes every stage for input and returns the assembled output.
func Run(input Input, opts Options) (*Output, error) {
	cfg := &config.Config{}
	cfg.Merge(input.Config)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var model kinematics.MotionModel = cfg.Model()
	inset := cfg.GetInsetDistance()
	if input.Vehicle != nil {
		if input.Vehicle.Kinem == nil {
			return nil, fmt.Errorf("vehicle %q has no kinematics model", input.Vehicle.Name)
		}
		model = input.Vehicle.Kinem
		if cfg.InsetDistance == nil {
			inset = input.Vehicle.Width / 2
		}
	}

	out := &Output{Meta: input.Meta}
	if out.Meta.RunID == "" {
		out.Meta.RunID = uuid.NewString()
	}

	points, source, err := resolvePoints(input)
	if err != nil {
		return nil, err
	}
	out.Source = source

	if points != nil {
		segOpts := cfg.SegmentOptions()
		runs, err := segment.Split(points, segOpts)
		if err != nil {
			return nil, fmt.Errorf("splitting path: %w", err)
		}
		segs, err := segment.ClassifyAll(runs, segOpts)
		if err != nil {
			return nil, fmt.Errorf("classifying runs: %w", err)
		}
		out.Runs, out.Segments = runs, segs
		if inset != 0 {
			out.Insets = segment.InsetRuns(runs, inset)
		}
		opts.logf("run %s: %d points -> %d segments (metric=%s)", out.Meta.RunID, len(points), len(segs), segOpts.Metric)
	} else {
		out.Segments = input.Segments
	}

	prof, err := profile.Build(out.Segments, model, cfg.ProfileOptions())
	if err != nil {
		return nil, fmt.Errorf("building profile: %w", err)
	}
	out.Profile = prof
	out.Summary = prof.Summarize()
	opts.logf("run %s: %d samples, duration %.2fs, peak %.3f, residual %+.4fs",
		out.Meta.RunID, out.Summary.Samples, out.Summary.Duration, out.Summary.PeakSpeed, out.Summary.Residual)
	return out, nil
}

// resolvePoints returns the points to segment and the name of the source used. Points
// are nil for segment input.
func resolvePoints(input Input) ([]geometry.Point, string, error) {
	switch {
	case len(input.Track) > 0:
		n := input.PointsPerPrimitive
		if n == 0 {
			n = track.DefaultPointsPerPrimitive
		}
		pts, err := track.Sample(input.Track, n)
		if err != nil {
			return nil, "", fmt.Errorf("sampling track: %w", err)
		}
		return pts, SourceTrack, nil
	case len(input.Points) > 0:
		return input.Points, SourcePoints, nil
	case len(input.Segments) > 0:
		return nil, SourceSegments, nil
	default:
		return nil, "", ErrNoInput
	}
}

// RunJSON is the top-level entry point shared by the CLI and the WASM module.
// It accepts a JSON-encoded Input and returns a JSON-encoded Output.
func RunJSON(jsonInput string) (string, error) {
	var input Input
	if err := json.Unmarshal([]byte(jsonInput), &input); err != nil {
		return "", fmt.Errorf("invalid input JSON: %w", err)
	}

	result, err := Run(input, Options{})
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(out), nil
}
