// Package profile synthesises a time-sampled speed trace for a chain of track segments.
//
// Profiling runs in two passes:
//
//  1. Planning - every segment gets a top speed from its own geometry, an end speed
//     anticipating the segment that follows, and a start speed equal to the previous
//     end speed. A backward and a forward sweep then make every segment feasible.
//
//  2. Integration - each planned segment is stepped at a fixed time step through
//     accelerate, cruise and brake phases. Segments are independent once planned, so
//     they can be integrated concurrently and concatenated in order.
package profile

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidLimits is returned for a non-positive time step or a motion model that
	// cannot move the vehicle.
	ErrInvalidLimits = errors.New("invalid kinematic limits")
	// ErrProfileDiverged is returned when integrating a segment fails to finish within
	// a generous bound on its step count.
	ErrProfileDiverged = errors.New("profile integration diverged")
)

// Phase describes the motion phase of a sample.
type Phase string

const (
	PhaseAccelerating Phase = "accelerating"
	PhaseCruising     Phase = "cruising"
	PhaseDecelerating Phase = "decelerating"
)

// Sample is one point of the speed trace.
type Sample struct {
	Time     float64 `json:"time"`     // seconds since the profile start
	Velocity float64 `json:"velocity"` // units/s
	Distance float64 `json:"distance"` // travelled since the profile start
	Segment  int     `json:"segment"`  // index of the active segment
	Phase    Phase   `json:"phase"`
}

// Options configures Build.
type Options struct {
	TimeStep float64 // sampling period, seconds
	Workers  int     // goroutines used to integrate segments; < 1 means 1
}

func (o Options) validate() error {
	if !(o.TimeStep > 0) || math.IsInf(o.TimeStep, 1) {
		return fmt.Errorf("time step %v: %w", o.TimeStep, ErrInvalidLimits)
	}
	return nil
}

// SegmentProfile is the plan of one segment together with where its samples sit in
// the concatenated trace.
type SegmentProfile struct {
	Plan
	FirstSample int `json:"first_sample"`
	SampleCount int `json:"sample_count"`
	// Residual is the sampled duration (SampleCount*dt) minus the analytic Duration.
	// The global clock advances by exactly one time step per sample, so residuals
	// accumulate across segments instead of being rescaled away.
	Residual float64 `json:"residual"`
}

// Profile is the complete speed trace of a path.
type Profile struct {
	TimeStep float64          `json:"time_step"`
	Segments []SegmentProfile `json:"segments"`
	Samples  []Sample         `json:"samples"`
}

// SegmentSamples returns the samples recorded for segment i.
func (p *Profile) SegmentSamples(i int) []Sample {
	sp := p.Segments[i]
	return p.Samples[sp.FirstSample : sp.FirstSample+sp.SampleCount]
}
