package profile

import (
	"golang.org/x/sync/errgroup"

	"github.com/cxd309/speed-profile/internal/kinematics"
	"github.com/cxd309/speed-profile/internal/segment"
)

// Build plans segs and integrates every segment, concatenating the per-segment traces.
//
// The global clock advances by exactly one time step per sample. Distances are offset by
// what was actually travelled in the preceding segments, which can exceed their planned
// length by up to one step. Velocity is continuous at
// segment boundaries because each segment starts at the previous segment's end speed.
func Build(segs []segment.Segment, model kinematics.MotionModel, opts Options) (*Profile, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	plans, err := PlanSegments(segs, model)
	if err != nil {
		return nil, err
	}

	parts := make([][]Sample, len(plans))
	errs := make([]error, len(plans))
	var g errgroup.Group
	g.SetLimit(max(1, opts.Workers))
	for i, plan := range plans {
		i, plan := i, plan
		g.Go(func() error {
			samples, err := Trapezoid(plan, model, opts.TimeStep)
			if err != nil {
				errs[i] = err
				return err
			}
			parts[i] = samples
			return nil
		})
	}
	if g.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}

	total := 0
	for _, part := range parts {
		total += len(part)
	}
	prof := &Profile{
		TimeStep: opts.TimeStep,
		Segments: make([]SegmentProfile, len(plans)),
		Samples:  make([]Sample, 0, total),
	}
	offset := 0.0
	for i, plan := range plans {
		i, plan := i, plan
		first := len(prof.Samples)
		for _, smp := range parts[i] {
			smp.Time = float64(len(prof.Samples)) * opts.TimeStep
			smp.Distance += offset
			prof.Samples = append(prof.Samples, smp)
		}
		n := len(parts[i])
		prof.Segments[i] = SegmentProfile{
			Plan:        plan,
			FirstSample: first,
			SampleCount: n,
			Residual:    float64(n)*opts.TimeStep - plan.Duration,
		}
		offset = prof.Samples[len(prof.Samples)-1].Distance
	}
	return prof, nil
}
