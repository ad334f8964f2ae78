package profile

import (
	"fmt"
	"math"

	"github.com/cxd309/speed-profile/internal/kinematics"
)

// Trapezoid integrates one planned segment at a fixed time step.
//
// Time and distance in the returned samples are local to the segment. The first sample
// is (0, Start). Each step either accelerates toward Top or cruises at it, unless the
// distance left after the step would be shorter than what is needed to brake to End, in
// which case the vehicle brakes instead. Once braking has begun the vehicle only moves
// toward End and then holds it until the segment length is covered. The final sample
// always carries exactly End.
func Trapezoid(plan Plan, model kinematics.MotionModel, dt float64) ([]Sample, error) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return nil, fmt.Errorf("time step %v: %w", dt, ErrInvalidLimits)
	}

	v, s := plan.Start, 0.0
	samples := make([]Sample, 1, int(plan.Duration/dt)+2)
	samples[0] = Sample{Velocity: v, Segment: plan.Index}

	// Steps are bounded by the analytic duration, a slow final hold at End and slack
	// for discretisation.
	holdSpeed := max(plan.End, 0.01*plan.Peak)
	limit := int(math.Ceil((2*plan.Duration+plan.Length/holdSpeed)/dt)) + 100

	braking := false
steps:
	for step := 0; s < plan.Length || (braking && v != plan.End); step++ {
		if step >= limit {
			return nil, fmt.Errorf("segment %d: no convergence after %d steps: %w", plan.Index, step, ErrProfileDiverged)
		}

		var dist float64
		var phase Phase
		switch {
		case braking && v == plan.End:
			if plan.End <= 0 {
				break steps
			}
			dist, phase = plan.End*dt, PhaseCruising
		case braking:
			dist, v, phase = approach(model, v, plan.End, dt)
		default:
			nd, nv, np := approach(model, v, plan.Top, dt)
			if plan.Length-s-nd <= model.BrakingDistanceTo(nv, plan.End) {
				braking = true
				dist, v, phase = approach(model, v, plan.End, dt)
			} else {
				dist, v, phase = nd, nv, np
			}
		}

		s += dist
		samples = append(samples, Sample{
			Time:     float64(len(samples)) * dt,
			Velocity: v,
			Distance: s,
			Segment:  plan.Index,
			Phase:    phase,
		})
	}

	if len(samples) > 1 {
		samples[0].Phase = samples[1].Phase
	} else {
		samples[0].Phase = PhaseCruising
	}
	return samples, nil
}

// approach moves v one step toward target using the model's exact step functions.
func approach(model kinematics.MotionModel, v, target, dt float64) (float64, float64, Phase) {
	switch {
	case v < target:
		d, nv := model.AccelerateStep(v, target, dt)
		return d, nv, PhaseAccelerating
	case v > target:
		d, nv := model.DecelerateStep(v, target, dt)
		return d, nv, PhaseDecelerating
	default:
		return v * dt, v, PhaseCruising
	}
}
