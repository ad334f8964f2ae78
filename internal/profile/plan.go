package profile

import (
	"fmt"
	"math"

	"github.com/cxd309/speed-profile/internal/kinematics"
	"github.com/cxd309/speed-profile/internal/segment"
)

// Plan holds the boundary speeds and the analytic trapezoid of one segment.
type Plan struct {
	Index   int             `json:"index"`
	Segment segment.Segment `json:"segment"`
	Length  float64         `json:"length"`      // travelled distance, units
	Start   float64         `json:"start_speed"` // units/s
	End     float64         `json:"end_speed"`   // units/s
	Top     float64         `json:"top_speed"`   // bound from the segment's own geometry
	Peak    float64         `json:"peak_speed"`  // highest speed actually reached

	AccelDistance float64 `json:"accel_distance"`
	DecelDistance float64 `json:"decel_distance"`
	Duration      float64 `json:"duration"` // analytic, seconds
}

// CruiseDistance returns the distance travelled at Peak.
func (p Plan) CruiseDistance() float64 {
	return max(0, p.Length-p.AccelDistance-p.DecelDistance)
}

// bound returns the speed limit a segment imposes on itself.
func bound(seg segment.Segment, model kinematics.MotionModel) float64 {
	if seg.Kind == segment.KindCurve {
		return model.CorneringSpeed(seg.Radius)
	}
	return model.StraightSpeed(seg.Length)
}

// PlanSegments assigns start, end and top speeds to every segment.
//
// A segment's top speed is the bound of its own geometry and its end speed is the bound
// of the following segment, never above its own top. The last segment ends at rest. A
// backward sweep then lowers end speeds the next segment could not brake down from,
// and a forward sweep lowers end speeds that cannot be reached from the start speed.
// Start speeds chain from the previous end speed, so the trace is continuous.
//
// The end speed is capped at the segment's own top speed for straights as well as
// curves: a short straight cannot leave faster than it is allowed to travel.
func PlanSegments(segs []segment.Segment, model kinematics.MotionModel) ([]Plan, error) {
	if len(segs) == 0 {
		return nil, fmt.Errorf("no segments to profile: %w", segment.ErrInsufficientData)
	}
	if !(model.VMax() > 0) {
		return nil, fmt.Errorf("top speed %v: %w", model.VMax(), ErrInvalidLimits)
	}

	plans := make([]Plan, len(segs))
	for i, seg := range segs {
		if err := seg.Validate(); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		top := bound(seg, model)
		if !(top > 0) || math.IsInf(top, 0) {
			return nil, fmt.Errorf("segment %d: speed bound %v: %w", i, top, ErrInvalidLimits)
		}
		plans[i] = Plan{Index: i, Segment: seg, Length: seg.Distance(), Top: top}
	}

	for i := range plans {
		if i+1 < len(plans) {
			plans[i].End = min(plans[i+1].Top, plans[i].Top)
		}
	}
	for i := len(plans) - 2; i >= 0; i-- {
		plans[i].End = min(plans[i].End, model.EntrySpeed(plans[i+1].End, plans[i+1].Length))
	}

	start := 0.0
	for i := range plans {
		p := &plans[i]
		p.Start = start
		p.End = min(p.End, model.ReachableSpeed(start, p.Length))
		p.Peak = model.PeakSpeed(p.Start, p.End, p.Top, p.Length)
		if !(p.Peak > 0) {
			return nil, fmt.Errorf("segment %d: peak speed %v: %w", i, p.Peak, ErrInvalidLimits)
		}
		p.AccelDistance = model.AccelerationDistance(p.Start, p.Peak)
		p.DecelDistance = model.BrakingDistanceTo(p.Peak, p.End)
		p.Duration = model.AccelerationTime(p.Start, p.Peak) +
			p.CruiseDistance()/p.Peak +
			model.BrakingTimeTo(p.Peak, p.End)
		start = p.End
	}
	return plans, nil
}
