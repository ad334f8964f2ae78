package profile

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/speed-profile/internal/kinematics"
	"github.com/cxd309/speed-profile/internal/segment"
)

var model = kinematics.ConstantAcceleration{AAcc: 15, ADcc: 15, VMaxVal: 7}

func hairpin() []segment.Segment {
	return []segment.Segment{segment.Straight(5), segment.Curve(0.25, 0.4), segment.Straight(5)}
}

// checkTrace asserts the properties every built profile must have.
func checkTrace(t *testing.T, p *Profile, dt float64) {
	t.Helper()
	require.NotEmpty(t, p.Samples)
	assert.Equal(t, 0.0, p.Samples[0].Time)
	assert.Equal(t, 0.0, p.Samples[0].Velocity)
	assert.Equal(t, 0.0, p.Samples[len(p.Samples)-1].Velocity)

	for i := 1; i < len(p.Samples); i++ {
		assert.InDelta(t, dt, p.Samples[i].Time-p.Samples[i-1].Time, 1e-9, "sample %d", i)
		assert.GreaterOrEqual(t, p.Samples[i].Distance, p.Samples[i-1].Distance, "sample %d", i)
	}
	for i, sp := range p.Segments {
		assert.LessOrEqual(t, sp.End, sp.Top, "segment %d", i)
		for _, smp := range p.SegmentSamples(i) {
			assert.Equal(t, i, smp.Segment)
			assert.GreaterOrEqual(t, smp.Velocity, 0.0)
			assert.LessOrEqual(t, smp.Velocity, sp.Top+1e-12, "segment %d at t=%v", i, smp.Time)
		}
		seg := p.SegmentSamples(i)
		assert.Equal(t, sp.Start, seg[0].Velocity, "segment %d start", i)
		assert.Equal(t, sp.End, seg[len(seg)-1].Velocity, "segment %d end", i)
		if i > 0 {
			prev := p.SegmentSamples(i - 1)
			assert.Equal(t, prev[len(prev)-1].Velocity, seg[0].Velocity, "continuity into segment %d", i)
		}
	}
}

func TestBuildHairpin(t *testing.T) {
	p, err := Build(hairpin(), model, Options{TimeStep: 0.01})
	require.NoError(t, err)
	checkTrace(t, p, 0.01)

	corner := math.Sqrt(15 * 0.25)
	want := []struct{ start, end, top float64 }{
		{0, corner, 7},
		{corner, corner, corner},
		{corner, 0, 7},
	}
	require.Len(t, p.Segments, 3)
	for i, w := range want {
		assert.InDelta(t, w.start, p.Segments[i].Start, 1e-12, "segment %d start", i)
		assert.InDelta(t, w.end, p.Segments[i].End, 1e-12, "segment %d end", i)
		assert.InDelta(t, w.top, p.Segments[i].Top, 1e-12, "segment %d top", i)
	}
	for _, smp := range p.SegmentSamples(1) {
		assert.LessOrEqual(t, smp.Velocity, 1.936+1e-3)
	}

	// 0 -> 7 in 7/15 s, cruise 1.858.. units, 7 -> sqrt(3.75) in 0.3375.. s
	assert.InDelta(t, 1.0697101, p.Segments[0].Duration, 1e-6)
	for i, sp := range p.Segments {
		assert.Less(t, math.Abs(sp.Residual), 0.1, "segment %d", i)
	}

	last := p.Samples[len(p.Samples)-1]
	assert.InDelta(t, 10.4, last.Distance, 0.1)
	assert.GreaterOrEqual(t, p.SegmentSamples(0)[p.Segments[0].SampleCount-1].Distance, 5.0)

	phases := map[Phase]bool{}
	for _, smp := range p.SegmentSamples(0) {
		phases[smp.Phase] = true
	}
	assert.Equal(t, map[Phase]bool{PhaseAccelerating: true, PhaseCruising: true, PhaseDecelerating: true}, phases)
	for _, smp := range p.SegmentSamples(1) {
		assert.Equal(t, PhaseCruising, smp.Phase)
	}
}

func TestBuildTightSequence(t *testing.T) {
	segs := []segment.Segment{
		segment.Straight(0.3),
		segment.Curve(0.05, 0.1),
		segment.Straight(0.02),
		segment.Curve(2, 1),
		segment.Straight(4),
		segment.Curve(0.5, 0.3),
	}
	for _, dt := range []float64{0.001, 0.01, 0.05} {
		p, err := Build(segs, model, Options{TimeStep: dt})
		require.NoError(t, err, "dt=%v", dt)
		checkTrace(t, p, dt)
	}
}

func TestPlanSegmentsFeasible(t *testing.T) {
	slow := kinematics.ConstantAcceleration{AAcc: 1, ADcc: 3, ALat: 2, VMaxVal: 4}
	segs := []segment.Segment{
		segment.Straight(10),
		segment.Curve(0.5, 0.2),
		segment.Straight(0.1),
		segment.Curve(8, 3),
		segment.Straight(0.5),
	}
	for _, m := range []kinematics.ConstantAcceleration{model, slow} {
		plans, err := PlanSegments(segs, m)
		require.NoError(t, err)
		require.Len(t, plans, len(segs))
		assert.Equal(t, 0.0, plans[0].Start)
		assert.Equal(t, 0.0, plans[len(plans)-1].End)
		for i, p := range plans {
			assert.Equal(t, i, p.Index)
			assert.LessOrEqual(t, p.Start, p.Top+1e-12, "segment %d", i)
			assert.LessOrEqual(t, p.End, p.Top, "segment %d", i)
			assert.LessOrEqual(t, p.Peak, p.Top, "segment %d", i)
			assert.LessOrEqual(t, m.AccelerationDistance(p.Start, p.End), p.Length+1e-9, "segment %d", i)
			assert.LessOrEqual(t, m.BrakingDistanceTo(p.Start, p.End), p.Length+1e-9, "segment %d", i)
			assert.LessOrEqual(t, p.AccelDistance+p.DecelDistance, p.Length+1e-9, "segment %d", i)
			assert.Greater(t, p.Duration, 0.0)
			if i > 0 {
				assert.Equal(t, plans[i-1].End, p.Start)
			}
		}
	}
}

func TestPlanSegmentsBrakesEarly(t *testing.T) {
	// With weak brakes the stop at the end of the short curve limits the speed two
	// segments back.
	weak := kinematics.ConstantAcceleration{AAcc: 15, ADcc: 1, VMaxVal: 7}
	segs := []segment.Segment{segment.Straight(5), segment.Straight(0.01), segment.Curve(0.01, 0.01)}
	plans, err := PlanSegments(segs, weak)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(2*0.01), plans[1].End, 1e-12)
	assert.InDelta(t, 0.2, plans[0].End, 1e-12)
	assert.InDelta(t, 0.2, plans[1].Start, 1e-12)

	p, err := Build(segs, weak, Options{TimeStep: 0.001})
	require.NoError(t, err)
	checkTrace(t, p, 0.001)
}

func TestPlanSegmentsCapsStraightEnd(t *testing.T) {
	// The middle straight is entered at its own top speed and could accelerate further,
	// but must not leave faster than its bound.
	segs := []segment.Segment{segment.Straight(5), segment.Straight(0.1), segment.Straight(5)}
	plans, err := PlanSegments(segs, model)
	require.NoError(t, err)
	top := math.Sqrt(2 * 15 * 0.1)
	assert.InDelta(t, top, plans[1].Top, 1e-12)
	assert.InDelta(t, top, plans[1].Start, 1e-12)
	assert.InDelta(t, top, plans[1].End, 1e-12)
	assert.Greater(t, model.ReachableSpeed(plans[1].Start, plans[1].Length), plans[1].End)
}

func TestTrapezoidTriangle(t *testing.T) {
	plans, err := PlanSegments([]segment.Segment{segment.Straight(0.5)}, model)
	require.NoError(t, err)
	p := plans[0]
	assert.InDelta(t, math.Sqrt(7.5), p.Peak, 1e-12)
	assert.InDelta(t, 0.0, p.CruiseDistance(), 1e-12)

	samples, err := Trapezoid(p, model, 0.01)
	require.NoError(t, err)
	top := 0.0
	for _, smp := range samples {
		top = max(top, smp.Velocity)
		assert.NotEqual(t, PhaseCruising, smp.Phase)
	}
	assert.LessOrEqual(t, top, p.Peak+1e-9)
	assert.Greater(t, top, p.Peak-15*0.01)
	assert.Equal(t, 0.0, samples[len(samples)-1].Velocity)
	assert.Equal(t, PhaseAccelerating, samples[0].Phase)
}

type stuckModel struct{ kinematics.ConstantAcceleration }

func (stuckModel) AccelerateStep(v, _, _ float64) (float64, float64) { return 0, v }

func TestTrapezoidDiverges(t *testing.T) {
	plans, err := PlanSegments([]segment.Segment{segment.Straight(1)}, model)
	require.NoError(t, err)
	_, err = Trapezoid(plans[0], stuckModel{model}, 0.01)
	assert.ErrorIs(t, err, ErrProfileDiverged)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		segs  []segment.Segment
		model kinematics.MotionModel
		dt    float64
		want  error
		msg   string
	}{
		{"zero time step", hairpin(), model, 0, ErrInvalidLimits, ""},
		{"NaN time step", hairpin(), model, math.NaN(), ErrInvalidLimits, ""},
		{"no top speed", hairpin(), kinematics.ConstantAcceleration{AAcc: 15, ADcc: 15}, 0.01, ErrInvalidLimits, ""},
		{"no acceleration", hairpin(), kinematics.ConstantAcceleration{ADcc: 15, VMaxVal: 7}, 0.01, ErrInvalidLimits, "segment 0:"},
		{"no segments", nil, model, 0.01, segment.ErrInsufficientData, ""},
		{"overlong arc", []segment.Segment{segment.Straight(1), segment.Curve(0.25, 5)}, model, 0.01, segment.ErrInvalidSegment, "segment 1:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.segs, tt.model, Options{TimeStep: tt.dt})
			require.ErrorIs(t, err, tt.want)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestBuildWorkersDeterministic(t *testing.T) {
	segs := append(hairpin(), segment.Curve(1, 2), segment.Straight(3), segment.Curve(0.3, 0.5))
	one, err := Build(segs, model, Options{TimeStep: 0.01, Workers: 1})
	require.NoError(t, err)
	many, err := Build(segs, model, Options{TimeStep: 0.01, Workers: 6})
	require.NoError(t, err)
	if d := cmp.Diff(one, many); d != "" {
		t.Error(d)
	}
}

func TestSummarize(t *testing.T) {
	p, err := Build(hairpin(), model, Options{TimeStep: 0.01})
	require.NoError(t, err)
	s := p.Summarize()
	assert.Equal(t, 3, s.Segments)
	assert.Equal(t, len(p.Samples), s.Samples)
	assert.InDelta(t, 10.4, s.Distance, 1e-12)
	assert.Equal(t, 7.0, s.PeakSpeed)
	assert.Equal(t, p.Samples[len(p.Samples)-1].Time, s.Duration)
	assert.Greater(t, s.MeanSpeed, 0.0)
	assert.Less(t, s.MeanSpeed, 7.0)
	assert.InDelta(t, s.Analytic+s.Residual, float64(len(p.Samples))*0.01, 1e-9)

	assert.Equal(t, Summary{}, (&Profile{}).Summarize())
}
