package pipeline

import (
	"bytes"
	"encoding/json"
	"log"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/speed-profile/internal/config"
	"github.com/cxd309/speed-profile/internal/kinematics"
	"github.com/cxd309/speed-profile/internal/segment"
	"github.com/cxd309/speed-profile/internal/track"
)

// uTurn is a 5-unit straight, a half circle of radius 0.25 and a 5-unit straight back.
var uTurn = []track.Primitive{
	{StartPoint: track.Coord{0, 0}, EndPoint: track.Coord{5, 0}},
	{IsCurve: true, StartPoint: track.Coord{5, 0}, EndPoint: track.Coord{5, 0.5}, Radius: 0.25, CenterPoint: track.Coord{5, 0.25}},
	{StartPoint: track.Coord{5, 0.5}, EndPoint: track.Coord{0, 0.5}},
}

func assertUTurn(t *testing.T, segs []segment.Segment) {
	t.Helper()
	require.Len(t, segs, 3)
	assert.Equal(t, segment.KindStraight, segs[0].Kind)
	assert.InDelta(t, 5, segs[0].Length, 1e-9)
	assert.Equal(t, segment.KindCurve, segs[1].Kind)
	assert.Equal(t, 0.25, segs[1].Radius)
	assert.InDelta(t, 0.25*3.14159265, segs[1].ArcLength, 1e-3)
	assert.Equal(t, segment.KindStraight, segs[2].Kind)
	assert.InDelta(t, 5, segs[2].Length, 1e-9)
}

func TestRunTrack(t *testing.T) {
	out, err := Run(Input{Track: uTurn}, Options{})
	require.NoError(t, err)
	assert.Equal(t, SourceTrack, out.Source)
	assertUTurn(t, out.Segments)
	require.Len(t, out.Runs, 3)
	assert.Nil(t, out.Insets)

	_, err = uuid.Parse(out.Meta.RunID)
	assert.NoError(t, err)

	samples := out.Profile.Samples
	assert.Equal(t, 0.0, samples[0].Velocity)
	assert.Equal(t, 0.0, samples[len(samples)-1].Velocity)
	for _, s := range out.Profile.SegmentSamples(1) {
		assert.LessOrEqual(t, s.Velocity, 1.9365)
	}
	assert.Equal(t, 7.0, out.Summary.PeakSpeed)
}

func TestRunPointsMatchesTrack(t *testing.T) {
	pts, err := track.Sample(uTurn, track.DefaultPointsPerPrimitive)
	require.NoError(t, err)

	fromTrack, err := Run(Input{Meta: RunMeta{RunID: "a"}, Track: uTurn}, Options{})
	require.NoError(t, err)
	fromPoints, err := Run(Input{Meta: RunMeta{RunID: "a"}, Points: pts}, Options{})
	require.NoError(t, err)

	assert.Equal(t, SourcePoints, fromPoints.Source)
	assert.Equal(t, "a", fromPoints.Meta.RunID)
	assert.Equal(t, fromTrack.Segments, fromPoints.Segments)
	assert.Equal(t, fromTrack.Summary, fromPoints.Summary)
}

func TestRunSegments(t *testing.T) {
	in := Input{
		Config:   &config.Config{TimeStep: config.Float64(0.02), MaxSpeed: config.Float64(5)},
		Segments: []segment.Segment{segment.Straight(5), segment.Curve(0.25, 0.4), segment.Straight(5)},
	}
	out, err := Run(in, Options{})
	require.NoError(t, err)
	assert.Equal(t, SourceSegments, out.Source)
	assert.Nil(t, out.Runs)
	assert.Equal(t, 0.02, out.Profile.TimeStep)
	assert.Equal(t, 5.0, out.Summary.PeakSpeed)
	assert.InDelta(t, 0.02, out.Profile.Samples[1].Time, 1e-12)
}

func TestRunSourcePriority(t *testing.T) {
	out, err := Run(Input{Track: uTurn, Segments: []segment.Segment{segment.Straight(1)}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, SourceTrack, out.Source)
	assert.Len(t, out.Segments, 3)
}

func TestRunVehicle(t *testing.T) {
	in := Input{
		Track:   uTurn,
		Vehicle: &kinematics.Vehicle{Name: "cart", Width: 0.2, Kinem: kinematics.ConstantAcceleration{AAcc: 2, ADcc: 4, VMaxVal: 3}},
	}
	out, err := Run(in, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3.0, out.Summary.PeakSpeed)
	require.Len(t, out.Insets, 3)
	// the first straight runs along y=0 and turns left, so its inset moves to y=0.1
	assert.InDelta(t, 0.1, out.Insets[0][10].Y, 1e-12)

	in.Config = &config.Config{InsetDistance: config.Float64(0)}
	out, err = Run(in, Options{})
	require.NoError(t, err)
	assert.Nil(t, out.Insets)
}

func TestRunLogs(t *testing.T) {
	var buf bytes.Buffer
	_, err := Run(Input{Meta: RunMeta{RunID: "logged"}, Track: uTurn}, Options{Logger: log.New(&buf, "", 0)})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "run logged: 150 points -> 3 segments (metric=deflection)")
	assert.Contains(t, buf.String(), "samples")
}

func TestRunErrors(t *testing.T) {
	_, err := Run(Input{}, Options{})
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = Run(Input{Track: uTurn, Config: &config.Config{TimeStep: config.Float64(-1)}}, Options{})
	assert.ErrorContains(t, err, "time_step")

	_, err = Run(Input{Track: uTurn, Vehicle: &kinematics.Vehicle{Name: "ghost"}}, Options{})
	assert.ErrorContains(t, err, `vehicle "ghost"`)

	_, err = Run(Input{Track: uTurn, PointsPerPrimitive: 1}, Options{})
	assert.ErrorContains(t, err, "sampling track")

	_, err = Run(Input{Segments: []segment.Segment{segment.Curve(0.1, 5)}}, Options{})
	assert.ErrorIs(t, err, segment.ErrInvalidSegment)
}

func TestRunJSON(t *testing.T) {
	in := `{
		"run_meta": {"run_id": "json-run", "name": "u-turn"},
		"config": {"time_step": 0.01, "curvature_metric": "deflection"},
		"vehicle": {"name": "cart", "width": 0.2, "kinematics": {"model": "constant", "a_acc": 15, "a_dcc": 15, "v_max": 7}},
		"track": [
			{"is_curve": false, "start_point": [0, 0], "end_point": [5, 0]},
			{"is_curve": true, "start_point": [5, 0], "end_point": [5, 0.5], "radius": 0.25, "center_point": [5, 0.25]},
			{"is_curve": false, "start_point": [5, 0.5], "end_point": [0, 0.5]}
		]
	}`
	res, err := RunJSON(in)
	require.NoError(t, err)

	var out struct {
		Meta     RunMeta           `json:"run_meta"`
		Source   string            `json:"source"`
		Segments []segment.Segment `json:"segments"`
		Summary  struct {
			Segments  int     `json:"segments"`
			PeakSpeed float64 `json:"peak_speed"`
		} `json:"summary"`
		Profile struct {
			Samples []json.RawMessage `json:"samples"`
		} `json:"profile"`
	}
	require.NoError(t, json.Unmarshal([]byte(res), &out))
	assert.Equal(t, RunMeta{RunID: "json-run", Name: "u-turn"}, out.Meta)
	assert.Equal(t, SourceTrack, out.Source)
	assertUTurn(t, out.Segments)
	assert.Equal(t, 3, out.Summary.Segments)
	assert.Equal(t, 7.0, out.Summary.PeakSpeed)
	assert.NotEmpty(t, out.Profile.Samples)

	_, err = RunJSON(`{"track": [`)
	assert.ErrorContains(t, err, "invalid input JSON")

	_, err = RunJSON(`{"vehicle": {"name": "cart"}, "segments": [{"type": "straight", "length": 1}]}`)
	assert.ErrorContains(t, err, "missing \"kinematics\"")
}
