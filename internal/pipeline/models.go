package pipeline

import (
	"log"

	"github.com/cxd309/speed-profile/internal/config"
	"github.com/cxd309/speed-profile/internal/geometry"
	"github.com/cxd309/speed-profile/internal/kinematics"
	"github.com/cxd309/speed-profile/internal/profile"
	"github.com/cxd309/speed-profile/internal/segment"
	"github.com/cxd309/speed-profile/internal/track"
)

// Sources an Input can be profiled from, in priority order.
const (
	SourceTrack    = "track"
	SourcePoints   = "points"
	SourceSegments = "segments"
)

// RunMeta holds the identity of a profiling run.
type RunMeta struct {
	RunID string `json:"run_id"` // a fresh UUID when empty
	Name  string `json:"name,omitempty"`
}

// Input is the JSON-serialisable input to a run. Exactly one source is used: Track if
// present, else Points, else Segments.
type Input struct {
	Meta    RunMeta             `json:"run_meta"`
	Config  *config.Config      `json:"config,omitempty"`
	Vehicle *kinematics.Vehicle `json:"vehicle,omitempty"` // replaces the config's motion model

	Track              []track.Primitive `json:"track,omitempty"`
	PointsPerPrimitive int               `json:"points_per_primitive,omitempty"` // default 50
	Points             []geometry.Point  `json:"points,omitempty"`
	Segments           []segment.Segment `json:"segments,omitempty"`
}

// Output is the complete result of a run.
type Output struct {
	Meta     RunMeta            `json:"run_meta"`
	Source   string             `json:"source"`
	Runs     []segment.Run      `json:"runs,omitempty"`
	Segments []segment.Segment  `json:"segments"`
	Insets   [][]geometry.Point `json:"insets,omitempty"`
	Profile  *profile.Profile   `json:"profile"`
	Summary  profile.Summary    `json:"summary"`
}

// Options configures Run. The zero value runs silently.
type Options struct {
	Logger *log.Logger
}

func (o Options) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}
