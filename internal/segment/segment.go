// Package segment turns a dense sequence of path samples into alternating straight and
// circular-arc segments.
//
// Split walks the samples and cuts them into runs wherever the path switches between
// locally straight and locally curved. Classify fits each run: a straight keeps its
// chord length, a curve gets a three-point circumradius and a chord-length arc length.
package segment

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInsufficientData is returned when a path or run has fewer than two points.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrUnclassifiableRun is returned for a curved run too short to fit a circle.
	ErrUnclassifiableRun = errors.New("unclassifiable run")
	// ErrInvalidSegment is returned for a segment whose dimensions are not positive and
	// finite, or whose arc is longer than its full circle.
	ErrInvalidSegment = errors.New("invalid segment")
)

// arcSlack is the relative allowance on arc_length <= 2πr that absorbs radius rounding.
const arcSlack = 0.01

// Kind discriminates the Segment union.
type Kind string

const (
	KindStraight Kind = "straight"
	KindCurve    Kind = "curve"
)

// Segment is a maximal straight or circular-arc portion of a path.
// Length is set for straights; Radius and ArcLength for curves.
type Segment struct {
	Kind      Kind
	Length    float64
	Radius    float64
	ArcLength float64
}

// Straight returns a straight segment of the given length.
func Straight(length float64) Segment {
	return Segment{Kind: KindStraight, Length: length}
}

// Curve returns a circular-arc segment.
func Curve(radius, arcLength float64) Segment {
	return Segment{Kind: KindCurve, Radius: radius, ArcLength: arcLength}
}

// Distance returns the distance travelled along the segment.
func (s Segment) Distance() float64 {
	if s.Kind == KindCurve {
		return s.ArcLength
	}
	return s.Length
}

func (s Segment) String() string {
	if s.Kind == KindCurve {
		return fmt.Sprintf("curve(r=%g, arc=%g)", s.Radius, s.ArcLength)
	}
	return fmt.Sprintf("straight(%g)", s.Length)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Validate checks that the segment can be profiled.
func (s Segment) Validate() error {
	switch s.Kind {
	case KindStraight:
		if !positive(s.Length) {
			return fmt.Errorf("straight length %v: %w", s.Length, ErrInvalidSegment)
		}
	case KindCurve:
		if !positive(s.Radius) {
			return fmt.Errorf("curve radius %v: %w", s.Radius, ErrInvalidSegment)
		}
		if !positive(s.ArcLength) {
			return fmt.Errorf("curve arc length %v: %w", s.ArcLength, ErrInvalidSegment)
		}
		if full := 2 * math.Pi * s.Radius; s.ArcLength > full*(1+arcSlack) {
			return fmt.Errorf("curve arc length %v exceeds circumference %v: %w", s.ArcLength, full, ErrInvalidSegment)
		}
	default:
		return fmt.Errorf("unknown segment type %q: %w", s.Kind, ErrInvalidSegment)
	}
	return nil
}

type straightJSON struct {
	Type   Kind    `json:"type"`
	Length float64 `json:"length"`
}

type curveJSON struct {
	Type      Kind    `json:"type"`
	Radius    float64 `json:"radius"`
	ArcLength float64 `json:"arc_length"`
}

// MarshalJSON writes {"type":"straight","length":L} or
// {"type":"curve","radius":R,"arc_length":A}.
func (s Segment) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case KindStraight:
		return json.Marshal(straightJSON{Type: s.Kind, Length: s.Length})
	case KindCurve:
		return json.Marshal(curveJSON{Type: s.Kind, Radius: s.Radius, ArcLength: s.ArcLength})
	default:
		return nil, fmt.Errorf("unknown segment type %q", s.Kind)
	}
}

// UnmarshalJSON reads the "type" discriminator and then the matching fields.
func (s *Segment) UnmarshalJSON(data []byte) error {
	var disc struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &disc); err != nil {
		return err
	}

	switch disc.Type {
	case KindStraight:
		var aux straightJSON
		if err := json.Unmarshal(data, &aux); err != nil {
			return fmt.Errorf("parsing straight segment: %w", err)
		}
		*s = Straight(aux.Length)
	case KindCurve:
		var aux curveJSON
		if err := json.Unmarshal(data, &aux); err != nil {
			return fmt.Errorf("parsing curve segment: %w", err)
		}
		*s = Curve(aux.Radius, aux.ArcLength)
	default:
		return fmt.Errorf("unknown segment type %q", disc.Type)
	}
	return nil
}
