package trackio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cxd309/speed-profile/internal/segment"
	"github.com/cxd309/speed-profile/internal/track"
)

// ReadSegmentsJSON decodes a JSON array of segments.
func ReadSegmentsJSON(r io.Reader) ([]segment.Segment, error) {
	var segs []segment.Segment
	if err := json.NewDecoder(r).Decode(&segs); err != nil {
		return nil, fmt.Errorf("decoding segments: %w", err)
	}
	return segs, nil
}

// WriteSegmentsJSON writes segs as an indented JSON array.
func WriteSegmentsJSON(w io.Writer, segs []segment.Segment) error {
	if segs == nil {
		segs = []segment.Segment{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(segs)
}

// ReadTrackJSON decodes a JSON array of track primitives.
func ReadTrackJSON(r io.Reader) ([]track.Primitive, error) {
	var prims []track.Primitive
	if err := json.NewDecoder(r).Decode(&prims); err != nil {
		return nil, fmt.Errorf("decoding track: %w", err)
	}
	return prims, nil
}
