// Package trackio reads and writes the files that surround a profiling run: sampled
// points, segment lists, track descriptions and speed traces.
package trackio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/cxd309/speed-profile/internal/geometry"
)

// ReadPointsTSV reads tab-separated X/Y rows. A non-numeric first row, such as the
// "X\tY" header WritePointsTSV emits, is treated as a header and skipped; a numeric
// first row is read as data. Blank lines are ignored.
func ReadPointsTSV(r io.Reader) ([]geometry.Point, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var pts []geometry.Point
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading points: %w", err)
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("row %d: want 2 fields, got %d", row, len(rec))
		}
		x, errX := strconv.ParseFloat(rec[0], 64)
		y, errY := strconv.ParseFloat(rec[1], 64)
		if errX != nil || errY != nil {
			if row == 1 {
				continue
			}
			return nil, fmt.Errorf("row %d: %w", row, errors.Join(errX, errY))
		}
		pts = append(pts, geometry.Pt(x, y))
	}
	return pts, nil
}

// WritePointsTSV writes pts under an "X\tY" header.
func WritePointsTSV(w io.Writer, pts []geometry.Point) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write([]string{"X", "Y"}); err != nil {
		return err
	}
	for _, p := range pts {
		if err := cw.Write([]string{formatExact(p.X), formatExact(p.Y)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatExact(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
