package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/speed-profile/internal/geometry"
	"github.com/cxd309/speed-profile/internal/kinematics"
	"github.com/cxd309/speed-profile/internal/profile"
	"github.com/cxd309/speed-profile/internal/segment"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func hairpinProfile(t *testing.T) *profile.Profile {
	t.Helper()
	segs := []segment.Segment{segment.Straight(5), segment.Curve(0.25, 0.4), segment.Straight(5)}
	prof, err := profile.Build(segs, kinematics.ConstantAcceleration{AAcc: 15, ADcc: 15, VMaxVal: 7}, profile.Options{TimeStep: 0.01})
	require.NoError(t, err)
	return prof
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic), "%s is not a PNG", path)
}

func TestWriteProfilePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.png")
	require.NoError(t, WriteProfilePNG(path, hairpinProfile(t)))
	assertPNG(t, path)

	assert.Error(t, WriteProfilePNG(path, &profile.Profile{}))
}

func TestWritePathPNG(t *testing.T) {
	runs := []segment.Run{
		{Points: []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}},
		{Points: []geometry.Point{{X: 2, Y: 0}, {X: 2.7, Y: 0.3}, {X: 3, Y: 1}}, Curved: true},
	}
	insets := [][]geometry.Point{{{X: 0, Y: 0.1}, {X: 2, Y: 0.1}}, {{X: 5, Y: 5}}}

	path := filepath.Join(t.TempDir(), "path.png")
	require.NoError(t, WritePathPNG(path, runs, insets))
	assertPNG(t, path)

	assert.Error(t, WritePathPNG(path, nil, nil))
}

func TestWriteProfileHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProfileHTML(&buf, hairpinProfile(t)))
	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "Velocity over time")
	assert.Contains(t, html, "Velocity over distance")

	assert.Error(t, WriteProfileHTML(&buf, nil))
}
