// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package snapshot

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/edualvarado/unity-footprints/pkgs/colorize"
	"github.com/edualvarado/unity-footprints/pkgs/frame"
)

func decode(t *testing.T, text string) *frame.Frame {
	f, err := frame.Decode(text)
	require.NoError(t, err)
	return f
}

func TestBuildCombined(t *testing.T) {
	f := decode(t, "3,1.2\nA,B\n1,10\n2,20\n3,30\n")

	plots, err := Build(f, true, nil)
	require.NoError(t, err)
	require.Len(t, plots, 1)
	assert.Equal(t, "t = 1.20", plots[0].Title.Text)
	assert.Equal(t, "time", plots[0].X.Label.Text)
}

func TestBuildPerChannel(t *testing.T) {
	f := decode(t, "2,0.5\nA,B,C\n1,2,3\n4,5,6\n")

	plots, err := Build(f, false, colorize.NewPalette("red"))
	require.NoError(t, err)
	require.Len(t, plots, 3)
	for i, p := range plots {
		assert.Equal(t, []string{"A", "B", "C"}[i], p.Y.Label.Text)
	}
	assert.Empty(t, plots[0].X.Label.Text)
	assert.Equal(t, "time", plots[2].X.Label.Text)

	for _, tick := range plots[0].X.Tick.Marker.Ticks(0, 1) {
		assert.Empty(t, tick.Label)
	}
}

func TestBuildNoChannels(t *testing.T) {
	_, err := Build(nil, true, nil)
	assert.ErrorIs(t, err, ErrNoChannels)
}

func TestWriteToPNG(t *testing.T) {
	f := decode(t, "3,1.2\nA,B\n1,10\n2,20\n3,30\n")
	plots, err := Build(f, false, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTo(&buf, plots, 4*vg.Inch, 3*vg.Inch))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.NotZero(t, img.Bounds().Dx())
	assert.NotZero(t, img.Bounds().Dy())

	assert.ErrorIs(t, WriteTo(&buf, nil, vg.Inch, vg.Inch), ErrNoChannels)
}

func TestWriterSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snaps")
	sw := NewWriter(dir, nil).SetSize(3*vg.Inch, 2*vg.Inch)
	assert.Equal(t, dir, sw.Dir())

	f := decode(t, "2,0.5\nA,B\n1,2\n3,4\n")

	first, err := sw.Save(f, true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "frame-0001-t0.50.png"), first)

	second, err := sw.Save(f, false)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	fd, err := os.Open(second)
	require.NoError(t, err)
	defer fd.Close()
	_, err = png.Decode(fd)
	assert.NoError(t, err)
}
