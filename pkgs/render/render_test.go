// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package render

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edualvarado/unity-footprints/pkgs/colorize"
	"github.com/edualvarado/unity-footprints/pkgs/frame"
	"github.com/edualvarado/unity-footprints/pkgs/graphdata"
	"github.com/edualvarado/unity-footprints/pkgs/layout"
	"github.com/edualvarado/unity-footprints/pkgs/source"
)

const (
	twoChannels   = "3,1.2\nA,B\n1,10\n2,20\n3,30\n"
	threeChannels = "2,0.5\nA,B,C\n1,2,3\n4,5,6\n"
	shortFrame    = "3,1.2\nA,B\n1,10\n2,20\n"
)

// textSource returns the text it holds, or err when set
type textSource struct {
	text string
	err  error
}

func (ts *textSource) Read() (string, error) {
	if ts.err != nil {
		return "", ts.err
	}
	return ts.text, nil
}

func axisIDs(fig *graphdata.Figure) []int {
	ids := make([]int, 0, fig.NumAxes())
	for _, ax := range fig.Axes() {
		ids = append(ids, ax.ID())
	}
	return ids
}

func TestTickRendersCombined(t *testing.T) {
	src := &textSource{text: twoChannels}
	s := New(src, graphdata.NewFigure(1))

	res := s.Tick()
	require.Equal(t, Rendered, res.Outcome)
	require.NoError(t, res.Err)
	assert.True(t, res.Changed())
	assert.Equal(t, layout.Clear, res.Action)
	assert.Equal(t, layout.State{Mode: layout.Combined, Axes: 1}, res.State)
	assert.Equal(t, 2, res.Drawn)
	assert.Empty(t, res.Failures)
	assert.EqualValues(t, 1, res.Tick)

	fig := s.Figure()
	require.Equal(t, 1, fig.NumAxes())
	lines := fig.WithIndex(0).Lines()
	require.Len(t, lines, 2)
	assert.True(t, fig.WithIndex(0).Legend())
	assert.True(t, fig.WithIndex(0).XLabels())
	assert.Equal(t, "A", lines[0].Name)
	assert.Equal(t, []float64{1, 2, 3}, lines[0].Y)
	assert.Equal(t, "B", lines[1].Name)
	assert.Equal(t, []float64{10, 20, 30}, lines[1].Y)
	assert.Equal(t, colorize.DefaultPalette[0], lines[0].Color)
	assert.Equal(t, colorize.DefaultPalette[1], lines[1].Color)
	assert.InDeltaSlice(t, []float64{1.0, 1.1, 1.2}, lines[0].X, 1e-9)
}

func TestTickShortFrameNoRender(t *testing.T) {
	src := &textSource{text: twoChannels}
	s := New(src, nil)
	require.Equal(t, Rendered, s.Tick().Outcome)
	before := s.Figure().WithIndex(0).Lines()

	src.text = shortFrame
	res := s.Tick()
	assert.Equal(t, MalformedFrame, res.Outcome)
	assert.True(t, errors.Is(res.Err, frame.ErrMalformedFrame))
	assert.False(t, res.Changed())
	assert.Nil(t, res.Frame)

	// previous chart stays on screen
	assert.Equal(t, before, s.Figure().WithIndex(0).Lines())
}

func TestTickEmptyInput(t *testing.T) {
	s := New(&textSource{}, nil)

	assert.NotPanics(t, func() {
		res := s.Tick()
		assert.Equal(t, MalformedFrame, res.Outcome)
	})
	assert.Equal(t, 1, s.Figure().NumAxes())
	assert.Empty(t, s.Figure().WithIndex(0).Lines())
}

func TestTickSourceUnavailable(t *testing.T) {
	src := &textSource{err: fmt.Errorf("%w: gone", source.ErrSourceUnavailable)}
	s := New(src, nil)
	ids := axisIDs(s.Figure())

	res := s.Tick()
	assert.Equal(t, SourceUnavailable, res.Outcome)
	assert.True(t, errors.Is(res.Err, source.ErrSourceUnavailable))
	assert.Equal(t, ids, axisIDs(s.Figure()))
}

func TestTickMalformedInputsNeverPanic(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"3",
		"x,y\nA\n1\n",
		"1,0.1\n\n",
		"2,0.2\nA,B\n1,2,3\n4,5,6\n",
		"2,0.2\nA,B\n1,\n2,\n",
		"-1,0\nA\n",
		"1,0.1\nA,B\n1,x\n",
		"\xff\xfe,\x00\n,\n,,,\n",
	}

	for _, in := range inputs {
		s := New(&textSource{text: in}, nil)
		assert.NotPanics(t, func() {
			res := s.Tick()
			assert.NotEqual(t, Rendered, res.Outcome, "%q", in)
		}, "%q", in)
	}
}

func TestSteadyStateKeepsAxes(t *testing.T) {
	src := &textSource{text: threeChannels}
	s := New(src, nil, WithCombined(false))

	res := s.Tick()
	require.Equal(t, layout.Rebuild, res.Action)
	ids := axisIDs(s.Figure())
	require.Len(t, ids, 3)
	axes := s.Figure().Axes()

	src.text = "2,0.7\nA,B,C\n7,8,9\n1,1,1\n"
	res = s.Tick()
	assert.Equal(t, layout.Clear, res.Action)
	assert.Equal(t, ids, axisIDs(s.Figure()))
	for i, ax := range s.Figure().Axes() {
		assert.Same(t, axes[i], ax)
		require.Len(t, ax.Lines(), 1)
	}
	assert.Equal(t, []float64{7, 1}, s.Figure().WithIndex(0).Lines()[0].Y)
}

func TestPerChannelLayout(t *testing.T) {
	s := New(&textSource{text: threeChannels}, nil, WithCombined(false))
	require.False(t, s.Combined())

	res := s.Tick()
	require.Equal(t, Rendered, res.Outcome)
	assert.Equal(t, layout.State{Mode: layout.PerChannel, Axes: 3}, res.State)

	axes := s.Figure().Axes()
	require.Len(t, axes, 3)
	for i, ax := range axes {
		require.Len(t, ax.Lines(), 1)
		assert.Equal(t, []string{"A", "B", "C"}[i], ax.Lines()[0].Name)
		assert.True(t, ax.Legend())
		assert.Equal(t, i == 2, ax.XLabels(), "axis %d", i)
	}
}

func TestToggleAxisCounts(t *testing.T) {
	src := &textSource{text: threeChannels}
	s := New(src, nil, WithCombined(false))
	s.Tick()
	require.Equal(t, 3, s.Figure().NumAxes())

	// false -> true leaves exactly one axis
	assert.True(t, s.Toggle())
	assert.Equal(t, 3, s.Figure().NumAxes(), "toggle applies on the next frame")
	res := s.Tick()
	assert.Equal(t, layout.Rebuild, res.Action)
	require.Equal(t, 1, s.Figure().NumAxes())
	assert.Len(t, s.Figure().WithIndex(0).Lines(), 3)
	assert.True(t, s.Figure().WithIndex(0).XLabels())

	// true -> false gives K axes in channel order
	assert.False(t, s.Toggle())
	res = s.Tick()
	assert.Equal(t, layout.Rebuild, res.Action)
	require.Equal(t, 3, s.Figure().NumAxes())
	for i, ax := range s.Figure().Axes() {
		assert.Equal(t, []string{"A", "B", "C"}[i], ax.Lines()[0].Name)
	}
}

func TestToggleWaitsForValidFrame(t *testing.T) {
	src := &textSource{text: twoChannels}
	s := New(src, nil)
	s.Tick()

	s.Toggle()
	src.text = shortFrame
	s.Tick()
	assert.Equal(t, 1, s.Figure().NumAxes())
	assert.Equal(t, layout.Combined, s.State().Mode)

	src.text = twoChannels
	s.Tick()
	assert.Equal(t, 2, s.Figure().NumAxes())
	assert.Equal(t, layout.PerChannel, s.State().Mode)
}

func TestChannelCountChangeRebuilds(t *testing.T) {
	src := &textSource{text: twoChannels}
	s := New(src, nil, WithCombined(false))
	s.Tick()
	require.Equal(t, 2, s.Figure().NumAxes())

	src.text = threeChannels
	res := s.Tick()
	assert.Equal(t, layout.Rebuild, res.Action)
	assert.Equal(t, 3, s.Figure().NumAxes())

	// combined mode ignores the channel count
	s.Toggle()
	s.Tick()
	src.text = twoChannels
	res = s.Tick()
	assert.Equal(t, layout.Clear, res.Action)
	assert.Equal(t, 1, s.Figure().NumAxes())
}

func TestChannelFailureIsolated(t *testing.T) {
	draw := func(ax *graphdata.Axis, x, y []float64, name, color string) error {
		if name == "B" {
			return graphdata.ErrShape
		}
		return ax.Plot(x, y, name, color)
	}
	s := New(&textSource{text: threeChannels}, nil, WithDrawFunc(draw))

	res := s.Tick()
	assert.Equal(t, Rendered, res.Outcome)
	assert.Equal(t, 2, res.Drawn)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 1, res.Failures[0].Channel)
	assert.Equal(t, "B", res.Failures[0].Name)
	assert.True(t, errors.Is(res.Failures[0].Err, ErrChannelRender))

	lines := s.Figure().WithIndex(0).Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "A", lines[0].Name)
	assert.Equal(t, "C", lines[1].Name)
}

func TestChannelPanicRecovered(t *testing.T) {
	draw := func(ax *graphdata.Axis, x, y []float64, name, color string) error {
		if name == "A" {
			var data []float64
			_ = data[len(y)]
		}
		return ax.Plot(x, y, name, color)
	}
	s := New(&textSource{text: threeChannels}, nil, WithCombined(false), WithDrawFunc(draw))

	var res TickResult
	require.NotPanics(t, func() { res = s.Tick() })
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 0, res.Failures[0].Channel)
	assert.Contains(t, res.Failures[0].Err.Error(), "panic")
	assert.Equal(t, 2, res.Drawn)
	assert.Empty(t, s.Figure().WithIndex(0).Lines())
	assert.Len(t, s.Figure().WithIndex(2).Lines(), 1)
}

func TestPaletteWraps(t *testing.T) {
	p := colorize.NewPalette("red", "blue")
	s := New(&textSource{text: threeChannels}, nil, WithPalette(p))
	s.Tick()

	lines := s.Figure().WithIndex(0).Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "red", lines[0].Color)
	assert.Equal(t, "blue", lines[1].Color)
	assert.Equal(t, "red", lines[2].Color)
	assert.Same(t, p, s.Palette())
}

func TestDecoderOption(t *testing.T) {
	s := New(&textSource{text: twoChannels}, nil, WithDecoder(frame.NewDecoder(0.5)))
	s.Tick()

	assert.InDeltaSlice(t, []float64{0.2, 0.7, 1.2}, s.Figure().WithIndex(0).Lines()[0].X, 1e-9)
}

func TestFetchLeavesAxes(t *testing.T) {
	s := New(&textSource{text: threeChannels}, nil, WithCombined(false))
	ids := axisIDs(s.Figure())

	f, outcome, err := s.Fetch()
	require.NoError(t, err)
	assert.Equal(t, Rendered, outcome)
	assert.Equal(t, 3, f.NumChannels())
	assert.Equal(t, ids, axisIDs(s.Figure()))
	assert.Zero(t, s.Ticks())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "Rendered", Rendered.String())
	assert.Equal(t, "SourceUnavailable", SourceUnavailable.String())
	assert.Equal(t, "MalformedFrame", MalformedFrame.String())
	assert.Equal(t, "Outcome(7)", Outcome(7).String())
}
