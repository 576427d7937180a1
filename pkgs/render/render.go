// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package render

import (
	"errors"
	"fmt"

	"github.com/edualvarado/unity-footprints/pkgs/colorize"
	"github.com/edualvarado/unity-footprints/pkgs/frame"
	"github.com/edualvarado/unity-footprints/pkgs/graphdata"
	"github.com/edualvarado/unity-footprints/pkgs/layout"
	"github.com/edualvarado/unity-footprints/pkgs/source"
	tlog "github.com/edualvarado/unity-footprints/pkgs/ttylog"
)

// LogID for the render tick messages
const LogID = "RenderLogID"

func init() {
	tlog.Register(LogID)
}

// ErrChannelRender is wrapped by every per channel draw failure
var ErrChannelRender = errors.New("channel render failed")

// Outcome of one tick
type Outcome int

// Tick outcomes
const (
	Rendered          Outcome = iota // a valid frame was drawn
	SourceUnavailable                // the cache file could not be read
	MalformedFrame                   // the text did not decode into a valid frame
)

func (o Outcome) String() string {
	switch o {
	case Rendered:
		return "Rendered"
	case SourceUnavailable:
		return "SourceUnavailable"
	case MalformedFrame:
		return "MalformedFrame"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// ChannelFailure is a channel that could not be drawn this tick
type ChannelFailure struct {
	Channel int
	Name    string
	Err     error
}

// TickResult describes what one tick did
type TickResult struct {
	Tick     uint64
	Outcome  Outcome
	Err      error        // source or decode error, nil when Rendered
	Action   layout.Action // only meaningful when Rendered
	State    layout.State
	Frame    *frame.Frame // the frame drawn, nil unless Rendered
	Drawn    int          // channels drawn
	Skipped  int          // channels with a sample count other than the frame's
	Failures []ChannelFailure
}

// Changed reports a visual change made by the tick
func (r TickResult) Changed() bool {
	return r.Outcome == Rendered
}

// DrawFunc draws one channel onto an axis
type DrawFunc func(ax *graphdata.Axis, x, y []float64, name, color string) error

// Scheduler owns the axis set and runs the read, decode, layout and draw
// cycle. It is not safe for concurrent use, every call is expected to come
// from the UI event loop.
type Scheduler struct {
	src     source.Reader
	decoder *frame.Decoder
	fig     *graphdata.Figure
	machine *layout.Machine
	want    layout.Mode
	palette *colorize.Palette
	draw    DrawFunc
	ticks   uint64
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithCombined sets the starting value of the combined mode flag
func WithCombined(combined bool) Option {
	return func(s *Scheduler) {
		if combined {
			s.want = layout.Combined
		} else {
			s.want = layout.PerChannel
		}
	}
}

// WithPalette sets the channel colours
func WithPalette(p *colorize.Palette) Option {
	return func(s *Scheduler) {
		if p != nil {
			s.palette = p
		}
	}
}

// WithDecoder sets the frame decoder
func WithDecoder(d *frame.Decoder) Option {
	return func(s *Scheduler) {
		if d != nil {
			s.decoder = d
		}
	}
}

// WithDrawFunc replaces the channel draw call
func WithDrawFunc(f DrawFunc) Option {
	return func(s *Scheduler) {
		if f != nil {
			s.draw = f
		}
	}
}

func plotLine(ax *graphdata.Axis, x, y []float64, name, color string) error {
	return ax.Plot(x, y, name, color)
}

// New scheduler drawing frames read from src onto fig. The figure is reset
// to a single combined axis.
func New(src source.Reader, fig *graphdata.Figure, opts ...Option) *Scheduler {

	if fig == nil {
		fig = graphdata.NewFigure(0)
	}

	s := &Scheduler{
		src:     src,
		decoder: frame.NewDecoder(frame.DefaultSampleInterval),
		fig:     fig,
		machine: layout.New(layout.Combined, 1),
		want:    layout.Combined,
		palette: colorize.NewPalette(),
		draw:    plotLine,
	}

	for _, opt := range opts {
		opt(s)
	}
	s.applyLayout(layout.Rebuild, s.machine.State())

	return s
}

// Figure drawn by the scheduler
func (s *Scheduler) Figure() *graphdata.Figure {
	return s.fig
}

// Palette used for the channel colours
func (s *Scheduler) Palette() *colorize.Palette {
	return s.palette
}

// Combined returns the combined mode flag, the wanted mode for the next frame
func (s *Scheduler) Combined() bool {
	return s.want == layout.Combined
}

// Toggle the combined mode flag. The axis set changes on the next valid frame.
func (s *Scheduler) Toggle() bool {
	s.want = s.want.Toggle()

	return s.Combined()
}

// State of the axis set as last drawn
func (s *Scheduler) State() layout.State {
	return s.machine.State()
}

// Ticks run so far
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Fetch reads and decodes a frame without touching the axis set
func (s *Scheduler) Fetch() (*frame.Frame, Outcome, error) {

	text, err := s.src.Read()
	if err != nil {
		return nil, SourceUnavailable, err
	}

	f, err := s.decoder.Decode(text)
	if err != nil {
		return nil, MalformedFrame, err
	}

	return f, Rendered, nil
}

// Tick runs one read, decode, layout and draw cycle. A tick that cannot read
// or decode a frame leaves the axis set untouched.
func (s *Scheduler) Tick() TickResult {

	s.ticks++
	res := TickResult{Tick: s.ticks, State: s.machine.State()}

	f, outcome, err := s.Fetch()
	if err != nil {
		res.Outcome, res.Err = outcome, err
		tlog.Log(LogID, "tick %d: %v: %v\n", res.Tick, outcome, err)
		return res
	}

	res.Outcome = Rendered
	res.Frame = f
	res.Action = s.machine.Step(s.want, f.NumChannels())
	res.State = s.machine.State()

	s.applyLayout(res.Action, res.State)

	x := f.Time()
	for ch := 0; ch < f.NumChannels(); ch++ {
		y := f.Channel(ch)
		if len(y) != f.SampleCount() {
			res.Skipped++
			continue
		}

		ax := s.axisFor(ch, res.State)
		name := f.ChannelName(ch)
		if err := s.drawChannel(ax, x, y, name, s.palette.Color(ch)); err != nil {
			res.Failures = append(res.Failures, ChannelFailure{Channel: ch, Name: name, Err: err})
			tlog.Log(LogID, "tick %d: channel %d %q: %v\n", res.Tick, ch, name, err)
			continue
		}
		res.Drawn++
	}

	return res
}

func (s *Scheduler) applyLayout(action layout.Action, st layout.State) {

	switch action {
	case layout.Rebuild:
		s.fig.RemoveAll()
		axes := s.fig.AddAxes(st.Axes)
		for i, ax := range axes {
			ax.SetLegend(true)
			ax.SetXLabels(st.Mode == layout.Combined || i == len(axes)-1)
		}
	default:
		for _, ax := range s.fig.Axes() {
			ax.Clear()
		}
	}
}

func (s *Scheduler) axisFor(ch int, st layout.State) *graphdata.Axis {
	if st.Mode == layout.Combined {
		return s.fig.WithIndex(0)
	}
	return s.fig.WithIndex(ch)
}

// drawChannel recovers a panic raised by the draw call so the other channels
// of the tick are still drawn.
func (s *Scheduler) drawChannel(ax *graphdata.Axis, x, y []float64, name, color string) (err error) {

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrChannelRender, r)
		}
	}()

	if ax == nil {
		return fmt.Errorf("%w: no axis", ErrChannelRender)
	}

	if err := s.draw(ax, x, y, name, color); err != nil {
		return fmt.Errorf("%w: %v", ErrChannelRender, err)
	}

	return nil
}
