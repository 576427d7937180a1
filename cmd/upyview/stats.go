// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package main

import (
	"fmt"

	cz "github.com/edualvarado/unity-footprints/pkgs/colorize"
	"github.com/edualvarado/unity-footprints/pkgs/frame"
	"github.com/edualvarado/unity-footprints/pkgs/layout"
	"github.com/edualvarado/unity-footprints/pkgs/render"
)

// TickStats collected from the tick results, only touched on the UI loop
type TickStats struct {
	Outcomes    map[render.Outcome]uint64
	Failures    uint64
	Rebuilds    uint64
	Last        render.Outcome
	LastErr     error
	LastTick    uint64
	State       layout.State
	SimTime     float64
	Samples     int
	Summaries   []frame.ChannelSummary
	LastFailure []render.ChannelFailure
}

func newTickStats() *TickStats {
	return &TickStats{Outcomes: make(map[render.Outcome]uint64)}
}

// Record a tick result. Only the summaries of the frame are kept.
func (ts *TickStats) Record(res render.TickResult) {

	ts.Outcomes[res.Outcome]++
	ts.Last = res.Outcome
	ts.LastErr = res.Err
	ts.LastTick = res.Tick
	ts.State = res.State

	if res.Outcome != render.Rendered {
		return
	}

	ts.Failures += uint64(len(res.Failures))
	ts.LastFailure = res.Failures
	if res.Action == layout.Rebuild {
		ts.Rebuilds++
	}

	if res.Frame != nil {
		ts.SimTime = res.Frame.SimulationTime()
		ts.Samples = res.Frame.SampleCount()
		ts.Summaries = frame.Summarize(res.Frame)
	}
}

// outcomeString colours the tick outcome for the status line
func outcomeString(o render.Outcome) string {
	switch o {
	case render.Rendered:
		return cz.Green(o.String())
	case render.SourceUnavailable:
		return cz.Red(o.String())
	}
	return cz.Yellow(o.String())
}

// modeString is the text shown for the wanted and drawn layout
func modeString(combined bool, st layout.State) string {

	want := layout.PerChannel
	if combined {
		want = layout.Combined
	}

	if want == st.Mode {
		return fmt.Sprintf("%s (%d axes)", want, st.Axes)
	}
	return fmt.Sprintf("%s -> %s (%d axes)", st.Mode, want, st.Axes)
}
