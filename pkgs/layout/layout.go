// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package layout

import (
	"fmt"
)

// Mode of the axis set
type Mode int

// Axis set modes
const (
	Combined   Mode = iota // all channels on one shared axis
	PerChannel             // one axis per channel stacked vertically
)

func (m Mode) String() string {
	switch m {
	case Combined:
		return "Combined"
	case PerChannel:
		return "PerChannel"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == Combined {
		return PerChannel
	}
	return Combined
}

// Action to take on the axis set before drawing a frame
type Action int

// Layout actions
const (
	Clear   Action = iota // keep the axes, remove their drawn content
	Rebuild               // destroy all axes and create State.Axes new ones
)

func (a Action) String() string {
	switch a {
	case Clear:
		return "Clear"
	case Rebuild:
		return "Rebuild"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// State of the axis set
type State struct {
	Mode Mode
	Axes int
}

// AxesFor is the number of axes the mode needs for the channel count
func AxesFor(mode Mode, channels int) int {
	if mode == Combined {
		return 1
	}
	if channels < 0 {
		return 0
	}
	return channels
}

type transition struct {
	from, to Mode
	resized  bool
}

// transitions is the complete table, a mode change always rebuilds and so
// does a change of axis count.
var transitions = map[transition]Action{
	{Combined, Combined, false}:     Clear,
	{Combined, Combined, true}:      Rebuild,
	{Combined, PerChannel, false}:   Rebuild,
	{Combined, PerChannel, true}:    Rebuild,
	{PerChannel, Combined, false}:   Rebuild,
	{PerChannel, Combined, true}:    Rebuild,
	{PerChannel, PerChannel, false}: Clear,
	{PerChannel, PerChannel, true}:  Rebuild,
}

// Next returns the action and resulting state for a frame with the given
// channel count drawn in the wanted mode.
func Next(cur State, want Mode, channels int) (State, Action) {

	next := State{Mode: want, Axes: AxesFor(want, channels)}

	action, ok := transitions[transition{from: cur.Mode, to: want, resized: cur.Axes != next.Axes}]
	if !ok {
		action = Rebuild
	}

	return next, action
}

// Machine tracks the axis set state between frames
type Machine struct {
	state State
}

// New machine for an axis set created in the given state
func New(mode Mode, axes int) *Machine {
	return &Machine{state: State{Mode: mode, Axes: axes}}
}

// State of the axis set
func (m *Machine) State() State {
	return m.state
}

// Step to the wanted mode for a frame with the given channel count
func (m *Machine) Step(want Mode, channels int) Action {

	next, action := Next(m.state, want, channels)
	m.state = next

	return action
}
