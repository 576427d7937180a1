// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package main

import (
	"fmt"

	"github.com/rivo/tview"

	cz "github.com/edualvarado/unity-footprints/pkgs/colorize"
	"github.com/edualvarado/unity-footprints/pkgs/hexdump"
	"github.com/edualvarado/unity-footprints/pkgs/render"
	tab "github.com/edualvarado/unity-footprints/pkgs/taborder"
)

const (
	framePanelName string = "Frame"
	rawBytes              = 256
)

// FramePanel - per channel summary of the last frame and the tick counters
type FramePanel struct {
	tabOrder *tab.Tab
	topFlex  *tview.Flex

	channels *tview.Table
	ticks    *tview.TextView
	raw      *tview.TextView
}

// FramePanelSetup setup the frame details page
func FramePanelSetup(nextSlide func()) (pageName string, content tview.Primitive) {

	pg := &FramePanel{}

	to := tab.New(framePanelName, upy.app)
	pg.tabOrder = to

	flex0 := tview.NewFlex().SetDirection(tview.FlexRow)
	flex1 := tview.NewFlex().SetDirection(tview.FlexColumn)

	TitleBox(flex0)

	pg.channels = CreateTableView(flex1, "Channels (h)", tview.AlignLeft, 0, 3, true).
		SetSeparator(tview.Borders.Vertical)
	pg.ticks = CreateTextView(flex1, "Ticks (t)", tview.AlignLeft, 0, 2, false)

	flex0.AddItem(flex1, 0, 2, true)

	pg.raw = CreateTextView(flex0, "Raw cache file head (r)", tview.AlignLeft, 0, 1, false)

	to.Add(pg.channels, 'h')
	to.Add(pg.ticks, 't')
	to.Add(pg.raw, 'r')

	to.SetInputDone()

	pg.topFlex = flex0

	upy.timers.Add(framePanelName, func(step int, ticks uint64) {
		if step != 0 {
			return
		}
		upy.app.QueueUpdateDraw(func() {
			pg.refresh()
		})
	})

	return framePanelName, pg.topFlex
}

// refresh runs on the UI loop, focus is only read there
func (pg *FramePanel) refresh() bool {
	if !pg.topFlex.HasFocus() {
		return false
	}
	pg.displayFramePanel()

	return true
}

// Display the frame panel data
func (pg *FramePanel) displayFramePanel() {

	pg.displayChannels(pg.channels, upy.stats)
	pg.ticks.SetText(ticksText(upy.stats, upy.gate.Dropped()))
	pg.displayRaw()
}

// displayRaw dumps the start of the cache file as the producer left it
func (pg *FramePanel) displayRaw() {

	data, err := upy.src.Head(rawBytes)
	if err != nil {
		pg.raw.SetText(cz.Red(tview.Escape(err.Error())))
		return
	}

	pg.raw.SetText(tview.Escape(hexdump.HexDump(upy.src.Path(), data, 0, len(data))))
}

func (pg *FramePanel) displayChannels(table *tview.Table, st *TickStats) {

	table.Clear()

	titles := []string{"Channel", "Samples", "Min", "Max", "Time of Max", "Last"}
	for col, t := range titles {
		align := tview.AlignRight
		if col == 0 {
			align = tview.AlignLeft
		}
		SetCell(table, 0, col, cz.CornSilk(t), align)
	}

	palette := upy.sched.Palette()
	for i, s := range st.Summaries {
		row := i + 1

		SetCell(table, row, 0, fmt.Sprintf("[%s]%s[-]", palette.Color(i), tview.Escape(s.Name)), tview.AlignLeft)
		SetCell(table, row, 1, cz.Yellow(s.Samples))
		if !s.HasValues {
			for col := 2; col < len(titles); col++ {
				SetCell(table, row, col, cz.Gray("-"))
			}
			continue
		}
		SetCell(table, row, 2, cz.SkyBlue(s.Min, 0, 3))
		SetCell(table, row, 3, cz.SkyBlue(s.Max, 0, 3))
		SetCell(table, row, 4, cz.GoldenRod(s.MaxTime, 0, 2))
		SetCell(table, row, 5, cz.MediumSpringGreen(s.Last, 0, 3))
	}
}

// ticksText for the tick counter window
func ticksText(st *TickStats, dropped uint64) string {

	s := fmt.Sprintf("%-18s %d\n", "Tick", st.LastTick)
	for _, o := range []render.Outcome{render.Rendered, render.SourceUnavailable, render.MalformedFrame} {
		s += fmt.Sprintf("%-18s %d\n", o, st.Outcomes[o])
	}
	s += fmt.Sprintf("%-18s %d\n", "Channel failures", st.Failures)
	s += fmt.Sprintf("%-18s %d\n", "Layout rebuilds", st.Rebuilds)
	s += fmt.Sprintf("%-18s %d\n", "Dropped ticks", dropped)
	s += fmt.Sprintf("%-18s %s (%d axes)\n", "Layout", st.State.Mode, st.State.Axes)
	s += fmt.Sprintf("%-18s %d\n", "Samples", st.Samples)

	if st.LastErr != nil {
		s += fmt.Sprintf("\n%s\n%s\n", cz.Orange("Last error"), tview.Escape(st.LastErr.Error()))
	}
	for _, f := range st.LastFailure {
		s += fmt.Sprintf("%s %s: %s\n", cz.Red("failed"), tview.Escape(f.Name), tview.Escape(f.Err.Error()))
	}

	return s
}
