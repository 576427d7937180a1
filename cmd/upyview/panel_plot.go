// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package main

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	cz "github.com/edualvarado/unity-footprints/pkgs/colorize"
	"github.com/edualvarado/unity-footprints/pkgs/layout"
	tab "github.com/edualvarado/unity-footprints/pkgs/taborder"
	tlog "github.com/edualvarado/unity-footprints/pkgs/ttylog"
	"github.com/edualvarado/unity-footprints/pkgs/utils"
)

const (
	plotPanelName string = "Plot"
)

// PlotPanel - the live chart, the style toggle and the status line
type PlotPanel struct {
	tabOrder *tab.Tab
	topFlex  *tview.Flex

	chart  *tview.TextView
	style  *tview.Button
	status *tview.TextView

	usage   string
	message string
}

var plotPanel *PlotPanel

// PlotPanelSetup setup the main chart page
func PlotPanelSetup(nextSlide func()) (pageName string, content tview.Primitive) {

	pg := &PlotPanel{}
	plotPanel = pg

	to := tab.New(plotPanelName, upy.app)
	pg.tabOrder = to

	flex0 := tview.NewFlex().SetDirection(tview.FlexRow)
	flex1 := tview.NewFlex().SetDirection(tview.FlexColumn)

	TitleBox(flex0)

	pg.chart = CreateTextView(flex0, "Channels (c)", tview.AlignLeft, 0, 1, true)

	pg.status = CreateTextView(flex1, "Status", tview.AlignLeft, 0, 1, false)
	pg.style = CreateButton(flex1, "Style", 12, 0, toggleStyle)
	flex0.AddItem(flex1, 3, 0, false)

	to.Add(pg.chart, 'c')
	to.Add(pg.style, 'b')

	to.SetInputDone()

	pg.topFlex = flex0

	upy.timers.Add(plotPanelName, func(step int, ticks uint64) {
		if !upy.gate.Enter() {
			upy.recorder.Dropped()
			return
		}
		upy.app.QueueUpdateDraw(func() {
			defer upy.gate.Leave()
			pg.tick(step)
		})
	})

	return plotPanelName, pg.topFlex
}

// tick runs one scheduler tick on the UI loop. The chart is redrawn from the
// axis set on every tick so a resize takes effect, a skipped tick leaves the
// axis set and so the chart unchanged.
func (pg *PlotPanel) tick(step int) {

	start := time.Now()
	res := upy.sched.Tick()
	upy.recorder.Observe(res, time.Since(start))
	upy.stats.Record(res)

	for _, f := range res.Failures {
		tlog.DebugPrintf("channel %d %q not drawn: %v\n", f.Channel, f.Name, f.Err)
	}

	pg.chart.SetText(upy.sched.Figure().MakeChart(pg.chart))

	if step == 0 && upy.usage != nil {
		if u, err := upy.usage.Sample(); err == nil {
			pg.usage = u.String()
		}
	}

	pg.displayStatus()
}

func (pg *PlotPanel) displayStatus() {

	st := upy.stats

	s := fmt.Sprintf("%s %s  %s %s  %s %.2f",
		cz.Orange("Mode"), modeString(upy.sched.Combined(), st.State),
		cz.Orange("Last"), outcomeString(st.Last),
		cz.Orange("Time"), st.SimTime)

	if fi, err := upy.src.Stat(); err == nil {
		s += fmt.Sprintf("  %s %s", cz.Orange("File"), utils.FormatBytes(uint64(fi.Size()), 1))
	}
	if upy.watcher != nil {
		s += fmt.Sprintf("  %s %d", cz.Orange("Writes"), upy.watcher.Activity().Writes)
	}
	if len(pg.usage) > 0 {
		s += "  " + cz.Gray(pg.usage)
	}
	if len(pg.message) > 0 {
		s += "  " + pg.message
	}

	pg.status.SetText(s)
}

// toggleStyle flips the combined mode, the axis set follows on the next
// valid frame
func toggleStyle() {

	combined := upy.sched.Toggle()
	tlog.Log(mainLog, "style: combined %v\n", combined)

	if plotPanel != nil {
		plotPanel.message = ""
		plotPanel.displayStatus()
	}
}

// takeSnapshot saves a freshly read frame as PNG in the drawn layout
func takeSnapshot() {

	msg := ""
	f, outcome, err := upy.sched.Fetch()
	if err != nil {
		msg = cz.Red(fmt.Sprintf("snapshot: %v", outcome))
		tlog.WarnPrintf("snapshot: %v\n", err)
	} else {
		combined := upy.sched.State().Mode == layout.Combined
		path, err := upy.snapshots.Save(f, combined)
		if err != nil {
			msg = cz.Red("snapshot failed")
			tlog.ErrorPrintf("snapshot: %v\n", err)
		} else {
			msg = cz.Green("saved " + path)
			tlog.Log(mainLog, "snapshot %s\n", path)
		}
	}

	if plotPanel != nil {
		plotPanel.message = msg
		plotPanel.displayStatus()
	}
}
