// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package taborder

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	tlog "github.com/edualvarado/unity-footprints/pkgs/ttylog"
)

// View is a bordered window that can take the focus
type View interface {
	tview.Primitive
	SetBorderColor(color tcell.Color) *tview.Box
	SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) *tview.Box
}

// TabInfo for windows on the current panel
type TabInfo struct {
	Index int
	View  View
	EKey  *tcell.EventKey
}

// Tab for all windows in a panel
type Tab struct {
	Name    string
	TabList []*TabInfo
	Index   int
	Prev    int
	Appl    *tview.Application

	defaultBorder   tcell.Color
	highlightBorder tcell.Color
}

// New information object
func New(name string, appl *tview.Application) *Tab {
	return &Tab{
		Name:            name,
		Appl:            appl,
		defaultBorder:   tcell.ColorGreen,
		highlightBorder: tcell.ColorBlue,
	}
}

// Add to the given list of windows, key is a tcell.Key or a rune hotkey
func (to *Tab) Add(w View, key interface{}) (*TabInfo, error) {
	if to == nil {
		return nil, fmt.Errorf("invalid tab order pointer")
	}
	if w == nil {
		return nil, fmt.Errorf("nil view for %s", to.Name)
	}

	tab := &TabInfo{View: w}

	switch k := key.(type) {
	case tcell.Key:
		tab.EKey = tcell.NewEventKey(k, 0, tcell.ModNone)
	case rune:
		tab.EKey = tcell.NewEventKey(tcell.KeyRune, k, tcell.ModNone)
	}

	tab.Index = len(to.TabList)

	to.TabList = append(to.TabList, tab)
	if len(to.TabList) == 1 {
		w.SetBorderColor(to.highlightBorder)
	} else {
		w.SetBorderColor(to.defaultBorder)
	}

	return tab, nil
}

// SetDefaultBorderColor to the normal non-selected border color
func (to *Tab) SetDefaultBorderColor(color tcell.Color) {
	to.defaultBorder = color
}

// SetHighlightBorderColor to the selected border color
func (to *Tab) SetHighlightBorderColor(color tcell.Color) {
	to.highlightBorder = color
}

// Current window with the focus
func (to *Tab) Current() *TabInfo {
	if len(to.TabList) == 0 {
		return nil
	}
	return to.TabList[to.Index]
}

func (to *Tab) setFocus(v View) {
	if to.Appl != nil {
		to.Appl.SetFocus(v)
	}
}

func (to *Tab) moveTo(tab *TabInfo) {

	to.TabList[to.Index].View.SetBorderColor(to.defaultBorder)
	to.setFocus(tab.View)
	tab.View.SetBorderColor(to.highlightBorder)

	to.Prev, to.Index = to.Index, tab.Index
}

func (to *Tab) findKey(ek *tcell.EventKey) *TabInfo {

	for _, tab := range to.TabList {
		if tab.EKey != nil && tab.EKey.Name() == ek.Name() {
			return tab
		}
	}
	return nil
}

// inputCapture moves the focus to the window with the hotkey
func (to *Tab) inputCapture(ek *tcell.EventKey) *tcell.EventKey {

	if ek.Key() != tcell.KeyBacktab && ek.Key() != tcell.KeyTab {
		if tab := to.findKey(ek); tab != nil {
			to.moveTo(tab)
		} else {
			tlog.DebugPrintf("EventKey: %s not found\n", ek.Name())
		}
	}
	return ek
}

// doDone key handling for Tab and Backtab
func (to *Tab) doDone(key tcell.Key) {

	if len(to.TabList) == 0 {
		return
	}

	n := len(to.TabList)
	next := to.Index
	switch key {
	case tcell.KeyBacktab:
		next = (to.Index - 1 + n) % n
	case tcell.KeyTab:
		next = (to.Index + 1) % n
	}

	to.moveTo(to.TabList[next])
}

// setDone function for the view types with a done or exit callback
func (to *Tab) setDone(v View, doneFunc func(key tcell.Key)) {

	switch t := v.(type) {
	case *tview.TextView:
		t.SetDoneFunc(doneFunc)
	case *tview.Table:
		t.SetDoneFunc(doneFunc)
	case *tview.Button:
		t.SetExitFunc(doneFunc)
	}
}

// SetInputDone functions and data
func (to *Tab) SetInputDone() error {
	if to.TabList == nil {
		return fmt.Errorf("tab list is nil")
	}

	for _, tab := range to.TabList {
		tab.View.SetInputCapture(to.inputCapture)
		to.setDone(tab.View, to.doDone)
	}

	return nil
}
