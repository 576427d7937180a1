// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation
//
// Modified in 2019 from https://github.com/guptarohit/asciigraph

package asciichart

import (
	"strings"
)

// PlotConfig - information about the chart
type PlotConfig struct {
	Width, Height int
	Offset        int
	FieldWidth    int
	Min, Max      float64
	MinSet        bool
	MaxSet        bool
	Caption       string
	Precision     int
	AddColor      bool

	LabelColor   string
	LineColor    string
	CaptionColor string
}

// Chart renders one or more series as a text line chart
type Chart struct {
	config PlotConfig
}

// New chart with an 8 column label field and two decimals
func New() *Chart {
	return &Chart{config: PlotConfig{FieldWidth: 8, Precision: 2}}
}

// SetChartOptions - Set all of the chart options
func (ac *Chart) SetChartOptions(c *PlotConfig) *Chart {

	if c != nil {
		ac.config = *c
	}
	return ac
}

// Width - Get the width of the chart
func (ac *Chart) Width() int {

	return ac.config.Width
}

// SetWidth sets the number of data columns. By default, the width of the
// graph is the number of data points. If the value given is a positive
// number, the data points are interpolated on the x axis.
// Values <= 0 reset the width to the default value.
func (ac *Chart) SetWidth(w int) *Chart {

	if w < 0 {
		w = 0
	}
	ac.config.Width = w

	return ac
}

// Height - Get the height of the chart
func (ac *Chart) Height() int {

	return ac.config.Height
}

// SetHeight sets the graphs height in rows, values <= 0 auto scale.
func (ac *Chart) SetHeight(h int) *Chart {

	if h < 0 {
		h = 0
	}
	ac.config.Height = h

	return ac
}

// SetMin sets the graph's minimum value for the vertical axis. It will be ignored
// if the series contains a lower value.
func (ac *Chart) SetMin(min float64) *Chart {
	c := &ac.config

	c.Min, c.MinSet = min, true

	return ac
}

// SetMax sets the graph's maximum value for the vertical axis. It will be ignored
// if the series contains a bigger value.
func (ac *Chart) SetMax(max float64) *Chart {
	c := &ac.config

	c.Max, c.MaxSet = max, true

	return ac
}

// SetOffset sets the number of blank columns left of the labels.
func (ac *Chart) SetOffset(o int) *Chart {

	if o < 0 {
		o = 0
	}
	ac.config.Offset = o

	return ac
}

// SetPrecision set the precision of the labels
func (ac *Chart) SetPrecision(p int) *Chart {

	if p < 0 {
		p = 0
	}
	ac.config.Precision = p

	return ac
}

// FieldWidth - Get the label field width
func (ac *Chart) FieldWidth() int {

	return ac.config.FieldWidth
}

// SetFieldWidth sets the label field width.
func (ac *Chart) SetFieldWidth(w int) *Chart {

	if w < 0 {
		w = 0
	}
	ac.config.FieldWidth = w

	return ac
}

// SetCaption sets the graphs caption.
func (ac *Chart) SetCaption(caption string) *Chart {

	ac.config.Caption = strings.TrimSpace(caption)

	return ac
}

// AddColor enables tview colour tags in the output
func (ac *Chart) AddColor(flag bool) *Chart {

	ac.config.AddColor = flag

	return ac
}

func setColor(color string) string {

	if len(color) == 0 {
		return ""
	}
	return "[" + color + "]"
}

// SetLabelColor sets the color for the labels.
func (ac *Chart) SetLabelColor(color string) *Chart {

	ac.config.LabelColor = setColor(color)

	return ac
}

// SetLineColor sets the color for series without their own colour.
func (ac *Chart) SetLineColor(color string) *Chart {

	ac.config.LineColor = setColor(color)

	return ac
}

// SetCaptionColor sets the color for the caption.
func (ac *Chart) SetCaptionColor(color string) *Chart {

	ac.config.CaptionColor = setColor(color)

	return ac
}

// tag returns the colour tag when colours are enabled
func (ac *Chart) tag(color string) string {

	if !ac.config.AddColor {
		return ""
	}
	return color
}

// EndColor - change color to default value
func (ac *Chart) EndColor() string {

	if ac.config.AddColor {
		return setColor("-")
	}
	return ""
}
