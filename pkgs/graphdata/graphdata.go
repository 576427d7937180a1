// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package graphdata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/edualvarado/unity-footprints/pkgs/asciichart"
	"github.com/rivo/tview"
)

// ErrShape is returned when a line's x and y data differ in length
var ErrShape = errors.New("x and y must have the same length")

// Line is one named series drawn on an axis
type Line struct {
	Name  string
	Color string
	X     []float64
	Y     []float64
}

// Axis is one plot area of the figure
type Axis struct {
	id      int
	lines   []*Line
	legend  bool
	xLabels bool
}

// Figure holds the axes stacked top to bottom and the chart settings
type Figure struct {
	labelColor string
	lineColor  string
	fieldWidth int
	precision  int
	nextID     int
	axes       []*Axis
}

// ID of the axis, unique for the life of the figure
func (ax *Axis) ID() int {
	return ax.id
}

// Plot adds a line to the axis
func (ax *Axis) Plot(x, y []float64, name, color string) error {

	if len(x) != len(y) {
		return fmt.Errorf("%w: %s has %d x and %d y values", ErrShape, name, len(x), len(y))
	}

	ax.lines = append(ax.lines, &Line{Name: name, Color: color, X: x, Y: y})

	return nil
}

// Clear the drawn lines, the axis settings are kept
func (ax *Axis) Clear() {
	ax.lines = nil
}

// Lines drawn on the axis
func (ax *Axis) Lines() []*Line {
	return ax.lines
}

// Legend returns true if the legend is shown
func (ax *Axis) Legend() bool {
	return ax.legend
}

// SetLegend to show or hide the legend row
func (ax *Axis) SetLegend(show bool) *Axis {
	ax.legend = show

	return ax
}

// XLabels returns true if the x tick labels are shown
func (ax *Axis) XLabels() bool {
	return ax.xLabels
}

// SetXLabels to show or hide the x tick labels
func (ax *Axis) SetXLabels(show bool) *Axis {
	ax.xLabels = show

	return ax
}

// xRange over all lines with data
func (ax *Axis) xRange() (lo, hi float64, ok bool) {

	for _, l := range ax.lines {
		if len(l.X) == 0 {
			continue
		}
		first, last := l.X[0], l.X[len(l.X)-1]
		if !ok || first < lo {
			lo = first
		}
		if !ok || last > hi {
			hi = last
		}
		ok = true
	}
	return
}

// NewFigure with numAxes empty axes
func NewFigure(numAxes int) *Figure {

	f := &Figure{
		labelColor: "green",
		lineColor:  "blue",
		fieldWidth: 10,
		precision:  2,
	}

	f.AddAxes(numAxes)

	return f
}

// AddAxes appends n new axes with the legend and x labels shown
func (f *Figure) AddAxes(n int) []*Axis {

	added := make([]*Axis, 0, n)
	for i := 0; i < n; i++ {
		ax := &Axis{id: f.nextID, legend: true, xLabels: true}
		f.nextID++
		added = append(added, ax)
	}
	f.axes = append(f.axes, added...)

	return added
}

// RemoveAll axes from the figure
func (f *Figure) RemoveAll() {
	f.axes = nil
}

// Axes returns the axes in top to bottom order
func (f *Figure) Axes() []*Axis {
	return f.axes
}

// NumAxes in the figure
func (f *Figure) NumAxes() int {
	return len(f.axes)
}

// WithIndex returns the axis at the given index or nil
func (f *Figure) WithIndex(index int) *Axis {

	if index < 0 || index >= len(f.axes) {
		return nil
	}
	return f.axes[index]
}

// SetFieldWidth of the y labels
func (f *Figure) SetFieldWidth(width int) *Figure {
	f.fieldWidth = width

	return f
}

// SetPrecision of the y labels
func (f *Figure) SetPrecision(p int) *Figure {
	f.precision = p

	return f
}

// MakeChart text string sized to the inside of the text view
func (f *Figure) MakeChart(view *tview.TextView) string {

	if view == nil {
		return ""
	}

	_, _, width, height := view.GetInnerRect()

	return f.Render(width, height)
}

// Render the axes into a width x height block of tview tagged text. Each axis
// gets an equal share of the rows, the legend and x label rows included.
func (f *Figure) Render(width, height int) string {

	if len(f.axes) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	share := height / len(f.axes)

	out := make([]string, 0, height)
	for _, ax := range f.axes {
		out = append(out, f.renderAxis(ax, width, share)...)
	}

	return strings.Join(out, "\n")
}

// renderAxis returns exactly rows lines for the axis
func (f *Figure) renderAxis(ax *Axis, width, rows int) []string {

	lines := make([]string, 0, rows)

	if ax.legend && rows > 1 {
		lines = append(lines, f.legend(ax))
	}

	showX := ax.xLabels && rows > 2
	chartRows := rows - len(lines)
	if showX {
		chartRows--
	}

	points := width - f.fieldWidth - 2
	if chartRows > 0 && points > 1 && len(ax.lines) > 0 {
		chart := asciichart.New().
			SetChartOptions(&asciichart.PlotConfig{
				Height:     chartRows - 1,
				FieldWidth: f.fieldWidth,
				Precision:  f.precision,
				AddColor:   true,
			}).
			SetLabelColor(f.labelColor).
			SetLineColor(f.lineColor)

		data := make([][]float64, 0, len(ax.lines))
		colors := make([]string, 0, len(ax.lines))
		longest := 0
		for _, l := range ax.lines {
			data = append(data, l.Y)
			colors = append(colors, l.Color)
			if len(l.Y) > longest {
				longest = len(l.Y)
			}
		}
		// one column per segment, so points+1 values fill the row
		if longest > points+1 {
			chart.SetWidth(points + 1)
		}

		if s := chart.PlotMany(data, colors); len(s) > 0 {
			lines = append(lines, strings.Split(s, "\n")...)
		}
	}

	for len(lines) < rows-boolToInt(showX) {
		lines = append(lines, "")
	}

	if showX {
		lines = append(lines, f.xLabels(ax, width))
	}

	if len(lines) > rows {
		lines = lines[:rows]
	}

	return lines
}

func (f *Figure) legend(ax *Axis) string {

	items := make([]string, 0, len(ax.lines))
	for _, l := range ax.lines {
		color := l.Color
		if len(color) == 0 {
			color = f.lineColor
		}
		items = append(items, fmt.Sprintf("[%s]■[-] %s", color, tview.Escape(l.Name)))
	}

	return strings.Repeat(" ", f.fieldWidth+2) + strings.Join(items, "  ")
}

func (f *Figure) xLabels(ax *Axis, width int) string {

	lo, hi, ok := ax.xRange()
	if !ok {
		return ""
	}

	left := fmt.Sprintf("%.*f", f.precision, lo)
	right := fmt.Sprintf("%.*f", f.precision, hi)

	gap := width - (f.fieldWidth + 2) - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}

	return fmt.Sprintf("[%s]%s%s%s%s[-]", f.labelColor,
		strings.Repeat(" ", f.fieldWidth+2), left, strings.Repeat(" ", gap), right)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
