// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation
//
// Modified in 2019 from https://github.com/guptarohit/asciigraph

package asciichart

import (
	"fmt"
	"math"
	"strings"
)

// defaultHeight caps the auto scaled height in rows
const defaultHeight = 10

type cell struct {
	r     string
	color string
}

// Plot a single series
func (ac *Chart) Plot(series []float64) string {

	return ac.PlotMany([][]float64{series}, nil)
}

// PlotMany draws all series against one vertical scale, series i is drawn
// with colors[i] when given, otherwise with the line colour. The output has
// Height+1 rows, or a single row when every value is the same.
func (ac *Chart) PlotMany(data [][]float64, colors []string) string {
	c := &ac.config

	series := make([][]float64, len(data))
	longest := 0
	minimum, maximum := math.Inf(1), math.Inf(-1)

	for i, s := range data {
		if c.Width > 0 && len(s) > 0 {
			s = interpolate(s, c.Width)
		}
		series[i] = s

		if len(s) > longest {
			longest = len(s)
		}
		for _, v := range s {
			if invalid(v) {
				continue
			}
			minimum = math.Min(minimum, v)
			maximum = math.Max(maximum, v)
		}
	}

	if longest == 0 || math.IsInf(minimum, 1) {
		return ""
	}
	if c.MinSet && c.Min < minimum {
		minimum = c.Min
	}
	if c.MaxSet && c.Max > maximum {
		maximum = c.Max
	}

	interval := maximum - minimum

	rows := c.Height
	if rows <= 0 {
		rows = int(math.Ceil(interval))
		if rows < 1 {
			rows = 1
		}
		if rows > defaultHeight {
			rows = defaultHeight
		}
	}
	if interval <= 0 {
		rows = 0
	}

	ratio := 0.0
	if rows > 0 {
		ratio = float64(rows) / interval
	}
	scale := func(v float64) int {
		y := int(math.Round((v - minimum) * ratio))
		if y < 0 {
			return 0
		}
		if y > rows {
			return rows
		}
		return y
	}

	dataWidth := longest - 1
	if dataWidth < 0 {
		dataWidth = 0
	}

	grid := make([][]cell, rows+1)
	axis := make([]cell, rows+1)
	for w := range grid {
		grid[w] = make([]cell, dataWidth)
		for x := range grid[w] {
			grid[w][x] = cell{r: " "}
		}
		axis[w] = cell{r: "┤", color: c.LabelColor}
	}

	for i, s := range series {
		if len(s) == 0 {
			continue
		}

		color := c.LineColor
		if i < len(colors) && len(colors[i]) > 0 {
			color = setColor(colors[i])
		}

		if !invalid(s[0]) {
			axis[rows-scale(s[0])] = cell{r: "┼", color: color}
		}

		for x := 0; x < len(s)-1; x++ {
			if invalid(s[x]) || invalid(s[x+1]) {
				continue
			}
			y0, y1 := scale(s[x]), scale(s[x+1])

			if y0 == y1 {
				grid[rows-y0][x] = cell{r: "─", color: color}
				continue
			}

			if y0 > y1 {
				grid[rows-y1][x] = cell{r: "╰", color: color}
				grid[rows-y0][x] = cell{r: "╮", color: color}
			} else {
				grid[rows-y1][x] = cell{r: "╭", color: color}
				grid[rows-y0][x] = cell{r: "╯", color: color}
			}

			start, end := y0+1, y1
			if y0 > y1 {
				start, end = y1+1, y0
			}
			for y := start; y < end; y++ {
				grid[rows-y][x] = cell{r: "│", color: color}
			}
		}
	}

	pad := strings.Repeat(" ", c.Offset)
	lines := make([]string, 0, rows+2)

	for w := 0; w <= rows; w++ {
		var sb strings.Builder

		magnitude := maximum
		if rows > 0 {
			magnitude = maximum - float64(w)*interval/float64(rows)
		}

		sb.WriteString(pad)
		sb.WriteString(ac.tag(c.LabelColor))
		sb.WriteString(fmt.Sprintf("%*.*f ", c.FieldWidth, c.Precision, magnitude))

		cur := axis[w].color
		sb.WriteString(ac.tag(cur))
		sb.WriteString(axis[w].r)

		for _, cl := range grid[w] {
			if cl.color != cur {
				if len(cl.color) == 0 {
					sb.WriteString(ac.EndColor())
				} else {
					sb.WriteString(ac.tag(cl.color))
				}
				cur = cl.color
			}
			sb.WriteString(cl.r)
		}
		if len(cur) > 0 {
			sb.WriteString(ac.EndColor())
		}

		lines = append(lines, sb.String())
	}

	if len(c.Caption) > 0 {
		indent := c.FieldWidth + 2
		if dataWidth > len(c.Caption) {
			indent += (dataWidth - len(c.Caption)) / 2
		}
		lines = append(lines, pad+strings.Repeat(" ", indent)+
			ac.tag(c.CaptionColor)+c.Caption+ac.EndColor())
	}

	return strings.Join(lines, "\n")
}

func invalid(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// interpolate resamples data linearly to fitCount points
func interpolate(data []float64, fitCount int) []float64 {

	out := make([]float64, fitCount)

	switch {
	case fitCount == 0:
		return out
	case len(data) == 1:
		for i := range out {
			out[i] = data[0]
		}
		return out
	case fitCount == 1:
		out[0] = data[len(data)-1]
		return out
	}

	step := float64(len(data)-1) / float64(fitCount-1)
	for i := range out {
		pos := float64(i) * step
		lo := int(math.Floor(pos))
		hi := lo + 1
		if hi >= len(data) {
			out[i] = data[len(data)-1]
			continue
		}
		frac := pos - float64(lo)
		out[i] = data[lo] + (data[hi]-data[lo])*frac
	}
	return out
}
