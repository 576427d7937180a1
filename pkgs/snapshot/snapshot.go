// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/edualvarado/unity-footprints/pkgs/colorize"
	"github.com/edualvarado/unity-footprints/pkgs/frame"
)

// ErrNoChannels is returned for a frame without any channel to plot
var ErrNoChannels = errors.New("frame has no channels")

// Default image size
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// hiddenTicks keeps the default tick marks and drops their labels
var hiddenTicks = plot.TickerFunc(func(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		ticks[i].Label = ""
	}
	return ticks
})

// Build the plots for a frame, a single plot holding every channel when
// combined or one plot per channel stacked top to bottom.
func Build(f *frame.Frame, combined bool, palette *colorize.Palette) ([]*plot.Plot, error) {

	if f == nil || f.NumChannels() == 0 {
		return nil, ErrNoChannels
	}
	if palette == nil {
		palette = colorize.NewPalette()
	}

	x := f.Time()
	count := f.NumChannels()

	var plots []*plot.Plot
	if combined {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("t = %.2f", f.SimulationTime())
		p.X.Label.Text = "time"
		p.Legend.Top = true
		plots = append(plots, p)
	} else {
		for ch := 0; ch < count; ch++ {
			p := plot.New()
			p.Y.Label.Text = f.ChannelName(ch)
			p.Legend.Top = true
			if ch == count-1 {
				p.X.Label.Text = "time"
			} else {
				p.X.Tick.Marker = hiddenTicks
			}
			plots = append(plots, p)
		}
		plots[0].Title.Text = fmt.Sprintf("t = %.2f", f.SimulationTime())
	}

	for ch := 0; ch < count; ch++ {
		y := f.Channel(ch)
		if len(y) != f.SampleCount() || len(y) != len(x) {
			continue
		}

		pts := make(plotter.XYs, len(y))
		for i := range y {
			pts[i].X = x[i]
			pts[i].Y = y[i]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("channel %q: %w", f.ChannelName(ch), err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = colorize.RGBA(palette.Color(ch))

		p := plots[0]
		if !combined {
			p = plots[ch]
		}
		p.Add(line)
		p.Legend.Add(f.ChannelName(ch), line)
	}

	return plots, nil
}

// WriteTo draws the plots stacked in one column and writes them as PNG
func WriteTo(w io.Writer, plots []*plot.Plot, width, height vg.Length) error {

	if len(plots) == 0 {
		return ErrNoChannels
	}

	c := vgimg.New(width, height)
	dc := draw.New(c)

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(8),
	}

	grid := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		grid[i] = []*plot.Plot{p}
	}

	canvases := plot.Align(grid, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return nil
}

// Writer saves frames as numbered PNG files in a directory
type Writer struct {
	lock    sync.Mutex
	dir     string
	width   vg.Length
	height  vg.Length
	palette *colorize.Palette
	seq     int
}

// NewWriter for the directory, created on the first Save
func NewWriter(dir string, palette *colorize.Palette) *Writer {

	if len(dir) == 0 {
		dir = "."
	}
	return &Writer{
		dir:     dir,
		width:   DefaultWidth,
		height:  DefaultHeight,
		palette: palette,
	}
}

// SetSize of the images
func (sw *Writer) SetSize(width, height vg.Length) *Writer {

	if width > 0 && height > 0 {
		sw.width, sw.height = width, height
	}
	return sw
}

// Dir the images are written to
func (sw *Writer) Dir() string {
	return sw.dir
}

// Save the frame and return the file path
func (sw *Writer) Save(f *frame.Frame, combined bool) (string, error) {

	plots, err := Build(f, combined, sw.palette)
	if err != nil {
		return "", err
	}

	sw.lock.Lock()
	defer sw.lock.Unlock()

	if err := os.MkdirAll(sw.dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create directory: %w", err)
	}

	sw.seq++
	name := filepath.Join(sw.dir, fmt.Sprintf("frame-%04d-t%.2f.png", sw.seq, f.SimulationTime()))

	fd, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("cannot create png: %w", err)
	}
	defer fd.Close()

	bw := bufio.NewWriter(fd)
	if err := WriteTo(bw, plots, sw.width, sw.height); err != nil {
		return "", err
	}
	if err := bw.Flush(); err != nil {
		return "", fmt.Errorf("cannot write png: %w", err)
	}

	return name, nil
}
