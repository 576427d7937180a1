// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package colorize

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// colorizeInfo structure
type colorizeInfo struct {
	defWidth       int
	floatPrecision int
	defForeground  string
	defBackground  string
	defFlags       string
}

var colorInfo colorizeInfo

// Default values for width and precision
const (
	defWidth     = int(0)
	defPrecision = int(2)
)

// Color constant names we can use
const (
	NoColor                = ""
	DefaultColor           = "white"
	YellowColor            = "yellow"
	GreenColor             = "green"
	GoldenRodColor         = "goldenrod"
	OrangeColor            = "orange"
	CornSilkColor          = "cornsilk"
	RedColor               = "red"
	SkyBlueColor           = "skyblue"
	MediumSpringGreenColor = "mediumspringgreen"
	GrayColor              = "gray"
)

// DefaultPalette is the channel colour cycle, channel n uses entry n modulo
// the palette size.
var DefaultPalette = []string{
	"#5e81b5", "#e19c24", "#8fb131", "#ec6235", "#8778b3",
	"#c56e1a", "#5d9ec8", "#ffbf00", "#a5609d", "#929600",
	"#ea5536", "#6685d9", "#f99f12", "#bc5b80", "#47b76d",
}

// SetDefault - set the default colours, width and precision
func SetDefault(foreground, background string, width, precision int, flags string) {

	// when precision is negative then set to the default value
	if precision < 0 {
		precision = defPrecision
	}

	colorInfo = colorizeInfo{
		defWidth:       width,
		floatPrecision: precision,
		defForeground:  foreground,
		defBackground:  background,
		defFlags:       flags,
	}
}

// Colorize - Add color to the value passed
//   w[0] is the width of the field
//   w[1] is the precision of a float value, default colorInfo.floatPrecision
func Colorize(color string, v interface{}, w ...interface{}) string {
	if colorInfo.defForeground == "" {
		colorInfo.defForeground = "ivory"
	}

	width := colorInfo.defWidth
	precision := colorInfo.floatPrecision
	foreground := colorInfo.defForeground
	if len(color) > 0 {
		foreground = color
	}

	for i, a := range w {
		p, ok := a.(int)
		if !ok {
			continue
		}
		switch i {
		case 0:
			width = p
		case 1:
			if p >= 0 {
				precision = p
			}
		}
	}

	str := fmt.Sprintf("[%s:%s:%s]", foreground, colorInfo.defBackground, colorInfo.defFlags)
	def := fmt.Sprintf("[%s:%s:%s]", colorInfo.defForeground, colorInfo.defBackground, colorInfo.defFlags)

	switch v.(type) {
	case string:
		return fmt.Sprintf("%[1]s%[3]*[2]s%[4]s", str, v, width, def)
	case uint64, uint32, uint16, uint8, int, int64, int32, int16, int8:
		return fmt.Sprintf("%[1]s%[3]*[2]d%[4]s", str, v, width, def)
	case float64, float32:
		return fmt.Sprintf("%[1]s%[3]*.[4]*[2]f%[5]s", str, v, width, precision, def)
	default:
		return fmt.Sprintf("%[1]s%[2]v%[3]s", str, v, def)
	}
}

// IsColor returns true for a tcell colour name or a #rrggbb value
func IsColor(name string) bool {

	name = strings.ToLower(name)
	if _, ok := tcell.ColorNames[name]; ok {
		return true
	}
	return strings.HasPrefix(name, "#") && tcell.GetColor(name) != tcell.ColorDefault
}

// ColorWithName - Find and set the color by name, unknown names use orange
func ColorWithName(color string, a interface{}, w ...interface{}) string {

	color = strings.ToLower(color)
	if !IsColor(color) {
		color = OrangeColor
	}
	return Colorize(color, a, w...)
}

// RGBA converts a colour name or #rrggbb value, unknown names are gray
func RGBA(name string) color.RGBA {

	c := tcell.GetColor(strings.ToLower(name))
	if c == tcell.ColorDefault {
		c = tcell.ColorGray
	}
	r, g, b := c.RGB()

	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}

// Palette of colours handed out to channels in order
type Palette struct {
	colors []string
}

// NewPalette from the given colours, invalid names are dropped and an empty
// list gives the DefaultPalette.
func NewPalette(colors ...string) *Palette {

	p := &Palette{}
	for _, c := range colors {
		if IsColor(c) {
			p.colors = append(p.colors, strings.ToLower(c))
		}
	}
	if len(p.colors) == 0 {
		p.colors = append(p.colors, DefaultPalette...)
	}
	return p
}

// Color for channel index n, wrapping around the palette
func (p *Palette) Color(n int) string {

	if n < 0 {
		n = -n
	}
	return p.colors[n%len(p.colors)]
}

// Len is the number of colours before the cycle wraps
func (p *Palette) Len() int {
	return len(p.colors)
}

// Colors returns a copy of the palette entries
func (p *Palette) Colors() []string {
	return append([]string(nil), p.colors...)
}

// Yellow - return string based on the color given
func Yellow(a interface{}, w ...interface{}) string {

	return ColorWithName(YellowColor, a, w...)
}

// Green - return string based on the color given
func Green(a interface{}, w ...interface{}) string {

	return ColorWithName(GreenColor, a, w...)
}

// GoldenRod - return string based on the color given
func GoldenRod(a interface{}, w ...interface{}) string {

	return ColorWithName(GoldenRodColor, a, w...)
}

// Orange - return string based on the color given
func Orange(a interface{}, w ...interface{}) string {

	return ColorWithName(OrangeColor, a, w...)
}

// CornSilk - return string based on the color given
func CornSilk(a interface{}, w ...interface{}) string {

	return ColorWithName(CornSilkColor, a, w...)
}

// Red - return string based on the color given
func Red(a interface{}, w ...interface{}) string {

	return ColorWithName(RedColor, a, w...)
}

// SkyBlue - return string based on the color given
func SkyBlue(a interface{}, w ...interface{}) string {

	return ColorWithName(SkyBlueColor, a, w...)
}

// MediumSpringGreen - return string based on the color given
func MediumSpringGreen(a interface{}, w ...interface{}) string {

	return ColorWithName(MediumSpringGreenColor, a, w...)
}

// Gray - return string based on the color given
func Gray(a interface{}, w ...interface{}) string {

	return ColorWithName(GrayColor, a, w...)
}
