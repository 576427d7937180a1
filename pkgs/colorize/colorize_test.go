// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package colorize

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaletteWraps(t *testing.T) {
	p := NewPalette()

	assert.Equal(t, len(DefaultPalette), p.Len())
	assert.Equal(t, "#5e81b5", p.Color(0))
	assert.Equal(t, "#47b76d", p.Color(14))
	assert.Equal(t, p.Color(0), p.Color(15))
	assert.Equal(t, p.Color(3), p.Color(3+2*p.Len()))
}

func TestPaletteCustom(t *testing.T) {
	p := NewPalette("Red", "not-a-colour", "#00ff00")

	assert.Equal(t, []string{"red", "#00ff00"}, p.Colors())
	assert.Equal(t, "red", p.Color(2))

	p.Colors()[0] = "blue"
	assert.Equal(t, "red", p.Color(0), "Colors must return a copy")
}

func TestIsColor(t *testing.T) {
	assert.True(t, IsColor("goldenrod"))
	assert.True(t, IsColor("#e19c24"))
	assert.False(t, IsColor("nope"))
	assert.False(t, IsColor(""))
}

func TestRGBA(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x5e, G: 0x81, B: 0xb5, A: 0xff}, RGBA("#5e81b5"))
	assert.Equal(t, RGBA("gray"), RGBA("unknown-name"))
}

func TestColorize(t *testing.T) {
	SetDefault("ivory", "", 0, 2, "")

	assert.Equal(t, "[red::]1.50[ivory::]", Colorize("red", 1.5))
	assert.Equal(t, "[green::]   42[ivory::]", Green(42, 5))
	assert.Equal(t, "[orange::]x[ivory::]", ColorWithName("bogus", "x"))
}
