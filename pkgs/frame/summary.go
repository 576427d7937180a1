// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package frame

import (
	"gonum.org/v1/gonum/floats"
)

// ChannelSummary of one channel in a frame
type ChannelSummary struct {
	Name      string
	Samples   int
	Min       float64
	Max       float64
	MaxTime   float64 // time axis value at the first maximum
	Last      float64
	HasValues bool
}

// Summarize each channel of the frame in column order
func Summarize(f *Frame) []ChannelSummary {

	if f == nil {
		return nil
	}

	out := make([]ChannelSummary, 0, len(f.series))
	for n, s := range f.series {
		cs := ChannelSummary{Name: f.names[n], Samples: len(s)}

		if len(s) > 0 {
			idx := floats.MaxIdx(s)
			cs.HasValues = true
			cs.Min = floats.Min(s)
			cs.Max = s[idx]
			cs.Last = s[len(s)-1]
			if idx < len(f.time) {
				cs.MaxTime = f.time[idx]
			}
		}
		out = append(out, cs)
	}
	return out
}
