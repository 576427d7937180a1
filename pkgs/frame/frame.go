// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package frame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultSampleInterval is the spacing of the implied time axis in
// simulation time units.
const DefaultSampleInterval = 0.1

// ErrMalformedFrame is wrapped by every decode failure
var ErrMalformedFrame = errors.New("malformed frame")

// Reason a frame was rejected
type Reason int

// Reasons for a DecodeError
const (
	MissingHeader  Reason = iota // fewer than two lines or an empty header
	BadMetadata                  // metadata line is not "count,time"
	BadRow                       // a row has more fields than channels
	SampleMismatch               // rows or channel samples differ from the count
)

var reasonNames = map[Reason]string{
	MissingHeader:  "missing header",
	BadMetadata:    "bad metadata",
	BadRow:         "bad row",
	SampleMismatch: "sample mismatch",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// DecodeError describes why a text could not be decoded into a Frame
type DecodeError struct {
	Reason Reason
	Line   int // zero based line number, -1 when not tied to a line
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Line >= 0 {
		return fmt.Sprintf("%v: %v at line %d: %s", ErrMalformedFrame, e.Reason, e.Line, e.Detail)
	}
	return fmt.Sprintf("%v: %v: %s", ErrMalformedFrame, e.Reason, e.Detail)
}

// Unwrap so errors.Is(err, ErrMalformedFrame) holds
func (e *DecodeError) Unwrap() error {
	return ErrMalformedFrame
}

func decodeError(reason Reason, line int, format string, a ...interface{}) error {
	return &DecodeError{Reason: reason, Line: line, Detail: fmt.Sprintf(format, a...)}
}

// Frame is one decoded batch of samples. It is never modified after Decode
// returns it, the accessors hand out copies.
type Frame struct {
	sampleCount    int
	simulationTime float64
	names          []string
	series         [][]float64
	time           []float64
}

// SampleCount declared by the metadata line
func (f *Frame) SampleCount() int {
	return f.sampleCount
}

// SimulationTime of the most recent sample
func (f *Frame) SimulationTime() float64 {
	return f.simulationTime
}

// NumChannels in the frame
func (f *Frame) NumChannels() int {
	return len(f.names)
}

// ChannelNames in column order
func (f *Frame) ChannelNames() []string {
	return append([]string(nil), f.names...)
}

// ChannelName of channel n or "" when out of range
func (f *Frame) ChannelName(n int) string {
	if n < 0 || n >= len(f.names) {
		return ""
	}
	return f.names[n]
}

// Channel returns the samples of channel n, oldest first, or nil
func (f *Frame) Channel(n int) []float64 {
	if n < 0 || n >= len(f.series) {
		return nil
	}
	return append([]float64(nil), f.series[n]...)
}

// Time returns the implied time axis, one value per sample
func (f *Frame) Time() []float64 {
	return append([]float64(nil), f.time...)
}

// Decoder turns cache file text into frames
type Decoder struct {
	interval float64
}

// NewDecoder with the given sample interval, values <= 0 use the default
func NewDecoder(interval float64) *Decoder {

	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	return &Decoder{interval: interval}
}

// Interval between two samples of the implied time axis
func (d *Decoder) Interval() float64 {
	return d.interval
}

var defaultDecoder = NewDecoder(DefaultSampleInterval)

// Decode text with the default sample interval
func Decode(text string) (*Frame, error) {
	return defaultDecoder.Decode(text)
}

// Decode text of the form
//
//	<sampleCount>,<simulationTime>
//	<name1>,<name2>,...
//	<v1>,<v2>,...      one row per sample, oldest first
//
// A frame is returned only when every channel holds exactly sampleCount
// samples. A short channel means the producer was still writing the file.
func (d *Decoder) Decode(text string) (*Frame, error) {

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return nil, decodeError(MissingHeader, -1, "%d line(s)", len(lines))
	}

	meta := strings.Split(strings.TrimSpace(lines[0]), ",")
	if len(meta) < 2 {
		return nil, decodeError(BadMetadata, 0, "want count,time got %q", lines[0])
	}

	count, err := strconv.Atoi(strings.TrimSpace(meta[0]))
	if err != nil || count < 0 {
		return nil, decodeError(BadMetadata, 0, "sample count %q", meta[0])
	}

	simTime, err := strconv.ParseFloat(strings.TrimSpace(meta[1]), 64)
	if err != nil {
		return nil, decodeError(BadMetadata, 0, "simulation time %q", meta[1])
	}

	header := strings.TrimSpace(lines[1])
	if len(header) == 0 {
		return nil, decodeError(MissingHeader, 1, "empty channel header")
	}

	names := strings.Split(header, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}

	series := make([][]float64, len(names))
	rows := 0

	for i, line := range lines[2:] {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) > len(names) {
			return nil, decodeError(BadRow, i+2, "%d fields for %d channels", len(fields), len(names))
		}

		for n, v := range fields {
			val, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				// the channel comes up short and the count check rejects the frame
				continue
			}
			series[n] = append(series[n], val)
		}
		rows++
	}

	time := d.timeAxis(simTime, rows)
	if len(time) != count {
		return nil, decodeError(SampleMismatch, -1, "%d rows, %d declared", rows, count)
	}

	for n, s := range series {
		if len(s) != count {
			return nil, decodeError(SampleMismatch, -1, "channel %q has %d samples, %d declared",
				names[n], len(s), count)
		}
	}

	return &Frame{
		sampleCount:    count,
		simulationTime: simTime,
		names:          names,
		series:         series,
		time:           time,
	}, nil
}

// timeAxis of n points spaced by the sample interval ending at end
func (d *Decoder) timeAxis(end float64, n int) []float64 {

	t := make([]float64, n)
	for k := range t {
		t[k] = end - float64(n-1-k)*d.interval
	}
	return t
}
