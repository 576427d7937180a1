// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package hexdump

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexDump(t *testing.T) {
	data := []byte("3,1.2\r\nA,B\n1,10\n2,20\n")

	s := HexDump("plot.txt", data, 0, len(data))
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "*** plot.txt (offset: 0) ***:", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "   0: 33 2c 31 2e 32 0d 0a 41 "), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], "|3,1.2..A,B.1,10.|"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "  16: 32 2c 32 30 0a "), lines[2])
	assert.True(t, strings.HasSuffix(lines[2], "|2,20.|"), lines[2])
}

func TestHexDumpShortLinePadded(t *testing.T) {
	s := HexDump("", []byte("ab"), 0, 100)
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "*** Data (offset: 0) ***:", lines[0])
	assert.Equal(t, "   0: 61 62 "+strings.Repeat("   ", 14)+" |ab|", lines[1])
}

func TestHexDumpOffset(t *testing.T) {
	data := []byte("0123456789abcdefXYZ")

	s := HexDump("", data, 16, 3)
	assert.Contains(t, s, "  16: 58 59 5a ")
	assert.NotContains(t, s, "   0: ")
}

func TestHexDumpInvalid(t *testing.T) {
	assert.Equal(t, "Invalid length or offset\n", HexDump("", []byte("a"), 2, 1))
	assert.Equal(t, "Invalid length or offset\n", HexDump("", []byte("a"), -1, 1))

	// empty input only prints the title
	assert.Equal(t, "*** Data (offset: 0) ***:\n", HexDump("", nil, 0, 10))
}
