// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package hexdump

import (
	"fmt"
	"strings"
)

// BytesPerLine of the dump
const BytesPerLine = 16

// HexDump the data buffer for the given length
// msg is a message to print at the top of the hexdump
// data is the data to dump
// off is the offset into the byte array to start
// num is the number of bytes to dump
//
// Each line holds the offset, the bytes in hex and the printable characters,
// so a partly written row or a stray \r in a text file stands out.
func HexDump(msg string, data []byte, off int, num int) string {

	var sb strings.Builder

	if off < 0 || off > len(data) || num < 0 {
		return "Invalid length or offset\n"
	}
	if (off + num) > len(data) {
		num = len(data) - off
	}

	if len(msg) > 0 {
		fmt.Fprintf(&sb, "*** %s (offset: %d) ***:\n", msg, off)
	} else {
		fmt.Fprintf(&sb, "*** Data (offset: %d) ***:\n", off)
	}

	end := off + num
	for i := off; i < end; i += BytesPerLine {
		fmt.Fprintf(&sb, "%4d: ", i)

		line := data[i:min(i+BytesPerLine, end)]
		for j := 0; j < BytesPerLine; j++ {
			if j < len(line) {
				fmt.Fprintf(&sb, "%02x ", line[j])
			} else {
				sb.WriteString("   ")
			}
		}

		sb.WriteString(" |")
		for _, b := range line {
			if b >= 0x20 && b < 0x7f {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString("|\n")
	}

	return sb.String()
}
