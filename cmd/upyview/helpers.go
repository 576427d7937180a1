// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package main

import (
	"fmt"
	"os"

	cz "github.com/edualvarado/unity-footprints/pkgs/colorize"
)

const copyright = "Copyright (c) 2019-2025 Intel Corporation"

// UPyViewInfo returning the basic information string
func UPyViewInfo(color bool) string {
	if !color {
		return fmt.Sprintf("%s, Version: %s Pid: %d %s",
			"UPy Live Viewer", Version(), os.Getpid(), copyright)
	}

	return fmt.Sprintf("[%s, Version: %s Pid: %s %s]",
		cz.Yellow("UPy Live Viewer"), cz.Green(Version()),
		cz.Red(os.Getpid()),
		cz.SkyBlue(copyright))
}
