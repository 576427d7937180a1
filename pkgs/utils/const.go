// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package utils

// Binary size steps used by Format
const (
	KiloBytes uint64 = 1 << 10
	MegaBytes        = KiloBytes << 10
	GigaBytes        = MegaBytes << 10
)
