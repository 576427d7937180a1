// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package utils

import (
	"fmt"
	"os"
	"sync"

	"github.com/shirou/gopsutil/cpu"
	ps "github.com/shirou/gopsutil/process"
)

var (
	cpuOnce sync.Once
	numCPUs int
)

// NumCPUs is the number of CPUs in the system (logical cores), 1 when the
// count is not available
func NumCPUs() int {

	cpuOnce.Do(func() {
		num, err := cpu.Counts(true)
		if err != nil || num < 1 {
			num = 1
		}
		numCPUs = num
	})

	return numCPUs
}

// Format the value into human readable format, w is an optional precision
func Format(units []string, v uint64, w ...interface{}) string {
	var index int

	step := float64(KiloBytes)

	bytes := float64(v)
	for index = 0; index < len(units)-1; index++ {
		if bytes < step {
			break
		}
		bytes = bytes / step
	}

	precision := 0
	for _, p := range w {
		switch n := p.(type) {
		case int:
			precision = n
		case uint64:
			precision = int(n)
		}
	}

	return fmt.Sprintf("%.*f %s", precision, bytes, units[index])
}

// FormatBytes into KB, MB, GB, ...
func FormatBytes(v uint64, w ...interface{}) string {

	return Format([]string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}, v, w...)
}

// FormatUnits into K, M, G, ...
func FormatUnits(v uint64, w ...interface{}) string {

	return Format([]string{" ", "K", "M", "G", "T", "P", "E"}, v, w...)
}

// Usage of the viewer process. CPUPercent is a share of the whole machine,
// spread over CPUs logical cores.
type Usage struct {
	RSS        uint64
	CPUPercent float64
	CPUs       int
	Threads    int32
}

// SelfUsage samples the resources used by the viewer process
type SelfUsage struct {
	lock sync.Mutex
	proc *ps.Process
}

// NewSelfUsage for the running process
func NewSelfUsage() (*SelfUsage, error) {

	p, err := ps.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("unable to open process %d: %w", os.Getpid(), err)
	}

	return &SelfUsage{proc: p}, nil
}

// Sample the current usage. CPUPercent covers the time since the previous
// sample, the first sample covers the life of the process.
func (su *SelfUsage) Sample() (Usage, error) {

	su.lock.Lock()
	defer su.lock.Unlock()

	var u Usage

	mem, err := su.proc.MemoryInfo()
	if err != nil {
		return u, err
	}
	u.RSS = mem.RSS

	pct, err := su.proc.Percent(0)
	if err != nil {
		return u, err
	}
	u.CPUs = NumCPUs()
	u.CPUPercent = machinePercent(pct, u.CPUs)

	if u.Threads, err = su.proc.NumThreads(); err != nil {
		return u, err
	}

	return u, nil
}

// machinePercent scales a per core percentage to the whole machine
func machinePercent(pct float64, cpus int) float64 {
	if cpus < 1 {
		return pct
	}
	return pct / float64(cpus)
}

// String of the usage for the status line
func (u Usage) String() string {
	return fmt.Sprintf("RSS %s CPU %.1f%%/%d Threads %d", FormatBytes(u.RSS, 1), u.CPUPercent, u.CPUs, u.Threads)
}
