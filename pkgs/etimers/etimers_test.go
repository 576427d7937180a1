// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package etimers

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	te := New()
	assert.Equal(t, DefaultPeriod, te.Period())

	te = New(5*time.Millisecond, 4)
	assert.Equal(t, 5*time.Millisecond, te.Period())
	assert.Equal(t, 4, te.maxSteps)

	te = New(time.Duration(0))
	assert.Equal(t, DefaultPeriod, te.Period())
}

func TestTicksCallActions(t *testing.T) {
	te := New(2*time.Millisecond, 4)
	te.Start()
	te.Start()
	defer te.Stop()

	var calls int32
	te.Add("count", func(step int, ticks uint64) {
		assert.Less(t, step, 4)
		atomic.AddInt32(&calls, 1)
	})

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) >= 5
	}, 2*time.Second, time.Millisecond)

	te.Remove("count")
	require.Eventually(t, func() bool {
		te.lock.Lock()
		defer te.lock.Unlock()
		return len(te.list) == 0
	}, 2*time.Second, time.Millisecond)
	assert.NotZero(t, te.Ticks())
}

func TestActionsNeverOverlap(t *testing.T) {
	te := New(time.Millisecond)
	te.Start()
	defer te.Stop()

	var running, overlaps, calls int32
	te.Add("slow", func(step int, ticks uint64) {
		if atomic.AddInt32(&running, 1) > 1 {
			atomic.AddInt32(&overlaps, 1)
		}
		time.Sleep(3 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		atomic.AddInt32(&calls, 1)
	})

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) >= 5
	}, 2*time.Second, time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&overlaps))
}

func TestStopIdempotent(t *testing.T) {
	te := New(time.Millisecond)
	te.Start()
	te.Stop()
	te.Stop()

	// must not block once stopped
	te.Add("late", func(step int, ticks uint64) {})
	te.Remove("late")
}

func TestStopWithoutStart(t *testing.T) {
	te := New()
	te.Stop()
}

func TestGate(t *testing.T) {
	var g Gate

	require.True(t, g.Enter())
	assert.True(t, g.Busy())
	assert.False(t, g.Enter())
	assert.False(t, g.Enter())
	assert.EqualValues(t, 2, g.Dropped())

	g.Leave()
	assert.False(t, g.Busy())
	assert.True(t, g.Enter())
	g.Leave()
}

func TestGateConcurrent(t *testing.T) {
	var g Gate
	var inside, max int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !g.Enter() {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			if n > atomic.LoadInt32(&max) {
				atomic.StoreInt32(&max, n)
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			g.Leave()
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&max))
}
