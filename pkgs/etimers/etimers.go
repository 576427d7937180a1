// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package etimers

import (
	"sync"
	"sync/atomic"
	"time"

	tlog "github.com/edualvarado/unity-footprints/pkgs/ttylog"
)

// etimers drives the viewer's fixed-period ticks. All registered actions are
// called one after the other from a single go routine, so two ticks of the
// same action never run at the same time.

// DefaultPeriod of the poll tick
const DefaultPeriod = 100 * time.Millisecond

// EventTimers to process when timer expires
type EventTimers struct {
	lock     sync.Mutex
	timo     time.Duration
	maxSteps int
	step     int
	list     map[string]*EventAction
	action   chan *EventAction
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	ticker   *time.Ticker
	ticks    uint64
	started  bool
}

// EventAction information
type EventAction struct {
	Name    string
	Action  string
	Routine func(step int, ticks uint64)
}

// New event timers.
// Takes New(timo time.Duration, steps int), defaults to DefaultPeriod and 0 steps
func New(arg ...interface{}) *EventTimers {
	te := &EventTimers{
		timo: DefaultPeriod,
		list: make(map[string]*EventAction),
	}

	for _, a := range arg {
		switch v := a.(type) {
		case time.Duration:
			if v > 0 {
				te.timo = v
			}
		case int:
			te.maxSteps = v
		}
	}

	te.action = make(chan *EventAction, 16)
	te.done = make(chan struct{})

	tlog.DebugPrintf("New etimers: period %v, steps %d\n", te.timo, te.maxSteps)

	return te
}

// Period between two ticks
func (te *EventTimers) Period() time.Duration {
	return te.timo
}

// Ticks processed so far
func (te *EventTimers) Ticks() uint64 {

	te.lock.Lock()
	defer te.lock.Unlock()

	return te.ticks
}

// Start the timer go routine, a second call does nothing
func (te *EventTimers) Start() {

	te.lock.Lock()
	if te.started {
		te.lock.Unlock()
		return
	}
	te.started = true
	te.ticker = time.NewTicker(te.timo)
	te.lock.Unlock()

	te.wg.Add(1)
	go func() {
		defer te.wg.Done()
		defer te.ticker.Stop()

		for {
			select {
			case <-te.done:
				return

			case event := <-te.action:
				te.doAction(event)

			case <-te.ticker.C:
				te.doTimeout()
			}
		}
	}()
}

func (te *EventTimers) doTimeout() {

	te.lock.Lock()

	// The step counter wraps at maxSteps and is passed to the actions as a
	// sub-period reference.
	te.step++
	if te.step >= te.maxSteps {
		te.step = 0
	}
	step, ticks := te.step, te.ticks

	actions := make([]*EventAction, 0, len(te.list))
	for _, a := range te.list {
		actions = append(actions, a)
	}
	te.ticks++
	te.lock.Unlock()

	for _, a := range actions {
		a.Routine(step, ticks)
	}
}

// Process an add or remove request
func (te *EventTimers) doAction(a *EventAction) {

	te.lock.Lock()
	defer te.lock.Unlock()

	switch a.Action {
	case "add":
		tlog.DebugPrintf("Add Action: %s\n", a.Name)
		te.list[a.Name] = a

	case "remove":
		if _, ok := te.list[a.Name]; ok {
			tlog.DebugPrintf("Removed: %s\n", a.Name)
			delete(te.list, a.Name)
		}
	}
}

func (te *EventTimers) post(ea *EventAction) {
	select {
	case te.action <- ea:
	case <-te.done:
	}
}

// Add an action called on every tick
func (te *EventTimers) Add(name string, f func(step int, ticks uint64)) {
	te.post(&EventAction{Name: name, Action: "add", Routine: f})
}

// Remove an action
func (te *EventTimers) Remove(name string) {
	te.post(&EventAction{Name: name, Action: "remove"})
}

// Stop the timers and wait for the go routine to exit. Safe to call more
// than once.
func (te *EventTimers) Stop() {

	te.stopOnce.Do(func() {
		close(te.done)
	})
	te.wg.Wait()
}

// Gate lets one tick through at a time. A tick arriving while the previous
// one is still in flight is dropped, not queued.
type Gate struct {
	busy    int32
	dropped uint64
}

// Enter returns true when the caller may run a tick and must call Leave
func (g *Gate) Enter() bool {
	if atomic.CompareAndSwapInt32(&g.busy, 0, 1) {
		return true
	}
	atomic.AddUint64(&g.dropped, 1)
	return false
}

// Leave ends the tick started by a successful Enter
func (g *Gate) Leave() {
	atomic.StoreInt32(&g.busy, 0)
}

// Busy reports a tick in flight
func (g *Gate) Busy() bool {
	return atomic.LoadInt32(&g.busy) == 1
}

// Dropped is the number of ticks refused by Enter
func (g *Gate) Dropped() uint64 {
	return atomic.LoadUint64(&g.dropped)
}
