// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Define the events the watcher callbacks receive
const (
	FileWritten = iota
	FileRemoved
)

// Activity of the producer on the cache file
type Activity struct {
	Writes  uint64
	Removes uint64
	Last    time.Time
}

// Callback structure and data
type Callback struct {
	name string
	cb   func(event int)
}

// Watcher counts the producer's writes to the cache file. It watches the
// directory, so the file may be created or replaced while watched.
type Watcher struct {
	lock     sync.Mutex
	path     string
	opened   bool
	activity Activity
	callback map[string]*Callback
	watcher  *fsnotify.Watcher
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewWatcher for the cache file at path
func NewWatcher(path string) *Watcher {

	return &Watcher{
		path:     filepath.Clean(path),
		callback: make(map[string]*Callback),
	}
}

// Add callback function called on every write or removal of the file
func (w *Watcher) Add(name string, f func(event int)) {

	w.lock.Lock()
	defer w.lock.Unlock()

	w.callback[name] = &Callback{name: name, cb: f}
}

// Remove callback function
func (w *Watcher) Remove(name string) {

	w.lock.Lock()
	defer w.lock.Unlock()

	delete(w.callback, name)
}

// Activity seen so far
func (w *Watcher) Activity() Activity {

	w.lock.Lock()
	defer w.lock.Unlock()

	return w.activity
}

// StartWatching the directory of the cache file
func (w *Watcher) StartWatching() error {

	w.lock.Lock()
	defer w.lock.Unlock()

	if w.opened {
		return nil
	}

	dir := filepath.Dir(w.path)
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return fmt.Errorf("watch %s: directory not found", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.watcher = watcher
	w.done = make(chan struct{})
	w.opened = true

	w.wg.Add(1)
	go w.run(watcher, w.done)

	return nil
}

func (w *Watcher) run(watcher *fsnotify.Watcher, done <-chan struct{}) {
	defer w.wg.Done()

	for {
		select {
		case <-done:
			return

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}

			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				w.record(FileWritten)
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				w.record(FileRemoved)
			}
		}
	}
}

func (w *Watcher) record(event int) {

	w.lock.Lock()
	if event == FileWritten {
		w.activity.Writes++
	} else {
		w.activity.Removes++
	}
	w.activity.Last = time.Now()

	callbacks := make([]*Callback, 0, len(w.callback))
	for _, c := range w.callback {
		callbacks = append(callbacks, c)
	}
	w.lock.Unlock()

	for _, c := range callbacks {
		c.cb(event)
	}
}

// StopWatching the directory
func (w *Watcher) StopWatching() {

	w.lock.Lock()
	if !w.opened {
		w.lock.Unlock()
		return
	}
	close(w.done)
	w.watcher.Close()
	w.watcher = nil
	w.opened = false
	w.lock.Unlock()

	w.wg.Wait()
}
