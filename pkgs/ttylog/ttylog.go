// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package ttylog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// LogStates map of log id states
type LogStates map[string]bool

// TTYLog - log output to a tty, a file or any writer
type TTYLog struct {
	lock   sync.Mutex
	name   string
	sink   io.Writer
	closer io.Closer
	out    chan string
	done   chan struct{}
	wg     sync.WaitGroup
	states LogStates
}

var tlog *TTYLog

const (
	// FatalLog for fatal error log message
	FatalLog string = "FatalLog"
	// ErrorLog for error log messages
	ErrorLog string = "ErrorLog"
	// WarnLog for warning log messages
	WarnLog string = "WarnLog"
	// InfoLog for normal information
	InfoLog string = "InfoLog"
	// DebugLog for debug information
	DebugLog string = "DebugLog"
)

func init() {
	tlog = &TTYLog{}
	tlog.states = defaultStates()
}

func defaultStates() LogStates {
	return LogStates{
		FatalLog: true,
		ErrorLog: true,
		WarnLog:  true,
		InfoLog:  true,
		DebugLog: false,
	}
}

// logger go function to write the queued messages to the sink
func logger(sink io.Writer, out <-chan string, done <-chan struct{}) {
	defer tlog.wg.Done()

ForLoop:
	for {
		select {
		case <-done:
			break ForLoop
		case str := <-out:
			fmt.Fprint(sink, str)
		}
	}
}

// Register is a function to register new logging type strings
func Register(id string, state ...bool) {

	flg := false
	if len(state) > 0 {
		flg = state[0]
	}

	tlog.lock.Lock()
	defer tlog.lock.Unlock()

	tlog.states[id] = flg
}

// Delete a log id
func Delete(id string) error {

	tlog.lock.Lock()
	defer tlog.lock.Unlock()

	if _, ok := tlog.states[id]; ok {
		delete(tlog.states, id)
		return nil
	}

	return fmt.Errorf("log id %s not registered", id)
}

// State is a function to return the current logid state
func State(id string) (bool, error) {

	tlog.lock.Lock()
	defer tlog.lock.Unlock()

	state, ok := tlog.states[id]
	if !ok {
		return false, fmt.Errorf("unknown logid %s", id)
	}
	return state, nil
}

// SetState on a logid
func SetState(id string, state bool) error {

	tlog.lock.Lock()
	defer tlog.lock.Unlock()

	if _, ok := tlog.states[id]; !ok {
		return fmt.Errorf("unknown logid %s", id)
	}
	tlog.states[id] = state
	return nil
}

// IsInited - return true if a sink is open and the logger is running
func IsInited() bool {

	tlog.lock.Lock()
	defer tlog.lock.Unlock()

	return tlog.sink != nil && tlog.out != nil
}

// IsActive - return true if log type id is true else false
func IsActive(id string) bool {

	tlog.lock.Lock()
	defer tlog.lock.Unlock()

	return tlog.states[id]
}

// GetList returns a copy of the log ids and their states
func GetList() LogStates {

	tlog.lock.Lock()
	defer tlog.lock.Unlock()

	list := make(LogStates, len(tlog.states))
	for k, v := range tlog.states {
		list[k] = v
	}
	return list
}

func send(s string) error {

	tlog.lock.Lock()
	out, done := tlog.out, tlog.done
	tlog.lock.Unlock()

	if out == nil {
		return fmt.Errorf("log sink is not open")
	}

	select {
	case out <- s:
	case <-done:
		return fmt.Errorf("log sink closed")
	}

	return nil
}

func levelPrintf(id, prefix, format string, a ...interface{}) error {
	if !IsInited() {
		return fmt.Errorf("log sink is not open")
	}

	if IsActive(id) {
		return send(fmt.Sprintf(prefix+format, a...))
	}

	return nil
}

// ErrorPrintf to print out error messages
func ErrorPrintf(format string, a ...interface{}) error {
	return levelPrintf(ErrorLog, "Error: ", format, a...)
}

// WarnPrintf to print out warning messages
func WarnPrintf(format string, a ...interface{}) error {
	return levelPrintf(WarnLog, "Warning: ", format, a...)
}

// InfoPrintf to print out informational messages
func InfoPrintf(format string, a ...interface{}) error {
	return levelPrintf(InfoLog, "Info: ", format, a...)
}

// DebugPrintf to print out debug messages
func DebugPrintf(format string, a ...interface{}) error {
	return levelPrintf(DebugLog, "Debug: ", format, a...)
}

// Log - output using printf like routine when the log id is active
func Log(id string, format string, a ...interface{}) (n int, err error) {
	if !IsInited() {
		return 0, fmt.Errorf("log sink is not open")
	}

	if !IsActive(id) {
		return 0, nil
	}

	s := fmt.Sprintf(format, a...)
	if err := send(s); err != nil {
		return 0, err
	}
	return len(s), nil
}

// DoPrintf - output using printf like format without leading text and checks
func DoPrintf(format string, a ...interface{}) (n int, err error) {
	if !IsInited() {
		return 0, fmt.Errorf("log sink is not open")
	}

	s := fmt.Sprintf(format, a...)
	if err := send(s); err != nil {
		return 0, err
	}

	return len(s), nil
}

// Open a tty by number ("3"), by device path ("/dev/pts/3") or a regular
// log file path.
func Open(name string) error {

	if len(name) == 0 {
		name = "0"
	}

	path := name
	if !strings.Contains(name, "/") {
		path = "/dev/pts/" + name
	}

	flags := os.O_RDWR
	if !strings.HasPrefix(path, "/dev/") {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	fd, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return fmt.Errorf("unable to open log %s: %w", path, err)
	}

	return open(path, fd, fd)
}

// OpenWriter uses w as the log sink
func OpenWriter(w io.Writer) error {

	return open(fmt.Sprintf("%T", w), w, nil)
}

func open(name string, sink io.Writer, closer io.Closer) error {

	tlog.lock.Lock()
	defer tlog.lock.Unlock()

	if tlog.sink != nil {
		if closer != nil {
			closer.Close()
		}
		return fmt.Errorf("log already open on %s", tlog.name)
	}

	tlog.name = name
	tlog.sink = sink
	tlog.closer = closer
	tlog.out = make(chan string)
	tlog.done = make(chan struct{})

	tlog.wg.Add(1)
	go logger(tlog.sink, tlog.out, tlog.done)

	return nil
}

// Close - stop the logger and close the sink, log id states are reset
func Close() {

	tlog.lock.Lock()
	defer tlog.lock.Unlock()

	if tlog.done != nil {
		close(tlog.done)
		tlog.wg.Wait()
		tlog.done = nil
		tlog.out = nil
	}

	if tlog.closer != nil {
		tlog.closer.Close()
		tlog.closer = nil
	}

	tlog.sink = nil
	tlog.name = ""
	tlog.states = defaultStates()
}
