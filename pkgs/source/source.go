// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package source

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrSourceUnavailable is wrapped by every failed read of the cache file
var ErrSourceUnavailable = errors.New("source unavailable")

// Reader returns the current content of a sample source
type Reader interface {
	Read() (string, error)
}

// FileSource reads the cache file written by the simulation
type FileSource struct {
	path string
}

// NewFileSource for the cache file at path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path of the cache file
func (fs *FileSource) Path() string {
	return fs.path
}

// Read the whole cache file. A missing or unreadable file is not fatal, the
// error wraps ErrSourceUnavailable and the caller waits for the next tick.
func (fs *FileSource) Read() (string, error) {

	b, err := os.ReadFile(fs.path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	return string(b), nil
}

// Head returns at most n bytes from the start of the cache file
func (fs *FileSource) Head(n int) ([]byte, error) {

	fd, err := os.Open(fs.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer fd.Close()

	buf := make([]byte, n)
	cnt, err := io.ReadFull(fd, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	return buf[:cnt], nil
}

// Stat of the cache file
func (fs *FileSource) Stat() (os.FileInfo, error) {

	fi, err := os.Stat(fs.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return fi, nil
}
