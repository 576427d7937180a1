// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/edualvarado/unity-footprints/pkgs/colorize"
	"github.com/edualvarado/unity-footprints/pkgs/frame"
)

// Defaults
const (
	DefaultCachePath   = "../../plotting_cache/plot.txt"
	DefaultInterval    = 100 * time.Millisecond
	DefaultSnapshotDir = "snapshots"
	MinInterval        = 10 * time.Millisecond
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config of the viewer, read from a YAML or a JSON-C file
type Config struct {
	CachePath      string        `yaml:"cache_path" json:"cache_path"`
	Interval       time.Duration `yaml:"interval" json:"-"`
	SampleInterval float64       `yaml:"sample_interval" json:"sample_interval"`
	Combined       bool          `yaml:"combined" json:"combined"`
	Palette        []string      `yaml:"palette,omitempty" json:"palette,omitempty"`
	SnapshotDir    string        `yaml:"snapshot_dir" json:"snapshot_dir"`
	MetricsAddr    string        `yaml:"metrics_addr,omitempty" json:"metrics_addr,omitempty"`
	Watch          bool          `yaml:"watch" json:"watch"`
}

// Default configuration
func Default() *Config {
	return &Config{
		CachePath:      DefaultCachePath,
		Interval:       DefaultInterval,
		SampleInterval: frame.DefaultSampleInterval,
		Combined:       true,
		SnapshotDir:    DefaultSnapshotDir,
		Watch:          true,
	}
}

// Load the file at path over the defaults. Files ending in .json or .jsonc
// are JSON-C, anything else is YAML.
func Load(path string) (*Config, error) {

	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open config %s: %w", path, err)
	}
	defer fd.Close()

	read := Read
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		read = ReadJSONC
	}

	cfg, err := read(fd)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Read YAML from r over the defaults. Unknown keys are an error.
func Read(r io.Reader) (*Config, error) {

	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadJSONC reads JSON, with comments and trailing commas allowed, from r
// over the defaults. Unknown keys are an error.
func ReadJSONC(r io.Reader) (*Config, error) {

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cfg := Default()

	if len(bytes.TrimSpace(b)) > 0 {
		if err := json.Unmarshal(jsonc.ToJSON(b), cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UnmarshalJSON decodes over the current values, the interval is a
// duration string such as "100ms"
func (c *Config) UnmarshalJSON(b []byte) error {
	type plain Config

	aux := struct {
		*plain
		Interval string `json:"interval,omitempty"`
	}{plain: (*plain)(c)}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&aux); err != nil {
		return err
	}

	if len(aux.Interval) > 0 {
		d, err := time.ParseDuration(aux.Interval)
		if err != nil {
			return fmt.Errorf("interval %q: %w", aux.Interval, err)
		}
		c.Interval = d
	}
	return nil
}

// Validate the values
func (c *Config) Validate() error {

	if len(c.CachePath) == 0 {
		return fmt.Errorf("%w: cache_path is empty", ErrInvalid)
	}
	if c.Interval < MinInterval {
		return fmt.Errorf("%w: interval %v is below %v", ErrInvalid, c.Interval, MinInterval)
	}
	if c.SampleInterval <= 0 {
		return fmt.Errorf("%w: sample_interval %v must be positive", ErrInvalid, c.SampleInterval)
	}
	for _, name := range c.Palette {
		if !colorize.IsColor(name) {
			return fmt.Errorf("%w: unknown palette colour %q", ErrInvalid, name)
		}
	}
	return nil
}

// Marshal the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
