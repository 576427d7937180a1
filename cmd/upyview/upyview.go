// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	flags "github.com/jessevdk/go-flags"
	"github.com/rivo/tview"

	cz "github.com/edualvarado/unity-footprints/pkgs/colorize"
	"github.com/edualvarado/unity-footprints/pkgs/config"
	"github.com/edualvarado/unity-footprints/pkgs/etimers"
	"github.com/edualvarado/unity-footprints/pkgs/frame"
	"github.com/edualvarado/unity-footprints/pkgs/graphdata"
	"github.com/edualvarado/unity-footprints/pkgs/promstats"
	"github.com/edualvarado/unity-footprints/pkgs/render"
	"github.com/edualvarado/unity-footprints/pkgs/snapshot"
	"github.com/edualvarado/unity-footprints/pkgs/source"
	tlog "github.com/edualvarado/unity-footprints/pkgs/ttylog"
	"github.com/edualvarado/unity-footprints/pkgs/utils"
)

const (
	// upyVersion string
	upyVersion = "25.10.0"
	// timerSteps per usage refresh of the status line
	timerSteps = 10
)

// PanelInfo for title and primitive
type PanelInfo struct {
	title     string
	primitive tview.Primitive
}

// Panels is a function which returns the feature's main primitive and its title.
// It receives a "nextPanel" function which can be called to advance the
// presentation to the next page.
type Panels func(nextPanel func()) (title string, content tview.Primitive)

// UPyView holds the viewer state shared by the panels
type UPyView struct {
	version   string
	cfg       *config.Config
	pages     *tview.Pages
	app       *tview.Application
	timers    *etimers.EventTimers
	gate      etimers.Gate
	src       *source.FileSource
	watcher   *source.Watcher
	sched     *render.Scheduler
	recorder  *promstats.Recorder
	snapshots *snapshot.Writer
	usage     *utils.SelfUsage
	stats     *TickStats
	panels    []PanelInfo
}

// Options command line options
type Options struct {
	Config      string        `short:"c" long:"config" description:"YAML or JSON-C (.json, .jsonc) configuration file"`
	CachePath   string        `short:"f" long:"file" description:"cache file written by the simulation"`
	Interval    time.Duration `short:"i" long:"interval" description:"poll period, e.g. 100ms"`
	Combined    bool          `long:"combined" description:"start with all channels on one axis"`
	PerChannel  bool          `short:"s" long:"split" description:"start with one axis per channel"`
	SnapshotDir string        `long:"snapshot-dir" description:"directory for PNG snapshots"`
	MetricsAddr string        `short:"m" long:"metrics-addr" description:"serve prometheus metrics on host:port"`
	NoWatch     bool          `long:"no-watch" description:"do not watch the cache directory"`
	Ptty        string        `short:"p" long:"ptty" description:"path to ptty /dev/pts/X"`
	LogFile     string        `short:"l" long:"log-file" description:"write the log to a file"`
	ShowVersion bool          `short:"V" long:"version" description:"Print out version and exit"`
	Verbose     bool          `short:"v" long:"verbose" description:"Verbose output for debugging"`
}

// Global to the main package for the tool
var upy UPyView
var options Options
var parser = flags.NewParser(&options, flags.Default)

const (
	mainLog = "MainLogID"
)

func buildPanelString(str string) string {
	// Build the panel selection string at the bottom of the xterm and
	// highlight the selected tab/panel item.
	s := ""
	for index, p := range upy.panels {
		if p.title == str {
			s += fmt.Sprintf("F%d:[orange::r]%s[white::-]", index+1, p.title)
		} else {
			s += fmt.Sprintf("F%d:[orange::-]%s[white::-]", index+1, p.title)
		}
		if (index + 1) < len(upy.panels) {
			s += " "
		}
	}
	return s + "  [gray]s:Style p:Snapshot q:Quit[-]"
}

// Setup the tool's global information
func init() {
	tlog.Register(mainLog, true)

	upy = UPyView{}
	upy.version = upyVersion

	// Create the main tview application.
	upy.app = tview.NewApplication()
}

// Version number string
func Version() string {
	return upy.version
}

// buildConfig from the optional config file and the command line, flags
// given on the command line win over the file.
func buildConfig(opts *Options) (*config.Config, error) {

	cfg := config.Default()
	if len(opts.Config) > 0 {
		c, err := config.Load(opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	if len(opts.CachePath) > 0 {
		cfg.CachePath = opts.CachePath
	}
	if opts.Interval != 0 {
		cfg.Interval = opts.Interval
	}
	if opts.Combined && opts.PerChannel {
		return nil, fmt.Errorf("%w: --combined and --split are exclusive", config.ErrInvalid)
	}
	if opts.Combined {
		cfg.Combined = true
	}
	if opts.PerChannel {
		cfg.Combined = false
	}
	if len(opts.SnapshotDir) > 0 {
		cfg.SnapshotDir = opts.SnapshotDir
	}
	if len(opts.MetricsAddr) > 0 {
		cfg.MetricsAddr = opts.MetricsAddr
	}
	if opts.NoWatch {
		cfg.Watch = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupViewer creates the source, scheduler and the other parts the panels use
func setupViewer(cfg *config.Config) {

	upy.cfg = cfg
	upy.stats = newTickStats()

	palette := cz.NewPalette(cfg.Palette...)

	upy.src = source.NewFileSource(cfg.CachePath)
	upy.sched = render.New(upy.src, graphdata.NewFigure(1),
		render.WithCombined(cfg.Combined),
		render.WithPalette(palette),
		render.WithDecoder(frame.NewDecoder(cfg.SampleInterval)))

	upy.recorder = promstats.New()
	upy.snapshots = snapshot.NewWriter(cfg.SnapshotDir, palette)

	usage, err := utils.NewSelfUsage()
	if err != nil {
		tlog.WarnPrintf("process usage not available: %v\n", err)
	}
	upy.usage = usage

	if cfg.Watch {
		upy.watcher = source.NewWatcher(cfg.CachePath)
		if err := upy.watcher.StartWatching(); err != nil {
			tlog.WarnPrintf("cache directory not watched: %v\n", err)
			upy.watcher = nil
		}
	}
}

func main() {

	cz.SetDefault("ivory", "", 0, 2, "")

	_, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return
		}
		fmt.Printf("*** invalid arguments %v\n", err)
		os.Exit(1)
	}

	if options.ShowVersion {
		fmt.Printf("UPy Viewer Version: %s\n", upy.version)
		return
	}

	switch {
	case len(options.Ptty) > 0:
		err = tlog.Open(options.Ptty)
	case len(options.LogFile) > 0:
		err = tlog.Open(options.LogFile)
	}
	if err != nil {
		fmt.Printf("ttylog open failed: %s\n", err)
		os.Exit(1)
	}
	defer tlog.Close()

	if options.Verbose {
		tlog.SetState(tlog.DebugLog, true)
		tlog.SetState(render.LogID, true)
	}

	cfg, err := buildConfig(&options)
	if err != nil {
		fmt.Printf("*** invalid configuration %v\n", err)
		os.Exit(1)
	}

	tlog.Log(mainLog, "\n===== %s =====\n", UPyViewInfo(false))
	tlog.Log(mainLog, "cache %s every %v\n", cfg.CachePath, cfg.Interval)

	setupViewer(cfg)

	var metrics *promstats.Server
	if len(cfg.MetricsAddr) > 0 {
		metrics = upy.recorder.Serve(cfg.MetricsAddr)
		go func() {
			if err, ok := <-metrics.Err(); ok {
				tlog.ErrorPrintf("metrics server: %v\n", err)
			}
		}()
	}

	app := upy.app

	upy.timers = etimers.New(cfg.Interval, timerSteps)
	upy.timers.Start()

	panels := []Panels{
		PlotPanelSetup,
		FramePanelSetup,
	}

	// The bottom row has some info on where we are.
	info := tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWrap(false)

	currentPanel := 0
	info.Highlight(strconv.Itoa(currentPanel))

	pages := tview.NewPages()
	upy.pages = pages

	switchTo := func(index int) {
		currentPanel = index
		name := upy.panels[currentPanel].title
		info.Highlight(name).ScrollToHighlight()
		pages.SwitchToPage(name)
		info.SetText(buildPanelString(name))
	}

	previousPanel := func() {
		switchTo((currentPanel - 1 + len(panels)) % len(panels))
	}

	nextPanel := func() {
		switchTo((currentPanel + 1) % len(panels))
	}

	for index, f := range panels {
		title, primitive := f(nextPanel)
		pages.AddPage(title, primitive, true, index == currentPanel)
		upy.panels = append(upy.panels, PanelInfo{title: title, primitive: primitive})
	}
	info.SetText(buildPanelString(upy.panels[0].title))

	// Create the main panel.
	panel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(pages, 0, 1, true).
		AddItem(info, 1, 1, false)

	// Shortcuts to navigate the panels and the two viewer actions.
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyCtrlN:
			nextPanel()
		case event.Key() == tcell.KeyCtrlP:
			previousPanel()
		case event.Key() == tcell.KeyCtrlQ:
			app.Stop()
		case tcell.KeyF1 <= event.Key() && event.Key() <= tcell.KeyF19:
			idx := int(event.Key() - tcell.KeyF1)
			if idx >= 0 && idx < len(panels) {
				switchTo(idx)
			}
		case event.Rune() == 's' || event.Rune() == 'S':
			toggleStyle()
			return nil
		case event.Rune() == 'p' || event.Rune() == 'P':
			takeSnapshot()
			return nil
		case event.Rune() == 'q' || event.Rune() == 'Q':
			app.Stop()
		}
		return event
	})

	setupSignals(syscall.SIGINT, syscall.SIGTERM)

	// Start the application.
	if err := app.SetRoot(panel, true).Run(); err != nil {
		tlog.ErrorPrintf("application: %v\n", err)
	}

	upy.timers.Stop()
	if upy.watcher != nil {
		upy.watcher.StopWatching()
	}
	if metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		metrics.Shutdown(ctx)
		cancel()
	}

	tlog.Log(mainLog, "===== Done =====\n")
}

func setupSignals(signals ...os.Signal) {
	app := upy.app

	sigs := make(chan os.Signal, 1)

	signal.Notify(sigs, signals...)
	go func() {
		sig := <-sigs

		tlog.Log(mainLog, "Signal: %v\n", sig)

		app.Stop()
	}()
}
