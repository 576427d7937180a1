// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package promstats

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edualvarado/unity-footprints/pkgs/layout"
	"github.com/edualvarado/unity-footprints/pkgs/render"
)

// Namespace of every metric
const Namespace = "upyview"

// Recorder turns tick results into prometheus metrics
type Recorder struct {
	registry       *prometheus.Registry
	ticks          *prometheus.CounterVec
	failures       prometheus.Counter
	rebuilds       prometheus.Counter
	dropped        prometheus.Counter
	channels       prometheus.Gauge
	samples        prometheus.Gauge
	simulationTime prometheus.Gauge
	tickSeconds    prometheus.Histogram
}

// New recorder with its own registry
func New() *Recorder {

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	r := &Recorder{
		registry: reg,
		ticks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ticks_total",
			Help:      "Poll ticks by outcome.",
		}, []string{"outcome"}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "channel_failures_total",
			Help:      "Channels that failed to draw.",
		}),
		rebuilds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "layout_rebuilds_total",
			Help:      "Axis set rebuilds.",
		}),
		dropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "dropped_ticks_total",
			Help:      "Ticks skipped while the previous tick was still running.",
		}),
		channels: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "channels",
			Help:      "Channels in the last rendered frame.",
		}),
		samples: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "samples",
			Help:      "Samples per channel in the last rendered frame.",
		}),
		simulationTime: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "simulation_time",
			Help:      "Simulation time of the last rendered frame.",
		}),
		tickSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "tick_seconds",
			Help:      "Time spent in one tick.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	// every outcome is exported from the start
	for _, o := range []render.Outcome{render.Rendered, render.SourceUnavailable, render.MalformedFrame} {
		r.ticks.WithLabelValues(o.String())
	}

	return r
}

// Registry holding the metrics
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe one tick result and the time it took
func (r *Recorder) Observe(res render.TickResult, elapsed time.Duration) {

	r.ticks.WithLabelValues(res.Outcome.String()).Inc()
	r.tickSeconds.Observe(elapsed.Seconds())

	if res.Outcome != render.Rendered {
		return
	}

	r.failures.Add(float64(len(res.Failures)))
	if res.Action == layout.Rebuild {
		r.rebuilds.Inc()
	}

	if res.Frame != nil {
		r.channels.Set(float64(res.Frame.NumChannels()))
		r.samples.Set(float64(res.Frame.SampleCount()))
		r.simulationTime.Set(res.Frame.SimulationTime())
	}
}

// Dropped counts a tick refused because one was still running
func (r *Recorder) Dropped() {
	r.dropped.Inc()
}

// Handler serving the metrics
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Server for the /metrics endpoint
type Server struct {
	srv  *http.Server
	errs chan error
}

// Serve the metrics on addr in a go routine
func (r *Recorder) Serve(addr string) *Server {

	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	s := &Server{
		srv:  &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		errs: make(chan error, 1),
	}

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errs <- err
		}
		close(s.errs)
	}()

	return s
}

// Err returns the channel receiving a listen failure, closed on exit
func (s *Server) Err() <-chan error {
	return s.errs
}

// Shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
