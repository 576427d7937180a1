// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package promstats

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edualvarado/unity-footprints/pkgs/frame"
	"github.com/edualvarado/unity-footprints/pkgs/layout"
	"github.com/edualvarado/unity-footprints/pkgs/render"
)

func TestObserveRendered(t *testing.T) {
	f, err := frame.Decode("3,1.2\nA,B\n1,10\n2,20\n3,30\n")
	require.NoError(t, err)

	r := New()
	r.Observe(render.TickResult{
		Outcome:  render.Rendered,
		Action:   layout.Rebuild,
		Frame:    f,
		Failures: []render.ChannelFailure{{Channel: 1, Name: "B", Err: errors.New("x")}},
	}, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.ticks.WithLabelValues("Rendered")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.ticks.WithLabelValues("MalformedFrame")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.failures))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rebuilds))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.channels))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.samples))
	assert.InDelta(t, 1.2, testutil.ToFloat64(r.simulationTime), 1e-9)
}

func TestObserveSkippedTicks(t *testing.T) {
	r := New()
	r.Observe(render.TickResult{Outcome: render.SourceUnavailable}, 0)
	r.Observe(render.TickResult{Outcome: render.MalformedFrame}, 0)
	r.Observe(render.TickResult{Outcome: render.MalformedFrame}, 0)
	r.Dropped()

	assert.Equal(t, 1.0, testutil.ToFloat64(r.ticks.WithLabelValues("SourceUnavailable")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.ticks.WithLabelValues("MalformedFrame")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.rebuilds))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.channels))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.dropped))
}

func TestHandler(t *testing.T) {
	r := New()
	r.Observe(render.TickResult{Outcome: render.MalformedFrame}, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `upyview_ticks_total{outcome="MalformedFrame"} 1`), body)
	assert.Contains(t, body, "upyview_tick_seconds_bucket")
}

func TestServeBadAddress(t *testing.T) {
	r := New()
	s := r.Serve("256.0.0.1:bad")

	select {
	case err := <-s.Err():
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("no listen error")
	}
}
