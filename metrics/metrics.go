/*
 * operatingSystems - Prometheus metrics exposed over the optional HTTP endpoint.
 *
 * Copyright 2024, operatingSystems Contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package metrics wires the simulator's counters and gauges to Prometheus,
// and listens on an optional HTTP endpoint translating trace.Event into
// metric updates.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thuynh02/operatingSystems/mmu"
	"github.com/thuynh02/operatingSystems/trace"
)

// Registry holds every metric the simulator exports and doubles as a
// trace.Sink wrapper: Observe(sink) returns a sink that updates metrics
// and forwards every event to the wrapped sink unchanged.
type Registry struct {
	reg *prometheus.Registry

	ticks          prometheus.Counter
	contextSwitch  prometheus.Counter
	pageFaultFree  prometheus.Counter
	pageFaultClean prometheus.Counter
	pageFaultDirty prometheus.Counter
	dirtyEvictions prometheus.Counter
	oracleDraws    prometheus.Counter
	readyDepth     *prometheus.GaugeVec
}

// New builds a fresh Registry with all series pre-registered.
func New() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg: reg,
		ticks: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ossim_ticks_total",
			Help: "Total number of simulation ticks advanced.",
		}),
		contextSwitch: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ossim_context_switches_total",
			Help: "Total number of context-switch ticks spent idle.",
		}),
		pageFaultFree: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ossim_page_faults_total",
			Help: "Total number of page faults by placement.",
			ConstLabels: prometheus.Labels{
				"placement": mmu.Free.String(),
			},
		}),
		pageFaultClean: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ossim_page_faults_total",
			Help: "Total number of page faults by placement.",
			ConstLabels: prometheus.Labels{
				"placement": mmu.Clean.String(),
			},
		}),
		pageFaultDirty: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ossim_page_faults_total",
			Help: "Total number of page faults by placement.",
			ConstLabels: prometheus.Labels{
				"placement": mmu.Dirty.String(),
			},
		}),
		dirtyEvictions: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ossim_dirty_evictions_total",
			Help: "Total number of evictions of a dirty frame.",
		}),
		oracleDraws: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ossim_oracle_draws_total",
			Help: "Total number of probability-oracle values consumed.",
		}),
		readyDepth: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "ossim_ready_queue_depth",
			Help: "Current depth of each priority's ready queue.",
		}, []string{"priority"}),
	}
	return r
}

// Handler returns the HTTP handler serving this registry's metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Serve starts an HTTP server on addr exposing /metrics, returning once
// ctx is cancelled or the listener fails.
func (r *Registry) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// SetReadyDepth records the current number of processes in the ready
// queue for priority (MLFB priority level, or "0" under FCFS).
func (r *Registry) SetReadyDepth(priority int, depth int) {
	r.readyDepth.WithLabelValues(itoa(priority)).Set(float64(depth))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// sinkObserver wraps a trace.Sink, updating metrics from every Event
// before forwarding it unchanged.
type sinkObserver struct {
	reg  *Registry
	next trace.Sink
}

// Observe wraps next so every emitted event also updates reg's metrics.
func (reg *Registry) Observe(next trace.Sink) trace.Sink {
	return &sinkObserver{reg: reg, next: next}
}

func (s *sinkObserver) Emit(e trace.Event) {
	switch e.Kind {
	case trace.KindContextSwitch:
		s.reg.contextSwitch.Inc()
	case trace.KindProbabilityDraw:
		s.reg.oracleDraws.Inc()
	case trace.KindPageFault:
		switch e.Detail {
		case mmu.Free.String():
			s.reg.pageFaultFree.Inc()
		case mmu.Clean.String():
			s.reg.pageFaultClean.Inc()
		case mmu.Dirty.String():
			s.reg.pageFaultDirty.Inc()
			s.reg.dirtyEvictions.Inc()
		}
	}
	s.next.Emit(e)
}

// Tick increments the tick counter; callers invoke this once per
// engine.Tick call, outside the trace.Sink path since a tick boundary
// isn't itself a trace.Event.
func (r *Registry) Tick() {
	r.ticks.Inc()
}
