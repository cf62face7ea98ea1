/*
 * operatingSystems - Metrics package test set.
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

package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/thuynh02/operatingSystems/mmu"
	"github.com/thuynh02/operatingSystems/trace"
)

func TestObserveForwardsEventsUnchanged(t *testing.T) {
	reg := New()
	var got []trace.Event
	sink := reg.Observe(&recordingSink{events: &got})

	sink.Emit(trace.Event{Tick: 1, Kind: trace.KindContextSwitch})
	sink.Emit(trace.Event{Tick: 2, Kind: trace.KindPageFault, Detail: mmu.Dirty.String()})

	if len(got) != 2 {
		t.Fatalf("forwarded %d events, want 2", len(got))
	}
}

func TestObserveCountsContextSwitchesAndDraws(t *testing.T) {
	reg := New()
	sink := reg.Observe(&recordingSink{})

	sink.Emit(trace.Event{Kind: trace.KindContextSwitch})
	sink.Emit(trace.Event{Kind: trace.KindContextSwitch})
	sink.Emit(trace.Event{Kind: trace.KindProbabilityDraw})

	if v := testutil.ToFloat64(reg.contextSwitch); v != 2 {
		t.Fatalf("contextSwitch = %v, want 2", v)
	}
	if v := testutil.ToFloat64(reg.oracleDraws); v != 1 {
		t.Fatalf("oracleDraws = %v, want 1", v)
	}
}

func TestObserveSplitsPageFaultsByPlacement(t *testing.T) {
	reg := New()
	sink := reg.Observe(&recordingSink{})

	sink.Emit(trace.Event{Kind: trace.KindPageFault, Detail: mmu.Free.String()})
	sink.Emit(trace.Event{Kind: trace.KindPageFault, Detail: mmu.Clean.String()})
	sink.Emit(trace.Event{Kind: trace.KindPageFault, Detail: mmu.Dirty.String()})
	sink.Emit(trace.Event{Kind: trace.KindPageFault, Detail: mmu.Dirty.String()})

	if v := testutil.ToFloat64(reg.pageFaultFree); v != 1 {
		t.Fatalf("pageFaultFree = %v, want 1", v)
	}
	if v := testutil.ToFloat64(reg.pageFaultClean); v != 1 {
		t.Fatalf("pageFaultClean = %v, want 1", v)
	}
	if v := testutil.ToFloat64(reg.pageFaultDirty); v != 2 {
		t.Fatalf("pageFaultDirty = %v, want 2", v)
	}
	if v := testutil.ToFloat64(reg.dirtyEvictions); v != 2 {
		t.Fatalf("dirtyEvictions = %v, want 2 (every dirty fault is also an eviction)", v)
	}
}

func TestTickIncrementsTicksTotal(t *testing.T) {
	reg := New()
	reg.Tick()
	reg.Tick()
	reg.Tick()

	if v := testutil.ToFloat64(reg.ticks); v != 3 {
		t.Fatalf("ticks = %v, want 3", v)
	}
}

func TestSetReadyDepthLabelsByPriority(t *testing.T) {
	reg := New()
	reg.SetReadyDepth(0, 4)
	reg.SetReadyDepth(2, 1)

	if v := testutil.ToFloat64(reg.readyDepth.WithLabelValues("0")); v != 4 {
		t.Fatalf("readyDepth[0] = %v, want 4", v)
	}
	if v := testutil.ToFloat64(reg.readyDepth.WithLabelValues("2")); v != 1 {
		t.Fatalf("readyDepth[2] = %v, want 1", v)
	}
}

func TestHandlerServesMetricsFamily(t *testing.T) {
	reg := New()
	reg.Tick()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	reg.Handler().ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "ossim_ticks_total") {
		t.Fatalf("response did not contain ossim_ticks_total:\n%s", rec.Body.String())
	}
}

type recordingSink struct {
	events *[]trace.Event
}

func (s *recordingSink) Emit(e trace.Event) {
	if s.events != nil {
		*s.events = append(*s.events, e)
	}
}
