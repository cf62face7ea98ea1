/*
 * operatingSystems - Simulation trace events and sinks.
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

// Package trace decouples the scheduler/MMU core loops from how a
// transition is displayed. The core only ever calls Sink.Emit; formatting
// lives entirely outside THE CORE.
package trace

import (
	"fmt"
	"io"
)

// Kind identifies the shape of an Event.
type Kind int

const (
	KindArrive Kind = iota
	KindDispatch
	KindEndBurst
	KindTerminate
	KindWake
	KindContextSwitch
	KindDemote
	KindPromote
	KindPreempt
	KindProbabilityDraw
	KindPageHit
	KindPageFault
	KindClearPID
)

func (k Kind) String() string {
	switch k {
	case KindArrive:
		return "arrive"
	case KindDispatch:
		return "dispatch"
	case KindEndBurst:
		return "end_burst"
	case KindTerminate:
		return "terminate"
	case KindWake:
		return "wake"
	case KindContextSwitch:
		return "context_switch"
	case KindDemote:
		return "demote"
	case KindPromote:
		return "promote"
	case KindPreempt:
		return "preempt"
	case KindProbabilityDraw:
		return "probability_draw"
	case KindPageHit:
		return "page_hit"
	case KindPageFault:
		return "page_fault"
	case KindClearPID:
		return "clear_pid"
	default:
		return "unknown"
	}
}

// Event records one state transition or probability draw, identified by
// tick, the kind of transition, the affected pid (if any), and enough
// free-form detail for a human-readable line.
type Event struct {
	Tick    int
	Kind    Kind
	PID     int
	From    string
	To      string
	Detail  string
	Ordinal int     // set for KindProbabilityDraw
	Raw     int64   // set for KindProbabilityDraw
	Value   float64 // set for KindProbabilityDraw
}

// Sink receives every Event the core loops emit.
type Sink interface {
	Emit(Event)
}

// TextSink writes one human-readable line per event to an io.Writer,
// matching the original tool's one-line-per-transition console output.
type TextSink struct {
	w io.Writer
}

// NewTextSink wraps w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (s *TextSink) Emit(e Event) {
	switch e.Kind {
	case KindProbabilityDraw:
		fmt.Fprintf(s.w, "t=%d [Random number (%d): %d] Probability == %v\n", e.Tick, e.Ordinal, e.Raw, e.Value)
	default:
		if e.From != "" || e.To != "" {
			fmt.Fprintf(s.w, "t=%d pid=%d %s: %s -> %s %s\n", e.Tick, e.PID, e.Kind, e.From, e.To, e.Detail)
		} else {
			fmt.Fprintf(s.w, "t=%d pid=%d %s %s\n", e.Tick, e.PID, e.Kind, e.Detail)
		}
	}
}

// SliceSink records every Event in order, for test assertions.
type SliceSink struct {
	Events []Event
}

func (s *SliceSink) Emit(e Event) {
	s.Events = append(s.Events, e)
}
