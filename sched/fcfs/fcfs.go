/*
 * operatingSystems - First-come-first-served CPU scheduler.
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

// Package fcfs implements the first-come-first-served CPU scheduling
// policy: one ready queue, one waiting queue, one running slot.
package fcfs

import (
	"github.com/thuynh02/operatingSystems/oracle"
	"github.com/thuynh02/operatingSystems/process"
	"github.com/thuynh02/operatingSystems/sched"
	"github.com/thuynh02/operatingSystems/trace"
)

// Scheduler is the FCFS tagged-variant implementation of sched.Scheduler.
type Scheduler struct {
	arena  *process.Arena[process.Process]
	oracle *oracle.Oracle

	arrival sched.Queue // pre-sorted ascending by ArrivalTime
	ready   sched.Queue
	waiting sched.Queue
	running process.ID

	t                  int
	ioDelay            int
	contextSwitchDelay int
	idleTime           int
	switchPending      bool
}

// New builds an FCFS scheduler over arena's processes (already loaded,
// sorted ascending by ArrivalTime in arrival) with the given oracle and
// configuration.
func New(arena *process.Arena[process.Process], arrivals []process.ID, o *oracle.Oracle, ioDelay, contextSwitchDelay int) *Scheduler {
	s := &Scheduler{
		arena:              arena,
		oracle:             o,
		ioDelay:            ioDelay,
		contextSwitchDelay: contextSwitchDelay,
	}
	for _, id := range arrivals {
		s.arrival.PushBack(id)
	}
	return s
}

// Time returns the current tick.
func (s *Scheduler) Time() int {
	return s.t
}

// Done reports whether every queue and the running slot are empty.
func (s *Scheduler) Done() bool {
	return s.arrival.Empty() && s.ready.Empty() && s.waiting.Empty() && s.running == process.NoProcess
}

// Tick advances the scheduler by exactly one tick, in fixed phase order:
// admit arrivals, advance waiting, drain context switch, advance running,
// dispatch, then t <- t+1.
func (s *Scheduler) Tick(sink trace.Sink) error {
	s.admitArrivals(sink)
	s.advanceWaiting(sink)
	s.drainContextSwitch(sink)
	if err := s.advanceRunning(sink); err != nil {
		return err
	}
	s.dispatch(sink)
	s.t++
	return nil
}

func (s *Scheduler) admitArrivals(sink trace.Sink) {
	if s.arrival.Empty() {
		return
	}
	head := s.arrival.Front()
	p := s.arena.Get(head)
	if p.ArrivalTime != s.t {
		return
	}
	s.arrival.PopFront()
	s.ready.PushBack(head)
	sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindArrive, PID: p.PID, From: "arrival", To: "ready"})
}

func (s *Scheduler) advanceWaiting(sink trace.Sink) {
	if s.waiting.Empty() {
		return
	}
	head := s.waiting.Front()
	p := s.arena.Get(head)
	if p.IOWait == s.ioDelay-1 {
		s.waiting.PopFront()
		p.IOWait = 0
		s.ready.PushBack(head)
		sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindWake, PID: p.PID, From: "waiting", To: "ready"})
	} else {
		p.IOWait++
	}
}

func (s *Scheduler) drainContextSwitch(sink trace.Sink) {
	if !s.switchPending || s.running != process.NoProcess {
		return
	}
	s.idleTime++
	if s.idleTime >= s.contextSwitchDelay {
		s.switchPending = false
		s.idleTime = 0
	} else {
		sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindContextSwitch})
	}
}

func (s *Scheduler) advanceRunning(sink trace.Sink) error {
	if s.running == process.NoProcess {
		return nil
	}
	p := s.arena.Get(s.running)
	p.TimeLeft--
	p.BurstInterval++

	switch {
	case p.TimeLeft == 0:
		sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindTerminate, PID: p.PID, From: "running", To: "terminated"})
		s.arena.Remove(s.running)
		s.running = process.NoProcess
		if s.contextSwitchDelay > 0 {
			s.switchPending = true
		}
	default:
		ended, err := s.endBurst(p, sink)
		if err != nil {
			return err
		}
		if ended {
			id := s.running
			s.running = process.NoProcess
			p.IOWait = 0
			s.waiting.PushBack(id)
			sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindEndBurst, PID: p.PID, From: "running", To: "waiting"})
			if s.contextSwitchDelay > 0 {
				s.switchPending = true
			}
		}
	}
	return nil
}

// endBurst consumes a probability draw only when the cascade needs one,
// and emits it to the trace for reproducibility.
func (s *Scheduler) endBurst(p *process.Process, sink trace.Sink) (bool, error) {
	if !sched.NeedsDraw(p.BurstInterval, p.AvgBurst, p.TotalCPU) {
		return sched.BurstOutcome(p.BurstInterval, p.AvgBurst, p.TotalCPU, 0), nil
	}
	value, ordinal, raw, err := s.oracle.Next()
	if err != nil {
		return false, err
	}
	sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindProbabilityDraw, Ordinal: ordinal, Raw: raw, Value: value})
	return sched.BurstOutcome(p.BurstInterval, p.AvgBurst, p.TotalCPU, value), nil
}

// ReadyDepths satisfies sched.Inspectable: FCFS has exactly one ready queue.
func (s *Scheduler) ReadyDepths() []int {
	return []int{s.ready.Len()}
}

// WaitingDepth satisfies sched.Inspectable.
func (s *Scheduler) WaitingDepth() int {
	return s.waiting.Len()
}

// RunningPID satisfies sched.Inspectable.
func (s *Scheduler) RunningPID() int {
	if s.running == process.NoProcess {
		return 0
	}
	return s.arena.Get(s.running).PID
}

func (s *Scheduler) dispatch(sink trace.Sink) {
	if s.ready.Empty() || s.running != process.NoProcess || s.switchPending {
		return
	}
	id := s.ready.PopFront()
	p := s.arena.Get(id)
	p.BurstInterval = 0
	s.running = id
	sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindDispatch, PID: p.PID, From: "ready", To: "running"})
}
