/*
 * operatingSystems - Multi-level feedback (CTSS) CPU scheduler.
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

// Package mlfb implements Corbato's multi-level feedback (CTSS) CPU
// scheduling policy: Q priority-indexed ready queues, per-process quantum
// and priority state, aging on I/O-bound burst ends, demotion on quantum
// exhaustion, and immediate preemption by higher-priority arrivals.
package mlfb

import (
	"fmt"

	"github.com/thuynh02/operatingSystems/oracle"
	"github.com/thuynh02/operatingSystems/process"
	"github.com/thuynh02/operatingSystems/sched"
	"github.com/thuynh02/operatingSystems/trace"
)

// Scheduler is the MLFB tagged-variant implementation of sched.Scheduler.
type Scheduler struct {
	arena  *process.Arena[process.Process]
	oracle *oracle.Oracle

	arrival sched.Queue // pre-sorted ascending by ArrivalTime
	ready   []sched.Queue
	waiting sched.Queue
	running process.ID

	t                  int
	queues             int
	ioDelay            int
	contextSwitchDelay int
	idleTime           int
	switchPending      bool
}

// New builds an MLFB scheduler with queues ready queues (priority 0 is
// highest) over arena's processes.
func New(arena *process.Arena[process.Process], arrivals []process.ID, o *oracle.Oracle, queues, ioDelay, contextSwitchDelay int) *Scheduler {
	if queues < 1 {
		panic("mlfb: queues must be at least 1")
	}
	s := &Scheduler{
		arena:              arena,
		oracle:             o,
		ready:              make([]sched.Queue, queues),
		queues:             queues,
		ioDelay:            ioDelay,
		contextSwitchDelay: contextSwitchDelay,
	}
	for _, id := range arrivals {
		s.arrival.PushBack(id)
	}
	return s
}

func (s *Scheduler) Time() int { return s.t }

func (s *Scheduler) Done() bool {
	if !s.arrival.Empty() || !s.waiting.Empty() || s.running != process.NoProcess {
		return false
	}
	for i := range s.ready {
		if !s.ready[i].Empty() {
			return false
		}
	}
	return true
}

// highestReady returns the index of the lowest-numbered nonempty ready
// queue, or s.queues if every ready queue is empty.
func (s *Scheduler) highestReady() int {
	for i := range s.ready {
		if !s.ready[i].Empty() {
			return i
		}
	}
	return s.queues
}

// Tick advances the scheduler by exactly one tick, in fixed phase order:
// admit arrivals (always into R[0]), advance waiting, drain context
// switch, advance running, dispatch, then t<-t+1.
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
	s.ready[0].PushBack(head)
	sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindArrive, PID: p.PID, From: "arrival", To: "ready[0]"})
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
		p.BurstInterval = 0
		p.GuaranteedTime = p.Quantum()
		s.ready[p.PriorityLevel].PushBack(head)
		sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindWake, PID: p.PID, From: "waiting", To: fmt.Sprintf("ready[%d]", p.PriorityLevel)})
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

// advanceRunning applies the first matching rule, in order: terminate,
// end_burst (with aging), preempt, demote. Only one rule fires per tick,
// and the context-switch flag is set only by the branch that actually
// fires, never unconditionally after the whole phase runs.
func (s *Scheduler) advanceRunning(sink trace.Sink) error {
	if s.running == process.NoProcess {
		return nil
	}
	p := s.arena.Get(s.running)
	p.GuaranteedTime--
	p.TimeLeft--
	p.BurstInterval++

	switch {
	case p.TimeLeft == 0:
		sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindTerminate, PID: p.PID, From: "running", To: "terminated"})
		s.arena.Remove(s.running)
		s.running = process.NoProcess
		s.switchPending = true
		return nil
	}

	ended, err := s.endBurst(p, sink)
	if err != nil {
		return err
	}
	if ended {
		q := p.Quantum()
		if p.PriorityLevel > 0 && p.BurstInterval-p.GuaranteedTime <= q/2 {
			p.PriorityLevel--
			sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindPromote, PID: p.PID, Detail: "aged up on I/O-bound burst end"})
		}
		id := s.running
		s.running = process.NoProcess
		p.IOWait = 0
		s.waiting.PushBack(id)
		sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindEndBurst, PID: p.PID, From: "running", To: "waiting"})
		s.switchPending = true
		return nil
	}

	if highest := s.highestReady(); highest < p.PriorityLevel {
		id := s.running
		s.running = process.NoProcess
		s.ready[p.PriorityLevel].PushFront(id)
		sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindPreempt, PID: p.PID, From: "running", To: fmt.Sprintf("ready[%d]", p.PriorityLevel)})
		s.switchPending = true
		return nil
	}

	if p.GuaranteedTime == 0 {
		if p.PriorityLevel < s.queues-1 {
			p.PriorityLevel++
		}
		p.GuaranteedTime = p.Quantum()
		id := s.running
		s.running = process.NoProcess
		s.ready[p.PriorityLevel].PushBack(id)
		sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindDemote, PID: p.PID, From: "running", To: fmt.Sprintf("ready[%d]", p.PriorityLevel)})
		s.switchPending = true
	}
	return nil
}

// endBurst consumes a probability draw only when the cascade needs one.
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

// ReadyDepths satisfies sched.Inspectable: one entry per priority level.
func (s *Scheduler) ReadyDepths() []int {
	depths := make([]int, len(s.ready))
	for i := range s.ready {
		depths[i] = s.ready[i].Len()
	}
	return depths
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
	if s.running != process.NoProcess || s.switchPending {
		return
	}
	highest := s.highestReady()
	if highest >= s.queues {
		return
	}
	id := s.ready[highest].PopFront()
	p := s.arena.Get(id)
	s.running = id
	sink.Emit(trace.Event{Tick: s.t, Kind: trace.KindDispatch, PID: p.PID, From: fmt.Sprintf("ready[%d]", highest), To: "running"})
}
