/*
 * operatingSystems - Memory-management engine: the paging MMU tick loop.
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

package engine

import (
	"fmt"

	"github.com/thuynh02/operatingSystems/config/configparser"
	"github.com/thuynh02/operatingSystems/mmu"
	"github.com/thuynh02/operatingSystems/process"
	"github.com/thuynh02/operatingSystems/sched"
	"github.com/thuynh02/operatingSystems/trace"
)

// MMUEngine drives the paging-MMU tick loop: promote arrivals, wake
// blocked, resolve references for the running process until a miss or
// completion, yield.
type MMUEngine struct {
	arena *process.Arena[process.MMProcess]
	frame *mmu.FrameTable
	sink  trace.Sink

	arrival sched.Queue
	ready   sched.Queue
	blocked sched.Queue
	running process.ID

	t                int
	missPenalty      int
	dirtyPagePenalty int
}

// NewMMUEngine loads cfg.ReferenceFile, builds one MMProcess per workload
// block, and allocates the frame table sized from cfg.PAbits/cfg.PageSize.
func NewMMUEngine(cfg *configparser.Config, sink trace.Sink) (*MMUEngine, error) {
	workloads, err := LoadReferenceFile(cfg.ReferenceFile)
	if err != nil {
		return nil, fmt.Errorf("loading reference file: %w", err)
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("engine: mmu mode requires pageSize > 0, got %d", cfg.PageSize)
	}

	frames := (1 << cfg.PABits) / cfg.PageSize
	e := &MMUEngine{
		arena:            process.NewArena[process.MMProcess](),
		frame:            mmu.NewFrameTable(frames),
		sink:             sink,
		missPenalty:      cfg.MissPenalty,
		dirtyPagePenalty: cfg.DirtyPagePenalty,
	}

	for _, w := range workloads {
		table := process.BuildPageTable(w.PID, w.Refs, cfg.PageSize)
		mp := process.NewMMProcess(w.PID, table)
		id := e.arena.Add(mp)
		e.arrival.PushBack(id)
	}
	return e, nil
}

// Done reports whether every process has arrived, resolved every
// reference, and been cleared.
func (e *MMUEngine) Done() bool {
	return e.arrival.Empty() && e.ready.Empty() && e.blocked.Empty() && e.running == process.NoProcess
}

// ReadyDepth, BlockedDepth, and RunningPID back the interactive console's
// "queues" command for MMU mode.
func (e *MMUEngine) ReadyDepth() int   { return e.ready.Len() }
func (e *MMUEngine) BlockedDepth() int { return e.blocked.Len() }

func (e *MMUEngine) RunningPID() int {
	if e.running == process.NoProcess {
		return 0
	}
	return e.arena.Get(e.running).PID
}

// FrameSnapshot describes every occupied frame, for the console's "frames"
// command.
func (e *MMUEngine) FrameSnapshot() []string {
	var lines []string
	for i := 0; i < e.frame.Size(); i++ {
		occ := e.frame.Occupant(i)
		if occ == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("frame %d: pid=%d page=%d ref=%v dirty=%v", i, occ.PID, occ.Page, occ.RefBit, occ.DirtyBit))
	}
	return lines
}

// QueueReport satisfies the interactive console's queueReporter interface.
func (e *MMUEngine) QueueReport() string {
	return fmt.Sprintf("t=%d running=%d ready=%d blocked=%d", e.t, e.RunningPID(), e.ReadyDepth(), e.BlockedDepth())
}

// FrameReport satisfies the interactive console's frameReporter interface.
func (e *MMUEngine) FrameReport() string {
	lines := e.FrameSnapshot()
	if len(lines) == 0 {
		return "all frames empty"
	}
	report := ""
	for _, l := range lines {
		report += l + "\n"
	}
	return report
}

// Tick advances the engine by exactly one tick.
func (e *MMUEngine) Tick() error {
	e.promoteArrivals()
	e.wakeBlocked()
	e.resolveOneReference()
	e.t++
	return nil
}

// promoteArrivals moves every arrival to ready unconditionally: MM-mode
// processes always have arrival_time == 0.
func (e *MMUEngine) promoteArrivals() {
	for !e.arrival.Empty() {
		id := e.arrival.PopFront()
		e.ready.PushBack(id)
		p := e.arena.Get(id)
		e.sink.Emit(trace.Event{Tick: e.t, Kind: trace.KindArrive, PID: p.PID, From: "arrival", To: "ready"})
	}
}

func (e *MMUEngine) wakeBlocked() {
	if e.blocked.Empty() {
		return
	}
	id := e.blocked.Front()
	p := e.arena.Get(id)
	if p.WaitTime == 0 {
		e.blocked.PopFront()
		e.ready.PushBack(id)
		e.sink.Emit(trace.Event{Tick: e.t, Kind: trace.KindWake, PID: p.PID, From: "blocked", To: "ready"})
	} else {
		p.WaitTime--
	}
}

// resolveOneReference dispatches if necessary, resolves consecutive hits
// until a miss or completion, handles a miss by installing a frame and
// blocking the process, then always clears the running slot: the next
// tick re-dispatches, whether that lands the same process back in
// running or not.
func (e *MMUEngine) resolveOneReference() {
	if e.running == process.NoProcess {
		if e.ready.Empty() {
			return
		}
		id := e.ready.PopFront()
		e.running = id
		p := e.arena.Get(id)
		e.sink.Emit(trace.Event{Tick: e.t, Kind: trace.KindDispatch, PID: p.PID, From: "ready", To: "running"})
	}

	id := e.running
	p := e.arena.Get(id)

	for {
		entry := p.Current()
		if entry == nil || !entry.ValidBit {
			break
		}
		if e.frame.CheckFault(entry) {
			entry.ValidBit = false
			break
		}
		occupant := e.frame.Occupant(entry.Frame)
		occupant.RefBit = true
		if entry.Kind == process.Write {
			occupant.DirtyBit = true
		}
		e.sink.Emit(trace.Event{Tick: e.t, Kind: trace.KindPageHit, PID: p.PID, Detail: fmt.Sprintf("frame=%d", entry.Frame)})
		p.Advance()
		if p.Done() {
			e.frame.ClearPID(p.PID)
			e.sink.Emit(trace.Event{Tick: e.t, Kind: trace.KindClearPID, PID: p.PID})
			e.sink.Emit(trace.Event{Tick: e.t, Kind: trace.KindTerminate, PID: p.PID, From: "running", To: "terminated"})
			e.arena.Remove(id)
			e.running = process.NoProcess
			return
		}
	}

	entry := p.Current()
	if entry != nil && !entry.ValidBit {
		entry.RefBit = true
		placement := e.frame.FindOpen(entry)
		for _, alias := range p.Table.AliasedEntries(entry) {
			alias.ValidBit = entry.ValidBit
			alias.Frame = entry.Frame
		}
		p.WaitTime = e.missPenalty
		if placement == mmu.Dirty {
			p.WaitTime += e.dirtyPagePenalty
		}
		e.sink.Emit(trace.Event{Tick: e.t, Kind: trace.KindPageFault, PID: p.PID, Detail: placement.String()})
		e.blocked.PushBack(id)
	}

	e.running = process.NoProcess
}
