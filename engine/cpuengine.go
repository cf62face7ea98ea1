/*
 * operatingSystems - CPU-mode engine: wires a scheduler, oracle, and trace sink.
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
	"errors"
	"fmt"

	"github.com/thuynh02/operatingSystems/config/configparser"
	"github.com/thuynh02/operatingSystems/oracle"
	"github.com/thuynh02/operatingSystems/process"
	"github.com/thuynh02/operatingSystems/sched"
	"github.com/thuynh02/operatingSystems/sched/fcfs"
	"github.com/thuynh02/operatingSystems/sched/mlfb"
	"github.com/thuynh02/operatingSystems/trace"
)

// ErrUnknownMode is returned when Config.Mode names neither "fcfs" nor
// "mlfb" for the CPU engine.
var ErrUnknownMode = errors.New("engine: unknown CPU mode")

// CPUEngine drives a sched.Scheduler (FCFS or MLFB) tick by tick until the
// workload completes.
type CPUEngine struct {
	Scheduler sched.Scheduler
	Sink      trace.Sink
	oracle    *oracle.Oracle
}

// NewCPUEngine loads cfg.ProcessFile and the probability file at
// oracleFile, builds the arena, and wires the scheduler named by cfg.Mode.
func NewCPUEngine(cfg *configparser.Config, oracleFile string, sink trace.Sink) (*CPUEngine, error) {
	procs, err := LoadProcessFile(cfg.ProcessFile)
	if err != nil {
		return nil, fmt.Errorf("loading process file: %w", err)
	}

	o, err := oracle.Load(oracleFile)
	if err != nil {
		return nil, fmt.Errorf("loading probability file: %w", err)
	}

	arena := process.NewArena[process.Process]()
	ids := make([]process.ID, len(procs))
	for i, p := range procs {
		ids[i] = arena.Add(p)
	}

	var scheduler sched.Scheduler
	switch cfg.Mode {
	case "fcfs":
		scheduler = fcfs.New(arena, ids, o, cfg.IODelay, cfg.ContextSwitchDelay)
	case "mlfb":
		if cfg.CTSSQueues < 1 {
			return nil, fmt.Errorf("engine: mlfb mode requires CTSSQueues >= 1, got %d", cfg.CTSSQueues)
		}
		scheduler = mlfb.New(arena, ids, o, cfg.CTSSQueues, cfg.IODelay, cfg.ContextSwitchDelay)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
	}

	return &CPUEngine{Scheduler: scheduler, Sink: sink, oracle: o}, nil
}

// Tick advances the engine by one tick.
func (e *CPUEngine) Tick() error {
	return e.Scheduler.Tick(e.Sink)
}

// Done reports whether the workload has fully drained.
func (e *CPUEngine) Done() bool {
	return e.Scheduler.Done()
}

// Run ticks the engine to completion.
func (e *CPUEngine) Run() error {
	for !e.Done() {
		if err := e.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// QueueReport satisfies the interactive console's queueReporter interface.
func (e *CPUEngine) QueueReport() string {
	insp, ok := e.Scheduler.(sched.Inspectable)
	if !ok {
		return "queue introspection unavailable"
	}
	return fmt.Sprintf("t=%d running=%d ready=%v waiting=%d", e.Scheduler.Time(), insp.RunningPID(), insp.ReadyDepths(), insp.WaitingDepth())
}

// OracleRemaining satisfies the interactive console's oracleReporter
// interface.
func (e *CPUEngine) OracleRemaining() int {
	return e.oracle.Remaining()
}
