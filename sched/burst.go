/*
 * operatingSystems - end_burst probability cascade and Scheduler interface.
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

package sched

import "github.com/thuynh02/operatingSystems/trace"

// NeedsDraw reports whether BurstOutcome for this (burstInterval, avgBurst,
// totalCPU) triple requires a probability draw to decide, so the caller
// knows whether to consume one from the oracle before calling BurstOutcome.
func NeedsDraw(burstInterval, avgBurst, totalCPU int) bool {
	if burstInterval == totalCPU {
		return false
	}
	if burstInterval < avgBurst-1 {
		return false
	}
	return burstInterval == avgBurst-1 || burstInterval == avgBurst
}

// BurstOutcome decides whether the current CPU burst ends, given the burst
// length so far, the process's expected burst length, its total CPU
// requirement, and (when NeedsDraw reports true) the oracle draw consumed
// for this decision.
//
//	b == total_cpu        -> true
//	b <  a - 1            -> false
//	b == a - 1            -> true iff draw <= 1/3
//	b == a                -> true iff draw <= 1/2
//	b >  a                -> true
//
// avgBurst == 0 is rejected at workload-load time (see engine/workload.go),
// so this function never needs to special-case it.
func BurstOutcome(burstInterval, avgBurst, totalCPU int, draw float64) bool {
	switch {
	case burstInterval == totalCPU:
		return true
	case burstInterval < avgBurst-1:
		return false
	case burstInterval == avgBurst-1:
		return draw <= 1.0/3.0
	case burstInterval == avgBurst:
		return draw <= 0.5
	default:
		return true
	}
}

// Scheduler is the tagged-variant interface satisfied by fcfs.Scheduler and
// mlfb.Scheduler: the CPU engine drives either one through the same Tick
// call without needing to know which policy is underneath.
type Scheduler interface {
	// Tick advances the scheduler by one tick, emitting events to sink.
	Tick(sink trace.Sink) error
	// Done reports whether every process has arrived, run, and terminated.
	Done() bool
	// Time returns the current tick count.
	Time() int
}

// Inspectable is implemented by both schedulers to support the interactive
// console's queues command (through engine.CPUEngine.QueueReport) and the
// ready-queue depth gauge without either knowing which policy is
// underneath.
type Inspectable interface {
	// ReadyDepths returns the length of each ready queue, one entry for
	// FCFS, Q entries (one per priority level) for MLFB.
	ReadyDepths() []int
	// WaitingDepth returns the number of processes blocked on I/O.
	WaitingDepth() int
	// RunningPID returns the pid currently running, or 0 if none.
	RunningPID() int
}
