/*
 * operatingSystems - Process arena and CPU-mode process state.
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

// Package process holds the simulated job state shared by both engines, and
// the arena that owns it. Queues hold IDs, never pointers, so ownership
// stays with the arena; the frame table holds non-owning pointers to PTEs
// that live in each process's own PageTable.
package process

// ID indexes into an Arena. The zero value never names a live process; a
// fresh arena reserves index 0 as a sentinel.
type ID int

// NoProcess is the zero ID, used where "no process" must be represented.
const NoProcess ID = 0

// Arena owns every live Process (or MMProcess) by value-ish reference,
// handed out as an ID so queues never hold a pointer.
type Arena[T any] struct {
	slots []*T
}

// NewArena returns an arena with the sentinel slot reserved at index 0.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{slots: make([]*T, 1)}
}

// Add inserts v and returns its ID.
func (a *Arena[T]) Add(v *T) ID {
	a.slots = append(a.slots, v)
	return ID(len(a.slots) - 1)
}

// Get returns the value for id. Panics if id is out of range; returns nil
// for the sentinel and for a removed ID — callers are expected to only pass
// IDs obtained from Add or from a queue that never holds the sentinel.
func (a *Arena[T]) Get(id ID) *T {
	return a.slots[id]
}

// Remove clears the slot for id, so a later Get on the same ID returns nil
// instead of stale state. The ID itself is never reused.
func (a *Arena[T]) Remove(id ID) {
	a.slots[id] = nil
}

// Len reports how many slots have ever been allocated, including the
// sentinel and any removed slots.
func (a *Arena[T]) Len() int {
	return len(a.slots)
}

// Process is one simulated job under the CPU scheduler (FCFS or MLFB).
type Process struct {
	PID         int
	ArrivalTime int
	TotalCPU    int
	AvgBurst    int

	TimeLeft      int
	BurstInterval int
	IOWait        int

	// MLFB-only fields; left at zero for FCFS.
	PriorityLevel  int
	GuaranteedTime int
}

// New constructs a Process with TimeLeft initialized to TotalCPU, as
// required by the data-model invariant 0 <= TimeLeft <= TotalCPU.
func New(pid, arrivalTime, totalCPU, avgBurst int) *Process {
	return &Process{
		PID:            pid,
		ArrivalTime:    arrivalTime,
		TotalCPU:       totalCPU,
		AvgBurst:       avgBurst,
		TimeLeft:       totalCPU,
		GuaranteedTime: 1,
	}
}

// Quantum returns 2^PriorityLevel, the MLFB quantum for the process's
// current priority.
func (p *Process) Quantum() int {
	return 1 << p.PriorityLevel
}
