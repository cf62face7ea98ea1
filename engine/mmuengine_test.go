/*
 * operatingSystems - Memory-management engine test set.
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
	"testing"

	"github.com/thuynh02/operatingSystems/config/configparser"
	"github.com/thuynh02/operatingSystems/mmu"
	"github.com/thuynh02/operatingSystems/process"
	"github.com/thuynh02/operatingSystems/trace"
)

func countKind(events []trace.Event, k trace.Kind) int {
	n := 0
	for _, e := range events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Boundary scenario 6: a process referencing address 100 twice (both
// mapping to the same page) takes exactly one fault; the second reference
// resolves as a hit via the propagated frame assignment.
func TestAliasedReferenceAvoidsSecondMiss(t *testing.T) {
	sink := &trace.SliceSink{}
	e := &MMUEngine{
		arena:            process.NewArena[process.MMProcess](),
		frame:            mmu.NewFrameTable(4),
		sink:             sink,
		missPenalty:      2,
		dirtyPagePenalty: 1,
	}

	refs := []process.Reference{
		{VirtualAddress: 100, Kind: process.Read},
		{VirtualAddress: 100, Kind: process.Read},
	}
	table := process.BuildPageTable(1, refs, 256)
	mp := process.NewMMProcess(1, table)
	id := e.arena.Add(mp)
	e.arrival.PushBack(id)

	for i := 0; i < 20 && !e.Done(); i++ {
		if err := e.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if !e.Done() {
		t.Fatalf("engine did not reach Done within 20 ticks")
	}

	if got := countKind(sink.Events, trace.KindPageFault); got != 1 {
		t.Fatalf("page fault count = %d, want 1", got)
	}
	if got := countKind(sink.Events, trace.KindPageHit); got != 2 {
		t.Fatalf("page hit count = %d, want 2", got)
	}
	if got := countKind(sink.Events, trace.KindClearPID); got != 1 {
		t.Fatalf("clear_pid count = %d, want 1", got)
	}
}

func TestMMUEngineTerminatesAndClearsFrames(t *testing.T) {
	sink := &trace.SliceSink{}
	e := &MMUEngine{
		arena:       process.NewArena[process.MMProcess](),
		frame:       mmu.NewFrameTable(2),
		sink:        sink,
		missPenalty: 1,
	}

	refs := []process.Reference{{VirtualAddress: 0, Kind: process.Read}}
	table := process.BuildPageTable(9, refs, 256)
	mp := process.NewMMProcess(9, table)
	id := e.arena.Add(mp)
	e.arrival.PushBack(id)

	for i := 0; i < 10 && !e.Done(); i++ {
		if err := e.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if !e.Done() {
		t.Fatalf("engine did not reach Done within 10 ticks")
	}

	for frame := 0; frame < e.frame.Size(); frame++ {
		if occ := e.frame.Occupant(frame); occ != nil && occ.PID == 9 {
			t.Fatalf("frame %d still occupied by cleared pid 9", frame)
		}
	}
}

func TestNewMMUEngineFromConfig(t *testing.T) {
	body := "1\n1\n1\n0 R\n"
	path := writeFile(t, "refs.txt", body)

	cfg := &configparser.Config{
		ReferenceFile: path,
		PageSize:      256,
		PABits:        10, // 1024 bytes of physical address space / 256 = 4 frames
		MissPenalty:   1,
	}
	e, err := NewMMUEngine(cfg, &trace.SliceSink{})
	if err != nil {
		t.Fatalf("NewMMUEngine: %v", err)
	}
	if e.frame.Size() != 4 {
		t.Fatalf("frame.Size() = %d, want 4", e.frame.Size())
	}
	for i := 0; i < 10 && !e.Done(); i++ {
		if err := e.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if !e.Done() {
		t.Fatalf("engine did not reach Done within 10 ticks")
	}
}

// A write reference that faults must mark its installed entry dirty, so
// that evicting it later (to satisfy someone else's miss) classifies the
// eviction Dirty and charges the evictor the dirty-page penalty, not Clean.
func TestWriteMissEvictsAsDirty(t *testing.T) {
	sink := &trace.SliceSink{}
	e := &MMUEngine{
		arena:            process.NewArena[process.MMProcess](),
		frame:            mmu.NewFrameTable(1),
		sink:             sink,
		missPenalty:      5,
		dirtyPagePenalty: 2,
	}

	table1 := process.BuildPageTable(1, []process.Reference{{VirtualAddress: 0, Kind: process.Write}}, 256)
	id1 := e.arena.Add(process.NewMMProcess(1, table1))
	e.arrival.PushBack(id1)

	table2 := process.BuildPageTable(2, []process.Reference{{VirtualAddress: 300, Kind: process.Write}}, 256)
	id2 := e.arena.Add(process.NewMMProcess(2, table2))
	e.arrival.PushBack(id2)

	// t0: pid 1 dispatches and faults into the only frame (Free, nothing
	// resident yet). t1: pid 2 dispatches and faults; the only frame is
	// still held by pid 1's dirty entry, so the clock hand must evict it
	// as Dirty.
	if err := e.Tick(); err != nil {
		t.Fatalf("Tick (t0): %v", err)
	}
	if err := e.Tick(); err != nil {
		t.Fatalf("Tick (t1): %v", err)
	}

	var faults []trace.Event
	for _, ev := range sink.Events {
		if ev.Kind == trace.KindPageFault {
			faults = append(faults, ev)
		}
	}
	if len(faults) != 2 {
		t.Fatalf("page fault count = %d, want 2", len(faults))
	}
	if faults[0].Detail != mmu.Free.String() {
		t.Fatalf("first fault detail = %q, want %q", faults[0].Detail, mmu.Free.String())
	}
	if faults[1].Detail != mmu.Dirty.String() {
		t.Fatalf("second fault detail = %q, want %q (evicting pid 1's dirty write-faulted entry)", faults[1].Detail, mmu.Dirty.String())
	}

	p2 := e.arena.Get(id2)
	if want := 5 + 2; p2.WaitTime != want {
		t.Fatalf("pid 2 WaitTime = %d, want %d (missPenalty + dirtyPagePenalty)", p2.WaitTime, want)
	}
}

func TestNewMMUEngineRejectsZeroPageSize(t *testing.T) {
	body := "1\n1\n1\n0 R\n"
	path := writeFile(t, "refs.txt", body)
	cfg := &configparser.Config{ReferenceFile: path, PageSize: 0}
	if _, err := NewMMUEngine(cfg, &trace.SliceSink{}); err == nil {
		t.Fatalf("NewMMUEngine: want error for pageSize == 0, got nil")
	}
}
