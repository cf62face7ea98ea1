/*
 * operatingSystems - Paging MMU: clock (second-chance) frame replacement.
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

// Package mmu implements the clock (second-chance) frame replacement
// algorithm over a fixed-size global frame table.
package mmu

import (
	"fmt"

	"github.com/thuynh02/operatingSystems/process"
)

// Placement classifies how find_open placed an entry, matching the
// original tool's literal "Free"/"Clean"/"Dirty" console words.
type Placement int

const (
	Free Placement = iota
	Clean
	Dirty
)

func (p Placement) String() string {
	switch p {
	case Free:
		return "Free"
	case Clean:
		return "Clean"
	case Dirty:
		return "Dirty"
	default:
		return "Unknown"
	}
}

// FrameTable is the fixed-size global array of physical frames, each
// either empty or holding a non-owning pointer to a resident PTE, plus the
// clock hand used for second-chance replacement.
type FrameTable struct {
	slots []*process.PageTableEntry
	next  int
}

// NewFrameTable allocates a table of size frames, all initially empty.
func NewFrameTable(frames int) *FrameTable {
	if frames <= 0 {
		panic("mmu: frame table size must be positive")
	}
	return &FrameTable{slots: make([]*process.PageTableEntry, frames)}
}

// Size returns the number of frames.
func (ft *FrameTable) Size() int {
	return len(ft.slots)
}

// Occupant returns the PTE resident in frame, or nil if empty.
func (ft *FrameTable) Occupant(frame int) *process.PageTableEntry {
	return ft.slots[frame]
}

// CheckFault reports whether entry's claimed residency is stale: true
// (faulted) unless FrameTable[entry.Frame] is non-empty and still belongs
// to entry's own pid.
func (ft *FrameTable) CheckFault(entry *process.PageTableEntry) bool {
	occupant := ft.slots[entry.Frame]
	if occupant == nil {
		return true
	}
	return occupant.PID != entry.PID
}

// FindOpen advances the clock hand until it finds a placeable slot for
// entry, installs entry there, and returns how the slot was classified.
// The traversal is guaranteed to terminate within two full revolutions:
// every slot visited with RefBit set is cleared, so the second pass finds
// every remaining slot with RefBit == false.
func (ft *FrameTable) FindOpen(entry *process.PageTableEntry) Placement {
	limit := 2 * len(ft.slots)
	for i := 0; i < limit; i++ {
		slot := ft.next
		occupant := ft.slots[slot]

		var placement Placement
		place := false

		switch {
		case occupant == nil:
			placement = Free
			place = true
		case !occupant.RefBit:
			if occupant.DirtyBit {
				placement = Dirty
			} else {
				placement = Clean
			}
			place = true
		default:
			occupant.RefBit = false
		}

		ft.next = (ft.next + 1) % len(ft.slots)

		if place {
			if occupant != nil {
				occupant.ValidBit = false
			}
			ft.slots[slot] = entry
			entry.Frame = slot
			entry.ValidBit = true
			return placement
		}
	}
	panic(fmt.Sprintf("mmu: clock hand failed to find a placeable slot within %d visits", limit))
}

// ClearPID empties every slot whose occupant belongs to pid, invoked when
// a process completes every reference in its trace.
func (ft *FrameTable) ClearPID(pid int) {
	for i, occupant := range ft.slots {
		if occupant != nil && occupant.PID == pid {
			ft.slots[i] = nil
		}
	}
}
