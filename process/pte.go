/*
 * operatingSystems - Page table entries and MMU-mode process state.
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

package process

// AccessKind distinguishes a read reference from a write reference.
type AccessKind byte

const (
	Read  AccessKind = 'R'
	Write AccessKind = 'W'
)

func (k AccessKind) String() string {
	if k == Write {
		return "W"
	}
	return "R"
}

// Reference is one memory access recorded in a process's trace.
type Reference struct {
	VirtualAddress int
	Kind           AccessKind
}

// PageTableEntry is one entry in a process's per-process page table, and
// the unit installed into the global frame table.
type PageTableEntry struct {
	PID            int
	VirtualAddress int
	Page           int
	Offset         int
	Kind           AccessKind

	ValidBit bool
	DirtyBit bool
	RefBit   bool
	Frame    int
}

// PageTable is a process's per-process table, indexed by REFERENCE ORDER
// (not by page number): entry i corresponds to the i-th reference in the
// process's trace, so two references to the same page produce two
// separate, aliased entries.
type PageTable struct {
	Entries []*PageTableEntry
}

// BuildPageTable constructs the per-process page table for pid from its
// raw reference trace, computing Page and Offset from pageSize.
func BuildPageTable(pid int, refs []Reference, pageSize int) *PageTable {
	entries := make([]*PageTableEntry, len(refs))
	for i, ref := range refs {
		entries[i] = &PageTableEntry{
			PID:            pid,
			VirtualAddress: ref.VirtualAddress,
			Page:           ref.VirtualAddress / pageSize,
			Offset:         ref.VirtualAddress % pageSize,
			Kind:           ref.Kind,
			DirtyBit:       ref.Kind == Write,
		}
	}
	return &PageTable{Entries: entries}
}

// MMProcess is one simulated job under the paging-MMU engine: it walks its
// own PageTable one reference at a time, blocking on each miss.
type MMProcess struct {
	PID   int
	Table *PageTable

	// cursor indexes the next unresolved reference in Table.Entries.
	cursor int

	WaitTime int
}

// NewMMProcess wraps table for pid, cursor starting at the first reference.
func NewMMProcess(pid int, table *PageTable) *MMProcess {
	return &MMProcess{PID: pid, Table: table}
}

// Current returns the PTE the process is waiting on, or nil if every
// reference has been resolved.
func (p *MMProcess) Current() *PageTableEntry {
	if p.cursor >= len(p.Table.Entries) {
		return nil
	}
	return p.Table.Entries[p.cursor]
}

// Advance moves past the current reference.
func (p *MMProcess) Advance() {
	p.cursor++
}

// Done reports whether every reference has been resolved.
func (p *MMProcess) Done() bool {
	return p.cursor >= len(p.Table.Entries)
}

// AliasedEntries returns every entry in the table (other than skip) that
// shares skip's page number, for the clock algorithm's intra-process
// aliasing propagation.
func (t *PageTable) AliasedEntries(skip *PageTableEntry) []*PageTableEntry {
	var aliases []*PageTableEntry
	for _, e := range t.Entries {
		if e == skip {
			continue
		}
		if e.Page == skip.Page {
			aliases = append(aliases, e)
		}
	}
	return aliases
}
