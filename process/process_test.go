/*
 * operatingSystems - Process arena test set.
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

import "testing"

func TestNewProcessInitialState(t *testing.T) {
	p := New(1, 0, 5, 3)
	if p.TimeLeft != p.TotalCPU {
		t.Errorf("TimeLeft = %d, want %d", p.TimeLeft, p.TotalCPU)
	}
	if p.BurstInterval != 0 || p.IOWait != 0 {
		t.Errorf("BurstInterval/IOWait = %d/%d, want 0/0", p.BurstInterval, p.IOWait)
	}
	if p.PriorityLevel != 0 {
		t.Errorf("PriorityLevel = %d, want 0", p.PriorityLevel)
	}
	if p.GuaranteedTime != 1 {
		t.Errorf("GuaranteedTime = %d, want 1", p.GuaranteedTime)
	}
}

func TestProcessQuantum(t *testing.T) {
	p := New(1, 0, 5, 3)
	p.PriorityLevel = 3
	if got, want := p.Quantum(), 8; got != want {
		t.Errorf("Quantum() = %d, want %d", got, want)
	}
}

func TestArenaAddGetRemove(t *testing.T) {
	a := NewArena[Process]()
	if a.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (sentinel)", a.Len())
	}

	p1 := New(1, 0, 5, 3)
	id1 := a.Add(p1)
	if id1 == NoProcess {
		t.Fatalf("Add returned sentinel ID")
	}

	p2 := New(2, 1, 7, 2)
	id2 := a.Add(p2)
	if id1 == id2 {
		t.Fatalf("two adds returned the same ID")
	}

	if got := a.Get(id1); got != p1 {
		t.Errorf("Get(id1) = %v, want %v", got, p1)
	}
	if got := a.Get(id2); got != p2 {
		t.Errorf("Get(id2) = %v, want %v", got, p2)
	}

	a.Remove(id1)
	if a.Get(id1) != nil {
		t.Errorf("Get(id1) after Remove = %v, want nil", a.Get(id1))
	}
	// id2's slot is untouched by removing id1.
	if got := a.Get(id2); got != p2 {
		t.Errorf("Get(id2) after removing id1 = %v, want %v", got, p2)
	}
}
