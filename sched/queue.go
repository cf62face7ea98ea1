/*
 * operatingSystems - FIFO process-ID queue shared by both schedulers.
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

// Package sched holds the pieces shared by both CPU scheduling policies:
// the FIFO queue of process IDs and the end_burst probability cascade.
package sched

import "github.com/thuynh02/operatingSystems/process"

// Queue is a FIFO of process IDs. The zero value is an empty queue.
type Queue struct {
	ids []process.ID
}

// PushBack appends id to the back of the queue.
func (q *Queue) PushBack(id process.ID) {
	q.ids = append(q.ids, id)
}

// PushFront prepends id to the front of the queue, used by MLFB preemption.
func (q *Queue) PushFront(id process.ID) {
	q.ids = append([]process.ID{id}, q.ids...)
}

// PopFront removes and returns the front of the queue. Panics if empty;
// callers must check Empty first.
func (q *Queue) PopFront() process.ID {
	id := q.ids[0]
	q.ids = q.ids[1:]
	return id
}

// Front returns the queue's head without removing it. Panics if empty.
func (q *Queue) Front() process.ID {
	return q.ids[0]
}

// Empty reports whether the queue has no entries.
func (q *Queue) Empty() bool {
	return len(q.ids) == 0
}

// Len reports the number of entries.
func (q *Queue) Len() int {
	return len(q.ids)
}

// Contains reports whether id is present anywhere in the queue, used by
// tests checking which queue a process was placed in.
func (q *Queue) Contains(id process.ID) bool {
	for _, existing := range q.ids {
		if existing == id {
			return true
		}
	}
	return false
}
