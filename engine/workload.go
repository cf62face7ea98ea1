/*
 * operatingSystems - Workload file loaders (process file, reference file).
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

// Package engine wires the oracle, a scheduler, and a workload together
// into a runnable simulation, and loads the two workload file grammars.
package engine

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/thuynh02/operatingSystems/process"
)

// LoadProcessFile reads the CPU-mode workload: whitespace-separated
// "pid arrival_time total_cpu avg_burst" per non-blank line. Processes are
// returned sorted ascending by arrival time, since the scheduler's arrival
// queue assumes admission order matches arrival order.
func LoadProcessFile(name string) ([]*process.Process, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var procs []*process.Process
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("process file line %d: expected 4 fields, got %d", lineNumber, len(fields))
		}
		values := make([]int, 4)
		for i, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("process file line %d: field %d: %w", lineNumber, i+1, err)
			}
			values[i] = n
		}
		pid, arrival, totalCPU, avgBurst := values[0], values[1], values[2], values[3]
		if avgBurst == 0 {
			return nil, fmt.Errorf("process file line %d: pid %d has avg_burst == 0, a degenerate workload", lineNumber, pid)
		}
		procs = append(procs, process.New(pid, arrival, totalCPU, avgBurst))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].ArrivalTime < procs[j].ArrivalTime
	})
	return procs, nil
}

// referenceCursor walks a reference file's lines, tolerating the blank
// lines the original grammar allows between process blocks (mirroring its
// readReferenceFile's "while (line == "") getline(...)" loop).
type referenceCursor struct {
	scanner *bufio.Scanner
	line    int
}

func (c *referenceCursor) nextNonBlank() (string, bool) {
	for c.scanner.Scan() {
		c.line++
		line := strings.TrimSpace(c.scanner.Text())
		if line != "" {
			return line, true
		}
	}
	return "", false
}

// ReferenceWorkload is one MMU-mode process: a pid and its raw reference
// trace, before BuildPageTable converts it into a PageTable.
type ReferenceWorkload struct {
	PID  int
	Refs []process.Reference
}

// LoadReferenceFile reads the MMU-mode workload: first line is an integer
// N (process count); then N blocks each: blank line(s), a pid line, a
// numRefs line, then numRefs lines of "address kind" (kind in {R, W}).
func LoadReferenceFile(name string) ([]ReferenceWorkload, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	c := &referenceCursor{scanner: bufio.NewScanner(file)}

	header, ok := c.nextNonBlank()
	if !ok {
		return nil, fmt.Errorf("reference file: missing process count")
	}
	n, err := strconv.Atoi(header)
	if err != nil {
		return nil, fmt.Errorf("reference file line %d: process count: %w", c.line, err)
	}

	workloads := make([]ReferenceWorkload, 0, n)
	for i := 0; i < n; i++ {
		pidLine, ok := c.nextNonBlank()
		if !ok {
			return nil, fmt.Errorf("reference file: expected pid for block %d", i+1)
		}
		pid, err := strconv.Atoi(pidLine)
		if err != nil {
			return nil, fmt.Errorf("reference file line %d: pid: %w", c.line, err)
		}

		countLine, ok := c.nextNonBlank()
		if !ok {
			return nil, fmt.Errorf("reference file: expected reference count for pid %d", pid)
		}
		numRefs, err := strconv.Atoi(countLine)
		if err != nil {
			return nil, fmt.Errorf("reference file line %d: reference count: %w", c.line, err)
		}

		refs := make([]process.Reference, numRefs)
		for r := 0; r < numRefs; r++ {
			refLine, ok := c.nextNonBlank()
			if !ok {
				return nil, fmt.Errorf("reference file: expected reference %d/%d for pid %d", r+1, numRefs, pid)
			}
			fields := strings.Fields(refLine)
			if len(fields) != 2 {
				return nil, fmt.Errorf("reference file line %d: expected 'address kind', got %q", c.line, refLine)
			}
			addr, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("reference file line %d: address: %w", c.line, err)
			}
			kind := strings.ToUpper(fields[1])
			var accessKind process.AccessKind
			switch kind {
			case "R":
				accessKind = process.Read
			case "W":
				accessKind = process.Write
			default:
				return nil, fmt.Errorf("reference file line %d: kind must be R or W, got %q", c.line, fields[1])
			}
			refs[r] = process.Reference{VirtualAddress: addr, Kind: accessKind}
		}

		workloads = append(workloads, ReferenceWorkload{PID: pid, Refs: refs})
	}

	return workloads, nil
}
