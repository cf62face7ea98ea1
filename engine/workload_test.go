/*
 * operatingSystems - Workload loader test set.
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
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadProcessFileSortsByArrival(t *testing.T) {
	path := writeFile(t, "procs.txt", "2 5 10 3\n1 0 10 3\n3 2 10 3\n")
	procs, err := LoadProcessFile(path)
	if err != nil {
		t.Fatalf("LoadProcessFile: %v", err)
	}
	if len(procs) != 3 {
		t.Fatalf("len(procs) = %d, want 3", len(procs))
	}
	want := []int{0, 2, 5}
	for i, p := range procs {
		if p.ArrivalTime != want[i] {
			t.Errorf("procs[%d].ArrivalTime = %d, want %d", i, p.ArrivalTime, want[i])
		}
	}
}

func TestLoadProcessFileRejectsZeroAvgBurst(t *testing.T) {
	path := writeFile(t, "procs.txt", "1 0 10 0\n")
	if _, err := LoadProcessFile(path); err == nil {
		t.Fatalf("LoadProcessFile: want error for avg_burst == 0, got nil")
	}
}

func TestLoadProcessFileRejectsMalformedLine(t *testing.T) {
	path := writeFile(t, "procs.txt", "1 0 10\n")
	if _, err := LoadProcessFile(path); err == nil {
		t.Fatalf("LoadProcessFile: want error for short line, got nil")
	}
}

func TestLoadProcessFileMissingFile(t *testing.T) {
	if _, err := LoadProcessFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatalf("LoadProcessFile: want error for missing file, got nil")
	}
}

func TestLoadReferenceFileParsesBlocks(t *testing.T) {
	body := "2\n\n1\n2\n100 R\n356 W\n\n2\n1\n0 R\n"
	path := writeFile(t, "refs.txt", body)

	workloads, err := LoadReferenceFile(path)
	if err != nil {
		t.Fatalf("LoadReferenceFile: %v", err)
	}
	if len(workloads) != 2 {
		t.Fatalf("len(workloads) = %d, want 2", len(workloads))
	}
	if workloads[0].PID != 1 || len(workloads[0].Refs) != 2 {
		t.Fatalf("workloads[0] = %+v, want pid 1 with 2 refs", workloads[0])
	}
	if workloads[0].Refs[1].VirtualAddress != 356 {
		t.Errorf("workloads[0].Refs[1].VirtualAddress = %d, want 356", workloads[0].Refs[1].VirtualAddress)
	}
	if workloads[1].PID != 2 || len(workloads[1].Refs) != 1 {
		t.Fatalf("workloads[1] = %+v, want pid 2 with 1 ref", workloads[1])
	}
}

func TestLoadReferenceFileRejectsBadKind(t *testing.T) {
	body := "1\n1\n1\n100 X\n"
	path := writeFile(t, "refs.txt", body)
	if _, err := LoadReferenceFile(path); err == nil {
		t.Fatalf("LoadReferenceFile: want error for kind X, got nil")
	}
}

func TestLoadReferenceFileMissingFile(t *testing.T) {
	if _, err := LoadReferenceFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatalf("LoadReferenceFile: want error for missing file, got nil")
	}
}
