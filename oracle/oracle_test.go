/*
 * operatingSystems - Probability oracle test set.
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

package oracle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeOracleFile(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	name := filepath.Join(dir, "probs.txt")
	if err := os.WriteFile(name, []byte(body), 0o644); err != nil {
		t.Fatalf("writing oracle file: %v", err)
	}
	return name
}

func TestOracleNextSequenceAndOrdinals(t *testing.T) {
	name := writeOracleFile(t, "0\n1073741824\n2147483647\n")

	o, err := Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantRaw := []int64{0, 1073741824, 2147483647}
	for i, want := range wantRaw {
		value, ordinal, raw, err := o.Next()
		if err != nil {
			t.Fatalf("Next() #%d: %v", i, err)
		}
		if raw != want {
			t.Errorf("Next() #%d raw = %d, want %d", i, raw, want)
		}
		if ordinal != i+1 {
			t.Errorf("Next() #%d ordinal = %d, want %d", i, ordinal, i+1)
		}
		wantValue := float64(want) / float64(scale)
		if value != wantValue {
			t.Errorf("Next() #%d value = %v, want %v", i, value, wantValue)
		}
	}
}

func TestOracleExhaustion(t *testing.T) {
	name := writeOracleFile(t, "42\n")

	o, err := Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, _, _, err := o.Next(); err != nil {
		t.Fatalf("first Next(): %v", err)
	}
	if _, _, _, err := o.Next(); !errors.Is(err, ErrExhausted) {
		t.Errorf("second Next() err = %v, want ErrExhausted", err)
	}
}

func TestOracleSkipsBlankLines(t *testing.T) {
	name := writeOracleFile(t, "1\n\n2\n\n\n3\n")

	o, err := Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if o.Remaining() != 3 {
		t.Fatalf("Remaining() = %d, want 3", o.Remaining())
	}
}

func TestOracleRejectsNonInteger(t *testing.T) {
	name := writeOracleFile(t, "not-a-number\n")

	if _, err := Load(name); err == nil {
		t.Fatal("expected error loading non-integer line, got nil")
	}
}

func TestOracleRejectsNegative(t *testing.T) {
	name := writeOracleFile(t, "-5\n")

	if _, err := Load(name); err == nil {
		t.Fatal("expected error loading negative value, got nil")
	}
}

func TestOracleMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
