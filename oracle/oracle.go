/*
 * operatingSystems - Probability oracle.
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

// Package oracle replays a pre-seeded sequence of draws for the CPU
// schedulers' burst-end decisions, so a simulation run is fully
// reproducible.
package oracle

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// scale converts a raw 31-bit integer into a [0,1) draw, matching the
// original tool's raw/2^31 probability derivation.
const scale = 1 << 31

// ErrExhausted is returned by Next once every draw in the file has been
// consumed. Per the error-handling design, this is fatal to the caller.
var ErrExhausted = errors.New("oracle: probability sequence exhausted")

// Oracle replays a fixed sequence of raw integers as successive draws.
type Oracle struct {
	raw []int64
	pos int
}

// Load reads one integer in [0, 2^31) per line from name.
func Load(name string) (*Oracle, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw []int64
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("oracle: line %d: %w", lineNumber, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("oracle: line %d: negative value %d", lineNumber, n)
		}
		if n >= scale {
			return nil, fmt.Errorf("oracle: line %d: value %d is not below 2^31", lineNumber, n)
		}
		raw = append(raw, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &Oracle{raw: raw}, nil
}

// Next returns the next draw as a value in [0,1), its 1-based ordinal, and
// the raw integer it was derived from, for trace output matching the
// original's "Random number (N): raw" console line. Once every draw has
// been consumed it returns ErrExhausted.
func (o *Oracle) Next() (value float64, ordinal int, raw int64, err error) {
	if o.pos >= len(o.raw) {
		return 0, 0, 0, ErrExhausted
	}
	raw = o.raw[o.pos]
	o.pos++
	return float64(raw) / float64(scale), o.pos, raw, nil
}

// Remaining reports how many draws are left before exhaustion.
func (o *Oracle) Remaining() int {
	return len(o.raw) - o.pos
}
