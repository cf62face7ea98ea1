/*
 * operatingSystems - Configuration file parser
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

package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored. Blank lines ignored.
 * <line> := <key> <whitespace>* '=' <whitespace>* <value>
 * <key> is matched case-insensitively against the field table below.
 */

// Config holds every key recognized by either engine. Keys unused by the
// selected Mode are simply left at their zero value.
type Config struct {
	Mode string // "fcfs", "mlfb", or "mmu"

	// Scheduler keys.
	ProcessFile        string
	IODelay            int
	ContextSwitchDelay int
	CTSSQueues         int

	// Memory-management keys.
	ReferenceFile    string
	MissPenalty      int
	DirtyPagePenalty int
	PageSize         int
	VABits           int
	PABits           int

	Debug bool
}

// Current option line being parsed.
type keyLine struct {
	line string // Current option line.
	pos  int    // Current position in line.
}

var lineNumber int

// Load in a configuration file.
func LoadConfigFile(name string) (*Config, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := &Config{}
	lineNumber = 0
	reader := bufio.NewReader(file)
	for {
		var err error

		line := keyLine{}
		line.line, err = reader.ReadString('\n')
		lineNumber++
		if len(line.line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if parseErr := line.parseLine(cfg); parseErr != nil {
			return nil, parseErr
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
	}
	return cfg, nil
}

// Parse one line from file.
func (line *keyLine) parseLine(cfg *Config) error {
	line.skipSpace()
	if line.isEOL() {
		return nil
	}

	key := line.getName()
	if key == "" {
		err := fmt.Sprintf("expected key, line %d: %q", lineNumber, line.line)
		return errors.New(err)
	}

	line.skipSpace()
	if line.isEOL() || line.line[line.pos] != '=' {
		err := fmt.Sprintf("key %s not followed by '=', line %d", key, lineNumber)
		return errors.New(err)
	}
	line.pos++
	line.skipSpace()

	value := line.parseValue()

	if err := cfg.set(strings.ToUpper(key), value); err != nil {
		return fmt.Errorf("line %d: %w", lineNumber, err)
	}
	return nil
}

// Skip forward over line until none whitespace character found.
func (line *keyLine) skipSpace() {
	for {
		if line.pos >= len(line.line) {
			return
		}
		if c := line.line[line.pos]; c == ' ' || c == '\t' {
			line.pos++
			continue
		}
		return
	}
}

// Check if at end of line.
func (line *keyLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#' || line.line[line.pos] == '\n' || line.line[line.pos] == '\r'
}

// getName collects the key token up to whitespace or '='.
func (line *keyLine) getName() string {
	start := line.pos
	for line.pos < len(line.line) {
		c := line.line[line.pos]
		if c == '=' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		line.pos++
	}
	return line.line[start:line.pos]
}

// parseValue collects the rest of the line up to a comment or EOL, trimmed.
func (line *keyLine) parseValue() string {
	line.skipSpace()
	end := len(line.line)
	if idx := strings.IndexByte(line.line[line.pos:], '#'); idx >= 0 {
		end = line.pos + idx
	}
	return strings.TrimSpace(line.line[line.pos:end])
}

// set assigns value to the field named by key, which has already been
// upper-cased by the caller.
func (cfg *Config) set(key, value string) error {
	switch key {
	case "MODE":
		cfg.Mode = strings.ToLower(value)
	case "PROCESSFILE":
		cfg.ProcessFile = value
	case "IODELAY":
		return setInt(&cfg.IODelay, "IOdelay", value)
	case "CONTEXTSWITCHDELAY":
		return setInt(&cfg.ContextSwitchDelay, "ContextSwitchDelay", value)
	case "CTSSQUEUES":
		return setInt(&cfg.CTSSQueues, "CTSSQueues", value)
	case "REFERENCEFILE":
		cfg.ReferenceFile = value
	case "MISSPENALTY":
		return setInt(&cfg.MissPenalty, "missPenalty", value)
	case "DIRTYPAGEPENALTY":
		return setInt(&cfg.DirtyPagePenalty, "dirtyPagePenalty", value)
	case "PAGESIZE":
		return setInt(&cfg.PageSize, "pageSize", value)
	case "VABITS":
		return setInt(&cfg.VABits, "VAbits", value)
	case "PABITS":
		return setInt(&cfg.PABits, "PAbits", value)
	case "DEBUG":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("Debug: %w", err)
		}
		cfg.Debug = b
	default:
		return errors.New("unknown config key: " + key)
	}
	return nil
}

func setInt(dst *int, name, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = n
	return nil
}
