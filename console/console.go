/*
 * operatingSystems - Interactive debug console.
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

// Package console offers a liner-based REPL for stepping the simulation
// one tick at a time and inspecting its state, in place of batch mode.
package console

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/peterh/liner"
)

// Simulation is the minimal interface the console drives: both
// engine.CPUEngine and engine.MMUEngine satisfy it.
type Simulation interface {
	Tick() error
	Done() bool
}

// queueReporter, frameReporter, and oracleReporter are satisfied
// optionally: the console degrades gracefully when the underlying engine
// doesn't implement one (e.g. CPU mode has no frames; MMU mode has no
// oracle).
type queueReporter interface {
	QueueReport() string
}

type frameReporter interface {
	FrameReport() string
}

type oracleReporter interface {
	OracleRemaining() int
}

type cmd struct {
	name    string
	min     int
	process func(*cmdLine, *Console) error
}

type cmdLine struct {
	line string
	pos  int
}

var cmdList = []cmd{
	{name: "step", min: 1, process: step},
	{name: "run", min: 1, process: run},
	{name: "queues", min: 1, process: queues},
	{name: "frames", min: 1, process: frames},
	{name: "oracle", min: 1, process: oracle},
	{name: "help", min: 1, process: help},
	{name: "quit", min: 1, process: quit},
}

// Console wraps a Simulation with a liner-backed REPL.
type Console struct {
	sim  Simulation
	line *liner.State
	quit bool
}

// New wraps sim for interactive stepping.
func New(sim Simulation) *Console {
	return &Console{sim: sim}
}

// Run drives the REPL until the user quits or the input stream ends.
func (c *Console) Run() {
	c.line = liner.NewLiner()
	defer c.line.Close()

	c.line.SetCtrlCAborts(true)
	c.line.SetCompleter(completeCmd)

	for !c.quit {
		input, err := c.line.Prompt("ossim> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			slog.Error("error reading line: " + err.Error())
			return
		}
		c.line.AppendHistory(input)

		cl := &cmdLine{line: input}
		name := cl.getWord()
		matches := matchList(name)
		switch len(matches) {
		case 0:
			if name != "" {
				fmt.Println("unknown command: " + name)
			}
		case 1:
			if err := matches[0].process(cl, c); err != nil {
				fmt.Println("error: " + err.Error())
			}
		default:
			fmt.Println("ambiguous command: " + name)
		}
	}
}

func completeCmd(line string) []string {
	cl := &cmdLine{line: line}
	name := cl.getWord()
	var out []string
	for _, m := range matchList(name) {
		out = append(out, m.name)
	}
	return out
}

func matchCommand(m cmd, name string) bool {
	if len(name) < m.min || len(name) > len(m.name) {
		return false
	}
	return m.name[:len(name)] == name
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var matches []cmd
	for _, m := range cmdList {
		if matchCommand(m, name) {
			matches = append(matches, m)
		}
	}
	return matches
}

func (l *cmdLine) skipSpace() {
	for l.pos < len(l.line) && l.line[l.pos] == ' ' {
		l.pos++
	}
}

func (l *cmdLine) getWord() string {
	l.skipSpace()
	start := l.pos
	for l.pos < len(l.line) && l.line[l.pos] != ' ' {
		l.pos++
	}
	return strings.ToLower(l.line[start:l.pos])
}

func step(cl *cmdLine, c *Console) error {
	n := 1
	if word := cl.getWord(); word != "" {
		parsed, err := strconv.Atoi(word)
		if err != nil {
			return fmt.Errorf("step count must be an integer: %w", err)
		}
		n = parsed
	}
	for i := 0; i < n; i++ {
		if c.sim.Done() {
			fmt.Println("simulation already complete")
			return nil
		}
		if err := c.sim.Tick(); err != nil {
			return err
		}
	}
	return nil
}

func run(_ *cmdLine, c *Console) error {
	for !c.sim.Done() {
		if err := c.sim.Tick(); err != nil {
			return err
		}
	}
	fmt.Println("simulation complete")
	return nil
}

func queues(_ *cmdLine, c *Console) error {
	r, ok := c.sim.(queueReporter)
	if !ok {
		return errors.New("this simulation does not report queue state")
	}
	fmt.Println(r.QueueReport())
	return nil
}

func frames(_ *cmdLine, c *Console) error {
	r, ok := c.sim.(frameReporter)
	if !ok {
		return errors.New("this simulation does not report frame state")
	}
	fmt.Print(r.FrameReport())
	return nil
}

func oracle(_ *cmdLine, c *Console) error {
	r, ok := c.sim.(oracleReporter)
	if !ok {
		return errors.New("this simulation does not use a probability oracle")
	}
	fmt.Printf("%d draws remaining\n", r.OracleRemaining())
	return nil
}

func help(_ *cmdLine, _ *Console) error {
	fmt.Println("commands: step [n], run, queues, frames, oracle, help, quit")
	return nil
}

func quit(_ *cmdLine, c *Console) error {
	c.quit = true
	return nil
}
