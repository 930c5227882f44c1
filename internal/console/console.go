/*
 * five250d - admin console command parser.
 *
 * Copyright 2024, Richard Cornwell
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

// Package console implements the small admin command language the running
// bridge accepts on its control terminal: show station status; attach,
// detach or restart a station administratively; help; and quit. A command
// may be abbreviated to any prefix at least as long as its own minimum
// length in cmdList, the same way the line parser it is modeled on allows.
package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rcornwell/five250d/internal/scheduler"
)

type cmdLine struct {
	line string
	pos  int
}

type cmd struct {
	Name    string
	Min     int
	Process func(*cmdLine, *scheduler.Scheduler) (bool, error)
}

var cmdList = []cmd{
	{Name: "show", Min: 2, Process: show},
	{Name: "attach", Min: 2, Process: attach},
	{Name: "detach", Min: 2, Process: detach},
	{Name: "restart", Min: 3, Process: restart},
	{Name: "quit", Min: 1, Process: quit},
	{Name: "help", Min: 1, Process: help},
}

// ProcessCommand parses and runs one command line against sched. It reports
// whether the console should exit and any error encountered.
func ProcessCommand(commandLine string, sched *scheduler.Scheduler) (bool, error) {
	line := &cmdLine{line: commandLine}
	word := line.getWord()
	if word == "" {
		return false, nil
	}

	match := matchList(word)
	switch len(match) {
	case 0:
		return false, errors.New("command not found: " + word)
	case 1:
		return match[0].Process(line, sched)
	default:
		return false, errors.New("ambiguous command: " + word)
	}
}

// CompleteCmd returns every command name whose prefix matches line, for the
// line editor's tab completion.
func CompleteCmd(line string) []string {
	var out []string
	for _, c := range cmdList {
		if strings.HasPrefix(c.Name, strings.ToLower(line)) {
			out = append(out, c.Name)
		}
	}
	return out
}

func matchCommand(c cmd, word string) bool {
	if len(word) < c.Min || len(word) > len(c.Name) {
		return false
	}
	return c.Name[:len(word)] == word
}

func matchList(word string) []cmd {
	if word == "" {
		return nil
	}
	var match []cmd
	for _, c := range cmdList {
		if matchCommand(c, word) {
			match = append(match, c)
		}
	}
	return match
}

func (l *cmdLine) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *cmdLine) isEOL() bool { return l.pos >= len(l.line) }

func (l *cmdLine) getWord() string {
	l.skipSpace()
	start := l.pos
	for !l.isEOL() && !unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
	return strings.ToLower(l.line[start:l.pos])
}

func (l *cmdLine) getAddr() (uint8, error) {
	word := l.getWord()
	if word == "" {
		return 0, errors.New("expected a station address")
	}
	n, err := strconv.ParseUint(word, 10, 8)
	if err != nil || n > 6 {
		return 0, fmt.Errorf("invalid station address: %q", word)
	}
	return uint8(n), nil
}

// show prints every configured station's status, or just one if an address
// is given.
func show(line *cmdLine, sched *scheduler.Scheduler) (bool, error) {
	var want *uint8
	if !line.isEOL() {
		addr, err := line.getAddr()
		if err != nil {
			return false, err
		}
		want = &addr
	}
	for _, st := range sched.Status() {
		if want != nil && st.Addr != *want {
			continue
		}
		attached := "unattached"
		if st.Attached {
			attached = st.State.String()
		}
		fmt.Printf("station %d: %s\n", st.Addr, attached)
	}
	return false, nil
}

func attach(line *cmdLine, sched *scheduler.Scheduler) (bool, error) {
	addr, err := line.getAddr()
	if err != nil {
		return false, err
	}
	sched.SendAttach(addr)
	return false, nil
}

func detach(line *cmdLine, sched *scheduler.Scheduler) (bool, error) {
	addr, err := line.getAddr()
	if err != nil {
		return false, err
	}
	sched.SendDetach(addr)
	return false, nil
}

func restart(line *cmdLine, sched *scheduler.Scheduler) (bool, error) {
	addr, err := line.getAddr()
	if err != nil {
		return false, err
	}
	sched.SendRestart(addr)
	return false, nil
}

func quit(line *cmdLine, sched *scheduler.Scheduler) (bool, error) {
	sched.Stop()
	return true, nil
}

func help(line *cmdLine, sched *scheduler.Scheduler) (bool, error) {
	fmt.Println("commands: show [addr], attach <addr>, detach <addr>, restart <addr>, quit, help")
	return false, nil
}
