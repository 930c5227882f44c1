/*
 * five250d - per-station PTY session.
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

// Package session glues one attached station to a pseudo-terminal running a
// login shell: the display controller paints what the shell writes and the
// codepage translator encodes it for the wire, the scancode decoder carries
// keystrokes the other way, and the owning station engine carries both
// across the twinax link.
package session

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/creack/pty"

	"github.com/rcornwell/five250d/internal/codepage"
	"github.com/rcornwell/five250d/internal/display"
	"github.com/rcornwell/five250d/internal/scancode"
	"github.com/rcornwell/five250d/internal/station"
)

// killGrace is how long a detaching child is given to exit after SIGHUP
// before the session escalates to SIGKILL.
const killGrace = 500 * time.Millisecond

// readChunk bounds a single non-blocking PTY drain so one session can never
// monopolize a scheduler tick.
const readChunk = 4096

var ErrNotAttached = errors.New("session: not attached")

// Session is one Station's terminal: its screen model, keyboard decoder,
// codepage, and the PTY/child pair backing a shell.
type Session struct {
	Addr uint8

	Engine *station.Engine
	Screen *display.ScreenBuffer
	parser *display.Parser

	decoder  *scancode.Decoder
	codepage *codepage.Table
	override map[byte]byte

	master *os.File
	cmd    *exec.Cmd

	// ring is the reusable read buffer for shell stdout awaiting paint;
	// it is sized once and refilled on every pump rather than reallocated.
	ring []byte
}

// New builds a Session for addr. dictName selects the scancode dictionary
// and codepageName the EBCDIC table; both are looked up at construction so
// a bad configuration fails before any station ever attaches.
func New(addr uint8, cadence station.Cadence, dictName, codepageName string) (*Session, error) {
	dec, err := scancode.NewDecoder(dictName)
	if err != nil {
		return nil, err
	}
	page, err := codepage.Lookup(codepageName)
	if err != nil {
		return nil, err
	}
	screen := display.NewScreenBuffer()
	s := &Session{
		Addr:     addr,
		Engine:   station.NewEngine(addr, cadence),
		Screen:   screen,
		parser:   display.NewParser(screen),
		decoder:  dec,
		codepage: page,
		ring:     make([]byte, readChunk),
	}
	return s, nil
}

// SetOverride installs a per-session ASCII->EBCDIC override map, consulted
// before the session's codepage table.
func (s *Session) SetOverride(m map[byte]byte) { s.override = m }

// Attach spawns shellPath as the session's child, with slave as its
// controlling terminal, and resets the owning station engine into its
// initialization sequence.
func (s *Session) Attach(shellPath string, args []string, term, terminfo string) error {
	cmd := exec.Command(shellPath, args...)
	cmd.Env = append(os.Environ(), "TERM="+term)
	if terminfo != "" {
		cmd.Env = append(cmd.Env, "TERMINFO="+terminfo)
	}
	master, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: display.Rows,
		Cols: display.Cols,
	})
	if err != nil {
		return err
	}
	s.master = master
	s.cmd = cmd
	s.Engine.Attach()
	return nil
}

// Detach signals the child to exit, closes the PTY, and leaves the station
// Unattached once the protocol engine drains its final clear.
func (s *Session) Detach() error {
	if s.master == nil {
		return ErrNotAttached
	}
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Signal(syscall.SIGHUP)
		done := make(chan struct{})
		go func() { _, _ = s.cmd.Process.Wait(); close(done) }()
		select {
		case <-done:
		case <-time.After(killGrace):
			_ = s.cmd.Process.Kill()
		}
	}
	err := s.master.Close()
	s.master = nil
	s.Engine.Detach()
	return err
}

// PumpOutput performs one non-blocking drain of the child's stdout,
// feeding every byte read through the VT52 parser and writing back any
// reply a sequence like ESC Z queues for the keyboard input path. It
// reports io.EOF (wrapped by the os.File) when the child has exited.
func (s *Session) PumpOutput() error {
	if s.master == nil {
		return ErrNotAttached
	}
	if err := s.master.SetReadDeadline(time.Now()); err != nil {
		return err
	}
	n, err := s.master.Read(s.ring)
	for i := 0; i < n; i++ {
		s.parser.Feed(s.ring[i])
	}
	if reply := s.parser.TakeReply(); len(reply) > 0 {
		if _, werr := s.master.Write(reply); werr != nil {
			return werr
		}
	}
	if err != nil {
		if ne, ok := err.(interface{ Timeout() bool }); ok && ne.Timeout() {
			return nil
		}
		return err
	}
	return nil
}

// HandleStatus pushes a decoded status response's indicator bits to the
// session's display status line, independent of the VT52-driven screen.
func (s *Session) HandleStatus(flags station.StatusFlags) {
	s.Screen.SetStatus(
		flags&station.StatusInputInhibited != 0,
		flags&station.StatusSystemAvailable != 0,
		flags&station.StatusMessageWaiting != 0,
	)
}

// HandleScancode decodes one raw scancode through the session's keyboard
// state machine and writes the resulting byte sequence straight to the
// child's stdin. The decoder already emits the PTY's native bytes (plain
// ASCII and VT52 escapes); no codepage translation happens on this path,
// since EBCDIC only ever appears on the wire side of a Session.
func (s *Session) HandleScancode(code byte) error {
	if s.master == nil {
		return ErrNotAttached
	}
	out := s.decoder.Decode(code)
	if len(out) == 0 {
		return nil
	}
	_, err := s.master.Write(out)
	return err
}

// TakeDisplayBurst drains the screen's dirty rectangle, if any, and returns
// the EBCDIC-encoded cell stream the station engine should write out, row
// by row across the rectangle. It returns ok=false when nothing is dirty.
func (s *Session) TakeDisplayBurst() (payload []byte, ok bool) {
	rect := s.Screen.TakeDirty()
	if rect == nil {
		return nil, false
	}
	for row := rect.Row0; row <= rect.Row1; row++ {
		for col := rect.Col0; col <= rect.Col1; col++ {
			cell := s.Screen.Cell(row, col)
			payload = append(payload, s.toEBCDIC(cell.Char))
		}
	}
	return payload, true
}

// toEBCDIC consults the session's override map before falling back to its
// codepage table, the one place a per-session override changes wire output.
func (s *Session) toEBCDIC(b byte) byte {
	if s.override != nil {
		if v, ok := s.override[b]; ok {
			return v
		}
	}
	return s.codepage.ToEBCDIC(b)
}
