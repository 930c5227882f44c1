/*
 * five250d - cooperative poll scheduler.
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

// Package scheduler runs the single cooperative loop that rotates among the
// configured stations, feeding serial responses into their engines and
// pulling PTY output/input through each attached session - the twinax
// analog of the emulator's own Core.Start cycle-and-event loop.
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rcornwell/five250d/internal/master"
	"github.com/rcornwell/five250d/internal/session"
	"github.com/rcornwell/five250d/internal/station"
	"github.com/rcornwell/five250d/internal/wire"
)

// TickBudget is the nominal length of one scheduler pass. Run does not
// consult it: a pass lasts as long as its serial read and PTY drains take.
const TickBudget = 2 * time.Millisecond

// StationConfig is the static, load-time description of one configured
// twinax address; it never changes after the scheduler starts.
type StationConfig struct {
	Addr       uint8
	Cadence    station.Cadence
	Dictionary string
	Codepage   string
	Shell      string
	ShellArgs  []string
	Term       string
	Terminfo   string
}

// entry pairs a station's static configuration with its live session, if
// one is currently attached.
type entry struct {
	cfg     StationConfig
	session *session.Session
}

// Scheduler is the single-threaded cooperative loop driving every
// configured station. It owns the only writer to the serial Port and
// round-robins PTY pumping across whichever sessions are attached.
type Scheduler struct {
	port    wire.Port
	master  chan master.Packet
	done    chan struct{}
	entries []*entry
	byAddr  map[uint8]*entry

	mu sync.Mutex // guards entry.session against concurrent Status reads
}

// StationStatus is a point-in-time snapshot of one configured station, safe
// to read from a goroutine other than Run's.
type StationStatus struct {
	Addr     uint8
	Attached bool
	State    station.State
}

// New returns a scheduler that will drive the given station configurations
// over port once Run is called.
func New(port wire.Port, configs []StationConfig) *Scheduler {
	s := &Scheduler{
		port:   port,
		master: make(chan master.Packet, 16),
		done:   make(chan struct{}),
		byAddr: make(map[uint8]*entry),
	}
	for _, cfg := range configs {
		e := &entry{cfg: cfg}
		s.entries = append(s.entries, e)
		s.byAddr[cfg.Addr] = e
	}
	return s
}

// Master returns the single-producer event queue auxiliary goroutines (the
// admin console, a log drain) may use to signal the loop without touching
// Session or Engine state directly.
func (s *Scheduler) Master() chan<- master.Packet { return s.master }

// Stop requests the loop exit at the start of its next pass.
func (s *Scheduler) Stop() { close(s.done) }

// Status returns a snapshot of every configured station, safe to call from
// the admin console's goroutine while Run is active on another.
func (s *Scheduler) Status() []StationStatus {
	out := make([]StationStatus, 0, len(s.entries))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		st := StationStatus{Addr: e.cfg.Addr}
		if e.session != nil {
			st.Attached = true
			st.State = e.session.Engine.State()
		}
		out = append(out, st)
	}
	return out
}

// SendDetach asks the scheduler to drop the station at addr on its next
// pass, the console's equivalent of a station going administratively
// offline.
func (s *Scheduler) SendDetach(addr uint8) {
	s.master <- master.Packet{Station: addr, Msg: master.AdminDetach}
}

// SendAttach asks the scheduler to attach the station at addr immediately,
// instead of waiting for serial traffic to reveal a terminal is present.
func (s *Scheduler) SendAttach(addr uint8) {
	s.master <- master.Packet{Station: addr, Msg: master.AdminAttach}
}

// SendRestart asks the scheduler to detach and re-attach the station at
// addr, the console's equivalent of cycling a stuck terminal.
func (s *Scheduler) SendRestart(addr uint8) {
	s.master <- master.Packet{Station: addr, Msg: master.AdminRestart}
}

// Run drives the cooperative loop until Stop is called. Each pass: poll or
// otherwise tick every station engine, write anything it produced, read and
// classify one inbound response line, pump PTY output and input for every
// attached session, and drain one pending master event.
func (s *Scheduler) Run() {
	for {
		select {
		case <-s.done:
			s.shutdownAll()
			return
		default:
		}

		now := time.Now()
		for _, e := range s.entries {
			s.tickEntry(e, now)
		}

		s.readResponse(now)

		for _, e := range s.entries {
			if e.session == nil {
				continue
			}
			if err := e.session.PumpOutput(); err != nil {
				s.detach(e, "child exited")
				continue
			}
			if payload, ok := e.session.TakeDisplayBurst(); ok {
				e.session.Engine.QueueWrite(payload)
			}
		}

		select {
		case pkt := <-s.master:
			s.handlePacket(pkt)
		default:
		}
	}
}

func (s *Scheduler) tickEntry(e *entry, now time.Time) {
	var act station.Action
	if e.session != nil {
		act = e.session.Engine.Tick(now)
	} else {
		eng := station.NewEngine(e.cfg.Addr, e.cfg.Cadence)
		act = eng.Tick(now)
	}
	if act.Kind != station.ActionSend {
		return
	}
	if _, err := s.port.Write(wire.EncodeBatch(act.Words)); err != nil {
		slog.Error("serial write failed", "addr", e.cfg.Addr, "error", err)
	}
}

func (s *Scheduler) readResponse(now time.Time) {
	line, err := s.port.ReadLine()
	if err != nil {
		return
	}
	events, err := wire.DecodeLine(line)
	if err != nil {
		slog.Warn("malformed serial frame", "error", err)
		return
	}
	for _, ev := range events {
		if ev.Kind != wire.EventData {
			continue
		}
		addr := station.WordAddr(ev.Word)
		e, ok := s.byAddr[addr]
		if !ok {
			continue
		}
		if e.session == nil {
			s.attach(e)
		}
		if e.session == nil {
			continue // attach failed; try again on the next response
		}
		resp := e.session.Engine.HandleWord(now, []byte(line), ev.Word)
		switch resp.Kind {
		case station.RespScancode:
			if err := e.session.HandleScancode(resp.Scancode); err != nil {
				slog.Warn("pty write failed", "addr", addr, "error", err)
			}
		case station.RespStatus:
			e.session.HandleStatus(resp.Status)
		}
	}
}

func (s *Scheduler) attach(e *entry) {
	sess, err := session.New(e.cfg.Addr, e.cfg.Cadence, e.cfg.Dictionary, e.cfg.Codepage)
	if err != nil {
		slog.Error("session create failed", "addr", e.cfg.Addr, "error", err)
		return
	}
	if err := sess.Attach(e.cfg.Shell, e.cfg.ShellArgs, e.cfg.Term, e.cfg.Terminfo); err != nil {
		slog.Error("session attach failed", "addr", e.cfg.Addr, "error", err)
		return
	}
	s.mu.Lock()
	e.session = sess
	s.mu.Unlock()
	s.master <- master.Packet{Station: e.cfg.Addr, Msg: master.StationAttached}
}

func (s *Scheduler) detach(e *entry, reason string) {
	if e.session == nil {
		return
	}
	if err := e.session.Detach(); err != nil {
		slog.Warn("session detach error", "addr", e.cfg.Addr, "error", err)
	}
	s.mu.Lock()
	e.session = nil
	s.mu.Unlock()
	s.master <- master.Packet{Station: e.cfg.Addr, Msg: master.StationDetached, Text: reason}
}

func (s *Scheduler) shutdownAll() {
	for _, e := range s.entries {
		s.detach(e, "scheduler shutdown")
	}
}

func (s *Scheduler) handlePacket(pkt master.Packet) {
	switch pkt.Msg {
	case master.ChildExited:
		if e, ok := s.byAddr[pkt.Station]; ok {
			s.detach(e, "child exited")
		}
	case master.AdminCommand:
		slog.Info("admin command", "text", pkt.Text, "code", pkt.Code)
	case master.AdminDetach:
		if e, ok := s.byAddr[pkt.Station]; ok {
			s.detach(e, "administratively detached")
		}
	case master.AdminAttach:
		if e, ok := s.byAddr[pkt.Station]; ok && e.session == nil {
			s.attach(e)
		}
	case master.AdminRestart:
		if e, ok := s.byAddr[pkt.Station]; ok {
			s.detach(e, "administrative restart")
			s.attach(e)
		}
	}
}
