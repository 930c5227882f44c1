/*
 * five250d - scheduler test cases.
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

package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/rcornwell/five250d/internal/master"
	"github.com/rcornwell/five250d/internal/station"
	"github.com/rcornwell/five250d/internal/wire"
)

// fakePort is an in-memory wire.Port: writes are recorded, and ReadLine
// drains a canned queue of lines so tests never touch a real device node.
type fakePort struct {
	writes [][]byte
	lines  []string
}

func (p *fakePort) Write(b []byte) (int, error) {
	cp := make([]byte, len(b))
	copy(cp, b)
	p.writes = append(p.writes, cp)
	return len(b), nil
}

func (p *fakePort) ReadLine() (string, error) {
	if len(p.lines) == 0 {
		return "", errors.New("no more lines")
	}
	line := p.lines[0]
	p.lines = p.lines[1:]
	return line, nil
}

func TestTickEntryPollsUnattachedStation(t *testing.T) {
	port := &fakePort{}
	s := New(port, []StationConfig{{Addr: 2, Cadence: station.CadenceNormal}})
	s.tickEntry(s.entries[0], time.Now())
	if len(port.writes) != 1 {
		t.Fatalf("expected one poll write, got %d", len(port.writes))
	}
}

func TestReadResponseIgnoresUnknownAddress(t *testing.T) {
	port := &fakePort{}
	s := New(port, []StationConfig{{Addr: 0, Cadence: station.CadenceNormal}})
	// Word addressed to station 5, which isn't configured.
	w := uint16(5) << 12
	b1, b2 := wire.EncodeWord(w)
	port.lines = []string{string([]byte{b1, b2})}
	s.readResponse(time.Now())
	if s.entries[0].session != nil {
		t.Errorf("unrelated station address must not attach a session")
	}
}

func TestShutdownAllDetachesNothingWhenUnattached(t *testing.T) {
	port := &fakePort{}
	s := New(port, []StationConfig{{Addr: 0}, {Addr: 1}})
	s.shutdownAll() // must not panic with no sessions attached
	for _, e := range s.entries {
		if e.session != nil {
			t.Errorf("expected no session on station %d", e.cfg.Addr)
		}
	}
}

func TestHandlePacketChildExitedDetachesKnownStation(t *testing.T) {
	port := &fakePort{}
	s := New(port, []StationConfig{{Addr: 3}})
	// No session attached; detach must be a safe no-op.
	s.handlePacket(master.Packet{Station: 3, Msg: master.ChildExited})
	if s.entries[0].session != nil {
		t.Errorf("expected station to remain unattached")
	}
}

func TestStatusReportsUnattachedStations(t *testing.T) {
	port := &fakePort{}
	s := New(port, []StationConfig{{Addr: 0}, {Addr: 4}})
	got := s.Status()
	if len(got) != 2 {
		t.Fatalf("expected 2 station statuses, got %d", len(got))
	}
	for _, st := range got {
		if st.Attached {
			t.Errorf("station %d should report unattached", st.Addr)
		}
	}
}

func TestHandlePacketAdminDetachIsSafeNoOpWhenUnattached(t *testing.T) {
	port := &fakePort{}
	s := New(port, []StationConfig{{Addr: 2}})
	s.handlePacket(master.Packet{Station: 2, Msg: master.AdminDetach})
	if s.entries[0].session != nil {
		t.Errorf("expected station to remain unattached")
	}
}

func TestHandlePacketAdminDetachIgnoresUnknownStation(t *testing.T) {
	port := &fakePort{}
	s := New(port, []StationConfig{{Addr: 2}})
	// Must not panic when the addressed station isn't configured.
	s.handlePacket(master.Packet{Station: 9, Msg: master.AdminDetach})
}
