/*
 * five250d - session test cases.
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

package session

import (
	"runtime"
	"testing"
	"time"

	"github.com/rcornwell/five250d/internal/station"
)

func TestNewRejectsUnknownDictionary(t *testing.T) {
	if _, err := New(0, station.CadenceNormal, "no-such-dict", "cp037"); err == nil {
		t.Fatalf("expected error for unknown scancode dictionary")
	}
}

func TestNewRejectsUnknownCodepage(t *testing.T) {
	if _, err := New(0, station.CadenceNormal, "5250_US", "no-such-codepage"); err == nil {
		t.Fatalf("expected error for unknown codepage")
	}
}

func TestHandleScancodeBeforeAttachFails(t *testing.T) {
	s, err := New(0, station.CadenceNormal, "5250_US", "cp037")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.HandleScancode(0x1E); err != ErrNotAttached {
		t.Errorf("expected ErrNotAttached, got %v", err)
	}
}

func TestDetachBeforeAttachFails(t *testing.T) {
	s, _ := New(0, station.CadenceNormal, "5250_US", "cp037")
	if err := s.Detach(); err != ErrNotAttached {
		t.Errorf("expected ErrNotAttached, got %v", err)
	}
}

func TestTakeDisplayBurstEmptyWhenClean(t *testing.T) {
	s, _ := New(0, station.CadenceNormal, "5250_US", "cp037")
	s.Screen.TakeDirty() // discard the initial full-screen fill
	if _, ok := s.TakeDisplayBurst(); ok {
		t.Errorf("expected no burst on an unchanged screen")
	}
}

func TestTakeDisplayBurstEncodesEBCDIC(t *testing.T) {
	s, _ := New(0, station.CadenceNormal, "5250_US", "cp037")
	s.Screen.TakeDirty()
	s.Screen.PutChar('A')
	payload, ok := s.TakeDisplayBurst()
	if !ok {
		t.Fatalf("expected a burst after writing a character")
	}
	if len(payload) != 1 || payload[0] != 0xC1 { // cp037 'A'
		t.Errorf("expected single EBCDIC 0xC1 byte, got %v", payload)
	}
}

func TestTakeDisplayBurstHonorsOverride(t *testing.T) {
	s, _ := New(0, station.CadenceNormal, "5250_US", "cp037")
	s.Screen.TakeDirty()
	s.SetOverride(map[byte]byte{'A': 0x11})
	s.Screen.PutChar('A')
	payload, ok := s.TakeDisplayBurst()
	if !ok || len(payload) != 1 || payload[0] != 0x11 {
		t.Errorf("expected override byte 0x11, got %v (ok=%v)", payload, ok)
	}
}

func TestHandleStatusUpdatesDisplayStatusLine(t *testing.T) {
	s, _ := New(0, station.CadenceNormal, "5250_US", "cp037")
	s.HandleStatus(station.StatusSystemAvailable | station.StatusMessageWaiting)
	if s.Screen.StatusLine() == "" {
		t.Errorf("expected status line to be populated")
	}
}

func TestAttachDetachLifecycle(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("pty allocation only exercised on unix-like platforms")
	}
	s, err := New(0, station.CadenceNormal, "5250_US", "cp037")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Attach("/bin/cat", nil, "vt52", ""); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if s.Engine.State() != station.Initializing {
		t.Errorf("expected engine to enter Initializing on attach, got %v", s.Engine.State())
	}
	time.Sleep(10 * time.Millisecond)
	if err := s.Detach(); err != nil {
		t.Errorf("detach failed: %v", err)
	}
	if s.Engine.State() != station.Draining {
		t.Errorf("expected engine to be Draining immediately after detach, got %v", s.Engine.State())
	}
}
