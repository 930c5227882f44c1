/*
 * five250d - per-station protocol engine.
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

// Package station implements the per-station twinax protocol engine: the
// state machine that issues polls, classifies responses, and sequences
// display-write bursts, modeled after the emulator's Device contract
// (StartIO/StartCmd/HaltIO/InitDev) and its event-driven timer discipline.
package station

import "time"

// State is the station's place in the attach/initialize/run lifecycle.
type State int

const (
	Unattached State = iota
	Initializing
	Ready
	Writing
	Draining
)

func (s State) String() string {
	switch s {
	case Unattached:
		return "Unattached"
	case Initializing:
		return "Initializing"
	case Ready:
		return "Ready"
	case Writing:
		return "Writing"
	case Draining:
		return "Draining"
	default:
		return "Unknown"
	}
}

// Cadence selects how often a Ready station is polled.
type Cadence int

const (
	CadenceNormal Cadence = iota
	CadenceSlow
	CadenceVerySlow
)

// Poll intervals per cadence. Slow and very-slow mirror the reference
// firmware's SLOW_POLL_MICROSECONDS (5000us) and
// ULTRA_SLOW_POLL_MICROSECONDS (1000000us) constants.
const (
	NormalPollInterval   = time.Millisecond
	SlowPollInterval     = 5 * time.Millisecond
	VerySlowPollInterval = time.Second
)

func (c Cadence) interval() time.Duration {
	switch c {
	case CadenceSlow:
		return SlowPollInterval
	case CadenceVerySlow:
		return VerySlowPollInterval
	default:
		return NormalPollInterval
	}
}

// Command codes carried in the 7-bit payload of a DiscCmd word.
const (
	CmdPoll           byte = 0x01
	CmdReset          byte = 0x02
	CmdQueryKeyboard  byte = 0x03
	CmdEnableKeyboard byte = 0x04
	CmdClear          byte = 0x05
	CmdLoadCursor     byte = 0x06
	CmdLoadAddress    byte = 0x07
	CmdStartWrite     byte = 0x08
	CmdWriteData      byte = 0x09
	CmdEndWrite       byte = 0x0A
	CmdAck            byte = 0x0B
	CmdNak            byte = 0x0C
	CmdBusy           byte = 0x0D
)

// CmdStatusBase marks an inbound status response: command bytes
// CmdStatusBase..CmdStatusBase+0x07 all classify as RespStatus, with the
// low 3 bits of the command byte carrying the status flags directly - the
// same "discriminator + low-bits pattern" discipline Ack/Nak/Busy already
// use, extended to the terminal's input-inhibited/system-available/
// message-waiting indicators.
const CmdStatusBase byte = 0x10

// StatusFlags are the terminal indicator bits a status response carries,
// pushed to the owning session's Display Controller status line.
type StatusFlags byte

const (
	StatusInputInhibited  StatusFlags = 1 << 0
	StatusSystemAvailable StatusFlags = 1 << 1
	StatusMessageWaiting  StatusFlags = 1 << 2
)

// initSequence is the bounded sequence of steps the spec calls for:
// reset, query keyboard ID, enable keyboard, clear screen.
var initSequence = []byte{CmdReset, CmdQueryKeyboard, CmdEnableKeyboard, CmdClear}

// Poll timeout and retry thresholds (see spec section 4.5/4.6).
const (
	maxConsecutiveMisses = 8
	maxRetries           = 3
	maxConsecutiveParity = 4
	deadlineMultiplier   = 8
)

// ActionKind identifies what, if anything, the engine wants transmitted
// this tick.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionSend
)

// Action is the outbound work item the scheduler should encode through
// internal/wire and write to the serial link.
type Action struct {
	Kind  ActionKind
	Words []uint16
}

// ResponseKind classifies one decoded inbound word.
type ResponseKind int

const (
	RespNull ResponseKind = iota
	RespScancode
	RespAck
	RespNakBusy
	RespStatus
)

// Response is what HandleWord reports back to the caller (the session,
// which routes scancodes to the scancode decoder, status flags to the
// display controller's status line, and acks/naks back into the engine's
// own bookkeeping).
type Response struct {
	Kind     ResponseKind
	Scancode byte
	Status   StatusFlags
}

// Engine is one station's protocol state machine. It holds no I/O of its
// own: Tick returns what to send, HandleWord/HandleTimeout report what
// came back, and the caller (the scheduler) owns the serial link.
type Engine struct {
	Addr    uint8
	state   State
	cadence Cadence

	lastPoll     time.Time
	pollDeadline time.Time
	pollOut      bool

	initStep int
	retries  int

	consecutiveMisses int
	consecutiveParity int

	burst       []uint16
	burstCursor int
}

// NewEngine returns a station engine for addr, starting Unattached.
func NewEngine(addr uint8, cadence Cadence) *Engine {
	return &Engine{Addr: addr, cadence: cadence, state: Unattached}
}

// State reports the engine's current lifecycle state.
func (e *Engine) State() State { return e.state }

// Attach moves an Unattached (or Draining) station into Initializing,
// resetting all retry and failure counters - "the Station Protocol Engine
// is reset on every (re)attach."
func (e *Engine) Attach() {
	e.state = Initializing
	e.initStep = 0
	e.retries = 0
	e.consecutiveMisses = 0
	e.consecutiveParity = 0
	e.pollOut = false
}

// Detach begins teardown: a final clear is queued and the station drains.
func (e *Engine) Detach() {
	e.state = Draining
	e.burst = []uint16{composeWord(e.Addr, DiscCmd, CmdClear)}
	e.burstCursor = 0
}

// QueueWrite schedules a display-update burst: Start Write, one Write
// Data word per byte, End Write. Polls are deferred until it completes.
func (e *Engine) QueueWrite(data []byte) {
	if e.state != Ready {
		return
	}
	words := make([]uint16, 0, len(data)+2)
	words = append(words, composeWord(e.Addr, DiscCmd, CmdStartWrite))
	for _, b := range data {
		words = append(words, composeWord(e.Addr, DiscData, b&maskData))
	}
	words = append(words, composeWord(e.Addr, DiscCmd, CmdEndWrite))
	e.burst = words
	e.burstCursor = 0
	e.state = Writing
}

// Tick asks the engine for at most one action to perform this scheduler
// pass, per the poll scheduler's "at most one action" rule.
func (e *Engine) Tick(now time.Time) Action {
	switch e.state {
	case Unattached:
		return e.tickPoll(now)
	case Initializing:
		return e.tickInit(now)
	case Ready:
		return e.tickPoll(now)
	case Writing, Draining:
		return e.tickBurst(now)
	default:
		return Action{Kind: ActionNone}
	}
}

func (e *Engine) tickPoll(now time.Time) Action {
	if e.pollOut {
		if now.Before(e.pollDeadline) {
			return Action{Kind: ActionNone}
		}
		// Poll timed out.
		e.pollOut = false
		e.consecutiveMisses++
		if e.consecutiveMisses > maxConsecutiveMisses {
			e.state = Unattached
		}
	}
	e.lastPoll = now
	e.pollDeadline = now.Add(e.cadence.interval() * deadlineMultiplier)
	e.pollOut = true
	return Action{Kind: ActionSend, Words: []uint16{composeWord(e.Addr, DiscCmd, CmdPoll)}}
}

func (e *Engine) tickInit(now time.Time) Action {
	if e.initStep >= len(initSequence) {
		e.state = Ready
		return Action{Kind: ActionNone}
	}
	cmd := initSequence[e.initStep]
	return Action{Kind: ActionSend, Words: []uint16{composeWord(e.Addr, DiscCmd, cmd)}}
}

func (e *Engine) tickBurst(_ time.Time) Action {
	if e.burstCursor >= len(e.burst) {
		if e.state == Draining {
			e.state = Unattached
		} else {
			e.state = Ready
		}
		e.burst = nil
		e.burstCursor = 0
		return Action{Kind: ActionNone}
	}
	w := e.burst[e.burstCursor]
	e.burstCursor++
	return Action{Kind: ActionSend, Words: []uint16{w}}
}

// HandleWord processes one inbound word addressed to this station,
// classifying it per the response-kind discipline in section 4.5.
func (e *Engine) HandleWord(now time.Time, raw []byte, w uint16) Response {
	if !LineParityOK(raw) {
		e.consecutiveParity++
		if e.consecutiveParity > maxConsecutiveParity {
			e.Attach() // station reset
		}
	} else {
		e.consecutiveParity = 0
	}

	_, disc, payload := decomposeWord(w)

	if e.state == Initializing {
		return e.handleInitResponse(disc, payload)
	}

	if disc == DiscCmd {
		if payload&^0x07 == CmdStatusBase {
			e.resolvePoll(now)
			return Response{Kind: RespStatus, Status: StatusFlags(payload & 0x07)}
		}
		switch payload {
		case CmdNak, CmdBusy:
			return e.handleNakBusy()
		case CmdAck:
			e.resolvePoll(now)
			return Response{Kind: RespAck}
		}
	}

	if payload == 0 {
		e.resolvePoll(now)
		return Response{Kind: RespNull}
	}

	e.resolvePoll(now)
	return Response{Kind: RespScancode, Scancode: payload}
}

func (e *Engine) resolvePoll(now time.Time) {
	e.pollOut = false
	e.consecutiveMisses = 0
	e.lastPoll = now
}

func (e *Engine) handleInitResponse(disc Discriminator, payload byte) Response {
	if disc == DiscCmd && (payload == CmdNak || payload == CmdBusy) {
		return e.handleNakBusy()
	}
	e.initStep++
	e.retries = 0
	if e.initStep >= len(initSequence) {
		e.state = Ready
	}
	return Response{Kind: RespAck}
}

func (e *Engine) handleNakBusy() Response {
	e.retries++
	if e.retries > maxRetries {
		e.state = Unattached
		e.retries = 0
	}
	return Response{Kind: RespNakBusy}
}
