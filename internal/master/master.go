/*
 * five250d - event bus linking stations, sessions and the scheduler.
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

// Package master carries the small set of asynchronous events the scheduler
// must react to: a station coming online or dropping off the link, a child
// shell exiting, and an admin command typed at the console.
package master

// Msg identifies the kind of event carried in a Packet.
type Msg int

const (
	// StationAttached reports a station completed link initialization.
	StationAttached Msg = 1 + iota
	// StationDetached reports a station dropped off the link or was
	// administratively detached.
	StationDetached
	// ChildExited reports the shell process backing a session has exited.
	ChildExited
	// AdminCommand carries a command typed at the admin console.
	AdminCommand
	// AdminDetach requests the scheduler administratively detach Station.
	AdminDetach
	// AdminAttach requests the scheduler attach Station immediately instead
	// of waiting for serial traffic to reveal a terminal is present.
	AdminAttach
	// AdminRestart requests the scheduler detach and re-attach Station.
	AdminRestart
)

// Packet is the unit of communication pushed onto the scheduler's master
// channel by station workers, session goroutines, and the console reader.
type Packet struct {
	Station uint8  // station address the event pertains to
	Msg     Msg    // event kind
	Text    string // AdminCommand line, or a human-readable reason
	Code    int    // ChildExited exit status
}
