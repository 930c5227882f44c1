/*
 * five250d - serial line codec for the twinax bridge.
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

// Package wire implements the byte-level framing that rides the serial link
// between the host and the twinax controller box: every 16-bit word is
// bias-split into two printable bytes, a batch of words is terminated by a
// newline record marker, and a couple of sentinel lines ([DEBUG], [EOTX])
// are interleaved with real traffic by the firmware.
package wire

import (
	"errors"
	"strings"
)

// bias is added to every split half so the wire only ever carries
// printable ASCII.
const bias = 0x40

// ErrMalformedFrame is returned when a non-sentinel line carries an odd
// number of payload bytes, so it cannot be split into whole words.
var ErrMalformedFrame = errors.New("wire: malformed frame (odd byte count)")

const (
	debugToken = "[DEBUG]"
	eotxToken  = "[EOTX]"
)

// EncodeWord splits one 16-bit word into the two printable bytes the
// firmware expects. Bit 15 and bits [3:0] are not carried: 11 significant
// bits (4 through 14) transit per pair, so callers composing a word (the
// station engine) must keep those bits clear.
func EncodeWord(w uint16) (b1, b2 byte) {
	b1 = bias | byte((w>>9)&0x3F)
	b2 = bias | byte((w>>4)&0x1F)
	return b1, b2
}

// DecodeWord reassembles the two bytes of a pair into a 16-bit word, the
// inverse of EncodeWord.
func DecodeWord(b1, b2 byte) uint16 {
	return (uint16(b1&0x3F) << 9) | (uint16(b2&0x1F) << 4)
}

// EncodeBatch renders a sequence of words as the raw bytes to write to the
// serial port: concatenated byte pairs followed by a single newline record
// terminator.
func EncodeBatch(words []uint16) []byte {
	out := make([]byte, 0, 2*len(words)+1)
	for _, w := range words {
		b1, b2 := EncodeWord(w)
		out = append(out, b1, b2)
	}
	return append(out, '\n')
}

// EventKind discriminates the typed events the codec's inbound parser
// produces from one line of the serial stream.
type EventKind int

const (
	// EventData carries one decoded 16-bit word.
	EventData EventKind = iota
	// EventEndOfTransmission marks the end of a prior host-originated burst.
	EventEndOfTransmission
	// EventDebug carries a firmware diagnostic line, already stripped of
	// its [DEBUG] marker.
	EventDebug
)

// Event is one decoded unit of inbound serial traffic.
type Event struct {
	Kind  EventKind
	Word  uint16
	Debug string
}

// DecodeLine classifies and decodes one newline-stripped line of inbound
// serial traffic into its typed events. A debug line yields exactly one
// EventDebug; an EOTX line yields exactly one EventEndOfTransmission; any
// other line yields one EventData per byte pair it contains, in order.
func DecodeLine(line string) ([]Event, error) {
	if strings.HasPrefix(line, debugToken) {
		return []Event{{Kind: EventDebug, Debug: strings.TrimSpace(strings.TrimPrefix(line, debugToken))}}, nil
	}
	if line == eotxToken {
		return []Event{{Kind: EventEndOfTransmission}}, nil
	}
	if len(line)%2 != 0 {
		return nil, ErrMalformedFrame
	}
	events := make([]Event, 0, len(line)/2)
	for i := 0; i+1 < len(line); i += 2 {
		w := DecodeWord(line[i], line[i+1])
		events = append(events, Event{Kind: EventData, Word: w})
	}
	return events, nil
}
