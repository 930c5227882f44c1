/*
 * five250d - scancode decoder.
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

// Package scancode turns the raw scancode bytes a twinax keyboard sends
// into the byte sequences a PTY-backed shell expects, tracking per-session
// modifier latch state (shift, control, alt, caps lock).
package scancode

import "fmt"

// Level selects which column of a scancode's row is emitted.
type Level int

const (
	LevelNormal Level = iota
	LevelShift
	LevelAlt
	LevelCtrl
)

// Row holds the up-to-four plain emissions for one scancode, plus the
// optional extra byte appended when the chosen emission resolves to ESC
// (used for the VT52 arrow-key sequences).
type Row struct {
	Normal string
	Shift  string
	Alt    string
	Ctrl   string
	Extra  string // appended after 0x1B when the resolved level is ESC
}

func (r Row) at(l Level) string {
	switch l {
	case LevelShift:
		return r.Shift
	case LevelAlt:
		return r.Alt
	case LevelCtrl:
		return r.Ctrl
	default:
		return r.Normal
	}
}

// Dictionary is a complete scancode table for one keyboard layout,
// including the special press/release codes for the modifier keys.
type Dictionary struct {
	Name          string
	Rows          map[byte]Row
	CtrlPress     []byte
	CtrlRelease   []byte
	AltPress      []byte
	AltRelease    []byte
	ShiftPress    []byte
	ShiftRelease  []byte
	CapsLock      []byte
}

var registry = map[string]*Dictionary{}

// RegisterDictionary adds a scancode dictionary to the registry under its
// name, the way the emulator self-registers device models from an init
// function.
func RegisterDictionary(d *Dictionary) {
	registry[d.Name] = d
}

// LookupDictionary returns a registered dictionary by name.
func LookupDictionary(name string) (*Dictionary, error) {
	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("scancode: unknown dictionary %q", name)
	}
	return d, nil
}

func containsByte(set []byte, b byte) bool {
	for _, v := range set {
		if v == b {
			return true
		}
	}
	return false
}

// Decoder holds one session's modifier latch state against a fixed
// dictionary.
type Decoder struct {
	dict     *Dictionary
	shift    bool
	ctrl     bool
	alt      bool
	capsLock bool

	// The *OneShot fields mark a latch as armed by a sticky press (a
	// dictionary entry whose release set is empty, so no scancode will ever
	// clear it on its own). Such a latch is consumed by the next
	// non-modifier key instead of by a release code.
	shiftOneShot bool
	ctrlOneShot  bool
	altOneShot   bool
}

// armModifier applies one press scancode to a modifier latch. sticky is true
// when the dictionary declares no release code for the modifier: the first
// press arms the latch for exactly the next non-modifier key, and a second
// consecutive press before any such key toggles it back off rather than
// re-arming it.
func armModifier(latch, oneShot *bool, sticky bool) {
	if !sticky {
		*latch = true
		return
	}
	if *oneShot {
		*latch = false
		*oneShot = false
		return
	}
	*latch = true
	*oneShot = true
}

// NewDecoder creates a decoder bound to the named dictionary.
func NewDecoder(dictionaryName string) (*Decoder, error) {
	d, err := LookupDictionary(dictionaryName)
	if err != nil {
		return nil, err
	}
	return &Decoder{dict: d}, nil
}

// Decode processes one scancode byte, updating latch state as a side
// effect, and returns the bytes (if any) that should be written to the
// session's PTY.
func (dec *Decoder) Decode(code byte) []byte {
	d := dec.dict
	switch {
	case containsByte(d.CtrlPress, code):
		armModifier(&dec.ctrl, &dec.ctrlOneShot, len(d.CtrlRelease) == 0)
		return nil
	case containsByte(d.CtrlRelease, code):
		dec.ctrl = false
		dec.ctrlOneShot = false
		return nil
	case containsByte(d.AltPress, code):
		armModifier(&dec.alt, &dec.altOneShot, len(d.AltRelease) == 0)
		return nil
	case containsByte(d.AltRelease, code):
		dec.alt = false
		dec.altOneShot = false
		return nil
	case containsByte(d.ShiftPress, code):
		armModifier(&dec.shift, &dec.shiftOneShot, len(d.ShiftRelease) == 0)
		return nil
	case containsByte(d.ShiftRelease, code):
		dec.shift = false
		dec.shiftOneShot = false
		return nil
	case containsByte(d.CapsLock, code):
		dec.capsLock = !dec.capsLock
		return nil
	}

	row, ok := d.Rows[code]

	level := LevelNormal
	switch {
	case dec.ctrl:
		level = LevelCtrl
	case dec.alt:
		level = LevelAlt
	case dec.shift != dec.capsLock && isLetterRow(row):
		level = LevelShift
	case dec.shift && !isLetterRow(row):
		level = LevelShift
	}

	// A one-shot modifier only covers the key that follows its press; this
	// one just consumed it, latched or not.
	dec.clearOneShots()

	if !ok {
		return nil
	}

	emit := row.at(level)
	if emit == "" {
		return nil
	}

	out := []byte(emit)
	if len(out) == 1 && out[0] == 0x1B && row.Extra != "" {
		out = append(out, []byte(row.Extra)...)
	}
	return out
}

// clearOneShots drops any modifier latch armed by a sticky press, now that a
// non-modifier key has consumed it.
func (dec *Decoder) clearOneShots() {
	if dec.ctrlOneShot {
		dec.ctrl = false
		dec.ctrlOneShot = false
	}
	if dec.altOneShot {
		dec.alt = false
		dec.altOneShot = false
	}
	if dec.shiftOneShot {
		dec.shift = false
		dec.shiftOneShot = false
	}
}

// isLetterRow reports whether a row's normal emission is a single cased
// letter. Caps lock only affects such rows, and on them caps lock and shift
// cancel each other the way a real keyboard's caps lock does.
func isLetterRow(r Row) bool {
	if len(r.Normal) != 1 {
		return false
	}
	c := r.Normal[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
