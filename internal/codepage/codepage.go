/*
 * five250d - EBCDIC/ASCII codepage translation.
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

// Package codepage translates between the EBCDIC bytes a twinax terminal
// speaks on the wire and the ASCII bytes the PTY-backed shell expects, with
// a registry of named codepages the way the emulator registers device
// models.
package codepage

import "fmt"

// UnmappedASCII is substituted for an EBCDIC byte with no ASCII equivalent
// in the active table.
const UnmappedASCII = '?'

// UnmappedEBCDIC is substituted for an ASCII byte with no EBCDIC equivalent.
const UnmappedEBCDIC = 0x6F // EBCDIC '?'

// Table is a bidirectional byte translation table for one codepage.
type Table struct {
	name     string
	toASCII  [256]byte
	toEBCDIC [256]byte
}

var registry = map[string]*Table{}

// Register adds a codepage to the registry under name. Mirrors the
// emulator's self-registering device models: packages call this from an
// init function rather than the caller wiring a map by hand.
func Register(name string, t *Table) {
	registry[name] = t
}

// Lookup returns a registered codepage by name.
func Lookup(name string) (*Table, error) {
	t, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("codepage: unknown codepage %q", name)
	}
	return t, nil
}

// ToASCII translates one EBCDIC byte to ASCII, or UnmappedASCII if the
// table has no mapping for it.
func (t *Table) ToASCII(b byte) byte {
	return t.toASCII[b]
}

// ToEBCDIC translates one ASCII byte to EBCDIC, or UnmappedEBCDIC if the
// table has no mapping for it.
func (t *Table) ToEBCDIC(b byte) byte {
	return t.toEBCDIC[b]
}

// TranslateToASCII translates a whole buffer of EBCDIC bytes into a
// freshly allocated ASCII buffer.
func (t *Table) TranslateToASCII(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = t.toASCII[b]
	}
	return out
}

// TranslateToEBCDIC translates a whole buffer of ASCII bytes into a
// freshly allocated EBCDIC buffer.
func (t *Table) TranslateToEBCDIC(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = t.toEBCDIC[b]
	}
	return out
}

func init() {
	Register("cp037", buildCP037())
}

// buildCP037 constructs the default IBM cp037 table. Every byte defaults
// to the Unmapped sentinel, then the printable range is filled in from the
// standard cp037 mapping.
func buildCP037() *Table {
	t := &Table{name: "cp037"}
	for i := range t.toASCII {
		t.toASCII[i] = UnmappedASCII
	}
	for i := range t.toEBCDIC {
		t.toEBCDIC[i] = UnmappedEBCDIC
	}
	for ascii, ebcdic := range cp037ToEBCDIC {
		t.toEBCDIC[ascii] = ebcdic
		t.toASCII[ebcdic] = byte(ascii)
	}
	return t
}

// cp037ToEBCDIC maps ASCII code points to their cp037 EBCDIC encoding. The
// space and printable ranges used by a terminal session (letters, digits,
// punctuation, and the common control codes a shell needs) are covered;
// anything else falls back to UnmappedEBCDIC/UnmappedASCII.
var cp037ToEBCDIC = map[int]byte{
	0x00: 0x00, 0x01: 0x01, 0x02: 0x02, 0x03: 0x03, 0x04: 0x37,
	0x05: 0x2D, 0x06: 0x2E, 0x07: 0x2F, 0x08: 0x16, 0x09: 0x05,
	0x0A: 0x25, 0x0B: 0x0B, 0x0C: 0x0C, 0x0D: 0x0D, 0x0E: 0x0E,
	0x0F: 0x0F, 0x10: 0x10, 0x11: 0x11, 0x12: 0x12, 0x13: 0x13,
	0x14: 0x3C, 0x15: 0x3D, 0x16: 0x32, 0x17: 0x26, 0x18: 0x18,
	0x19: 0x19, 0x1A: 0x3F, 0x1B: 0x27, 0x1C: 0x1C, 0x1D: 0x1D,
	0x1E: 0x1E, 0x1F: 0x1F, 0x20: 0x40, 0x21: 0x5A, 0x22: 0x7F,
	0x23: 0x7B, 0x24: 0x5B, 0x25: 0x6C, 0x26: 0x50, 0x27: 0x7D,
	0x28: 0x4D, 0x29: 0x5D, 0x2A: 0x5C, 0x2B: 0x4E, 0x2C: 0x6B,
	0x2D: 0x60, 0x2E: 0x4B, 0x2F: 0x61, 0x30: 0xF0, 0x31: 0xF1,
	0x32: 0xF2, 0x33: 0xF3, 0x34: 0xF4, 0x35: 0xF5, 0x36: 0xF6,
	0x37: 0xF7, 0x38: 0xF8, 0x39: 0xF9, 0x3A: 0x7A, 0x3B: 0x5E,
	0x3C: 0x4C, 0x3D: 0x7E, 0x3E: 0x6E, 0x3F: 0x6F, 0x40: 0x7C,
	0x41: 0xC1, 0x42: 0xC2, 0x43: 0xC3, 0x44: 0xC4, 0x45: 0xC5,
	0x46: 0xC6, 0x47: 0xC7, 0x48: 0xC8, 0x49: 0xC9, 0x4A: 0xD1,
	0x4B: 0xD2, 0x4C: 0xD3, 0x4D: 0xD4, 0x4E: 0xD5, 0x4F: 0xD6,
	0x50: 0xD7, 0x51: 0xD8, 0x52: 0xD9, 0x53: 0xE2, 0x54: 0xE3,
	0x55: 0xE4, 0x56: 0xE5, 0x57: 0xE6, 0x58: 0xE7, 0x59: 0xE8,
	0x5A: 0xE9, 0x5B: 0xBA, 0x5C: 0xE0, 0x5D: 0xBB, 0x5E: 0xB0,
	0x5F: 0x6D, 0x60: 0x79, 0x61: 0x81, 0x62: 0x82, 0x63: 0x83,
	0x64: 0x84, 0x65: 0x85, 0x66: 0x86, 0x67: 0x87, 0x68: 0x88,
	0x69: 0x89, 0x6A: 0x91, 0x6B: 0x92, 0x6C: 0x93, 0x6D: 0x94,
	0x6E: 0x95, 0x6F: 0x96, 0x70: 0x97, 0x71: 0x98, 0x72: 0x99,
	0x73: 0xA2, 0x74: 0xA3, 0x75: 0xA4, 0x76: 0xA5, 0x77: 0xA6,
	0x78: 0xA7, 0x79: 0xA8, 0x7A: 0xA9, 0x7B: 0xC0, 0x7C: 0x4F,
	0x7D: 0xD0, 0x7E: 0xA1, 0x7F: 0x07,
}
