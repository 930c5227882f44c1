/*
 * S370 - scancode decoder test cases.
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

package scancode

import "testing"

func TestDecodePlainLetter(t *testing.T) {
	dec, err := NewDecoder("5250_US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := dec.Decode(0x21)
	if string(out) != "q" {
		t.Errorf("expected %q, got %q", "q", out)
	}
}

func TestDecodeShiftLatch(t *testing.T) {
	dec, _ := NewDecoder("5250_US")
	dec.Decode(0x57) // SHIFT_PRESS
	out := dec.Decode(0x21)
	if string(out) != "Q" {
		t.Errorf("expected %q with shift held, got %q", "Q", out)
	}
	dec.Decode(0xD7) // SHIFT_RELEASE
	out = dec.Decode(0x21)
	if string(out) != "q" {
		t.Errorf("expected %q after shift released, got %q", "q", out)
	}
}

func TestDecodeCapsLockTogglesLettersOnly(t *testing.T) {
	dec, _ := NewDecoder("5250_US")
	dec.Decode(0x7E) // CAPS_LOCK
	if out := dec.Decode(0x21); string(out) != "Q" {
		t.Errorf("expected caps lock to upper-case letters, got %q", out)
	}
	if out := dec.Decode(0x31); string(out) != "1" {
		t.Errorf("expected caps lock to leave digits alone, got %q", out)
	}
}

func TestDecodeCtrlLatch(t *testing.T) {
	dec, _ := NewDecoder("5250_US")
	dec.Decode(0x54) // CTRL_PRESS
	out := dec.Decode(0x03)
	if string(out) != "\x03" {
		t.Errorf("expected ctrl-c byte 0x03, got %v", out)
	}
	dec.Decode(0xD4) // CTRL_RELEASE
	out = dec.Decode(0x03)
	if string(out) != "c" {
		t.Errorf("expected plain %q after ctrl released, got %q", "c", out)
	}
}

func TestDecodeArrowKeyEmitsEscSequence(t *testing.T) {
	dec, _ := NewDecoder("5250_US")
	out := dec.Decode(0x48) // numpad 8 / up arrow, alt level
	dec2, _ := NewDecoder("5250_US")
	dec2.Decode(0x68) // ALT_PRESS
	out2 := dec2.Decode(0x48)
	if string(out) != "8" {
		t.Errorf("plain numpad 8 should be digit, got %q", out)
	}
	if string(out2) != "\x1BA" {
		t.Errorf("alt+numpad 8 should be ESC A, got %q", out2)
	}
}

func TestDecodeAltIsOneShot(t *testing.T) {
	dec, _ := NewDecoder("5250_US")
	out := dec.Decode(0x68) // ALT_PRESS, no release code in this dictionary
	if out != nil {
		t.Errorf("expected no emission from a bare modifier press, got %v", out)
	}
	if out = dec.Decode(0x48); string(out) != "\x1BA" {
		t.Errorf("expected alted numpad 8 to emit ESC A, got %q", out)
	}
	if out = dec.Decode(0x48); string(out) != "8" {
		t.Errorf("expected alt latch cleared after one key, got %q", out)
	}
}

func TestDecodeAltConsecutivePressesToggle(t *testing.T) {
	dec, _ := NewDecoder("5250_US")
	dec.Decode(0x68) // first ALT_PRESS arms the one-shot latch
	dec.Decode(0x68) // second ALT_PRESS before any key cancels it
	if out := dec.Decode(0x48); string(out) != "8" {
		t.Errorf("expected alt cancelled by the second press, got %q", out)
	}
}

func TestDecodeUnknownScancodeIsIgnored(t *testing.T) {
	dec, _ := NewDecoder("5250_US")
	if out := dec.Decode(0xFE); out != nil {
		t.Errorf("expected nil for unmapped scancode, got %v", out)
	}
}

func TestLookupDictionaryUnknown(t *testing.T) {
	if _, err := NewDecoder("does-not-exist"); err == nil {
		t.Errorf("expected error for unknown dictionary")
	}
}

func TestESLayoutRegistered(t *testing.T) {
	if _, err := LookupDictionary("5250_ES"); err != nil {
		t.Errorf("expected 5250_ES to be registered: %v", err)
	}
}
