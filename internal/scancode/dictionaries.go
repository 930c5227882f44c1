/*
 * five250d - built-in scancode dictionaries.
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

func init() {
	RegisterDictionary(usLayout())
	RegisterDictionary(esLayout())
}

// usLayout is the default dictionary: a US keyboard on a 5250-style
// controller, F1/F2 mapped as ESC, arrow keys riding the numeric pad.
func usLayout() *Dictionary {
	return &Dictionary{
		Name:         "5250_US",
		CtrlPress:    []byte{0x54},
		CtrlRelease:  []byte{0xD4},
		AltPress:     []byte{0x68},
		ShiftPress:   []byte{0x57, 0x56},
		ShiftRelease: []byte{0xD7, 0xD6},
		CapsLock:     []byte{0x7E},
		Rows: map[byte]Row{
			0x7C: {Normal: "\x1B"},
			0x6F: {Normal: "\x1B"},

			0x3E: {Normal: "`", Shift: "~"},
			0x31: {Normal: "1", Shift: "|"},
			0x32: {Normal: "2", Shift: "@"},
			0x33: {Normal: "3", Shift: "#"},
			0x34: {Normal: "4", Shift: "$"},
			0x35: {Normal: "5", Shift: "%"},
			0x36: {Normal: "6", Shift: "^"},
			0x37: {Normal: "7", Shift: "&"},
			0x38: {Normal: "8", Shift: "*"},
			0x39: {Normal: "9", Shift: "("},
			0x3A: {Normal: "0", Shift: ")"},
			0x3B: {Normal: "-", Shift: "_", Ctrl: "\x1C"},
			0x3C: {Normal: "=", Shift: "+"},
			0x3D: {Normal: "\x08", Shift: "\x08"},

			0x20: {Normal: "\x09", Shift: "\x09"},
			0x21: {Normal: "q", Shift: "Q", Ctrl: "\x11"},
			0x22: {Normal: "w", Shift: "W", Ctrl: "\x17"},
			0x23: {Normal: "e", Shift: "E", Ctrl: "\x05"},
			0x24: {Normal: "r", Shift: "R", Ctrl: "\x12"},
			0x25: {Normal: "t", Shift: "T", Ctrl: "\x14"},
			0x26: {Normal: "y", Shift: "Y", Ctrl: "\x19"},
			0x27: {Normal: "u", Shift: "U", Ctrl: "\x15"},
			0x28: {Normal: "i", Shift: "I", Ctrl: "\x09"},
			0x29: {Normal: "o", Shift: "O", Ctrl: "\x0F"},
			0x2A: {Normal: "p", Shift: "P", Ctrl: "\x10"},
			0x2B: {Normal: "[", Shift: "{"},
			0x2C: {Normal: "]", Shift: "}"},
			0x2D: {Normal: "\x0D", Shift: "\x0D"},
			0x47: {Normal: "7"},
			0x48: {Normal: "8", Alt: "\x1B", Extra: "A"},
			0x49: {Normal: "9"},

			0x11: {Normal: "a", Shift: "A", Ctrl: "\x01"},
			0x12: {Normal: "s", Shift: "S", Ctrl: "\x13"},
			0x13: {Normal: "d", Shift: "D", Ctrl: "\x04"},
			0x14: {Normal: "f", Shift: "F", Ctrl: "\x06"},
			0x15: {Normal: "g", Shift: "G", Ctrl: "\x07"},
			0x16: {Normal: "h", Shift: "H", Ctrl: "\x08"},
			0x17: {Normal: "j", Shift: "J", Ctrl: "\x0A"},
			0x18: {Normal: "k", Shift: "K", Ctrl: "\x0B"},
			0x19: {Normal: "l", Shift: "L", Ctrl: "\x0C"},
			0x1B: {Normal: "'", Shift: "\""},
			0x1C: {Normal: ";", Shift: ":"},
			0x44: {Normal: "4", Alt: "\x1B", Extra: "D"},
			0x45: {Normal: "5"},
			0x46: {Normal: "6", Alt: "\x1B", Extra: "C"},
			0x4D: {Normal: "\x0D"},

			0x0E: {Normal: "\\", Shift: "|"},
			0x01: {Normal: "z", Shift: "Z", Ctrl: "\x1A"},
			0x02: {Normal: "x", Shift: "X", Ctrl: "\x18"},
			0x03: {Normal: "c", Shift: "C", Ctrl: "\x03"},
			0x04: {Normal: "v", Shift: "V", Ctrl: "\x16"},
			0x05: {Normal: "b", Shift: "B", Ctrl: "\x02"},
			0x06: {Normal: "n", Shift: "N", Ctrl: "\x0E"},
			0x07: {Normal: "m", Shift: "M", Ctrl: "\x0D"},
			0x08: {Normal: ",", Shift: "<"},
			0x09: {Normal: ".", Shift: ">"},
			0x0A: {Normal: "/", Shift: "?", Ctrl: "\x1F"},
			0x41: {Normal: "1"},
			0x42: {Normal: "2", Alt: "\x1B", Extra: "B"},
			0x43: {Normal: "3"},
			0x40: {Normal: "0"},

			0x0F: {Normal: " ", Shift: " "},
		},
	}
}

// esLayout mirrors the Spanish keyboard mapping from the reference
// firmware, substituting the accented keys the ES layout adds over US.
func esLayout() *Dictionary {
	d := usLayout()
	d.Name = "5250_ES"
	d.Rows[0x3E] = Row{Normal: "º", Shift: "ª", Ctrl: "\\"}
	d.Rows[0x31] = Row{Normal: "1", Shift: "!", Ctrl: "|"}
	d.Rows[0x32] = Row{Normal: "2", Shift: "\"", Ctrl: "@"}
	d.Rows[0x33] = Row{Normal: "3", Shift: "·", Ctrl: "#"}
	d.Rows[0x34] = Row{Normal: "4", Shift: "$", Ctrl: "~"}
	d.Rows[0x35] = Row{Normal: "5", Shift: "%", Ctrl: "½"}
	d.Rows[0x3B] = Row{Normal: "'", Shift: "?", Extra: ""}
	d.Rows[0x3C] = Row{Normal: "¡", Shift: "¿"}
	d.Rows[0x2B] = Row{Normal: "`", Shift: "^", Alt: "[", Extra: "\x1B"}
	d.Rows[0x2C] = Row{Normal: "+", Shift: "*", Alt: "]", Extra: "\x1D"}
	d.Rows[0x1A] = Row{Normal: "ñ", Shift: "Ñ"}
	d.Rows[0x1B] = Row{Normal: "´", Shift: "¨", Alt: "{", Extra: "\x1B"}
	d.Rows[0x1C] = Row{Normal: "ç", Shift: "Ç", Alt: "}", Extra: "\x1D"}
	d.Rows[0x0E] = Row{Normal: "<", Shift: ">", Alt: "|"}
	return d
}
