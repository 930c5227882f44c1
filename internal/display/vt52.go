/*
 * five250d - VT52 escape sequence parser.
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

package display

// parseState is the VT52 parser's position within an escape sequence.
type parseState int

const (
	stateGround parseState = iota
	stateGotEsc
	stateGotEscY    // saw ESC Y, waiting on the row byte
	stateGotEscYRow // saw ESC Y and the row byte, waiting on the column byte
)

// Parser is a pure (state, byte) -> state' machine driving a ScreenBuffer.
// It holds no goroutines or I/O of its own; a session feeds it shell
// output one byte at a time. A handful of sequences (ESC Z) produce a
// reply meant for the keyboard input path rather than the screen; those
// accumulate in reply for the caller to drain and write back to the PTY.
type Parser struct {
	screen *ScreenBuffer
	state  parseState
	escRow int
	reply  []byte
}

// NewParser returns a parser that applies VT52 sequences to screen.
func NewParser(screen *ScreenBuffer) *Parser {
	return &Parser{screen: screen}
}

// TakeReply drains and clears any bytes a sequence queued for the
// keyboard input path (currently only ESC Z's identify response).
func (p *Parser) TakeReply() []byte {
	r := p.reply
	p.reply = nil
	return r
}

// Feed processes one byte of shell output.
func (p *Parser) Feed(b byte) {
	switch p.state {
	case stateGotEsc:
		p.applyEscape(b)
	case stateGotEscY:
		p.escRow = int(b) - 0x20
		p.state = stateGotEscYRow
	case stateGotEscYRow:
		p.applyCursorColumn(b)
	default:
		p.applyGround(b)
	}
}

func (p *Parser) applyGround(b byte) {
	switch b {
	case 0x1B: // ESC
		p.state = stateGotEsc
	case '\n': // LF
		p.lineFeed()
	case '\r': // CR
		p.carriageReturn()
	case '\t': // HT
		p.tab()
	case 0x0B, 0x0C: // VT, FF - treated as a plain line feed
		p.lineFeed()
	case 0x08: // BS
		p.cursorLeft()
	default:
		if b >= 0x20 && b < 0x7F {
			p.screen.PutChar(b)
		}
	}
}

func (p *Parser) applyEscape(b byte) {
	p.state = stateGround
	switch b {
	case 'J': // clear to end of screen
		row, col := p.screen.cursorRow, p.screen.cursorCol
		p.screen.clearRect(row, col, Rows-1, Cols-1)
	case 'K': // clear to end of line
		p.screen.clearRect(p.screen.cursorRow, p.screen.cursorCol, p.screen.cursorRow, Cols-1)
	case 'E': // clear screen, home cursor
		p.screen.fillAll(' ')
		p.screen.setCursor(0, 0)
	case 'l': // clear current line
		p.screen.clearRect(p.screen.cursorRow, 0, p.screen.cursorRow, Cols-1)
		p.screen.setCursor(p.screen.cursorRow, 0)
	case 'o': // clear to start of line
		p.screen.clearRect(p.screen.cursorRow, 0, p.screen.cursorRow, p.screen.cursorCol)
	case 'd': // clear to start of screen
		p.screen.clearRect(0, 0, p.screen.cursorRow, p.screen.cursorCol)
	case 'B': // cursor down
		p.screen.setCursor(p.screen.cursorRow+1, p.screen.cursorCol)
	case 'A': // cursor up
		p.screen.setCursor(p.screen.cursorRow-1, p.screen.cursorCol)
	case 'C': // cursor right
		p.cursorRight()
	case 'D': // cursor left
		p.cursorLeft()
	case 'H': // cursor home
		p.screen.setCursor(0, 0)
	case 'I': // reverse line feed
		p.reverseLineFeed()
	case 'Y': // direct cursor addressing, row byte next
		p.state = stateGotEscY
	case 'Z': // identify: reply ESC / K into the keyboard input path
		p.reply = append(p.reply, 0x1B, '/', 'K')
	case '=': // enter alternate keypad, recorded only
		p.screen.altKeypad = true
	case '>': // leave alternate keypad, recorded only
		p.screen.altKeypad = false
	case 'L': // insert line
		p.screen.scrollDownFrom(p.screen.cursorRow)
		p.screen.setCursor(p.screen.cursorRow, 0)
	case 'M': // delete line
		p.screen.deleteLineAt(p.screen.cursorRow)
		p.screen.setCursor(p.screen.cursorRow, 0)
	case 'j': // save cursor position
		p.screen.savedRow, p.screen.savedCol = p.screen.cursorRow, p.screen.cursorCol
	case 'k': // restore cursor position
		p.screen.setCursor(p.screen.savedRow, p.screen.savedCol)
	case 'p': // set reverse attribute
		p.screen.setReverse(true)
	case 'q': // clear reverse attribute
		p.screen.setReverse(false)
	case 'e': // show cursor
		p.screen.cursorHidden = false
	case 'f': // hide cursor
		p.screen.cursorHidden = true
	case 'w', 'v': // line-wrap off/on, no-op: original leaves both TBD
	case 'b', 'c': // foreground/background color, no visual counterpart
	default:
		// unrecognized escape, drop it
	}
}

func (p *Parser) applyCursorColumn(b byte) {
	p.state = stateGround
	col := int(b) - 0x20
	p.screen.setCursor(p.escRow, col)
}

func (p *Parser) lineFeed() {
	if p.screen.cursorRow == Rows-1 {
		p.screen.scrollUp()
		return
	}
	p.screen.setCursor(p.screen.cursorRow+1, p.screen.cursorCol)
}

func (p *Parser) reverseLineFeed() {
	if p.screen.cursorRow == 0 {
		p.screen.scrollDownFrom(0)
		return
	}
	p.screen.setCursor(p.screen.cursorRow-1, p.screen.cursorCol)
}

func (p *Parser) carriageReturn() {
	p.screen.setCursor(p.screen.cursorRow, 0)
}

func (p *Parser) tab() {
	next := ((p.screen.cursorCol + 8) / 8) * 8
	if next > Cols-1 {
		next %= Cols
		p.screen.setCursor(clampRow(p.screen.cursorRow+1), next)
		return
	}
	p.screen.setCursor(p.screen.cursorRow, next)
}

func clampRow(r int) int {
	return clamp(r, 0, Rows-1)
}

// cursorLeft backs the cursor up one column, clamping at column 0. No row
// change: ESC D and BS both disable wrap-advance.
func (p *Parser) cursorLeft() {
	if p.screen.cursorCol > 0 {
		p.screen.setCursor(p.screen.cursorRow, p.screen.cursorCol-1)
	}
}

// cursorRight advances the cursor one column, clamping at column 79. No
// row change: ESC C disables wrap-advance.
func (p *Parser) cursorRight() {
	if p.screen.cursorCol < Cols-1 {
		p.screen.setCursor(p.screen.cursorRow, p.screen.cursorCol+1)
	}
}
