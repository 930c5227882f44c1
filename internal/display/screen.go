/*
 * five250d - display controller, screen buffer half.
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

// Package display maintains the 24x80 screen model a twinax terminal holds
// in its own display buffer, plus the pure VT52 escape parser the session
// feeds shell output through to keep that model and the real terminal in
// sync.
package display

import "strings"

const (
	Rows = 24
	Cols = 80
)

// CellAttr holds the subset of 5250 display attributes this bridge tracks.
type CellAttr uint8

const (
	AttrNone    CellAttr = 0
	AttrBlink   CellAttr = 1 << 0
	AttrReverse CellAttr = 1 << 1
)

// DisplayCell is one screen position: a character plus its attributes.
type DisplayCell struct {
	Char byte
	Attr CellAttr
}

// Rect is an inclusive rectangle of screen cells that changed since the
// last time it was drained, used to batch writes to the real terminal
// instead of re-sending the whole screen on every keystroke.
type Rect struct {
	Row0, Col0 int
	Row1, Col1 int
}

// ScreenBuffer is the host-side mirror of one station's display memory.
type ScreenBuffer struct {
	cells        [Rows][Cols]DisplayCell
	cursorRow    int
	cursorCol    int
	savedRow     int
	savedCol     int
	currentAttr  CellAttr // applied to every cell PutChar writes
	cursorHidden bool     // ESC e/f, never read back; the status byte's hidden bit has no local consumer
	altKeypad    bool     // ESC =/>, recorded only: no visual change
	lineWrap     bool
	dirty        *Rect

	// statusLine mirrors the terminal's own indicator bits (input-inhibited,
	// system-available, message-waiting). It is a separate row from the
	// 24x80 grid, updated only by SetStatus, and VT52 output from the PTY
	// never touches it.
	statusLine string
}

// NewScreenBuffer returns a blank 24x80 screen with the cursor at (0,0).
func NewScreenBuffer() *ScreenBuffer {
	s := &ScreenBuffer{lineWrap: true}
	s.fillAll(' ')
	return s
}

// markDirty folds a changed span into the single pending rectangle, growing
// its bounding box as needed. This is a simplification of the terminal's
// real write-combining rule, which only merges spans that share a row and
// whose columns touch or overlap, otherwise sending separate bursts; here
// two disjoint changes on the same pass can pull unrelated cells into one
// burst's bounding box.
func (s *ScreenBuffer) markDirty(r0, c0, r1, c1 int) {
	if s.dirty == nil {
		s.dirty = &Rect{r0, c0, r1, c1}
		return
	}
	if r0 < s.dirty.Row0 {
		s.dirty.Row0 = r0
	}
	if c0 < s.dirty.Col0 {
		s.dirty.Col0 = c0
	}
	if r1 > s.dirty.Row1 {
		s.dirty.Row1 = r1
	}
	if c1 > s.dirty.Col1 {
		s.dirty.Col1 = c1
	}
}

// TakeDirty returns and clears the accumulated dirty rectangle, or nil if
// nothing changed since the last call.
func (s *ScreenBuffer) TakeDirty() *Rect {
	r := s.dirty
	s.dirty = nil
	return r
}

// Cursor returns the current cursor position.
func (s *ScreenBuffer) Cursor() (row, col int) {
	return s.cursorRow, s.cursorCol
}

// SetStatus formats the status row from the terminal's reported indicator
// bits. It lives apart from the application buffer the VT52 parser drives,
// so a shell's own output never overwrites it.
func (s *ScreenBuffer) SetStatus(inputInhibited, systemAvailable, messageWaiting bool) {
	var b strings.Builder
	if inputInhibited {
		b.WriteString("X ")
	} else {
		b.WriteString("  ")
	}
	if systemAvailable {
		b.WriteString("SYS ")
	} else {
		b.WriteString("    ")
	}
	if messageWaiting {
		b.WriteString("MSG")
	}
	s.statusLine = b.String()
}

// StatusLine returns the most recently formatted status row.
func (s *ScreenBuffer) StatusLine() string {
	return s.statusLine
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *ScreenBuffer) setCursor(row, col int) {
	s.cursorRow = clamp(row, 0, Rows-1)
	s.cursorCol = clamp(col, 0, Cols-1)
}

func (s *ScreenBuffer) fillAll(ch byte) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			s.cells[r][c] = DisplayCell{Char: ch}
		}
	}
	s.markDirty(0, 0, Rows-1, Cols-1)
}

// Cell returns the cell at (row, col).
func (s *ScreenBuffer) Cell(row, col int) DisplayCell {
	return s.cells[row][col]
}

// PutChar writes ch at the cursor position and advances the cursor one
// column. Wrap-advance is disabled: at column 79 a subsequent byte
// overwrites that last cell in place rather than wrapping to the next row,
// leaving line-feed handling entirely up to the caller.
func (s *ScreenBuffer) PutChar(ch byte) {
	s.cells[s.cursorRow][s.cursorCol] = DisplayCell{Char: ch, Attr: s.currentAttr}
	s.markDirty(s.cursorRow, s.cursorCol, s.cursorRow, s.cursorCol)
	if s.cursorCol < Cols-1 {
		s.cursorCol++
	}
}

// scrollUp shifts every line up one row, clearing the last line, used by
// LF at the bottom row.
func (s *ScreenBuffer) scrollUp() {
	for r := 0; r < Rows-1; r++ {
		s.cells[r] = s.cells[r+1]
	}
	for c := 0; c < Cols; c++ {
		s.cells[Rows-1][c] = DisplayCell{Char: ' '}
	}
	s.markDirty(0, 0, Rows-1, Cols-1)
}

// scrollDownFrom inserts a blank line at row, shifting rows below it down
// one and discarding the bottom line, used by ESC_L (insert line).
func (s *ScreenBuffer) scrollDownFrom(row int) {
	for r := Rows - 1; r > row; r-- {
		s.cells[r] = s.cells[r-1]
	}
	for c := 0; c < Cols; c++ {
		s.cells[row][c] = DisplayCell{Char: ' '}
	}
	s.markDirty(row, 0, Rows-1, Cols-1)
}

// deleteLineAt removes row, shifting rows below it up one and blanking
// the last line, used by ESC_M (delete line).
func (s *ScreenBuffer) deleteLineAt(row int) {
	for r := row; r < Rows-1; r++ {
		s.cells[r] = s.cells[r+1]
	}
	for c := 0; c < Cols; c++ {
		s.cells[Rows-1][c] = DisplayCell{Char: ' '}
	}
	s.markDirty(row, 0, Rows-1, Cols-1)
}

// clearRect blanks an inclusive span, filling with the current attribute
// register the way ESC J/K/l/o/d leave their erased cells.
func (s *ScreenBuffer) clearRect(r0, c0, r1, c1 int) {
	for r := r0; r <= r1; r++ {
		cStart, cEnd := 0, Cols-1
		if r == r0 {
			cStart = c0
		}
		if r == r1 {
			cEnd = c1
		}
		for c := cStart; c <= cEnd; c++ {
			s.cells[r][c] = DisplayCell{Char: ' ', Attr: s.currentAttr}
		}
	}
	s.markDirty(r0, 0, r1, Cols-1)
}

// setReverse toggles the reverse-video bit of the current attribute
// register; it affects cells written after the call, not cells already
// on screen.
func (s *ScreenBuffer) setReverse(on bool) {
	if on {
		s.currentAttr |= AttrReverse
	} else {
		s.currentAttr &^= AttrReverse
	}
}
