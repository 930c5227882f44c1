/*
 * S370 - display controller test cases.
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

import "testing"

func feedString(p *Parser, s string) {
	for i := 0; i < len(s); i++ {
		p.Feed(s[i])
	}
}

func TestPutCharAdvancesCursor(t *testing.T) {
	s := NewScreenBuffer()
	p := NewParser(s)
	feedString(p, "AB")
	row, col := s.Cursor()
	if row != 0 || col != 2 {
		t.Errorf("expected cursor at (0,2), got (%d,%d)", row, col)
	}
	if s.Cell(0, 0).Char != 'A' || s.Cell(0, 1).Char != 'B' {
		t.Errorf("characters not written correctly")
	}
}

func TestLineFeedAtBottomScrolls(t *testing.T) {
	s := NewScreenBuffer()
	p := NewParser(s)
	s.setCursor(Rows-1, 0)
	s.PutChar('Z')
	s.setCursor(Rows-1, 0)
	p.Feed('\n')
	if s.Cell(Rows-2, 0).Char != 'Z' {
		t.Errorf("expected scrolled content on second-to-last row")
	}
	if s.Cell(Rows-1, 0).Char != ' ' {
		t.Errorf("expected blank bottom row after scroll")
	}
}

func TestCarriageReturn(t *testing.T) {
	s := NewScreenBuffer()
	p := NewParser(s)
	feedString(p, "ABC")
	p.Feed('\r')
	row, col := s.Cursor()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor at column 0 after CR, got (%d,%d)", row, col)
	}
}

func TestEscEClearsScreenAndHomesCursor(t *testing.T) {
	s := NewScreenBuffer()
	p := NewParser(s)
	feedString(p, "hello")
	p.Feed(0x1B)
	p.Feed('E')
	row, col := s.Cursor()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor home after ESC E, got (%d,%d)", row, col)
	}
	if s.Cell(0, 0).Char != ' ' {
		t.Errorf("expected screen cleared after ESC E")
	}
}

func TestEscYPositionsCursor(t *testing.T) {
	s := NewScreenBuffer()
	p := NewParser(s)
	p.Feed(0x1B)
	p.Feed('Y')
	p.Feed(byte(5 + 0x20))
	p.Feed(byte(10 + 0x20))
	row, col := s.Cursor()
	if row != 5 || col != 10 {
		t.Errorf("expected cursor at (5,10), got (%d,%d)", row, col)
	}
}

func TestEscKClearsToEndOfLine(t *testing.T) {
	s := NewScreenBuffer()
	p := NewParser(s)
	feedString(p, "ABCDE")
	p.Feed('\r')
	feedString(p, "XY")
	p.Feed(0x1B)
	p.Feed('K')
	if s.Cell(0, 0).Char != 'X' || s.Cell(0, 1).Char != 'Y' {
		t.Errorf("unexpected prefix cleared")
	}
	if s.Cell(0, 2).Char != ' ' {
		t.Errorf("expected rest of line cleared, got %q", s.Cell(0, 2).Char)
	}
}

func TestInsertAndDeleteLine(t *testing.T) {
	s := NewScreenBuffer()
	p := NewParser(s)
	s.setCursor(0, 0)
	s.PutChar('X')
	s.setCursor(0, 0)
	p.Feed(0x1B)
	p.Feed('L')
	if s.Cell(1, 0).Char != 'X' {
		t.Errorf("expected inserted line to push content down, got %q", s.Cell(1, 0).Char)
	}
	p.Feed(0x1B)
	p.Feed('M')
	if s.Cell(0, 0).Char != 'X' {
		t.Errorf("expected delete line to pull content back up")
	}
}

func TestEscJKSaveAndRestoreCursor(t *testing.T) {
	s := NewScreenBuffer()
	p := NewParser(s)
	s.setCursor(3, 7)
	p.Feed(0x1B)
	p.Feed('j')
	s.setCursor(10, 20)
	p.Feed(0x1B)
	p.Feed('k')
	row, col := s.Cursor()
	if row != 3 || col != 7 {
		t.Errorf("expected cursor restored to (3,7), got (%d,%d)", row, col)
	}
}

func TestEscPQTogglesReverseAttribute(t *testing.T) {
	s := NewScreenBuffer()
	p := NewParser(s)
	p.Feed(0x1B)
	p.Feed('p')
	p.Feed('A')
	if s.Cell(0, 0).Attr&AttrReverse == 0 {
		t.Errorf("expected reverse attribute set after ESC p")
	}
	p.Feed(0x1B)
	p.Feed('q')
	p.Feed('B')
	if s.Cell(0, 1).Attr&AttrReverse != 0 {
		t.Errorf("expected reverse attribute cleared after ESC q")
	}
}

func TestEscEFTogglesCursorHidden(t *testing.T) {
	s := NewScreenBuffer()
	p := NewParser(s)
	p.Feed(0x1B)
	p.Feed('f')
	if !s.cursorHidden {
		t.Errorf("expected cursor hidden after ESC f")
	}
	p.Feed(0x1B)
	p.Feed('e')
	if s.cursorHidden {
		t.Errorf("expected cursor shown after ESC e")
	}
}

func TestEscZQueuesIdentifyReply(t *testing.T) {
	s := NewScreenBuffer()
	p := NewParser(s)
	p.Feed(0x1B)
	p.Feed('Z')
	reply := p.TakeReply()
	if string(reply) != "\x1B/K" {
		t.Errorf("expected ESC / K identify reply, got %q", reply)
	}
	if more := p.TakeReply(); len(more) != 0 {
		t.Errorf("expected reply buffer drained after TakeReply")
	}
}

func TestEscAltKeypadFlagRecordedOnly(t *testing.T) {
	s := NewScreenBuffer()
	p := NewParser(s)
	p.Feed(0x1B)
	p.Feed('=')
	if !s.altKeypad {
		t.Errorf("expected altKeypad set after ESC =")
	}
	p.Feed(0x1B)
	p.Feed('>')
	if s.altKeypad {
		t.Errorf("expected altKeypad cleared after ESC >")
	}
}

func TestSetStatusFormatsIndicatorsIndependentlyOfGrid(t *testing.T) {
	s := NewScreenBuffer()
	s.TakeDirty()
	s.SetStatus(true, false, true)
	if s.StatusLine() == "" {
		t.Fatalf("expected a non-empty status line")
	}
	if s.Cell(0, 0).Char != ' ' {
		t.Errorf("expected SetStatus to leave the application grid untouched")
	}
	if r := s.TakeDirty(); r != nil {
		t.Errorf("expected SetStatus not to mark the cell grid dirty, got %+v", r)
	}
}

func TestTakeDirtyClearsAfterRead(t *testing.T) {
	s := NewScreenBuffer()
	s.TakeDirty()
	s.PutChar('A')
	if r := s.TakeDirty(); r == nil {
		t.Errorf("expected a dirty rect after writing a char")
	}
	if r := s.TakeDirty(); r != nil {
		t.Errorf("expected dirty rect to clear after being taken, got %+v", r)
	}
}
