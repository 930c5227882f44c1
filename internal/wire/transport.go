/*
 * five250d - serial transport.
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

package wire

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tarm/serial"
)

// Port is a newline-framed serial link. It is satisfied by *serial.Port and
// by anything else line oriented, which keeps the station engine testable
// without opening a real device node.
type Port interface {
	io.Writer
	ReadLine() (string, error)
}

// link wraps a github.com/tarm/serial port with line buffering, the way
// the reference firmware's host side reads one record at a time off the
// USB-serial device.
type link struct {
	port *serial.Port
	r    *bufio.Reader
}

// Open opens the named serial device at baud, ready for framed reads and
// writes.
func Open(name string, baud int) (Port, error) {
	cfg := &serial.Config{Name: name, Baud: baud}
	p, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire: open %s: %w", name, err)
	}
	return &link{port: p, r: bufio.NewReader(p)}, nil
}

func (l *link) Write(p []byte) (int, error) {
	return l.port.Write(p)
}

// ReadLine reads one newline-terminated record, stripping the trailing
// carriage return the controller sometimes appends.
func (l *link) ReadLine() (string, error) {
	s, err := l.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s, nil
}
