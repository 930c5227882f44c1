/*
 * five250d - mask-gated debug trace sink.
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

// Package debuglog writes mask-gated trace lines for the three categories
// the CLI can enable independently: serial frames (-c), scancodes (-k), and
// PTY I/O (-i). Nothing is written unless the matching bit is set, so the
// hot path costs one branch when tracing is off.
package debuglog

import (
	"fmt"
	"os"
	"strconv"
)

const (
	Frame    = 1 << iota // raw serial frame bytes
	Scancode              // decoded keyboard scancodes
	PTYio                 // bytes crossing the PTY in either direction
)

var (
	logFile *os.File
	mask    int
)

// Open creates (truncating) the trace file and enables the given mask.
func Open(fileName string, enabled int) error {
	if logFile != nil {
		return fmt.Errorf("debuglog: trace file %s already open", logFile.Name())
	}
	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("debuglog: unable to create %s: %w", fileName, err)
	}
	logFile = f
	mask = enabled
	return nil
}

// Close releases the trace file, if one was opened.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Framef traces one serial frame event when Frame tracing is enabled.
func Framef(format string, a ...any) {
	if mask&Frame != 0 && logFile != nil {
		fmt.Fprintf(logFile, "frame: "+format+"\n", a...)
	}
}

// Scancodef traces one station's decoded scancode when Scancode tracing is
// enabled.
func Scancodef(addr uint8, format string, a ...any) {
	if mask&Scancode != 0 && logFile != nil {
		fmt.Fprintf(logFile, "station "+strconv.Itoa(int(addr))+": "+format+"\n", a...)
	}
}

// PTYf traces one station's PTY byte traffic when PTYio tracing is enabled.
func PTYf(addr uint8, format string, a ...any) {
	if mask&PTYio != 0 && logFile != nil {
		fmt.Fprintf(logFile, "pty "+strconv.Itoa(int(addr))+": "+format+"\n", a...)
	}
}
