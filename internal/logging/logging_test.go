/*
 * S370 - logging handler test cases.
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

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandleWritesToFileBuffer(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil, false)
	logger := slog.New(h)
	logger.Info("station attached", "addr", 3)
	if !strings.Contains(buf.String(), "station attached") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "addr=3") {
		t.Errorf("expected attr rendered, got %q", buf.String())
	}
}

func TestLogPathSwitchesOnDaemonize(t *testing.T) {
	if LogPath(false) != "debug.log" {
		t.Errorf("expected foreground log path debug.log, got %q", LogPath(false))
	}
	if LogPath(true) != "/tmp/debug.log" {
		t.Errorf("expected daemon log path /tmp/debug.log, got %q", LogPath(true))
	}
}
