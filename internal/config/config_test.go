/*
 * S370 - station config parser test cases.
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

package config

import (
	"testing"

	"github.com/rcornwell/five250d/internal/station"
)

func TestParseStationSpecBareAddress(t *testing.T) {
	spec, err := ParseStationSpec("3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Addr != 3 || spec.Dict != defaultDict || spec.Cadence != station.CadenceNormal || spec.Codepage != defaultCodepage {
		t.Errorf("unexpected defaults applied: %+v", spec)
	}
}

func TestParseStationSpecFullForm(t *testing.T) {
	spec, err := ParseStationSpec("0:5250_ES:slow:cp037")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Addr != 0 || spec.Dict != "5250_ES" || spec.Cadence != station.CadenceSlow || spec.Codepage != "cp037" {
		t.Errorf("unexpected parse result: %+v", spec)
	}
}

func TestParseStationSpecRejectsOutOfRangeAddress(t *testing.T) {
	if _, err := ParseStationSpec("7"); err == nil {
		t.Errorf("expected error for address 7 (only 0-6 are legal)")
	}
}

func TestParseStationSpecRejectsUnknownCadence(t *testing.T) {
	if _, err := ParseStationSpec("1::turbo"); err == nil {
		t.Errorf("expected error for unknown cadence name")
	}
}

func TestValidateRejectsMissingSerialDevice(t *testing.T) {
	c := New("")
	if err := c.Validate(); err == nil {
		t.Errorf("expected error when no serial device is configured")
	}
}

func TestValidateRejectsDuplicateAddress(t *testing.T) {
	c := New("/dev/ttyUSB0")
	c.Stations = []StationSpec{{Addr: 0}, {Addr: 0}}
	if err := c.Validate(); err == nil {
		t.Errorf("expected error for duplicate station address")
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	c := New("/dev/ttyUSB0")
	c.Stations = []StationSpec{{Addr: 0}, {Addr: 1}}
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
