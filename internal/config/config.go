/*
 * five250d - station configuration parsing.
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

// Package config parses the command-line station specifications and
// assembles the RuntimeConfig the scheduler is built from, the twinax
// bridge's equivalent of the emulator's device configuration lines.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcornwell/five250d/internal/station"
)

// StationSpec is one parsed positional argument: addr[:dict[:poll[:codepage]]].
type StationSpec struct {
	Addr     uint8
	Dict     string
	Cadence  station.Cadence
	Codepage string
}

const (
	defaultDict     = "5250_US"
	defaultCodepage = "cp037"
)

var cadenceNames = map[string]station.Cadence{
	"normal":   station.CadenceNormal,
	"slow":     station.CadenceSlow,
	"veryslow": station.CadenceVerySlow,
}

// ParseStationSpec parses one positional "addr[:dict[:poll[:codepage]]]"
// argument, filling in the defaults the bare minimum form ("addr" or
// "addr:dict") leaves unspecified.
func ParseStationSpec(arg string) (StationSpec, error) {
	fields := strings.Split(arg, ":")
	if len(fields) == 0 || len(fields) > 4 {
		return StationSpec{}, fmt.Errorf("config: malformed station spec %q", arg)
	}

	addr64, err := strconv.ParseUint(fields[0], 10, 8)
	if err != nil || addr64 > 6 {
		return StationSpec{}, fmt.Errorf("config: station address must be 0-6, got %q", fields[0])
	}

	spec := StationSpec{
		Addr:     uint8(addr64),
		Dict:     defaultDict,
		Cadence:  station.CadenceNormal,
		Codepage: defaultCodepage,
	}

	if len(fields) > 1 && fields[1] != "" {
		spec.Dict = fields[1]
	}
	if len(fields) > 2 && fields[2] != "" {
		cadence, ok := cadenceNames[strings.ToLower(fields[2])]
		if !ok {
			return StationSpec{}, fmt.Errorf("config: unknown poll cadence %q", fields[2])
		}
		spec.Cadence = cadence
	}
	if len(fields) > 3 && fields[3] != "" {
		spec.Codepage = fields[3]
	}
	return spec, nil
}

// RuntimeConfig is the fully resolved set of options the scheduler and its
// entrypoint need to start: every configured station plus the global
// switches carried on the command line.
type RuntimeConfig struct {
	Stations      []StationSpec
	SerialDevice  string
	SerialBaud    int
	KeyClickSilent bool
	LogFrames     bool
	LogScancodes  bool
	LogPTYIO      bool
	Daemonize     bool
	LoginShell    bool
	AdminTCPPort  int    // 0 disables
	AdminSocket   string // "" disables
}

// DefaultSerialBaud matches the firmware's fixed 57600 8N1 link rate.
const DefaultSerialBaud = 57600

// New returns a RuntimeConfig with the serial baud rate defaulted and no
// stations configured; the caller appends parsed StationSpecs and flags.
func New(serialDevice string) RuntimeConfig {
	return RuntimeConfig{
		SerialDevice: serialDevice,
		SerialBaud:   DefaultSerialBaud,
	}
}

// Validate reports a config error if any two stations share an address, the
// way a duplicate device address is rejected at config-load time.
func (c RuntimeConfig) Validate() error {
	if c.SerialDevice == "" {
		return fmt.Errorf("config: serial device not set (-t DEVICE required)")
	}
	seen := make(map[uint8]bool, len(c.Stations))
	for _, s := range c.Stations {
		if seen[s.Addr] {
			return fmt.Errorf("config: duplicate station address %d", s.Addr)
		}
		seen[s.Addr] = true
	}
	return nil
}
