/*
 * five250d - Main process.
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

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/five250d/internal/config"
	"github.com/rcornwell/five250d/internal/console"
	"github.com/rcornwell/five250d/internal/debuglog"
	"github.com/rcornwell/five250d/internal/logging"
	"github.com/rcornwell/five250d/internal/scheduler"
	"github.com/rcornwell/five250d/internal/wire"
)

func main() {
	optDevice := getopt.StringLong("device", 't', "", "Serial device path")
	optSilent := getopt.BoolLong("silent", 's', "Record keyboard clicker as silent (no clicker command is sent)")
	optFrameLog := getopt.BoolLong("log-frames", 'c', "Log serial frames")
	optScanLog := getopt.BoolLong("log-scancodes", 'k', "Log decoded scancodes")
	optPTYLog := getopt.BoolLong("log-pty", 'i', "Log PTY I/O")
	optDaemon := getopt.BoolLong("daemonize", 'd', "Daemon logging: write /tmp/debug.log (the process does not detach)")
	optTCPPort := getopt.IntLong("admin-tcp", 'p', 0, "Admin TCP port (recorded only; no listener is opened)")
	optSocket := getopt.StringLong("admin-socket", 'u', "", "Admin Unix socket path (recorded only; no listener is opened)")
	optLogin := getopt.BoolLong("login", 'l', "Start a full login shell per session")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	logFile, err := logging.Open(*optDaemon)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.Info("five250d starting")

	traceMask := 0
	if *optFrameLog {
		traceMask |= debuglog.Frame
	}
	if *optScanLog {
		traceMask |= debuglog.Scancode
	}
	if *optPTYLog {
		traceMask |= debuglog.PTYio
	}
	if traceMask != 0 {
		if err := debuglog.Open(logging.LogPath(*optDaemon)+".trace", traceMask); err != nil {
			slog.Error("failed to open trace file", "error", err)
			os.Exit(1)
		}
		defer debuglog.Close()
	}

	rt := config.New(*optDevice)
	rt.KeyClickSilent = *optSilent
	rt.LogFrames = *optFrameLog
	rt.LogScancodes = *optScanLog
	rt.LogPTYIO = *optPTYLog
	rt.Daemonize = *optDaemon
	rt.LoginShell = *optLogin
	rt.AdminTCPPort = *optTCPPort
	rt.AdminSocket = *optSocket

	for _, arg := range getopt.Args() {
		spec, err := config.ParseStationSpec(arg)
		if err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		rt.Stations = append(rt.Stations, spec)
	}

	if err := rt.Validate(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	port, err := wire.Open(rt.SerialDevice, rt.SerialBaud)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(2)
	}

	shell := "/bin/sh"
	shellArgs := []string(nil)
	if rt.LoginShell {
		shell = loginShellPath()
		shellArgs = []string{"-l"}
	}

	configs := make([]scheduler.StationConfig, 0, len(rt.Stations))
	for _, spec := range rt.Stations {
		configs = append(configs, scheduler.StationConfig{
			Addr:       spec.Addr,
			Cadence:    spec.Cadence,
			Dictionary: spec.Dict,
			Codepage:   spec.Codepage,
			Shell:      shell,
			ShellArgs:  shellArgs,
			Term:       "5250con",
			Terminfo:   os.Getenv("TERMINFO"),
		})
	}

	sched := scheduler.New(port, configs)

	go sched.Run()

	console.Reader(sched)

	slog.Info("five250d stopped")
}

// loginShellPath returns the invoking user's shell, falling back to a
// reasonable default outside a login environment.
func loginShellPath() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}
