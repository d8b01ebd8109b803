// Copyright (c) 2016, 2018 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"

	"github.com/ltp456/uwallet/app"
	"github.com/ltp456/uwallet/libwallet"
	libutils "github.com/ltp456/uwallet/libwallet/utils"
	"github.com/ltp456/uwallet/libwallet/walletdata"
	"github.com/ltp456/uwallet/logger"
	"github.com/ltp456/uwallet/ui"
	"github.com/ltp456/uwallet/ui/activity"
	"github.com/ltp456/uwallet/ui/load"
)

// logWriter implements an io.Writer that outputs to both standard output and
// the write-end pipe of an initialized log rotator.
type logWriter struct{}

// Write writes the data in p to standard out and the log rotator.
func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if logRotator == nil {
		return len(p), nil
	}
	return logRotator.Write(p)
}

// Loggers per subsystem.  A single backend logger is created and all subsytem
// loggers created from it will write to the backend.  When adding new
// subsystems, add the subsystem logger variable here and to the
// subsystemLoggers map.
//
// Loggers can not be used before the log rotator has been initialized with a
// log file.  This must be performed early during application startup by calling
// initLogRotator.
var (
	// backendLog is the logging backend used to create all subsystem loggers.
	backendLog = slog.NewBackend(logWriter{})

	// logRotator is one of the logging outputs.  It should be closed on
	// application shutdown.
	logRotator *rotator.Rotator

	log     = backendLog.Logger("UWLT")
	appLog  = backendLog.Logger("APP")
	winLog  = backendLog.Logger("UI")
	loadLog = backendLog.Logger("LOAD")
	libwLog = backendLog.Logger("LIBW")
	wdatLog = backendLog.Logger("WDAT")
)

// Initialize package-global logger variables.
func init() {
	app.UseLogger(appLog)
	ui.UseLogger(winLog)
	activity.UseLogger(winLog)
	load.UseLogger(loadLog)
	libwallet.UseLogger(libwLog)
	walletdata.UseLogger(wdatLog)

	logger.New(subsystemLoggers)
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]slog.Logger{
	"UWLT": log,
	"APP":  appLog,
	"UI":   winLog,
	"LOAD": loadLog,
	"LIBW": libwLog,
	"WDAT": wdatLog,
}

// initLogRotator initializes the logging rotater to write logs to logFile and
// create roll files in the same directory.  It must be called before the
// package-global log rotater variables are used.
func initLogRotator(logFile string, maxRolls int) {
	logDir, _ := filepath.Split(logFile)
	err := os.MkdirAll(logDir, libutils.UserFilePerm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
		os.Exit(1)
	}
	r, err := rotator.New(logFile, 32*1024, false, maxRolls)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create file rotator: %v\n", err)
		os.Exit(1)
	}

	logRotator = r
}
