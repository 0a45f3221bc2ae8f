package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vovakirdan/pipeshot/internal/config"
)

// newFileLogger returns a logger writing to a rotating file, for commands
// that own the terminal. Close the returned closer on exit.
func newFileLogger() (*log.Logger, io.Closer) {
	path := flagLogFile
	if path == "" {
		path = filepath.Join(config.HomeDir(), "pipeshot.log")
	}

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}
	return newLogger(sink), sink
}

// newStderrLogger returns a logger for headless commands.
func newStderrLogger() *log.Logger {
	return newLogger(os.Stderr)
}

func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pipeshot",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
