// Package logging provides pre-configured logrus loggers for grove-progress
// components.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-progress/config"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// NewLogger creates and returns a pre-configured logger for a specific
// component. It uses a singleton pattern per component to avoid
// re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()

	cwd, _ := os.Getwd()
	logCfg := config.Default().Logging
	if cfg, err := config.LoadFrom(cwd); err == nil {
		logCfg = cfg.Logging
	}

	// Configure Level
	levelStr := logCfg.Level
	if env := os.Getenv("GROVE_PROGRESS_LOG_LEVEL"); env != "" {
		levelStr = env
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Configure Formatter
	if logCfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&TextFormatter{})
	}

	// Configure Output Sinks. Hooks run inside agent tool invocations where
	// stderr noise pollutes the transcript, so the console sink is only
	// attached on a real terminal.
	var writers []io.Writer
	if isatty.IsTerminal(os.Stderr.Fd()) {
		writers = append(writers, os.Stderr)
	}

	if logCfg.File && cwd != "" {
		dateStr := time.Now().Format("2006-01-02")
		logFilePath := filepath.Join(cwd, ".grove", "logs", fmt.Sprintf("%s-%s.log", component, dateStr))
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err == nil {
			file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err == nil {
				writers = append(writers, file)
			} else {
				logger.Warnf("Failed to open log file %s: %v", logFilePath, err)
			}
		}
	}

	if len(writers) == 0 {
		logger.SetOutput(io.Discard)
	} else {
		logger.SetOutput(io.MultiWriter(writers...))
	}

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}
