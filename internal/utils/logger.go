package utils

import (
	"fmt"
	"log"
	"os"
)

// Logger is a custom logger type
type Logger struct {
	file   *os.File
	logger *log.Logger
}

// NewLogger creates a new logger instance writing to the given file path.
// An empty path logs to stderr.
func NewLogger(filePath string) (*Logger, error) {
	if filePath == "" {
		return &Logger{logger: log.New(os.Stderr, "", log.LstdFlags)}, nil
	}
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.New(file, "", log.LstdFlags)

	return &Logger{
		file:   file,
		logger: logger,
	}, nil
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	l.logger.SetPrefix("INFO: ")
	l.logger.Println(msg)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) {
	l.logger.SetPrefix("WARN: ")
	l.logger.Println(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	l.logger.SetPrefix("ERROR: ")
	l.logger.Println(msg)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

// Close closes the log file
func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
	}
}
