// Package logger provides a colored, prefixed line logger.
package logger

import (
	"errors"
	"io"
	"log"
	"strings"
)

const (
	errorColor   = "\033[31m"
	infoColor    = "\033[32m"
	warningColor = "\033[33m"
	colorReset   = "\033[0m"
)

var ErrEmptyPrefix = errors.New("logger prefix must not be empty")

// Logger writes "[PREFIX] [LEVEL] message" lines, coloring the prefix and
// the level.
type Logger struct {
	out    *log.Logger
	prefix string
}

// New creates a Logger writing to w with the given prefix and prefix color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}
	return &Logger{
		out:    log.New(w, "", log.LstdFlags),
		prefix: color + "[" + prefix + "]" + colorReset,
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write(infoColor, "INFO", msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.write(warningColor, "WARNING", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write(errorColor, "ERROR", msg)
}

func (l *Logger) write(color, level, msg string) {
	l.out.Printf("%s %s[%s]%s %s", l.prefix, color, level, colorReset, msg)
}
