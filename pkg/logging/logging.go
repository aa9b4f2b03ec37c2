// Package logging provides a small slog-backed logger with two output modes:
// plain handler output for CLI commands, and a buffered channel of LogEntry
// values that the dashboard drains into its devtools overlay.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

// LogLevel defines the severity of a log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy fmt.Stringer.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogEntry is the structured entry delivered to the dashboard.
type LogEntry struct {
	Timestamp time.Time
	Level     LogLevel
	Subsystem string
	Message   string
	Err       error
}

var (
	defaultLogger *slog.Logger
	filterLevel   LogLevel
	tuiChannel    chan LogEntry
	tuiMode       bool
	dropped       atomic.Int64
)

const tuiChannelBufferSize = 1024

// InitForTUI switches the logger to channel mode. The returned channel is
// drained by the dashboard; entries that arrive while the buffer is full are
// dropped rather than blocking the caller. An optional debugOut (e.g. a log
// file opened with --debug) additionally receives every entry as text.
func InitForTUI(level LogLevel, debugOut io.Writer) <-chan LogEntry {
	tuiMode = true
	filterLevel = level
	tuiChannel = make(chan LogEntry, tuiChannelBufferSize)
	if debugOut != nil {
		defaultLogger = slog.New(slog.NewTextHandler(debugOut, &slog.HandlerOptions{Level: level.SlogLevel()}))
	} else {
		defaultLogger = nil
	}
	return tuiChannel
}

// InitForCLI writes text log lines to output, for non-dashboard commands.
func InitForCLI(level LogLevel, output io.Writer) {
	tuiMode = false
	filterLevel = level
	defaultLogger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level.SlogLevel()}))
	slog.SetDefault(defaultLogger)
}

// Dropped reports how many entries were discarded because the dashboard fell
// behind draining the channel.
func Dropped() int64 {
	return dropped.Load()
}

func logInternal(level LogLevel, subsystem string, err error, format string, args ...interface{}) {
	if level < filterLevel {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	if defaultLogger != nil {
		attrs := []slog.Attr{slog.String("subsystem", subsystem)}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		defaultLogger.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
	}

	if !tuiMode {
		return
	}
	if tuiChannel == nil {
		fmt.Fprintf(os.Stderr, "%s [%s] %s: %s\n", time.Now().Format(time.RFC3339), level, subsystem, msg)
		return
	}
	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Subsystem: subsystem,
		Message:   msg,
		Err:       err,
	}
	select {
	case tuiChannel <- entry:
	default:
		dropped.Add(1)
	}
}

// Debug logs a debug message.
func Debug(subsystem string, format string, args ...interface{}) {
	logInternal(LevelDebug, subsystem, nil, format, args...)
}

// Info logs an informational message.
func Info(subsystem string, format string, args ...interface{}) {
	logInternal(LevelInfo, subsystem, nil, format, args...)
}

// Warn logs a warning message.
func Warn(subsystem string, format string, args ...interface{}) {
	logInternal(LevelWarn, subsystem, nil, format, args...)
}

// Error logs an error message.
func Error(subsystem string, err error, format string, args ...interface{}) {
	logInternal(LevelError, subsystem, err, format, args...)
}

// CloseTUIChannel closes the dashboard channel on shutdown.
func CloseTUIChannel() {
	if tuiChannel != nil {
		close(tuiChannel)
		tuiChannel = nil
	}
}
