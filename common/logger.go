package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Severity represents log message severity levels
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity maps a level name (case-insensitive) to a Severity.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return SeverityDebug, nil
	case "info", "":
		return SeverityInfo, nil
	case "warn", "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Logger is the logging contract used by the extractor, printers and tools.
type Logger interface {
	// Log logs a message with the specified severity
	Log(severity Severity, msg string)

	// Logf logs a formatted message with the specified severity
	Logf(severity Severity, format string, args ...interface{})

	// Error logs an error
	Error(err error)

	Debug(msg string)
	Info(msg string)
	Warning(msg string)
}

// StdLogger writes every severity to a single writer through the standard
// log package. Dump and diff text goes to stdout, so tools point this at stderr.
type StdLogger struct {
	loggers  [SeverityError + 1]*log.Logger
	minLevel Severity
}

// NewStdLogger creates a logger writing to stderr.
func NewStdLogger(minLevel Severity) *StdLogger {
	return NewStdLoggerWithWriter(os.Stderr, minLevel)
}

// NewStdLoggerWithWriter creates a logger writing to w.
func NewStdLoggerWithWriter(w io.Writer, minLevel Severity) *StdLogger {
	l := &StdLogger{minLevel: minLevel}
	for s := SeverityDebug; s <= SeverityError; s++ {
		flags := log.Ltime
		if s == SeverityDebug {
			flags |= log.Lshortfile
		}
		l.loggers[s] = log.New(w, s.String()+": ", flags)
	}
	return l
}

// MinLevel returns the lowest severity that is written.
func (l *StdLogger) MinLevel() Severity {
	return l.minLevel
}

func (l *StdLogger) Log(severity Severity, msg string) {
	l.output(2, severity, msg)
}

func (l *StdLogger) Logf(severity Severity, format string, args ...interface{}) {
	if severity < l.minLevel {
		return
	}
	l.output(2, severity, fmt.Sprintf(format, args...))
}

func (l *StdLogger) Error(err error) {
	if err != nil {
		l.output(2, SeverityError, err.Error())
	}
}

func (l *StdLogger) Debug(msg string)   { l.output(2, SeverityDebug, msg) }
func (l *StdLogger) Info(msg string)    { l.output(2, SeverityInfo, msg) }
func (l *StdLogger) Warning(msg string) { l.output(2, SeverityWarning, msg) }

// output writes msg; depth counts the frames between output and the caller
// reported by Lshortfile.
func (l *StdLogger) output(depth int, severity Severity, msg string) {
	if severity < l.minLevel || severity < SeverityDebug || severity > SeverityError {
		return
	}
	l.loggers[severity].Output(depth+1, msg)
}

// NoOpLogger is a logger that doesn't log anything
type NoOpLogger struct{}

// NewNoOpLogger creates a new no-op logger
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (l *NoOpLogger) Log(severity Severity, msg string)                          {}
func (l *NoOpLogger) Logf(severity Severity, format string, args ...interface{}) {}
func (l *NoOpLogger) Error(err error)                                            {}
func (l *NoOpLogger) Debug(msg string)                                           {}
func (l *NoOpLogger) Info(msg string)                                            {}
func (l *NoOpLogger) Warning(msg string)                                         {}

// OrNoOp returns l, or a NoOpLogger when l is nil.
func OrNoOp(l Logger) Logger {
	if l == nil {
		return NewNoOpLogger()
	}
	return l
}
