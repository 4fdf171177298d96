package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
	CRITICAL
)

func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a command-line level name to a LogLevel. Unknown names
// fall back to INFO.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TRACE
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "critical":
		return CRITICAL
	default:
		return INFO
	}
}

// sink is shared by a logger and every child created with Named.
type sink struct {
	mu       sync.Mutex
	minLevel LogLevel
	file     *os.File
	mirror   io.Writer
}

// Logger is a levelled printf-style logger. A nil *Logger discards
// everything, so components can be built without one in tests.
type Logger struct {
	out    *sink
	prefix string
}

func NewFileLogger(filePath string, minLevel LogLevel, alsoStdout bool) (*Logger, error) {
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	s := &sink{minLevel: minLevel, file: f}
	if alsoStdout {
		s.mirror = os.Stdout
	}
	return &Logger{out: s}, nil
}

// NewStdoutLogger logs to stdout only.
func NewStdoutLogger(minLevel LogLevel) *Logger {
	return NewWriterLogger(os.Stdout, minLevel)
}

// NewWriterLogger logs to an arbitrary writer.
func NewWriterLogger(w io.Writer, minLevel LogLevel) *Logger {
	return &Logger{out: &sink{minLevel: minLevel, mirror: w}}
}

// Named returns a child logger that tags each line with component.
func (l *Logger) Named(component string) *Logger {
	if l == nil {
		return nil
	}
	prefix := component
	if l.prefix != "" {
		prefix = l.prefix + "." + component
	}
	return &Logger{out: l.out, prefix: prefix}
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	if l.out.file != nil {
		err := l.out.file.Close()
		l.out.file = nil
		return err
	}
	return nil
}

func (l *Logger) SetMinLevel(level LogLevel) {
	if l == nil {
		return
	}
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	l.out.minLevel = level
}

// Enabled reports whether a message at level would be written.
func (l *Logger) Enabled(level LogLevel) bool {
	if l == nil {
		return false
	}
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	return level >= l.out.minLevel
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if l == nil {
		return
	}
	s := l.out
	s.mu.Lock()
	defer s.mu.Unlock()

	if level < s.minLevel {
		return
	}

	ts := time.Now().Format(time.RFC3339Nano)
	body := fmt.Sprintf(msg, args...)
	var line string
	if l.prefix != "" {
		line = fmt.Sprintf("%s [%s] %s: %s\n", ts, level, l.prefix, body)
	} else {
		line = fmt.Sprintf("%s [%s] %s\n", ts, level, body)
	}

	if s.file != nil {
		_, _ = s.file.WriteString(line)
		_ = s.file.Sync()
	}
	if s.mirror != nil {
		_, _ = io.WriteString(s.mirror, line)
	}
}

func (l *Logger) Trace(msg string, args ...any)    { l.log(TRACE, msg, args...) }
func (l *Logger) Debug(msg string, args ...any)    { l.log(DEBUG, msg, args...) }
func (l *Logger) Info(msg string, args ...any)     { l.log(INFO, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)     { l.log(WARN, msg, args...) }
func (l *Logger) Error(msg string, args ...any)    { l.log(ERROR, msg, args...) }
func (l *Logger) Critical(msg string, args ...any) { l.log(CRITICAL, msg, args...) }
