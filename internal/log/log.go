package log

import (
	"io"
	"log"
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString parses a level name. Unknown names fall back to INFO and
// report ok=false so callers can warn about the typo.
func LevelFromString(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarn, true
	case "ERROR":
		return LevelError, true
	case "NONE", "OFF":
		return LevelNone, true
	default:
		return LevelInfo, false
	}
}

// Logger writes level-prefixed lines. A Logger derived with Tag shares the
// parent's output and level.
type Logger struct {
	shared *shared
	tag    string
}

type shared struct {
	mu     sync.RWMutex
	logger *log.Logger
	level  Level
}

func New(out io.Writer, level Level) *Logger {
	return &Logger{shared: &shared{
		logger: log.New(out, "", log.Ltime|log.Lmicroseconds),
		level:  level,
	}}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger { return New(io.Discard, LevelNone) }

// Tag returns a logger whose lines carry a "[TAG] " component prefix.
func (l *Logger) Tag(tag string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{shared: l.shared, tag: "[" + tag + "] "}
}

func (l *Logger) printf(level Level, format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.shared.mu.RLock()
	enabled := l.shared.level <= level
	l.shared.mu.RUnlock()
	if !enabled {
		return
	}
	l.shared.logger.Printf(level.String()+": "+l.tag+format, v...)
}

func (l *Logger) Debugf(format string, v ...interface{}) { l.printf(LevelDebug, format, v...) }

func (l *Logger) Infof(format string, v ...interface{}) { l.printf(LevelInfo, format, v...) }

func (l *Logger) Warnf(format string, v ...interface{}) { l.printf(LevelWarn, format, v...) }

func (l *Logger) Errorf(format string, v ...interface{}) { l.printf(LevelError, format, v...) }

func (l *Logger) SetLevel(level Level) {
	if l == nil {
		return
	}
	l.shared.mu.Lock()
	l.shared.level = level
	l.shared.mu.Unlock()
}

func (l *Logger) Level() Level {
	l.shared.mu.RLock()
	defer l.shared.mu.RUnlock()
	return l.shared.level
}
