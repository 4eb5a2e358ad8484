package log

import (
	"io"
	"log"
	"strings"
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

// LevelFromString parses a level name. Unknown names map to INFO so a typo
// in a config file doesn't flood the console with per-frame debug output.
func LevelFromString(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Logger is a leveled printf logger. Tagged loggers share the parent's level,
// so SetLevel on the root affects every component.
type Logger struct {
	logger *log.Logger
	level  *Level
	tag    string
}

func New(out io.Writer, level Level) *Logger {
	lv := level
	return &Logger{
		logger: log.New(out, "", 0), // No prefix, handled by format string
		level:  &lv,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger { return New(io.Discard, LevelNone) }

// Tagged returns a logger that prefixes every line with "[tag] ".
func (l *Logger) Tagged(tag string) *Logger {
	return &Logger{logger: l.logger, level: l.level, tag: "[" + tag + "] "}
}

func (l *Logger) printf(prefix, format string, v ...interface{}) {
	l.logger.Printf(prefix+l.tag+format, v...)
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	if *l.level <= LevelDebug {
		l.printf("DEBUG: ", format, v...)
	}
}

func (l *Logger) Infof(format string, v ...interface{}) {
	if *l.level <= LevelInfo {
		l.printf("INFO: ", format, v...)
	}
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	if *l.level <= LevelWarn {
		l.printf("WARN: ", format, v...)
	}
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	if *l.level <= LevelError {
		l.printf("ERROR: ", format, v...)
	}
}

func (l *Logger) SetLevel(level Level) {
	*l.level = level
}

func (l *Logger) Level() Level {
	return *l.level
}
