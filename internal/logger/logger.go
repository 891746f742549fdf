package logger

import (
	"fmt"
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

func (lv Level) String() string {
	switch lv {
	case LevelDebug:
		return "Debug"
	case LevelInfo:
		return "Info"
	case LevelWarn:
		return "Warn"
	case LevelError:
		return "Error"
	case LevelNone:
		return "None"
	default:
		return "Unknown"
	}
}

// ParseLevel falls back to LevelInfo for unknown names.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "none":
		return LevelNone
	default:
		return LevelInfo
	}
}

type Logger struct {
	l      *log.Logger
	level  Level
	prefix string
}

func New(l *log.Logger) *Logger {
	return &Logger{l: l, level: LevelInfo}
}

// WithLevel returns a copy of the logger that drops messages below level.
func (l *Logger) WithLevel(level Level) *Logger {
	return &Logger{l: l.l, level: level, prefix: l.prefix}
}

// WithPrefix returns a copy of the logger whose messages start with [prefix].
// Prefixes nest: "conn_1" then "book" gives [conn_1:book].
func (l *Logger) WithPrefix(prefix string) *Logger {
	if l.prefix != "" {
		prefix = l.prefix + ":" + prefix
	}

	return &Logger{l: l.l, level: l.level, prefix: prefix}
}

func (l *Logger) LogErrorf(format string, v ...any) {
	l.print(LevelError, format, v...)
}

func (l *Logger) LogWarnf(format string, v ...any) {
	l.print(LevelWarn, format, v...)
}

func (l *Logger) LogInfo(format string, v ...any) {
	l.print(LevelInfo, format, v...)
}

func (l *Logger) LogDebug(format string, v ...any) {
	l.print(LevelDebug, format, v...)
}

func (l *Logger) print(level Level, format string, v ...any) {
	if level < l.level || l.level == LevelNone {
		return
	}

	msg := fmt.Sprintf(format, v...)
	if l.prefix != "" {
		msg = "[" + l.prefix + "] " + msg
	}

	l.l.Printf("[%s]: %s\n", level, msg)
}
