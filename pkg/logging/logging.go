// Package logging provides a minimal level-gated logger over the
// standard library's log package, configured from config.LogConfig.
// The teacher carries no logging framework in its direct dependencies
// (zap only appears transitively, pulled in by an unrelated dep), and
// uses plain log.Fatal/fmt.Println throughout — this keeps that style
// but makes the level and format in config actually do something.
package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Level orders the severities LogConfig.Level can name.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level, defaulting to Info for
// anything unrecognized.
func ParseLevel(name string) Level {
	switch strings.ToLower(name) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger gates stdlib log output by level and tags each line with its
// severity; in "json" format it emits a one-line JSON object with
// "level" and "msg" fields and no timestamp prefix.
type Logger struct {
	level  Level
	format string
	std    *log.Logger
}

// New builds a Logger from a level name and format ("text" or "json"),
// matching config.LogConfig's json tags.
func New(levelName, format string) *Logger {
	flags := log.LstdFlags
	if format == "json" {
		flags = 0
	}
	return &Logger{
		level:  ParseLevel(levelName),
		format: format,
		std:    log.New(os.Stderr, "", flags),
	}
}

func (l *Logger) emit(level Level, name, msg string) {
	if level < l.level {
		return
	}
	if l.format == "json" {
		l.std.Printf(`{"level":%q,"msg":%q}`, name, msg)
		return
	}
	l.std.Printf("%s %s", strings.ToUpper(name), msg)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.emit(LevelDebug, "debug", fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.emit(LevelInfo, "info", fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.emit(LevelWarn, "warn", fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.emit(LevelError, "error", fmt.Sprintf(format, args...))
}
