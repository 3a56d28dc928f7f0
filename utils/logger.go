package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Level is a log severity threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a level name (case-insensitive) to a Level. Unknown
// names fall back to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides structured, leveled logging throughout the application.
// Messages below the configured minimum level are dropped. When a log
// file is configured, every message is mirrored there without ANSI codes.
type Logger struct {
	min   Level
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
	debug *log.Logger
	file  *os.File
	plain *log.Logger
}

// NewLogger creates a Logger writing to stdout/stderr at INFO level.
func NewLogger() *Logger {
	flags := 0
	return &Logger{
		min:   LevelInfo,
		info:  log.New(os.Stdout, "", flags),
		warn:  log.New(os.Stdout, "", flags),
		err:   log.New(os.Stderr, "", flags),
		debug: log.New(os.Stdout, "", flags),
	}
}

// NewLoggerWith creates a Logger with a minimum level and an optional
// log file (empty path disables file logging). Intermediate directories
// are created automatically.
func NewLoggerWith(min Level, logFile string) (*Logger, error) {
	l := NewLogger()
	l.min = min

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return nil, fmt.Errorf("logger: create log dir: %w", err)
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file %q: %w", logFile, err)
		}
		l.file = f
		l.plain = log.New(f, "", 0)
	}
	return l, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) mirror(level, format string, args ...any) {
	if l.plain != nil {
		l.plain.Printf(fmt.Sprintf("[%s] %-5s %s", l.timestamp(), level, format), args...)
	}
}

func (l *Logger) Info(format string, args ...any) {
	if l.min > LevelInfo {
		return
	}
	l.info.Printf(fmt.Sprintf("[%s] \033[32mINFO\033[0m  %s\n", l.timestamp(), format), args...)
	l.mirror("INFO", format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	if l.min > LevelWarn {
		return
	}
	l.warn.Printf(fmt.Sprintf("[%s] \033[33mWARN\033[0m  %s\n", l.timestamp(), format), args...)
	l.mirror("WARN", format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Printf(fmt.Sprintf("[%s] \033[31mERROR\033[0m %s\n", l.timestamp(), format), args...)
	l.mirror("ERROR", format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if l.min > LevelDebug {
		return
	}
	l.debug.Printf(fmt.Sprintf("[%s] \033[36mDEBUG\033[0m %s\n", l.timestamp(), format), args...)
	l.mirror("DEBUG", format, args...)
}
