package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Level is the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the human-readable tag for the level (e.g. "DEBUG").
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
	default:
		return "INFO"
	}
}

// ParseLevel converts a level name to a Level. Unrecognised strings
// default to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a thread-safe, level-filtered logger that appends timestamped
// lines to a file and optionally mirrors them to stderr. The file is rotated
// once it grows past its size threshold.
//
// A nil *Logger is valid and discards everything.
type Logger struct {
	mu        sync.Mutex
	filePath  string
	file      *os.File
	logger    *log.Logger
	level     atomic.Int32
	maxBytes  int64
	toConsole bool
}

// NewLogger opens (or creates) the log file at path, creating its parent
// directory if needed. rotationMB is the maximum file size in megabytes
// before rotation occurs.
func NewLogger(path string, level string, rotationMB int, toConsole bool) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: mkdir %s: %w", filepath.Dir(path), err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}

	l := &Logger{
		filePath:  path,
		file:      f,
		logger:    log.New(f, "", 0),
		maxBytes:  int64(rotationMB) * 1024 * 1024,
		toConsole: toConsole,
	}
	l.level.Store(int32(ParseLevel(level)))
	return l, nil
}

// Path returns the file the logger writes to.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.filePath
}

func (l *Logger) Debug(msg string, args ...any) { l.Log(LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.Log(LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.Log(LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.Log(LevelError, msg, args...) }

// Log writes msg at lvl. msg is treated as a format string only when args
// are supplied.
func (l *Logger) Log(lvl Level, msg string, args ...any) {
	if l == nil || lvl < Level(l.level.Load()) {
		return
	}

	text := msg
	if len(args) > 0 {
		text = fmt.Sprintf(msg, args...)
	}

	line := time.Now().Format(time.RFC3339) + " [" + lvl.String() + "] " + text

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	l.checkRotate()

	l.logger.Output(0, line)

	if l.toConsole {
		fmt.Fprintln(os.Stderr, line)
	}
}

// checkRotate rotates the file once it exceeds the threshold. Must be
// called with l.mu held.
func (l *Logger) checkRotate() {
	info, err := l.file.Stat()
	if err != nil || info.Size() < l.maxBytes {
		return
	}

	if err := rotate(l.filePath, maxBackups); err != nil {
		fmt.Fprintf(os.Stderr, "logging: rotation failed: %v\n", err)
		return
	}

	f, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: reopen after rotation failed: %v\n", err)
		return
	}

	old := l.file
	l.file = f
	l.logger.SetOutput(f)
	old.Close()
}

// Close closes the underlying log file. Further writes are dropped.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
