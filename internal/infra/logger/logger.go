package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger implements impls.Logger, writing timestamped leveled lines to
// stdout and, when a log directory is configured, to orchestrator.log.
type Logger struct {
	mu   sync.Mutex
	out  io.Writer
	file *os.File
}

func New(logDir string) *Logger {
	l := &Logger{out: os.Stdout}
	if logDir == "" {
		return l
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return l
	}
	f, err := os.OpenFile(filepath.Join(logDir, "orchestrator.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return l
	}
	l.file = f
	return l
}

func (l *Logger) Info(msg string, args ...any) {
	l.write("INFO", msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.write("WARN", msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.write("ERROR", msg, args...)
}

func (l *Logger) write(level, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] %s: %s\n", timestamp, level, fmt.Sprintf(msg, args...))
	fmt.Fprint(l.out, line)
	if l.file != nil {
		fmt.Fprint(l.file, line)
		_ = l.file.Sync()
	}
}
