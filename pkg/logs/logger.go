package logs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Logger writes structured JSON records through charmbracelet/log.
// A disabled Logger drops everything.
type Logger struct {
	mu      sync.Mutex
	l       *log.Logger
	f       *os.File
	enabled bool
}

// NewFromEnv returns a logger if EDITERAKO_LOG is set to a truthy value
// or if EDITERAKO_LOG_FILE is provided. Otherwise it returns a disabled logger.
// When enabled and no file is specified, it writes to ./editerako.log.
// EDITERAKO_LOG may also name a level (debug, info, warn, error).
func NewFromEnv() *Logger {
	lf := os.Getenv("EDITERAKO_LOG_FILE")
	v := os.Getenv("EDITERAKO_LOG")
	enabled := v != "" && v != "0" && v != "false"
	if lf != "" {
		enabled = true
	}
	if !enabled {
		return Discard()
	}
	if lf == "" {
		lf = filepath.Join(".", "editerako.log")
	}
	return OpenFile(lf, v)
}

// OpenFile returns a logger appending to path. The logger owns the file and
// closes it in Close. If the file cannot be opened, logging is disabled.
func OpenFile(path, level string) *Logger {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return Discard()
	}
	lg := New(f, level)
	lg.f = f
	return lg
}

// New returns an enabled logger writing JSON lines to w at the given level.
// Unknown levels fall back to info.
func New(w io.Writer, level string) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Formatter:       log.JSONFormatter,
	})
	lg := &Logger{l: l, enabled: true}
	lg.SetLevel(level)
	return lg
}

// Discard returns a disabled logger.
func Discard() *Logger { return &Logger{} }

// Enabled reports whether records are written.
func (l *Logger) Enabled() bool { return l != nil && l.enabled }

// SetLevel changes the minimum level. Unknown names select info.
func (l *Logger) SetLevel(level string) {
	if !l.Enabled() {
		return
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	l.l.SetLevel(lvl)
}

// Level returns the current level name, or "off" for a disabled logger.
func (l *Logger) Level() string {
	if !l.Enabled() {
		return "off"
	}
	return l.l.GetLevel().String()
}

// Close closes the underlying file if the logger owns one.
func (l *Logger) Close() {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f != nil {
		_ = l.f.Close()
		l.f = nil
	}
	l.enabled = false
}

// Event writes an info record with the event name and fields.
// Common fields: key, rune, modifiers, action, cursor, buffer_len, file.
func (l *Logger) Event(event string, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kv := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.l.Info(event, kv...)
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.l.Debug(msg, keyvals...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, keyvals ...any) {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.l.Info(msg, keyvals...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, keyvals ...any) {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.l.Warn(msg, keyvals...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, keyvals ...any) {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.l.Error(msg, keyvals...)
}

type contextKey struct{}

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return Discard()
	}
	if l, ok := ctx.Value(contextKey{}).(*Logger); ok && l != nil {
		return l
	}
	return Discard()
}
