package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/keyfob-control/kfc/internal/config"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	Source    string    `json:"source"`
	Button    string    `json:"button,omitempty"`
	Action    string    `json:"action"`
	Outcome   string    `json:"outcome"`
	Code      string    `json:"code"`
	LatencyMs int64     `json:"latencyMs"`
}

type contextKey string

const sourceKey contextKey = "audit.source"

// WithSource tags a context with the origin of subsequent actions ("ble",
// "boot", ...).
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// Logger implements the audit logging functionality.
type Logger struct {
	mu       sync.Mutex
	filePath string
	out      *lumberjack.Logger
}

// NewLogger creates a new audit logger writing to <dir>/audit.jsonl with
// rotation per the logging configuration.
func NewLogger(cfg config.LoggingConfig) (*Logger, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filePath := filepath.Join(cfg.Dir, "audit.jsonl")

	return &Logger{
		filePath: filePath,
		out: &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    cfg.MaxSizeMb,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		},
	}, nil
}

// LogAction logs an audit record for a command action.
func (l *Logger) LogAction(ctx context.Context, action, button, result string, latency time.Duration) {
	entry := Entry{
		Timestamp: time.Now().UTC(),
		Source:    sourceFromContext(ctx),
		Button:    button,
		Action:    action,
		Outcome:   result,
		Code:      codeFromResult(result),
		LatencyMs: latency.Milliseconds(),
	}

	l.writeEntry(entry)
}

// writeEntry writes an audit entry to the log file.
func (l *Logger) writeEntry(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal audit entry: %v\n", err)
		return
	}

	if _, err := l.out.Write(append(jsonData, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write audit entry: %v\n", err)
	}
}

// sourceFromContext extracts the action origin from the context.
func sourceFromContext(ctx context.Context) string {
	if source, ok := ctx.Value(sourceKey).(string); ok && source != "" {
		return source
	}
	return "unknown"
}

// codeFromResult maps result strings to standardized codes.
func codeFromResult(result string) string {
	switch result {
	case "SUCCESS":
		return "SUCCESS"
	case "ERROR":
		return "ERROR"
	case "NOT_ASSIGNED":
		return "NOT_ASSIGNED"
	default:
		return "UNKNOWN"
	}
}

// Rotate forces a rotation of the current audit log file.
func (l *Logger) Rotate() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Rotate()
}

// Close closes the audit logger and its file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Close()
}

// GetFilePath returns the path to the audit log file.
func (l *Logger) GetFilePath() string {
	return l.filePath
}
