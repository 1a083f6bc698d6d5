// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ContextKey represents keys for context values
type ContextKey string

const (
	ContextKeyRequestID ContextKey = "request_id"
	ContextKeyJobID     ContextKey = "job_id"
	ContextKeyTaskType  ContextKey = "task_type"
	ContextKeyClientIP  ContextKey = "client_ip"
	ContextKeyMethod    ContextKey = "method"
	ContextKeyPath      ContextKey = "path"
)

// contextKeys are copied from the context onto every record
var contextKeys = []ContextKey{
	ContextKeyRequestID,
	ContextKeyJobID,
	ContextKeyTaskType,
	ContextKeyClientIP,
	ContextKeyMethod,
	ContextKeyPath,
}

// Options configures a logger
type Options struct {
	Level  string
	Format string // "json" or "text"
	Output io.Writer

	// AuditFile additionally receives every record as JSON when set
	AuditFile string

	Service     string
	Version     string
	Environment string
}

// Logger wraps slog.Logger. Close releases the audit file, if any.
type Logger struct {
	*slog.Logger
	closers []io.Closer
}

// Close flushes and closes auxiliary outputs
func (l *Logger) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// SetupLogger builds a logger from process settings and installs it as the
// slog default
func SetupLogger(level string, format string) *Logger {
	l := New(Options{
		Level:       level,
		Format:      format,
		Output:      os.Stdout,
		AuditFile:   os.Getenv("LOG_AUDIT_FILE"),
		Service:     envOr("SERVICE_NAME", "warehouse-be"),
		Version:     os.Getenv("SERVICE_VERSION"),
		Environment: os.Getenv("APP_ENV"),
	})
	slog.SetDefault(l.Logger)
	return l
}

// New creates a logger. Handlers are layered as
// redact -> context -> (json|dev [+ audit json]).
func New(opts Options) *Logger {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	json := opts.Format != "text"

	handlerOpts := &slog.HandlerOptions{
		Level:       parseLevel(opts.Level),
		AddSource:   strings.EqualFold(opts.Level, "debug") && json,
		ReplaceAttr: replaceAttr(json),
	}

	var base slog.Handler
	if json {
		base = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		base = NewDevHandler(opts.Output, handlerOpts)
	}

	l := &Logger{}
	if opts.AuditFile != "" {
		file, err := os.OpenFile(opts.AuditFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			base = NewTeeHandler(base, slog.NewJSONHandler(file, &slog.HandlerOptions{
				Level:       handlerOpts.Level,
				ReplaceAttr: replaceAttr(true),
			}))
			l.closers = append(l.closers, file)
		}
	}

	var handler slog.Handler = NewRedactHandler(NewContextHandler(base))

	var attrs []slog.Attr
	if opts.Service != "" {
		attrs = append(attrs, slog.String("service_name", opts.Service))
	}
	if opts.Version != "" {
		attrs = append(attrs, slog.String("version", opts.Version))
	}
	if opts.Environment != "" {
		attrs = append(attrs, slog.String("env", opts.Environment))
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	l.Logger = slog.New(handler)
	return l
}

// WithRequestID stores a request id for log enrichment
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// WithJobID stores an import job id for log enrichment
func WithJobID(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, ContextKeyJobID, jobID)
}

// WithTaskType stores the worker task type for log enrichment
func WithTaskType(ctx context.Context, taskType string) context.Context {
	return context.WithValue(ctx, ContextKeyTaskType, taskType)
}

// WithHTTPRequest stores the caller address and route for log enrichment
func WithHTTPRequest(ctx context.Context, method, path, clientIP string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyMethod, method)
	ctx = context.WithValue(ctx, ContextKeyPath, path)
	return context.WithValue(ctx, ContextKeyClientIP, clientIP)
}

// RequestID returns the request id stored in ctx, if any
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func extractContextAttrs(ctx context.Context, keys []ContextKey) []slog.Attr {
	var attrs []slog.Attr
	for _, key := range keys {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			attrs = append(attrs, slog.String(string(key), v))
		}
	}
	return attrs
}

// replaceAttr normalizes time stamps and, for JSON output, renames level to
// severity for the log collector
func replaceAttr(json bool) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) > 0 {
			return a
		}
		switch a.Key {
		case slog.TimeKey:
			if t, ok := a.Value.Any().(time.Time); ok {
				a.Value = slog.StringValue(t.UTC().Format(time.RFC3339Nano))
			}
		case slog.LevelKey:
			if json {
				a.Key = "severity"
			}
		}
		if d, ok := a.Value.Any().(time.Duration); ok && strings.HasSuffix(a.Key, "_ms") {
			a.Value = slog.Float64Value(float64(d.Microseconds()) / 1000)
		}
		return a
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
