package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel orders message severities for the gate's JSON logs
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = map[LogLevel]string{
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO",
	WarnLevel:  "WARN",
	ErrorLevel: "ERROR",
}

var slogLevels = map[LogLevel]slog.Level{
	DebugLevel: slog.LevelDebug,
	InfoLevel:  slog.LevelInfo,
	WarnLevel:  slog.LevelWarn,
	ErrorLevel: slog.LevelError,
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "INFO"
}

// ParseLogLevel maps a configuration string to a level. Anything it does
// not recognize, including the empty string, falls back to info.
func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	}
	return InfoLevel
}

// Logger emits structured JSON log lines. Field helpers return derived
// loggers so request-scoped context accumulates without mutating the
// parent; every gate decision and guard rejection goes through one of
// these.
type Logger struct {
	s *slog.Logger
}

// NewLogger builds a JSON logger writing to output at the given level.
// A nil output means stdout.
func NewLogger(level LogLevel, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}
	threshold := slogLevels[level]
	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{Level: threshold})
	return &Logger{s: slog.New(handler)}
}

// WithField returns a logger carrying one extra field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{s: l.s.With(key, value)}
}

// WithFields returns a logger carrying every field in the map
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	attrs := make([]interface{}, 0, 2*len(fields))
	for key, value := range fields {
		attrs = append(attrs, key, value)
	}
	return &Logger{s: l.s.With(attrs...)}
}

// WithError attaches the error message under the "error" key. A nil error
// returns the receiver unchanged.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

func (l *Logger) Debug(message string) { l.s.Debug(message) }

func (l *Logger) Info(message string) { l.s.Info(message) }

func (l *Logger) Warn(message string) { l.s.Warn(message) }

func (l *Logger) Error(message string) { l.s.Error(message) }

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.s.Info(fmt.Sprintf(format, args...))
}

// Request-scoped values travel in the context under unexported keys; the
// middleware writes them, FromContext reads them back.
type contextKey int

const (
	requestIDKey contextKey = iota
	loggerKey
)

// WithRequestID stores the request ID in the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request ID, or "" when none was set
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithLogger stores the logger in the context
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the context's logger, or a default stdout logger when
// the middleware never ran.
func GetLogger(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(loggerKey).(*Logger); ok {
		return logger
	}
	return NewLogger(InfoLevel, os.Stdout)
}

// FromContext returns the context's logger enriched with the request ID
func FromContext(ctx context.Context) *Logger {
	logger := GetLogger(ctx)
	if requestID := GetRequestID(ctx); requestID != "" {
		logger = logger.WithField("request_id", requestID)
	}
	return logger
}
