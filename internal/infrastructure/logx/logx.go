package logx

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	traceIDKey
)

var (
	logger *zap.Logger
)

func init() {
	l, err := New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		panic(err)
	}
	logger = l
}

// New builds the production JSON logger at the given level (info when empty or unknown).
func New(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if level != "" {
		_ = zapCfg.Level.UnmarshalText([]byte(strings.ToLower(level)))
	}
	return zapCfg.Build(zap.AddCaller())
}

// SetLevel rebuilds the package logger once the configuration is loaded.
func SetLevel(level string) error {
	l, err := New(level)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// L returns the package-level logger instance.
func L() *zap.Logger {
	return logger
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

func RequestID(ctx context.Context) string {
	s, _ := ctx.Value(requestIDKey).(string)
	return s
}

func TraceID(ctx context.Context) string {
	s, _ := ctx.Value(traceIDKey).(string)
	return s
}

// From enriches base with the request and trace IDs stored in ctx.
func From(ctx context.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	var fields []zap.Field
	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if id := TraceID(ctx); id != "" {
		fields = append(fields, zap.String("trace_id", id))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
