package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ctxKey is the private type for context-carried log fields.
type ctxKey string

const (
	ctxKeyRunID   ctxKey = "run_id"
	ctxKeyOrderNo ctxKey = "order_no"
	ctxKeyTrigger ctxKey = "trigger"
)

// WithRunID returns a context carrying the sync run id.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ctxKeyRunID, runID)
}

// WithOrderNo returns a context carrying the order number being processed.
func WithOrderNo(ctx context.Context, orderNo string) context.Context {
	return context.WithValue(ctx, ctxKeyOrderNo, orderNo)
}

// WithTrigger returns a context carrying the run trigger (scheduler/http/manual).
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, ctxKeyTrigger, trigger)
}

// Logger leveled logging interface
type Logger interface {
	Debugf(ctx context.Context, format string, args ...interface{})
	Infof(ctx context.Context, format string, args ...interface{})
	Warnf(ctx context.Context, format string, args ...interface{})
	Errorf(ctx context.Context, format string, args ...interface{})
	Sync() error
}

// ZapLogger zap-backed Logger implementation
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger creates a zap logger at the given level
func NewZapLogger(level string) (Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &ZapLogger{logger: logger}, nil
}

// NewNop creates a no-op Logger for tests
func NewNop() Logger {
	return &ZapLogger{logger: zap.NewNop()}
}

// extractFields pulls structured fields out of the context
func (l *ZapLogger) extractFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0)

	if runID, ok := ctx.Value(ctxKeyRunID).(string); ok && runID != "" {
		fields = append(fields, zap.String("run_id", runID))
	}

	if orderNo, ok := ctx.Value(ctxKeyOrderNo).(string); ok && orderNo != "" {
		fields = append(fields, zap.String("order_no", orderNo))
	}

	if trigger, ok := ctx.Value(ctxKeyTrigger).(string); ok && trigger != "" {
		fields = append(fields, zap.String("trigger", trigger))
	}

	return fields
}

// Debugf logs at Debug level
func (l *ZapLogger) Debugf(ctx context.Context, format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), l.extractFields(ctx)...)
}

// Infof logs at Info level
func (l *ZapLogger) Infof(ctx context.Context, format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...), l.extractFields(ctx)...)
}

// Warnf logs at Warn level
func (l *ZapLogger) Warnf(ctx context.Context, format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...), l.extractFields(ctx)...)
}

// Errorf logs at Error level
func (l *ZapLogger) Errorf(ctx context.Context, format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...), l.extractFields(ctx)...)
}

// Sync flushes buffered log entries
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
