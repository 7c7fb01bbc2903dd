// Package logger exposes a process-wide sugared Zap logger that writes JSON
// to stdout. Loggers can be derived into a context so that every entry logged
// with that context carries the same fields, and entries logged inside an
// OpenTelemetry span are tagged with its trace and span identifiers.
package logger

import (
	"context"
	"os"
	"sync"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKeyType struct{}

// ctxKey is the context key under which derived loggers are stored.
var ctxKey ctxKeyType

var (
	baseLogger         *zap.SugaredLogger
	initBaseLoggerOnce sync.Once
)

type config struct {
	level string
}

// Option configures the logger before initialization.
type Option func(*config)

// WithLevel sets the minimum level: "debug", "info", "warn", "error",
// "panic" or "fatal".
func WithLevel(level string) Option {
	return func(c *config) {
		c.level = level
	}
}

// Init configures the global logger. By default it logs at the "info"
// level. Only the first successful call has any effect.
//
// Returns an error if the configured level cannot be parsed.
func Init(opts ...Option) error {
	cfg := config{level: "info"}
	for _, opt := range opts {
		opt(&cfg)
	}

	lvl, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		return err
	}

	initBaseLoggerOnce.Do(func() {
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			lvl,
		)
		baseLogger = zap.New(core).Sugar()
	})

	return nil
}

// Sync flushes buffered entries. Call it once on shutdown.
func Sync() error {
	return baseLogger.Sync()
}

func fromCtx(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(ctxKey).(*zap.SugaredLogger); ok {
		return l
	}
	if baseLogger == nil {
		return zap.NewNop().Sugar()
	}
	return baseLogger
}

// deriveFromCtx returns the context logger (or the base logger) extended with
// the given fields plus the trace identifiers of the active span, if any.
func deriveFromCtx(ctx context.Context, keysAndValues ...any) *zap.SugaredLogger {
	l := fromCtx(ctx)

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		keysAndValues = append(keysAndValues,
			"trace_id", sc.TraceID().String(),
			"span_id", sc.SpanID().String(),
		)
	}

	if len(keysAndValues) == 0 {
		return l
	}
	return l.With(keysAndValues...)
}

// Derive stores in ctx a logger carrying keysAndValues. Entries logged with
// the returned context include those fields.
//
// Example:
//
//	ctx = logger.Derive(ctx, "coin", "btc", "network", "livenet")
//	logger.Info(ctx, "connected") // {"coin":"btc","network":"livenet",...}
func Derive(ctx context.Context, keysAndValues ...any) context.Context {
	return context.WithValue(ctx, ctxKey, fromCtx(ctx).With(keysAndValues...))
}

func log(ctx context.Context, level zapcore.Level, msg string, keysAndValues ...any) {
	deriveFromCtx(ctx).Logw(level, msg, keysAndValues...)
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.DebugLevel, msg, keysAndValues...)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.InfoLevel, msg, keysAndValues...)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.WarnLevel, msg, keysAndValues...)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.ErrorLevel, msg, keysAndValues...)
}

// Panic logs a message and then panics.
func Panic(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.PanicLevel, msg, keysAndValues...)
}

// Fatal logs a message and then calls os.Exit(1).
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.FatalLevel, msg, keysAndValues...)
}
