package log

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger used across Voltura.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)

	// Error logs msg at ErrorLevel with err attached under "error".
	Error(err error, msg string, keysAndValues ...any)

	// WithName appends name to the logger name, joined by a dot.
	WithName(name string) Logger

	// WithValues returns a logger that adds keysAndValues to every entry.
	WithValues(keysAndValues ...any) Logger

	// Logr exposes the logger to libraries that speak logr.
	Logr() logr.Logger

	// Sync flushes buffered entries.
	Sync() error
}

var _ Logger = (*zapLogger)(nil)

type zapLogger struct {
	core *zap.Logger
}

// NewLogger builds a zap-backed Logger. It panics when zap rejects the
// output paths, which only happens on misconfiguration at start-up.
func NewLogger(opts *Options) Logger {
	if opts == nil {
		opts = NewOptions()
	}

	cfg := &zap.Config{
		DisableCaller:    opts.DisableCaller,
		Level:            zap.NewAtomicLevelAt(parseLevel(opts.Level)),
		Encoding:         opts.Format,
		EncoderConfig:    encoderConfig(opts),
		OutputPaths:      opts.OutputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}
	if len(cfg.OutputPaths) == 0 {
		cfg.OutputPaths = []string{"stdout"}
	}

	core, err := cfg.Build(zap.AddCallerSkip(opts.CallerSkip), zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		panic(fmt.Sprintf("failed to build zap logger: %v", err))
	}
	if opts.Name != "" {
		core = core.Named(opts.Name)
	}

	return &zapLogger{core: core}
}

// NewFromZap wraps an existing zap logger, e.g. an observer core in tests.
func NewFromZap(core *zap.Logger) Logger {
	return &zapLogger{core: core}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() Logger {
	return &zapLogger{core: zap.NewNop()}
}

func encoderConfig(opts *Options) zapcore.EncoderConfig {
	enc := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "timestamp",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: millisDurationEncoder,
	}
	if opts.Format == "console" && opts.EnableColor {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return enc
}

// millisDurationEncoder renders durations as fractional milliseconds.
func millisDurationEncoder(d time.Duration, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendFloat64(float64(d) / float64(time.Millisecond))
}

// parseLevel falls back to info for anything zap does not recognise.
func parseLevel(level string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func (z *zapLogger) Debug(msg string, keysAndValues ...any) {
	z.core.Debug(msg, toFields(keysAndValues...)...)
}

func (z *zapLogger) Info(msg string, keysAndValues ...any) {
	z.core.Info(msg, toFields(keysAndValues...)...)
}

func (z *zapLogger) Warn(msg string, keysAndValues ...any) {
	z.core.Warn(msg, toFields(keysAndValues...)...)
}

func (z *zapLogger) Error(err error, msg string, keysAndValues ...any) {
	fields := toFields(keysAndValues...)
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	z.core.Error(msg, fields...)
}

func (z *zapLogger) WithName(name string) Logger {
	return &zapLogger{core: z.core.Named(name)}
}

func (z *zapLogger) WithValues(keysAndValues ...any) Logger {
	return &zapLogger{core: z.core.With(toFields(keysAndValues...)...)}
}

func (z *zapLogger) Logr() logr.Logger {
	return zapr.NewLogger(z.core)
}

func (z *zapLogger) Sync() error {
	return z.core.Sync()
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by NewContext, or the global logger.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(Logger); ok {
			return l
		}
	}
	return Std()
}

var (
	mu   sync.RWMutex
	once sync.Once
	std  = NewNopLogger()
)

// Init installs the global logger. Only the first call has an effect.
func Init(opts *Options) {
	once.Do(func() {
		l := NewLogger(opts)
		mu.Lock()
		std = l
		mu.Unlock()
	})
}

// Std returns the global logger.
func Std() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

func Debug(msg string, keysAndValues ...any)            { Std().Debug(msg, keysAndValues...) }
func Info(msg string, keysAndValues ...any)             { Std().Info(msg, keysAndValues...) }
func Warn(msg string, keysAndValues ...any)             { Std().Warn(msg, keysAndValues...) }
func Error(err error, msg string, keysAndValues ...any) { Std().Error(err, msg, keysAndValues...) }
func WithName(name string) Logger                       { return Std().WithName(name) }
func WithValues(keysAndValues ...any) Logger            { return Std().WithValues(keysAndValues...) }
func Sync() error                                       { return Std().Sync() }
