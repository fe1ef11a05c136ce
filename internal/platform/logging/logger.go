// Package logging wraps zap behind a key/value API shared by the service,
// the migrator and the telemetry log bridge.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MirrorFunc sees every record the zap core accepted, with the logger's
// bound args first. The telemetry package installs one to export logs.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

type Logger struct {
	zap    *zap.Logger
	bound  []any
	synced atomic.Bool
}

type Options struct {
	Level          Level
	Output         io.Writer
	ServiceName    string
	ServiceVersion string
	Environment    string
}

var (
	std    atomic.Pointer[Logger]
	mirror atomic.Pointer[MirrorFunc]
)

func init() {
	std.Store(NewNop())
}

// New builds a JSON logger writing to opts.Output, stdout by default.
func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.Lock(zapcore.AddSync(out)), opts.Level)

	var service []any
	for _, kv := range [][2]string{
		{"service", opts.ServiceName},
		{"version", opts.ServiceVersion},
		{"env", opts.Environment},
	} {
		if v := strings.TrimSpace(kv[1]); v != "" {
			service = append(service, kv[0], v)
		}
	}

	// Skip logContext and the exported level method.
	z := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(zapcore.ErrorLevel))
	return FromZap(z).With(service...)
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "msg"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

func NewNop() *Logger { return FromZap(zap.NewNop()) }

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z}
}

func Default() *Logger { return std.Load() }

func SetDefault(logger *Logger) {
	if logger == nil {
		logger = NewNop()
	}
	std.Store(logger)
}

// SetMirror replaces the process-wide mirror; nil disables mirroring.
func SetMirror(fn MirrorFunc) {
	if fn == nil {
		mirror.Store(nil)
		return
	}
	mirror.Store(&fn)
}

func (l *Logger) Zap() *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.zap
}

// Sync flushes once; later calls are no-ops.
func (l *Logger) Sync() error {
	if l == nil || !l.synced.CompareAndSwap(false, true) {
		return nil
	}
	return l.zap.Sync()
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		l = NewNop()
	}
	if len(args) == 0 {
		return l
	}
	return &Logger{
		zap:   l.zap.With(toFields(args)...),
		bound: append(append([]any(nil), l.bound...), args...),
	}
}

func (l *Logger) Debug(msg string, args ...any) { l.logContext(context.Background(), LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any) { l.logContext(context.Background(), LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any) { l.logContext(context.Background(), LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.logContext(context.Background(), LevelError, msg, args) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logContext(ctx, LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logContext(ctx, LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logContext(ctx, LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logContext(ctx, LevelError, msg, args)
}

func (l *Logger) logContext(ctx context.Context, level Level, msg string, args []any) {
	if l == nil {
		l = Default()
	}
	ce := l.zap.Check(level, msg)
	if ce == nil {
		return
	}
	ce.Write(append(toFields(args), spanFields(ctx)...)...)

	fn := mirror.Load()
	if fn == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	(*fn)(ctx, level, msg, append(append([]any(nil), l.bound...), args...)...)
}
