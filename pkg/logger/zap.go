package logger

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debug(ctx context.Context, args ...any)
	Debugf(ctx context.Context, template string, args ...any)
	Info(ctx context.Context, args ...any)
	Infof(ctx context.Context, template string, args ...any)
	Warn(ctx context.Context, args ...any)
	Warnf(ctx context.Context, template string, args ...any)
	Error(ctx context.Context, args ...any)
	Errorf(ctx context.Context, template string, args ...any)
	Fatal(ctx context.Context, args ...any)
	Fatalf(ctx context.Context, template string, args ...any)
	With(ctx context.Context, keysAndValues ...any) context.Context
	Sync() error
}

type ZapConfig struct {
	Level    string
	Mode     string
	Encoding string
	// Service is attached to every line as the "service" field when set.
	Service string
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// InitializeTestZapLogger only reports errors so test output stays readable.
func InitializeTestZapLogger() Logger {
	return newZapLogger(ZapConfig{Level: "error", Mode: "testing", Encoding: "console"}, os.Stderr)
}

func InitializeZapLogger(cfg ZapConfig) Logger {
	return newZapLogger(cfg, os.Stderr)
}

func newZapLogger(cfg ZapConfig, w io.Writer) *zapLogger {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(newEncoder(cfg), zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if cfg.Service != "" {
		opts = append(opts, zap.Fields(zap.String("service", cfg.Service)))
	}

	return &zapLogger{sugar: zap.New(core, opts...).Sugar()}
}

func newEncoder(cfg ZapConfig) zapcore.Encoder {
	encCfg := zap.NewDevelopmentEncoderConfig()
	if cfg.Mode == "production" {
		encCfg = zap.NewProductionEncoderConfig()
	}
	encCfg.LevelKey = "LEVEL"
	encCfg.CallerKey = "CALLER"
	encCfg.TimeKey = "TIME"
	encCfg.NameKey = "NAME"
	encCfg.MessageKey = "MESSAGE"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.Encoding == "console" {
		return zapcore.NewConsoleEncoder(encCfg)
	}
	return zapcore.NewJSONEncoder(encCfg)
}

type loggerKey struct{}

// ctx returns the logger stored in ctx by With, or the root logger.
func (l *zapLogger) ctx(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		panic("nil context passed to Logger")
	}
	if s, _ := ctx.Value(loggerKey{}).(*zap.SugaredLogger); s != nil {
		return s
	}
	return l.sugar
}

// With returns a context whose logger carries the given fields on every line.
func (l *zapLogger) With(ctx context.Context, keysAndValues ...any) context.Context {
	return context.WithValue(ctx, loggerKey{}, l.ctx(ctx).With(keysAndValues...))
}

func (l *zapLogger) Sync() error {
	return l.sugar.Sync()
}

func (l *zapLogger) Debug(ctx context.Context, args ...any) { l.ctx(ctx).Debug(args...) }
func (l *zapLogger) Info(ctx context.Context, args ...any)  { l.ctx(ctx).Info(args...) }
func (l *zapLogger) Warn(ctx context.Context, args ...any)  { l.ctx(ctx).Warn(args...) }
func (l *zapLogger) Error(ctx context.Context, args ...any) { l.ctx(ctx).Error(args...) }
func (l *zapLogger) Fatal(ctx context.Context, args ...any) { l.ctx(ctx).Fatal(args...) }

func (l *zapLogger) Debugf(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Debugf(template, args...)
}

func (l *zapLogger) Infof(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Infof(template, args...)
}

func (l *zapLogger) Warnf(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Warnf(template, args...)
}

func (l *zapLogger) Errorf(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Errorf(template, args...)
}

func (l *zapLogger) Fatalf(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Fatalf(template, args...)
}
