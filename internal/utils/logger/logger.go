package logger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

const LoggerKey = contextKey("logger")

var globalLogger *zap.SugaredLogger

// Init replaces the global logger. A log file that cannot be prepared
// degrades to stderr with a warning instead of failing the command.
// Init 替换全局日志记录器。无法准备日志文件时降级到 stderr 并给出警告。
func Init(cfg LoggingConfig) {
	sink, sinkErr := newSink(cfg)
	core := zapcore.NewCore(newEncoder(cfg.Format), sink, ParseLevel(cfg.Level))
	globalLogger = zap.New(core, zap.AddCaller()).Sugar()

	if sinkErr != nil {
		globalLogger.Warnf("[WARN]  %v, logging to stderr", sinkErr)
		return
	}
	globalLogger.Debugf("[LOG] Logging initialized (level=%s format=%s path=%s)",
		ParseLevel(cfg.Level), cfg.Format, cfg.Path)
}

func newSink(cfg LoggingConfig) (zapcore.WriteSyncer, error) {
	stderr := zapcore.Lock(os.Stderr)
	if !cfg.Enabled || cfg.Path == "" {
		return stderr, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return stderr, fmt.Errorf("cannot create log directory: %w", err)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}), nil
}

func newEncoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	if strings.EqualFold(strings.TrimSpace(format), FormatJSON) {
		return zapcore.NewJSONEncoder(ec)
	}
	return zapcore.NewConsoleEncoder(ec)
}

// ParseLevel maps a config level string to a zap level, defaulting to info.
// ParseLevel 将配置中的级别字符串映射为 zap 级别，默认 info。
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Sync flushes buffered entries.
func Sync() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

// Get returns the logger carried by ctx, else the global one.
// Before Init a development logger is returned.
// Get 返回 ctx 携带的日志记录器，否则返回全局记录器。
func Get(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(LoggerKey).(*zap.SugaredLogger); ok {
			return l
		}
	}
	if globalLogger != nil {
		return globalLogger
	}
	if l, err := zap.NewDevelopment(); err == nil {
		return l.Sugar()
	}
	return zap.NewExample().Sugar()
}

// WithContext returns a copy of ctx carrying l.
// WithContext 返回携带 l 的 ctx 副本。
func WithContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, LoggerKey, l)
}
