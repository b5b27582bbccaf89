// Package logger provides structured logging built on zap, with
// optional rotating file output.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Field is re-exported so callers do not import zap directly
type Field = zapcore.Field

// Logger is the logging interface used across the tool
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Named(name string) Logger
	Sync() error
}

// Config defines logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	JSON       bool   // JSON encoding instead of console
	File       string // optional log file path, rotated
	MaxSize    int    // MB, for file output
	MaxAge     int    // days, for file output
	MaxBackups int
}

// Option mutates the configuration
type Option func(*Config)

// WithLevel sets the minimum level
func WithLevel(level string) Option {
	return func(c *Config) { c.Level = level }
}

// WithJSON switches to JSON encoding
func WithJSON(on bool) Option {
	return func(c *Config) { c.JSON = on }
}

// WithFile adds a rotated file sink
func WithFile(path string) Option {
	return func(c *Config) { c.File = path }
}

type logger struct {
	zap *zap.Logger
}

// New creates a logger writing to stderr and, when configured, a
// rotated file.
func New(opts ...Option) (Logger, error) {
	cfg := &Config{
		Level:      "info",
		MaxSize:    50,
		MaxAge:     7,
		MaxBackups: 3,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	newEncoder := zapcore.NewConsoleEncoder
	if cfg.JSON {
		newEncoder = zapcore.NewJSONEncoder
	}

	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(encoderConfig), zapcore.AddSync(os.Stderr), level),
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		fileSink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileSink, level))
	}

	return &logger{zap: zap.New(zapcore.NewTee(cores...))}, nil
}

// NewNop returns a logger that discards everything; useful in tests.
func NewNop() Logger {
	return &logger{zap: zap.NewNop()}
}

func (l *logger) Debug(msg string, fields ...Field) { l.zap.Debug(msg, fields...) }
func (l *logger) Info(msg string, fields ...Field)  { l.zap.Info(msg, fields...) }
func (l *logger) Warn(msg string, fields ...Field)  { l.zap.Warn(msg, fields...) }
func (l *logger) Error(msg string, fields ...Field) { l.zap.Error(msg, fields...) }

func (l *logger) With(fields ...Field) Logger {
	return &logger{zap: l.zap.With(fields...)}
}

func (l *logger) Named(name string) Logger {
	return &logger{zap: l.zap.Named(name)}
}

func (l *logger) Sync() error { return l.zap.Sync() }

// Field constructors
func String(key, val string) Field                 { return zap.String(key, val) }
func Int(key string, val int) Field                { return zap.Int(key, val) }
func Bool(key string, val bool) Field              { return zap.Bool(key, val) }
func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }
func Error(err error) Field                        { return zap.Error(err) }
func Any(key string, val interface{}) Field        { return zap.Any(key, val) }
