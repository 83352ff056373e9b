// Package log provides structured logging for the activities service.
// It wraps zap with a category field so related messages can be filtered,
// and stays a no-op until Init is called.
package log

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category groups related log messages.
type Category string

const (
	CatConfig   Category = "config"   // Configuration loading/saving
	CatSeed     Category = "seed"     // Seed data loading
	CatRegistry Category = "registry" // Registry operations
	CatHTTP     Category = "http"     // HTTP server and request handling
	CatEvents   Category = "events"   // Signup event broker
	CatCache    Category = "cache"    // Snapshot cache
	CatTrace    Category = "trace"    // Tracing setup
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level to emit: "debug", "info", "warn", "error".
	Level string
	// Format selects the encoding: "text" (console) or "json".
	Format string
	// Path is an optional log file. Empty means stderr.
	Path string
}

var (
	mu     sync.RWMutex
	logger = zap.NewNop().Sugar()
)

// Init builds the package logger from cfg and returns a cleanup function
// that flushes buffered entries. Calling Init again replaces the logger.
func Init(cfg Config) (func(), error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "", "text":
		zapCfg = zap.NewDevelopmentConfig()
	case "json":
		zapCfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q (must be \"text\" or \"json\")", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Path != "" {
		zapCfg.OutputPaths = []string{cfg.Path}
		zapCfg.ErrorOutputPaths = []string{cfg.Path}
	}

	base, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	mu.Lock()
	logger = base.Sugar()
	mu.Unlock()

	return func() { _ = base.Sync() }, nil
}

func parseLevel(s string) (zapcore.Level, error) {
	switch s {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (must be \"debug\", \"info\", \"warn\", or \"error\")", s)
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	current().Debugw(msg, withCategory(cat, fields)...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	current().Infow(msg, withCategory(cat, fields)...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	current().Warnw(msg, withCategory(cat, fields)...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	current().Errorw(msg, withCategory(cat, fields)...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	current().Errorw(msg, withCategory(cat, fields)...)
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func withCategory(cat Category, fields []any) []any {
	// Odd field counts would make zap log a dangling key error; drop the
	// orphan key instead.
	if len(fields)%2 != 0 {
		fields = fields[:len(fields)-1]
	}
	return append([]any{"category", string(cat)}, fields...)
}
