// Package debuglog writes diagnostics to a log file so the TUI stays clean.
package debuglog

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.Mutex
	logger = zap.NewNop()
)

// Init opens the log file at path and routes all subsequent package-level
// logging to it. An empty path leaves logging disabled.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		logger = zap.NewNop()
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(file)),
		zapcore.DebugLevel,
	)
	logger = zap.New(core)
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	_ = logger.Sync()
}

// Debug logs a debug message with structured fields.
func Debug(msg string, fields ...zap.Field) {
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Debug(msg, fields...)
}

// Warn logs a warning with structured fields.
func Warn(msg string, fields ...zap.Field) {
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Warn(msg, fields...)
}

// Error logs an error in the given context. Nil errors are ignored.
func Error(context string, err error, fields ...zap.Field) {
	if err == nil {
		return
	}
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Error(context, append(fields, zap.Error(err))...)
}
