package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. It defaults to a nop logger so
// packages can log unconditionally before Setup runs.
var Logger = zap.NewNop()

// Setup builds a file-backed zap logger. Output goes to a file rather
// than stdout so log lines never tear the TUI. Level "off" (or "")
// keeps the nop logger.
func Setup(level, path string) error {
	lvl, enabled := parseLevel(level)
	if !enabled {
		Logger = zap.NewNop()
		return nil
	}

	if path == "" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, ".agrilearn", "agrilearn.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(f),
		lvl,
	)

	Logger = zap.New(core)
	return nil
}

// Sync flushes buffered log entries. Safe to defer from main.
func Sync() {
	_ = Logger.Sync()
}

func parseLevel(s string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	case "off", "":
		return zapcore.InfoLevel, false
	default:
		return zapcore.InfoLevel, true
	}
}
