// Package logging builds the zap loggers used by gridview hosts.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level defines the severity threshold of a logger.
type Level string

const (
	// LevelDebug logs measurement and dispatch details.
	LevelDebug Level = "debug"

	// LevelInfo is used for lifecycle messages.
	LevelInfo Level = "info"

	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// ParseLevel maps a configured level name to a Level. Empty means info.
func ParseLevel(s string) (Level, error) {
	switch l := Level(s); l {
	case "":
		return LevelInfo, nil
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return l, nil
	default:
		return "", fmt.Errorf("logging: unknown level %q", s)
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zap.DebugLevel
	case LevelWarn:
		return zap.WarnLevel
	case LevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// New returns a console logger writing to stdout.
func New(level Level) *zap.Logger {
	return NewConsole(os.Stdout, level)
}

// NewConsole returns a console logger writing to w. Terminal hosts pass a
// log file here so log lines do not corrupt the screen.
func NewConsole(w io.Writer, level Level) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		level.zapLevel(),
	)
	return zap.New(core)
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// Sync flushes logger, reporting a failure through the logger itself.
func Sync(logger *zap.Logger) {
	if err := logger.Sync(); err != nil {
		logger.Warn("failed to sync logger", zap.Error(err))
	}
}
