// Package zaplog adapts go.uber.org/zap to the core.Logger interface.
package zaplog

import (
	"github.com/Swind/go-task-queue/core"
	"go.uber.org/zap"
)

// Logger forwards core.Logger calls to a *zap.Logger.
type Logger struct {
	base *zap.Logger
}

var _ core.Logger = (*Logger)(nil)

// New wraps the given zap logger. A nil logger falls back to zap.NewNop().
func New(base *zap.Logger) *Logger {
	if base == nil {
		base = zap.NewNop()
	}
	return &Logger{base: base}
}

// NewDevelopment builds an adapter over zap's development configuration.
func NewDevelopment() (*Logger, error) {
	base, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return New(base), nil
}

// NewProduction builds an adapter over zap's production configuration.
func NewProduction() (*Logger, error) {
	base, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return New(base), nil
}

func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.base.Debug(msg, toZapFields(fields)...)
}

func (l *Logger) Info(msg string, fields ...core.Field) {
	l.base.Info(msg, toZapFields(fields)...)
}

func (l *Logger) Warn(msg string, fields ...core.Field) {
	l.base.Warn(msg, toZapFields(fields)...)
}

func (l *Logger) Error(msg string, fields ...core.Field) {
	l.base.Error(msg, toZapFields(fields)...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}

func toZapFields(fields []core.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
