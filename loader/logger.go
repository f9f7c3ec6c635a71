package loader

import (
	"log/slog"
)

// Logger is the structured logger every pipeline stage accepts. Arguments
// after the message are key-value pairs, as with log/slog:
//
//	logger.Debug("fragment loaded", "path", "docs/v1.yaml", "keys", 3)
//
// A *slog.Logger is plugged in with [NewSlogAdapter]; any other logging
// library only needs these five methods.
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)

	// With returns a Logger that adds attrs to every record.
	With(attrs ...any) Logger
}

// NopLogger discards everything. Stages fall back to it when their Logger
// field is nil.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any) {}
func (NopLogger) Warn(string, ...any) {}
func (NopLogger) Error(string, ...any) {}
func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter lets a *slog.Logger serve as a Logger. The level methods are
// the slog ones.
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogAdapter wraps logger, or slog.Default() when logger is nil.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{Logger: logger}
}

// With returns an adapter whose records carry attrs.
func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{Logger: s.Logger.With(attrs...)}
}

var (
	_ Logger = NopLogger{}
	_ Logger = (*SlogAdapter)(nil)
)

// OrNop returns l, or a NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
