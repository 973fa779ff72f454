package calculation

import (
	"io"
	"log"
)

// Logger is a minimal logging interface for the calculation engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// StdLogger writes leveled lines through a standard library logger.
// Debug lines are dropped unless Verbose is set.
type StdLogger struct {
	L       *log.Logger
	Verbose bool
}

// NewStdLogger creates a StdLogger writing to w.
func NewStdLogger(w io.Writer, verbose bool) *StdLogger {
	return &StdLogger{L: log.New(w, "", log.LstdFlags), Verbose: verbose}
}

func (s *StdLogger) Debugf(format string, args ...any) {
	if s.Verbose {
		s.L.Printf("DEBUG "+format, args...)
	}
}
func (s *StdLogger) Infof(format string, args ...any)  { s.L.Printf("INFO  "+format, args...) }
func (s *StdLogger) Warnf(format string, args ...any)  { s.L.Printf("WARN  "+format, args...) }
func (s *StdLogger) Errorf(format string, args ...any) { s.L.Printf("ERROR "+format, args...) }
