// Package diag provides the diagnostics sink used by the assembly pipeline.
// Messages are advisory: nothing reported here aborts a batch.
package diag

import "log"

// Logger receives leveled diagnostics.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Std logs through the standard library logger. Debug output is gated by
// Verbose.
type Std struct {
	Verbose bool
}

// Debugf logs a debug message when Verbose is set.
func (s *Std) Debugf(format string, args ...interface{}) {
	if s.Verbose {
		log.Printf("Debug: "+format, args...)
	}
}

// Warnf logs a warning message.
func (s *Std) Warnf(format string, args ...interface{}) {
	log.Printf("Warning: "+format, args...)
}

// Discard drops all diagnostics. Useful in tests.
type Discard struct{}

// Debugf drops the message.
func (Discard) Debugf(string, ...interface{}) {}

// Warnf drops the message.
func (Discard) Warnf(string, ...interface{}) {}
