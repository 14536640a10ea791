// Package logger builds the shared zap logger.
package logger

import "go.uber.org/zap"

// New returns a production logger, or a human-readable development
// logger when debug is set.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Must returns a logger or panics; for entry points where logging setup
// failure is fatal anyway.
func Must(debug bool) *zap.Logger {
	log, err := New(debug)
	if err != nil {
		panic(err)
	}
	return log
}
