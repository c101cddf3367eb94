// Package logging provides a minimal logging interface and adapters for flowatomic.
//
// The Logger interface defines the leveled methods (Debug, Info, Warn, Error)
// that modules use for observability. Arguments after the message are
// slog-style key/value pairs. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NodeLogger carrying node / session / component attributes
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	rt := flowatomic.New(func(o *flowatomic.Options) { o.Logger = logger })
package logging
