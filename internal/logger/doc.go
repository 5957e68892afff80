// Package logger wraps zap to offer:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing utilities,
//   - convenience functions (Info, DebugKV, WarnKV, etc.).
//
// The updater reports its status through this logger, so every component
// takes a context and extracts the logger from it.
package logger
