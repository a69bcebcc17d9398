// Package logger provides structured logging for the application using
// Go's standard library log/slog package. Setup configures the global
// JSON logger from config; FromContext and WithContext thread
// request-scoped loggers through call chains.
package logger
