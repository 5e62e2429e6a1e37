// Package logger provides structured logging for the application using the
// standard library's log/slog package.
//
// Setup configures a JSON handler at the configured level and installs it as
// the default logger. Request-scoped loggers travel through context.Context
// via WithLogger and FromContext, so stores and services log with the trace
// ID attached by the HTTP middleware.
package logger
