// Package logger provides structured logging for the application.
//
// It builds on log/slog. Production output is JSON on stdout; local
// development can switch to colourised text through the tint handler.
// Request-scoped loggers travel in the context so that trace IDs attached by
// the HTTP middleware appear on every line logged while serving a request.
package logger
