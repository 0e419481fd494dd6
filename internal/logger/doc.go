// Package logger provides structured logging for lingopop on top of zap.
// Log output goes to stderr so it never interleaves with the interactive
// shell on stdout.
package logger
