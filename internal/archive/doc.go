// Package archive retires the current notebook data directory so a fresh
// notebook can be started.
package archive
