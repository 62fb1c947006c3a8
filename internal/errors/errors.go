// Package errors holds the CLI's terminal failure path: errors get a
// consistent "Error: " prefix on stderr and a structured log entry, so a
// failure is visible both in the terminal and in the log file.
package errors

import (
	"fmt"
	"os"

	"github.com/nutrilog/nutrilog/internal/logger"
)

// Format renders err with the stderr "Error: " prefix. A nil error renders as
// the empty string.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format for a printf-style message.
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err, prints it to stderr, and exits with code 1. A nil error is
// a no-op so callers can pass command results through unconditionally.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintf(os.Stderr, "%s\n", Format(err))
	os.Exit(1)
}

// Fatalf is Fatal for a printf-style message.
func Fatalf(format string, args ...any) {
	logger.Error("Command execution failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
