// Package ui provides styled terminal output helpers.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// Unicode symbols for status indicators
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolInfo    = "ℹ"
)

// IsTTY reports whether stdout is a terminal; styling is skipped otherwise.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// TermWidth returns the terminal width, or a fallback when detection fails.
func TermWidth() int {
	fd := os.Stdout.Fd()
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return 120
}

// Success returns a success message with checkmark symbol
func Success(msg string) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, msg)
}

// Successf returns a formatted success message with checkmark symbol
func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

// Error returns an error message with X symbol
func Error(msg string) string {
	return fmt.Sprintf("%s %s", SymbolError, msg)
}

// Info returns an info message with info symbol
func Info(msg string) string {
	return fmt.Sprintf("%s %s", SymbolInfo, msg)
}

// FieldPath returns an accent-styled field path when stdout is a terminal.
func FieldPath(path string) string {
	if !IsTTY() {
		return path
	}
	return Accent.Render(path)
}

// Header returns a styled section header.
func Header(msg string) string {
	if !IsTTY() {
		return msg
	}
	return Bold.Render(msg)
}

// Hint returns a muted hint line.
func Hint(msg string) string {
	if !IsTTY() {
		return msg
	}
	return Muted.Render(msg)
}
