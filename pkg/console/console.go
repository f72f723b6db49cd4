// Package console prints user-facing progress, warning, and summary lines.
// Structured logging is handled separately by zap; this package covers the
// human-readable reporting the run emits as it goes.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	progressColor = color.New(color.FgCyan)
	warnColor     = color.New(color.FgYellow)
	errorColor    = color.New(color.FgRed)
	summaryColor  = color.New(color.FgGreen)
)

var (
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
)

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// SetWriters redirects console output, primarily for tests. It returns a
// function restoring the previous writers.
func SetWriters(stdout, stderr io.Writer) func() {
	prevOut, prevErr := out, errOut
	out, errOut = stdout, stderr
	return func() {
		out, errOut = prevOut, prevErr
	}
}

// Progressf prints a progress line to stdout.
func Progressf(format string, args ...interface{}) {
	fmt.Fprintln(out, progressColor.Sprintf(format, args...))
}

// Warnf prints a warning line to stderr.
func Warnf(format string, args ...interface{}) {
	fmt.Fprintln(errOut, warnColor.Sprint("warning: ")+fmt.Sprintf(format, args...))
}

// Errorf prints an error line to stderr.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintln(errOut, errorColor.Sprint("error: ")+fmt.Sprintf(format, args...))
}

// Summary prints the final per-run counters.
func Summary(included, truncated, excluded int) {
	fmt.Fprintln(out, summaryColor.Sprintf(
		"snapshot complete: %d included, %d truncated, %d excluded/skipped",
		included, truncated, excluded))
}
