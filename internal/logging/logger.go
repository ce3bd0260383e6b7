package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// RedactedPlaceholder replaces sensitive values in log output.
const RedactedPlaceholder = "<REDACTED>"

// Logger writes human-oriented status lines to stderr
type Logger struct {
	debug   bool
	noColor bool
	out     io.Writer
}

// New creates a new logger instance
func New(debug, noColor bool) *Logger {
	return &Logger{
		debug:   debug,
		noColor: noColor,
		out:     os.Stderr,
	}
}

// WithWriter returns a copy of the logger that writes to w.
func (l *Logger) WithWriter(w io.Writer) *Logger {
	return &Logger{debug: l.debug, noColor: l.noColor, out: w}
}

// DebugEnabled reports whether debug output is on.
func (l *Logger) DebugEnabled() bool {
	return l.debug
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.emit("\033[32m✓\033[0m", "✓", format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.emit("\033[33m⚠\033[0m", "⚠", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.emit("\033[31m✗\033[0m", "✗", format, args...)
}

// Debug logs a debug message if debug mode is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.emit("\033[36m[DEBUG]\033[0m", "[DEBUG]", format, args...)
}

// Plain writes the message with no marker. Used for multi-line guidance.
func (l *Logger) Plain(format string, args ...interface{}) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

func (l *Logger) emit(colored, plain, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	marker := colored
	if l.noColor {
		marker = plain
	}
	fmt.Fprintf(l.out, "%s %s\n", marker, msg)
}

// Secret represents a value that should be redacted in logs
type Secret string

// String implements the Stringer interface, always returning a redacted value
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString implements the GoStringer interface for %#v formatting
func (s Secret) GoString() string {
	return "[REDACTED]"
}

// Redact replaces sensitive values in a string with [REDACTED]
func Redact(s string, secrets []string) string {
	result := s
	for _, secret := range secrets {
		if secret != "" && len(secret) > 3 {
			result = strings.ReplaceAll(result, secret, "[REDACTED]")
		}
	}
	return result
}

// RedactArgs masks the value of every key=value argument whose key
// mentions a password or secret. Other arguments pass through untouched.
func RedactArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if key, _, ok := sensitiveArg(arg); ok {
			out[i] = key + "=" + RedactedPlaceholder
			continue
		}
		out[i] = arg
	}
	return out
}

// SecretValues returns the values RedactArgs would mask, for scrubbing
// them from output that echoes the arguments back.
func SecretValues(args []string) []string {
	var values []string
	for _, arg := range args {
		if _, value, ok := sensitiveArg(arg); ok {
			values = append(values, value)
		}
	}
	return values
}

func sensitiveArg(arg string) (key, value string, ok bool) {
	key, value, found := strings.Cut(arg, "=")
	if !found {
		return "", "", false
	}
	lower := strings.ToLower(key)
	if strings.Contains(lower, "password") || strings.Contains(lower, "secret") {
		return key, value, true
	}
	return "", "", false
}
