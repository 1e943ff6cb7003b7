// Package log provides context-aware logging for wt-core.
//
// Human-facing messages go to the terminal writer (stderr). Debug lines and
// git invocations are printed there only in verbose mode, but are always
// appended to the optional rotated log file.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

// Logger provides output and verbose command logging.
type Logger struct {
	out     io.Writer
	file    io.Writer
	verbose bool
	quiet   bool
}

// New creates a new logger. Quiet suppresses everything written to out,
// including verbose output.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet}
}

// FileOptions configures the rotated log file sink.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// OpenFile returns a size-rotated writer for opts.Path.
// The caller owns the returned closer.
func OpenFile(opts FileOptions) io.WriteCloser {
	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	return &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    maxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
}

// WithFile returns a copy of the logger that additionally records debug
// and command lines to w.
func (l *Logger) WithFile(w io.Writer) *Logger {
	cp := *l
	cp.file = w
	return &cp
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Warnf writes a warning line. Warnings are suppressed by quiet like any
// other human output but always reach the log file.
func (l *Logger) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.record("WARN " + msg)
	l.Printf("warning: %s\n", msg)
}

// Command logs an external command execution. The returned func must be
// called with the elapsed time once the command finishes.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	if !l.IsVerbose() && l.file == nil {
		return func(time.Duration) {}
	}

	line := "$ " + name
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}
	if dir != "" {
		line = "[" + dir + "] " + line
	}

	return func(d time.Duration) {
		full := fmt.Sprintf("%s (%s)", line, d.Round(time.Millisecond))
		l.record(full)
		if l.IsVerbose() {
			fmt.Fprintln(l.out, full)
		}
	}
}

// Debug logs a message with key/value pairs in verbose mode.
// A trailing key without a value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.IsVerbose() && l.file == nil {
		return
	}

	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}

	l.record(b.String())
	if l.IsVerbose() {
		fmt.Fprintln(l.out, b.String())
	}
}

func (l *Logger) record(line string) {
	if l.file == nil {
		return
	}
	fmt.Fprintf(l.file, "%s %s\n", time.Now().Format(time.RFC3339), line)
}

// IsVerbose reports whether verbose output is printed.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// IsQuiet reports whether human output is suppressed.
func (l *Logger) IsQuiet() bool {
	return l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
