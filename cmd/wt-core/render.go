package main

import (
	"strconv"
	"strings"

	"github.com/raphi011/wt-core/internal/log"
	"github.com/raphi011/wt-core/internal/output"
)

// reportedError marks a failure whose JSON envelope is already on stdout.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// finish renders a command failure for the selected output. In JSON mode
// the failure envelope goes to stdout; every other mode leaves stdout
// empty and the caller prints the message on stderr.
func finish(out *output.Printer, jsonOut bool, err error) error {
	if err == nil || !jsonOut {
		return err
	}
	if encErr := out.JSON(output.NewErrorPayload(err)); encErr != nil {
		return err
	}
	return &reportedError{err: err}
}

// jsonRequested reports whether the raw arguments ask for JSON output.
// Flags after a "--" terminator are positional.
func jsonRequested(args []string) bool {
	on := false
	for _, a := range args {
		if a == "--" {
			break
		}
		if a == "--json" {
			on = true
			continue
		}
		if v, ok := strings.CutPrefix(a, "--json="); ok {
			b, err := strconv.ParseBool(v)
			on = err == nil && b
		}
	}
	return on
}

// warn prints non-fatal problems on stderr. JSON output carries them in
// the payload instead.
func warn(l *log.Logger, warnings []string) {
	for _, w := range warnings {
		l.Warnf("%s", w)
	}
}
