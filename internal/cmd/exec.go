package cmd

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/wt-core/internal/log"
)

// Spec describes one command invocation.
type Spec struct {
	Dir     string
	Name    string
	Args    []string
	DropEnv []string
}

// ExitError is returned when a command ran but exited non-zero.
type ExitError struct {
	Stderr string
	Code   int
	Err    error
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exec runs spec and returns stdout. A non-zero exit yields an *ExitError
// carrying the trimmed stderr. Context cancellation is returned as ctx.Err().
func Exec(ctx context.Context, spec Spec) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := log.FromContext(ctx).Command(spec.Dir, spec.Name, spec.Args...)
	start := time.Now()

	c := exec.CommandContext(ctx, spec.Name, spec.Args...)
	c.Dir = spec.Dir
	if len(spec.DropEnv) > 0 {
		c.Env = filterEnv(os.Environ(), spec.DropEnv)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	done(time.Since(start))

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return nil, err
		}
		return nil, &ExitError{
			Stderr: strings.TrimSpace(stderr.String()),
			Code:   exitErr.ExitCode(),
			Err:    err,
		}
	}
	return stdout.Bytes(), nil
}

func filterEnv(env, drop []string) []string {
	out := make([]string, 0, len(env))
outer:
	for _, kv := range env {
		for _, key := range drop {
			if strings.HasPrefix(kv, key+"=") {
				continue outer
			}
		}
		out = append(out, kv)
	}
	return out
}
