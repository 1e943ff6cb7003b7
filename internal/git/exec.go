package git

import (
	"context"
	"errors"
	"strings"

	"github.com/raphi011/wt-core/internal/apperr"
	"github.com/raphi011/wt-core/internal/cmd"
)

// scrubbedEnv lists inherited variables that would redirect git away from
// the repository given with -C.
var scrubbedEnv = []string{
	"GIT_DIR",
	"GIT_WORK_TREE",
	"GIT_INDEX_FILE",
	"GIT_OBJECT_DIRECTORY",
	"GIT_ALTERNATE_OBJECT_DIRECTORIES",
	"GIT_PREFIX",
}

var conflictMarkers = []string{
	"unmerged",
	"modified",
	"dirty",
	"already exists",
	"already checked out",
	"is not fully merged",
}

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// Run executes git in dir and returns its trimmed stdout.
// Failures are classified into *apperr.Error.
func Run(ctx context.Context, dir string, args ...string) (string, error) {
	out, err := cmd.Exec(ctx, cmd.Spec{
		Name:    "git",
		Args:    gitArgs(dir, args),
		DropEnv: scrubbedEnv,
	})
	if err != nil {
		return "", classifyError(err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Succeeds runs git in dir and reports whether it exited zero.
func Succeeds(ctx context.Context, dir string, args ...string) bool {
	_, err := cmd.Exec(ctx, cmd.Spec{
		Name:    "git",
		Args:    gitArgs(dir, args),
		DropEnv: scrubbedEnv,
	})
	return err == nil
}

// Classify maps git's stderr text to an error kind.
func Classify(stderr string) apperr.Kind {
	lower := strings.ToLower(stderr)
	if strings.Contains(lower, "not a git repository") {
		return apperr.NotARepository
	}
	for _, marker := range conflictMarkers {
		if strings.Contains(lower, marker) {
			return apperr.Conflict
		}
	}
	return apperr.GitFailure
}

func classifyError(err error) error {
	var exitErr *cmd.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Stderr == "" {
			return apperr.Wrap(apperr.GitFailure, err, "git exited with status %d", exitErr.Code)
		}
		return apperr.Wrap(Classify(exitErr.Stderr), err, "%s", exitErr.Stderr)
	}
	return apperr.Wrap(apperr.GitFailure, err, "failed to run git: %v", err)
}
