// Package cmd runs external commands with separated output streams.
//
// stdout is returned as data; stderr is captured into the error so callers
// can show (or classify) what the tool said without it ever mixing into
// returned output.
//
// # Usage
//
//	out, err := cmd.Exec(ctx, cmd.Spec{
//	    Dir:  repoDir,
//	    Name: "git",
//	    Args: []string{"rev-parse", "HEAD"},
//	})
//	if err != nil {
//	    var exitErr *cmd.ExitError
//	    if errors.As(err, &exitErr) {
//	        // exitErr.Stderr holds the trimmed stderr text
//	    }
//	}
//
// Every invocation is reported to the context logger via [log.Logger.Command]
// together with its duration.
//
// # Environment
//
// [Spec.DropEnv] removes inherited variables from the child environment.
// The git client uses it to strip GIT_DIR and friends so that a wt-core
// invocation from inside a git hook still operates on the repository it was
// pointed at.
package cmd
