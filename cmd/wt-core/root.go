package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/wt-core/internal/apperr"
	"github.com/raphi011/wt-core/internal/config"
	"github.com/raphi011/wt-core/internal/git"
	"github.com/raphi011/wt-core/internal/log"
	"github.com/raphi011/wt-core/internal/output"
	"github.com/raphi011/wt-core/internal/ui/styles"
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupUtility = "utility"
	GroupConfig  = "config"
)

type sessionKey struct{}

// session is the per-invocation state shared by all commands.
type session struct {
	stdout  io.Writer
	stderr  io.Writer
	environ []string
	workDir string
	cfg     *config.Config
	cfgErr  error
	closers []io.Closer
}

func withSession(ctx context.Context, s *session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func sessionFromContext(ctx context.Context) *session {
	if s, ok := ctx.Value(sessionKey{}).(*session); ok {
		return s
	}
	cfg := config.Default()
	return &session{stdout: os.Stdout, stderr: os.Stderr, cfg: &cfg}
}

func (s *session) close() {
	for _, c := range s.closers {
		_ = c.Close()
	}
	s.closers = nil
}

func newRootCmd() *cobra.Command {
	var (
		verbose bool
		quiet   bool
	)

	rootCmd := &cobra.Command{
		Use:   "wt-core",
		Short: "Git worktree lifecycle manager",
		Long: `wt-core manages the lifecycle of git worktrees inside one repository.

Worktrees live under <repo>/.worktrees/ and are created, merged, pruned
and removed through a small set of commands. Use 'wt-core init' to
install the 'wt' shell wrapper that changes directory for you.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return apperr.NewUsage("--verbose and --quiet are mutually exclusive")
			}

			ctx := cmd.Context()
			s := sessionFromContext(ctx)

			l := log.New(s.stderr, verbose, quiet)
			if s.cfg.Log.File != "" {
				f := log.OpenFile(log.FileOptions{
					Path:       s.cfg.Log.File,
					MaxSizeMB:  s.cfg.Log.MaxSizeMB,
					MaxBackups: s.cfg.Log.MaxBackups,
					MaxAgeDays: s.cfg.Log.MaxAgeDays,
				})
				s.closers = append(s.closers, f)
				l = l.WithFile(f)
			}
			if s.cfgErr != nil {
				l.Warnf("%v (using defaults)", s.cfgErr)
			}
			// The default theme is active from package init.
			if theme := s.cfg.UI.Theme; theme != "" && theme != "default" && !styles.Init(theme) {
				l.Warnf("unknown theme %q, using default", theme)
			}

			ctx = log.WithLogger(ctx, l)
			ctx = output.WithPrinter(ctx, colorprofile.NewWriter(s.stdout, s.environ))
			ctx = config.WithResolver(ctx, config.NewResolver(s.cfg))
			cmd.SetContext(ctx)

			// Skip git check for completion and help commands
			switch cmd.Name() {
			case "completion", "__complete", "help", "init":
				return nil
			}
			return git.CheckGit()
		},
		// Run is not set - shows help when no subcommand provided
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show git commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperr.Wrap(apperr.Usage, err, "%v", err)
	})

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newGoCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newPruneCmd())

	// Utility commands
	rootCmd.AddCommand(newDoctorCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newInitCmd())

	return rootCmd
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, s *session, args []string) int {
	defer s.close()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(s.stdout)
	rootCmd.SetErr(s.stderr)

	err := rootCmd.ExecuteContext(withSession(ctx, s))
	if err == nil {
		return 0
	}

	var reported *reportedError
	switch {
	case errors.As(err, &reported):
	case jsonRequested(args):
		// failed before the command could render its own envelope
		if encErr := output.New(s.stdout).JSON(output.NewErrorPayload(err)); encErr != nil {
			fmt.Fprintf(s.stderr, "error: %s\n", err)
		}
	default:
		fmt.Fprintf(s.stderr, "error: %s\n", err)
	}
	return apperr.ExitCode(err)
}

// Execute runs the command line of the current process and exits.
func Execute() {
	s := &session{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		environ: os.Environ(),
	}

	cfg, err := config.Load()
	s.cfg = &cfg
	s.cfgErr = err

	s.workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, s, os.Args[1:])
	cancel()
	os.Exit(code)
}
