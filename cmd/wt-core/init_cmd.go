package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/wt-core/internal/apperr"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "init <shell>",
		Short:     "Output shell wrapper function",
		GroupID:   GroupConfig,
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.ExactArgs(1),
		Long: `Output the 'wt' shell wrapper function.

A subprocess cannot change the parent shell's directory. The wrapper runs
add and go with --print-cd-path and changes into the printed worktree.
After remove and merge it reads --print-paths and moves to the repository
root when the current directory was removed. Every other command is
passed through unchanged.`,
		Example: `  eval "$(wt-core init bash)"      # add to ~/.bashrc
  eval "$(wt-core init zsh)"       # add to ~/.zshrc
  wt-core init fish | source       # add to ~/.config/fish/config.fish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "fish":
				_, err := w.Write([]byte(fishInit))
				return err
			case "bash":
				_, err := w.Write([]byte(bashInit))
				return err
			case "zsh":
				_, err := w.Write([]byte(zshInit))
				return err
			default:
				return apperr.NewUsage("unsupported shell: %s (supported: fish, bash, zsh)", args[0])
			}
		},
	}

	return cmd
}

// posixWrapper is shared by bash and zsh.
const posixWrapper = `wt() {
    local arg
    for arg in "$@"; do
        case "$arg" in
            --json|--print-cd-path|--print-paths|-h|--help)
                command wt-core "$@"
                return
                ;;
        esac
    done

    case "$1" in
        add|go)
            local dir
            dir="$(command wt-core "$@" --print-cd-path)" || return
            [ -n "$dir" ] && cd "$dir"
            ;;
        remove|rm|merge)
            local lines root
            lines="$(command wt-core "$@" --print-paths)" || return
            if [ "$1" = merge ]; then
                root="$(printf '%s\n' "$lines" | sed -n 1p)"
            else
                root="$(printf '%s\n' "$lines" | sed -n 2p)"
            fi
            [ -d "$PWD" ] || cd "$root"
            ;;
        *)
            command wt-core "$@"
            ;;
    esac
}
`

const bashInit = `# wt-core shell wrapper
# Install: eval "$(wt-core init bash)"

` + posixWrapper

const zshInit = `# wt-core shell wrapper
# Install: eval "$(wt-core init zsh)"

` + posixWrapper

const fishInit = `# wt-core shell wrapper
# Install: wt-core init fish | source
# Or add to config.fish: wt-core init fish | source

function wt --wraps=wt-core --description 'Git worktree lifecycle manager'
    for arg in $argv
        switch $arg
            case --json --print-cd-path --print-paths -h --help
                command wt-core $argv
                return $status
        end
    end

    switch "$argv[1]"
        case add go
            set -l dir (command wt-core $argv --print-cd-path)
            or return $status
            test -n "$dir"; and cd $dir
        case remove rm merge
            set -l lines (command wt-core $argv --print-paths)
            or return $status
            set -l root $lines[2]
            if test "$argv[1]" = merge
                set root $lines[1]
            end
            test -d "$PWD"; or cd $root
        case '*'
            command wt-core $argv
    end
end
`
