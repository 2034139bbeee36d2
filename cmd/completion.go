package cmd

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for workdraw.

To load completions:

Bash:

  $ source <(workdraw completion bash)

  To load completions for each session, execute once:
  Linux:
    $ workdraw completion bash > /etc/bash_completion.d/workdraw
  macOS:
    $ workdraw completion bash > /usr/local/etc/bash_completion.d/workdraw

Zsh:

  $ workdraw completion zsh > "${fpath[1]}/_workdraw"

Fish:

  $ workdraw completion fish > ~/.config/fish/completions/workdraw.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		default:
			return rootCmd.GenFishCompletion(out, true)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
