package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate a completion script for dms and print it to stdout.

Examples:
  # Bash (Linux)
  dms completion bash > /etc/bash_completion.d/dms

  # Zsh
  dms completion zsh > "${fpath[1]}/_dms"

  # Fish
  dms completion fish > ~/.config/fish/completions/dms.fish

  # PowerShell
  dms completion powershell | Out-String | Invoke-Expression

Restart your shell afterwards to pick up the completions.`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cmd.Root()
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(os.Stdout)
		case "zsh":
			return root.GenZshCompletion(os.Stdout)
		case "fish":
			return root.GenFishCompletion(os.Stdout, true)
		default:
			return root.GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}
