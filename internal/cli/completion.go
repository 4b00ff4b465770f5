package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boardcreator/pkg/config"
	"github.com/matzehuels/boardcreator/pkg/project"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for boardcreator.

Besides commands and flags, the scripts complete --backend names, .boardcreator
files for "project import" and the stored palette colors for "palette remove".

Bash:
  $ source <(boardcreator completion bash)

Zsh:
  $ boardcreator completion zsh > "${fpath[1]}/_boardcreator"

Fish:
  $ boardcreator completion fish > ~/.config/fish/completions/boardcreator.fish

PowerShell:
  PS> boardcreator completion powershell | Out-String | Invoke-Expression
`,
		Example: `  # Complete palette colors in the current shell
  source <(boardcreator completion bash)
  boardcreator palette remove <TAB>`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeBackends completes the --backend flag.
func completeBackends(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, b := range config.Backends {
		if strings.HasPrefix(b, toComplete) {
			out = append(out, b)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeProjectFiles limits file completion to project files.
func completeProjectFiles(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{strings.TrimPrefix(project.FileExt, ".")}, cobra.ShellCompDirectiveFilterFileExt
}

// completePaletteColors completes the stored palette colors not yet named on
// the command line. Only local backends are consulted; completing against
// redis or mongo would block the shell on a network dial.
func (c *CLI) completePaletteColors(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if err := c.setup(cmd); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	if b := c.cfg.Storage.Backend; b != config.BackendFile && b != config.BackendMemory {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var out []string
	err := c.withProject(cmd.Context(), func(p *project.Store) error {
		for _, color := range p.Palette() {
			if strings.HasPrefix(color, toComplete) && !slices.Contains(args, color) {
				out = append(out, color)
			}
		}
		return nil
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
