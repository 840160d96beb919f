package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/primetree/pkg/render"
	"github.com/matzehuels/primetree/pkg/tree"
)

// completionCommand prints a shell completion script.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for primetree.

  bash        source <(primetree completion bash)
  zsh         primetree completion zsh > "${fpath[1]}/_primetree"
  fish        primetree completion fish | source
  powershell  primetree completion powershell | Out-String | Invoke-Expression`,
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
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// registerValueCompletions offers the fixed vocabularies of the range and
// display flags on cmd.
func registerValueCompletions(cmd *cobra.Command) {
	fixed := func(values ...string) cobra.CompletionFunc {
		return cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)
	}

	policies := make([]string, len(tree.Policies))
	for i, p := range tree.Policies {
		policies[i] = p.String()
	}
	nodes := make([]string, len(render.NodeModes))
	for i, m := range render.NodeModes {
		nodes[i] = string(m)
	}
	edges := make([]string, len(render.EdgeModes))
	for i, m := range render.EdgeModes {
		edges[i] = string(m)
	}

	completions := map[string]cobra.CompletionFunc{
		"policy": fixed(policies...),
		"nodes":  fixed(nodes...),
		"edges":  fixed(edges...),
		"format": fixed("svg", "png", "json", "dot", "dot-svg", "txt"),
	}
	for name, fn := range completions {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, fn)
		}
	}
}
