package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// completionShells maps each supported shell to its cobra generator.
var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// completionCommand prints a shell completion script to stdout.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  completionHelp(appName),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := completionShells[args[0]]
			return gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

func completionHelp(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate shell completion scripts for %s.\n\n", name)
	fmt.Fprintf(&b, "Bash:\n  $ source <(%[1]s completion bash)\n  $ %[1]s completion bash > /etc/bash_completion.d/%[1]s\n\n", name)
	fmt.Fprintf(&b, "Zsh:\n  $ %[1]s completion zsh > \"${fpath[1]}/_%[1]s\"\n\n", name)
	fmt.Fprintf(&b, "Fish:\n  $ %[1]s completion fish > ~/.config/fish/completions/%[1]s.fish\n\n", name)
	fmt.Fprintf(&b, "PowerShell:\n  PS> %[1]s completion powershell | Out-String | Invoke-Expression\n", name)
	return b.String()
}
