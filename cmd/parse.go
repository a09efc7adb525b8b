package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/josephlewis42/seqsh/core/shell"
	"github.com/spf13/cobra"
)

// parseCmd prints the tree a line parses to without running it.
var parseCmd = &cobra.Command{
	Use:   "parse LINE",
	Short: "Show how a line is parsed without running it.",
	Args:  cobra.MinimumNArgs(1),
	// Lines often contain words that look like flags.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		expr, err := shell.Parse(strings.Join(args, " "))
		if err != nil {
			return err
		}

		printTree(cmd.OutOrStdout(), expr, 0)
		return nil
	},
}

func printTree(w io.Writer, expr shell.Expression, depth int) {
	indent := strings.Repeat("  ", depth)
	switch expr := expr.(type) {
	case *shell.Compound:
		fmt.Fprintf(w, "%s%q\n", indent, expr.Op.String())
		printTree(w, expr.Left, depth+1)
		printTree(w, expr.Right, depth+1)
	case *shell.Leaf:
		switch c := expr.Command.(type) {
		case *shell.Builtin:
			fmt.Fprintf(w, "%sbuiltin %s\n", indent, c.Name)
		case *shell.Invoke:
			fmt.Fprintf(w, "%sinvoke %q %q\n", indent, c.Binary, c.Args)
		}
	}
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
