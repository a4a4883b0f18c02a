package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/daeuniverse/daed-sub000/internal/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check <path>...",
	Short: "Report problems in configuration files",
	Long: `Parse configuration files and print every problem found as
file:line:column: severity: message. Directories are searched for *.dae files.

Examples:
  dae-lsp check /etc/dae/config.dae
  dae-lsp check /etc/dae`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	sources, err := collect(args)
	if err != nil {
		return err
	}
	problems := check(cmd.OutOrStdout(), sources)
	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	return nil
}

// check prints the diagnostics of every source and returns their count.
func check(w io.Writer, sources []source) int {
	problems := 0
	for _, src := range sources {
		result := parser.Parse(src.Text)
		for _, d := range result.Diagnostics {
			fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
				src.Path,
				d.Range.Start.Line+1,
				d.Range.Start.Character+1,
				d.Severity,
				d.Message,
			)
			problems++
		}
	}
	return problems
}
