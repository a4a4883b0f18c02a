package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/daeuniverse/daed-sub000/internal/format"
)

var (
	fmtWrite   bool
	fmtList    bool
	fmtTabSize int
	fmtTabs    bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <path>...",
	Short: "Format configuration files",
	Long: `Format configuration files. By default the formatted text is printed;
-w rewrites files in place and -l lists files whose formatting differs.

Examples:
  dae-lsp fmt /etc/dae/config.dae
  dae-lsp fmt -w /etc/dae`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write result to the source file")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "List files whose formatting differs")
	fmtCmd.Flags().IntVar(&fmtTabSize, "tab-size", 2, "Spaces per indentation level")
	fmtCmd.Flags().BoolVar(&fmtTabs, "tabs", false, "Indent with tabs")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	sources, err := collect(args)
	if err != nil {
		return err
	}
	opts := format.Options{TabSize: fmtTabSize, InsertSpaces: !fmtTabs}
	return formatSources(cmd.OutOrStdout(), sources, opts, fmtWrite, fmtList)
}

func formatSources(w io.Writer, sources []source, opts format.Options, write, list bool) error {
	for _, src := range sources {
		formatted := format.Format(src.Text, opts)
		changed := formatted != src.Text

		if list && changed {
			fmt.Fprintln(w, src.Path)
		}
		if write {
			if !changed {
				continue
			}
			info, err := os.Stat(src.Path)
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", src.Path, err)
			}
			if err := os.WriteFile(src.Path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to write %s: %w", src.Path, err)
			}
			continue
		}
		if !list {
			io.WriteString(w, formatted)
		}
	}
	return nil
}
