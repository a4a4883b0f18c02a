package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/daeuniverse/daed-sub000/internal/parser"
	"github.com/daeuniverse/daed-sub000/internal/symbols"
)

var dumpFormat string

var dumpCmd = &cobra.Command{
	Use:   "dump <path>...",
	Short: "Print the symbols and references of configuration files",
	Long: `Parse configuration files and print their symbols, references and
diagnostics.

Examples:
  dae-lsp dump /etc/dae/config.dae
  dae-lsp dump --format=yaml /etc/dae`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "json", "Output format (json, yaml)")
	rootCmd.AddCommand(dumpCmd)
}

// fileDump is the dump of one file.
type fileDump struct {
	Path   string              `json:"path" yaml:"path"`
	Result symbols.ParseResult `json:"result" yaml:"result"`
}

func runDump(cmd *cobra.Command, args []string) error {
	sources, err := collect(args)
	if err != nil {
		return err
	}
	return dump(cmd.OutOrStdout(), sources, dumpFormat)
}

func dump(w io.Writer, sources []source, format string) error {
	dumps := make([]fileDump, 0, len(sources))
	for _, src := range sources {
		dumps = append(dumps, fileDump{Path: src.Path, Result: parser.Parse(src.Text)})
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dumps); err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dumps); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}
