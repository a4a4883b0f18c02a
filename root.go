package main

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/daeuniverse/daed-sub000/internal/config"
	"github.com/daeuniverse/daed-sub000/internal/scanner"
)

// Version will be set during the build process using ldflags
var Version = "(dev) v0.0.0"

var (
	configPath string
	verbosity  int
	logfile    string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dae-lsp",
	Short: "Language server and tools for dae configuration files",
	Long: `dae-lsp understands the configuration language of the dae proxy. It runs as
a language server for editors and offers command line tools to check, format
and inspect configuration files.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var path *string
		if logfile != "" {
			path = &logfile
		}
		commonlog.Configure(verbosity, path)

		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate("dae-lsp version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Settings file (JSON, YAML or TOML)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "Write logs to this file instead of stderr")
}

// source is a configuration file read from disk.
type source struct {
	Path string
	Text string
}

// collect reads the configuration files named by paths. Directories are
// walked for *.dae files; files named explicitly are read whatever their
// extension.
func collect(paths []string) ([]source, error) {
	var sources []source
	for _, root := range paths {
		skip := func(path string, _ fs.FileInfo) bool {
			return !scanner.IsConfig(path)
		}
		err := scanner.Scan(root, skip, func(path string, document []byte) {
			sources = append(sources, source{Path: path, Text: string(document)})
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", root, err)
		}
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}
