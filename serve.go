package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daeuniverse/daed-sub000/internal/server"
)

var (
	serveTransport string
	serveAddress   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the language server",
	Long: `Run the language server. Editors usually start it over stdio; tcp and ws
listen on --address for a single client at a time.

Examples:
  dae-lsp serve
  dae-lsp serve --transport=tcp --address=127.0.0.1:7878`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveTransport, "transport", "stdio", "Transport (stdio, tcp, ws)")
	serveCmd.Flags().StringVar(&serveAddress, "address", "127.0.0.1:7878", "Listen address for tcp and ws")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s := server.NewServer(cfg)
	switch serveTransport {
	case "stdio":
		return s.RunStdio()
	case "tcp":
		return s.RunTCP(serveAddress)
	case "ws", "websocket":
		return s.RunWebSocket(serveAddress)
	default:
		return fmt.Errorf("unsupported transport: %s", serveTransport)
	}
}
