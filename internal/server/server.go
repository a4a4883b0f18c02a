// Package server exposes the query engine over the Language Server Protocol.
package server

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/daeuniverse/daed-sub000/internal/cache"
	"github.com/daeuniverse/daed-sub000/internal/config"
	"github.com/daeuniverse/daed-sub000/internal/graph"
	"github.com/daeuniverse/daed-sub000/internal/groups"
	"github.com/daeuniverse/daed-sub000/internal/manager"
	"github.com/daeuniverse/daed-sub000/internal/parser"
	"github.com/daeuniverse/daed-sub000/internal/query"
	"github.com/daeuniverse/daed-sub000/internal/scheduler"
)

const Name = "dae-lsp"

var log = commonlog.GetLogger("dae-lsp.server")

// catalogRef lets the engine see a catalog that is opened after the server
// has been created.
type catalogRef struct {
	p atomic.Pointer[groups.Catalog]
}

func (r *catalogRef) Names() []string {
	return r.p.Load().Names()
}

type Server struct {
	handler *protocol.Handler
	config  config.Config

	documents *manager.DocumentManager
	cache     *cache.Cache
	engine    *query.Engine
	graph     *graph.Viewer

	catalog   catalogRef
	scheduler *scheduler.Scheduler
	watcher   io.Closer

	diagnosticsMu sync.Mutex
	diagnostics   map[string][]protocol.Diagnostic
}

// NewServer creates a server. cfg holds the settings from the command line;
// initializationOptions sent by the editor are applied on top of it.
func NewServer(cfg config.Config) *Server {
	s := &Server{
		config:      cfg,
		documents:   manager.NewDocumentManager(),
		cache:       cache.New(parser.Parse),
		diagnostics: make(map[string][]protocol.Diagnostic),
	}
	s.engine = query.NewEngine(s.cache, &s.catalog)
	s.graph = graph.NewViewer(s.cache)
	s.handler = &protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentHover:              s.textDocumentHover,
		TextDocumentCompletion:         s.textDocumentCompletion,
		TextDocumentDefinition:         s.textDocumentDefinition,
		TextDocumentReferences:         s.textDocumentReferences,
		TextDocumentPrepareRename:      s.textDocumentPrepareRename,
		TextDocumentRename:             s.textDocumentRename,
		TextDocumentFormatting:         s.textDocumentFormatting,
		TextDocumentSemanticTokensFull: s.textDocumentSemanticTokensFull,
		TextDocumentDocumentSymbol:     s.textDocumentDocumentSymbol,

		WorkspaceExecuteCommand: s.workspaceExecuteCommand,
	}
	return s
}

func (s *Server) glsp() *glspserver.Server {
	return glspserver.NewServer(s.handler, Name, false)
}

// RunStdio serves a single client over stdin and stdout.
func (s *Server) RunStdio() error {
	return s.glsp().RunStdio()
}

// RunTCP serves clients connecting to address.
func (s *Server) RunTCP(address string) error {
	return s.glsp().RunTCP(address)
}

// RunWebSocket serves clients connecting over WebSocket to address.
func (s *Server) RunWebSocket(address string) error {
	return s.glsp().RunWebSocket(address)
}
