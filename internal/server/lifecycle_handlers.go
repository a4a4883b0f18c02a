package server

import (
	"errors"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/groups"
	"github.com/daeuniverse/daed-sub000/internal/query"
	"github.com/daeuniverse/daed-sub000/internal/scheduler"
)

// ShowGraphCommand opens the reference graph viewer in a browser.
const ShowGraphCommand = "dae.showGraph"

func (s *Server) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	cfg, err := s.config.Overlay(params.InitializationOptions)
	if err != nil {
		return nil, err
	}
	s.config = cfg
	log.Infof("config: %+v", cfg)

	s.openCatalog()

	return protocol.InitializeResult{
		Capabilities: s.capabilities(),
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: Name,
		},
	}, nil
}

func (s *Server) capabilities() protocol.ServerCapabilities {
	syncKind := protocol.TextDocumentSyncKindIncremental

	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{IncludeText: &protocol.True},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{":", "(", ">", " ", ","},
	}
	capabilities.RenameProvider = &protocol.RenameOptions{
		PrepareProvider: &protocol.True,
	}
	capabilities.SemanticTokensProvider = protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes:     query.TokenTypes,
			TokenModifiers: []string{},
		},
		Full: true,
	}
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{ShowGraphCommand},
	}
	return capabilities
}

// openCatalog loads the group catalog and keeps it fresh. A missing or
// broken database only disables group completion.
func (s *Server) openCatalog() {
	catalog, err := groups.Open(s.config)
	if errors.Is(err, groups.ErrNoDatabase) {
		return
	}
	if err != nil {
		log.Errorf("group catalog disabled: %v", err)
		return
	}
	s.catalog.p.Store(catalog)

	s.scheduler = scheduler.NewScheduler(8)
	s.scheduler.RunScheduler()
	if interval := s.config.RefreshInterval(); interval > 0 {
		s.scheduler.SchedulePeriodicTask(interval, catalog.Task())
	}
	if s.config.WatchDatabase {
		watcher, err := catalog.Watch(s.scheduler, groups.DefaultDebounce)
		if err != nil {
			log.Errorf("watch %s: %v", catalog.Path(), err)
		} else {
			s.watcher = watcher
		}
	}
}

func (s *Server) initialized(
	context *glsp.Context,
	params *protocol.InitializedParams,
) error {
	log.Info("client initialized")
	return nil
}

func (s *Server) shutdown(context *glsp.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			log.Errorf("close watcher: %v", err)
		}
		s.watcher = nil
	}
	if s.scheduler != nil {
		s.scheduler.StopScheduler()
	}
	protocol.SetTraceValue(protocol.TraceValueOff)
	return s.graph.Stop()
}

func (s *Server) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}
