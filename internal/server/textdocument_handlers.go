package server

import (
	"reflect"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/manager"
)

const publishDiagnosticsMethod = "textDocument/publishDiagnostics"

func (s *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	doc := s.documents.Open(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)
	s.publishDiagnostics(context, doc)
	return nil
}

func (s *Server) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	doc, err := s.documents.ApplyChanges(
		params.TextDocument.URI,
		params.TextDocument.Version,
		params.ContentChanges,
	)
	if err != nil {
		return err
	}
	s.publishDiagnostics(context, doc)
	return nil
}

func (s *Server) textDocumentDidSave(
	context *glsp.Context,
	params *protocol.DidSaveTextDocumentParams,
) error {
	if params.Text == nil {
		return nil
	}
	doc, err := s.documents.Get(params.TextDocument.URI)
	if err != nil {
		return err
	}
	if doc.Text == *params.Text {
		return nil
	}
	// Out of sync with the client, trust the saved text.
	log.Warningf("%s: saved text differs from the open document", doc.URI)
	doc = s.documents.Open(doc.URI, doc.Version, *params.Text)
	s.cache.Evict(doc.URI)
	s.publishDiagnostics(context, doc)
	return nil
}

func (s *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	s.documents.Close(uri)
	s.cache.Evict(uri)

	s.diagnosticsMu.Lock()
	delete(s.diagnostics, uri)
	s.diagnosticsMu.Unlock()

	context.Notify(publishDiagnosticsMethod, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// publishDiagnostics sends the diagnostics of doc unless they are the same
// as the ones last sent for its URI.
func (s *Server) publishDiagnostics(context *glsp.Context, doc manager.Document) {
	diagnostics := s.engine.Diagnostics(doc, s.config.DiagnosticSource)
	if !s.diagnosticsChanged(doc.URI, diagnostics) {
		return
	}
	context.Notify(publishDiagnosticsMethod, protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: diagnostics,
	})
}

func (s *Server) diagnosticsChanged(uri string, diagnostics []protocol.Diagnostic) bool {
	s.diagnosticsMu.Lock()
	defer s.diagnosticsMu.Unlock()

	if previous, exists := s.diagnostics[uri]; exists && reflect.DeepEqual(previous, diagnostics) {
		return false
	}
	s.diagnostics[uri] = diagnostics
	return true
}
