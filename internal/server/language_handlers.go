package server

import (
	"errors"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/format"
	"github.com/daeuniverse/daed-sub000/internal/manager"
)

// document returns the open document of uri. Requests for documents that
// are not open get an empty answer rather than an error.
func (s *Server) document(uri protocol.DocumentUri) (manager.Document, bool) {
	doc, err := s.documents.Get(uri)
	if err != nil {
		if errors.Is(err, manager.ErrNotOpen) {
			log.Debugf("%v", err)
		} else {
			log.Errorf("%v", err)
		}
		return manager.Document{}, false
	}
	return doc, true
}

func (s *Server) textDocumentHover(
	context *glsp.Context,
	params *protocol.HoverParams,
) (*protocol.Hover, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return s.engine.Hover(doc, params.Position), nil
}

func (s *Server) textDocumentCompletion(
	context *glsp.Context,
	params *protocol.CompletionParams,
) (any, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	items := s.engine.Completion(doc, params.Position)
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

func (s *Server) textDocumentDefinition(
	context *glsp.Context,
	params *protocol.DefinitionParams,
) (any, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	rng := s.engine.Definition(doc, params.Position)
	if rng == nil {
		return nil, nil
	}
	return protocol.Location{URI: doc.URI, Range: *rng}, nil
}

func (s *Server) textDocumentReferences(
	context *glsp.Context,
	params *protocol.ReferenceParams,
) ([]protocol.Location, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return locations(doc.URI, s.engine.References(doc, params.Position, params.Context.IncludeDeclaration)), nil
}

func (s *Server) textDocumentPrepareRename(
	context *glsp.Context,
	params *protocol.PrepareRenameParams,
) (any, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	target := s.engine.PrepareRename(doc, params.Position)
	if target == nil {
		return nil, nil
	}
	return target, nil
}

func (s *Server) textDocumentRename(
	context *glsp.Context,
	params *protocol.RenameParams,
) (*protocol.WorkspaceEdit, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	edits := s.engine.Rename(doc, params.Position, params.NewName)
	if len(edits) == 0 {
		return nil, nil
	}
	return &protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{doc.URI: edits},
	}, nil
}

func (s *Server) textDocumentFormatting(
	context *glsp.Context,
	params *protocol.DocumentFormattingParams,
) ([]protocol.TextEdit, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return format.Edits(doc.Text, format.OptionsFrom(params.Options)), nil
}

func (s *Server) textDocumentSemanticTokensFull(
	context *glsp.Context,
	params *protocol.SemanticTokensParams,
) (*protocol.SemanticTokens, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return s.engine.SemanticTokens(doc), nil
}

func (s *Server) textDocumentDocumentSymbol(
	context *glsp.Context,
	params *protocol.DocumentSymbolParams,
) (any, error) {
	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return s.engine.DocumentSymbols(doc), nil
}

func locations(uri protocol.DocumentUri, ranges []protocol.Range) []protocol.Location {
	if len(ranges) == 0 {
		return nil
	}
	out := make([]protocol.Location, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, protocol.Location{URI: uri, Range: r})
	}
	return out
}
