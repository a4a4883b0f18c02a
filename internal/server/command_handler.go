package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) workspaceExecuteCommand(
	context *glsp.Context,
	params *protocol.ExecuteCommandParams,
) (any, error) {
	switch params.Command {
	case ShowGraphCommand:
		return s.showGraph(context)
	default:
		log.Warningf("unknown command %q", params.Command)
		return nil, nil
	}
}

// showGraph starts the graph viewer if needed and asks the client to open
// it. The URL is returned for clients that cannot show documents.
func (s *Server) showGraph(context *glsp.Context) (any, error) {
	url, err := s.graph.Start(s.config.GraphAddress)
	if err != nil {
		return nil, err
	}
	context.Notify(
		"window/showDocument",
		protocol.ShowDocumentParams{
			URI:      protocol.URI(url),
			External: &protocol.True,
		},
	)
	return url, nil
}
