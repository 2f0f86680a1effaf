package devtools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StartStdio connects the server to stdin/stdout and blocks until the
// client disconnects or ctx is canceled.
func (s *Server) StartStdio(ctx context.Context) error {
	transport := &mcp.StdioTransport{}

	session, err := s.server.Connect(ctx, transport, nil)
	if err != nil {
		return fmt.Errorf("devtools: connect stdio transport: %w", err)
	}

	if err := session.Wait(); err != nil {
		return fmt.Errorf("devtools: stdio session ended: %w", err)
	}
	return nil
}
