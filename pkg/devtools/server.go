package devtools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/loomui/loom/pkg/observability"
	"github.com/loomui/loom/pkg/runtime"
)

// Server exposes a runtime.Runtime's scope tree and layout tree as MCP
// resources, and a find_node tool to locate a node by its primitive tag.
type Server struct {
	mu     sync.RWMutex
	rt     *runtime.Runtime
	server *mcp.Server
}

// NewServer wraps rt in an MCP server ready to have its transport started.
// rt must not be nil.
func NewServer(rt *runtime.Runtime) (*Server, error) {
	if rt == nil {
		return nil, fmt.Errorf("devtools: runtime cannot be nil")
	}

	impl := &mcp.Implementation{Name: "loom-devtools", Version: "0.1.0"}
	mcpServer := mcp.NewServer(impl, &mcp.ServerOptions{})

	s := &Server{rt: rt, server: mcpServer}
	s.registerResources()
	s.registerTools()
	return s, nil
}

func (s *Server) registerResources() {
	s.server.AddResource(
		&mcp.Resource{
			URI:         "loom://scopes",
			Name:        "scopes",
			Description: "Scope tree snapshot: every element node and its backing reactive scope, if any.",
			MIMEType:    "application/json",
		},
		func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return s.readScopes(ctx, req)
		},
	)

	s.server.AddResource(
		&mcp.Resource{
			URI:         "loom://layout",
			Name:        "layout",
			Description: "Layout tree snapshot: every node's last-measured area and inner area.",
			MIMEType:    "application/json",
		},
		func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return s.readLayout(ctx, req)
		},
	)
}

func (s *Server) readScopes(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.RLock()
	rt := s.rt
	s.mu.RUnlock()

	snap, at := SnapshotScopes(rt)
	data, err := json.MarshalIndent(struct {
		Root      ScopeSnapshot `json:"root"`
		Timestamp string        `json:"timestamp"`
	}{Root: snap, Timestamp: at.Format("2006-01-02T15:04:05Z07:00")}, "", "  ")
	if err != nil {
		observability.Sink("devtools")(err)
		return nil, fmt.Errorf("devtools: marshal scope snapshot: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
		},
	}, nil
}

func (s *Server) readLayout(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.RLock()
	rt := s.rt
	s.mu.RUnlock()

	snap, at := SnapshotLayout(rt)
	data, err := json.MarshalIndent(struct {
		Root      LayoutSnapshot `json:"root"`
		Timestamp string         `json:"timestamp"`
	}{Root: snap, Timestamp: at.Format("2006-01-02T15:04:05Z07:00")}, "", "  ")
	if err != nil {
		observability.Sink("devtools")(err)
		return nil, fmt.Errorf("devtools: marshal layout snapshot: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
		},
	}, nil
}

func (s *Server) registerTools() {
	tool := &mcp.Tool{
		Name:        "find_node",
		Description: "Find element nodes by their primitive tag in the current scope tree.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"tag": map[string]interface{}{
					"type":        "string",
					"description": "Primitive tag to search for, exact match.",
				},
			},
			"required": []string{"tag"},
		},
	}
	s.server.AddTool(tool, s.handleFindNode)
}

func (s *Server) handleFindNode(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Tag string `json:"tag"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("invalid arguments: %v", err)}},
			IsError: true,
		}, nil
	}

	s.mu.RLock()
	rt := s.rt
	s.mu.RUnlock()

	root, _ := SnapshotScopes(rt)
	matches := FindByTag(root, args.Tag)

	data, err := json.Marshal(matches)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("marshal error: %v", err)}},
			IsError: true,
		}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}
