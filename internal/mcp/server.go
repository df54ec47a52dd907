package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jonesrussell/vaultcrawl/internal/crawler"
	"github.com/jonesrussell/vaultcrawl/internal/harvest"
	"github.com/jonesrussell/vaultcrawl/internal/logger"
)

const protocolVersion = "2024-11-05"

// Service provides the operations the MCP tools are mapped onto.
type Service interface {
	DiscoverLinks(ctx context.Context, seedURL string, opts crawler.Options) (*crawler.Result, error)
	CrawlDocs(ctx context.Context, seedURL string, opts crawler.Options) (*harvest.Report, error)
	FetchPage(ctx context.Context, pageURL string) (string, error)
}

// Server handles MCP protocol requests.
type Server struct {
	service Service
	logger  logger.Interface
	// defaults fill option fields the caller leaves unset.
	defaults crawler.Options
}

// NewServer creates a new MCP server.
func NewServer(service Service, defaults crawler.Options, log logger.Interface) *Server {
	return &Server{
		service:  service,
		logger:   log,
		defaults: defaults,
	}
}

// Serve reads JSON-RPC requests from r and writes responses to w until
// EOF, context cancellation, or a frame that is not valid JSON. Only
// protocol JSON goes to w; all diagnostics go through the logger.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	decoder := json.NewDecoder(bufio.NewReader(r))
	encoder := json.NewEncoder(w)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var request Request
		if err := decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			// The decoder cannot resynchronize after a syntax error, so
			// a malformed frame ends the session after one error
			// response rather than looping on the same failure.
			s.logger.Warn("Failed to parse request, closing session", "error", err)
			if encodeErr := encoder.Encode(&Response{
				JSONRPC: "2.0",
				ID:      0,
				Error:   &ErrorObject{Code: ParseError, Message: "Failed to parse request"},
			}); encodeErr != nil {
				return fmt.Errorf("encode error response: %w", encodeErr)
			}
			return fmt.Errorf("parse request: %w", err)
		}

		response := s.HandleRequest(ctx, &request)
		if response == nil || request.ID == nil {
			// Notifications get no response.
			continue
		}
		if err := encoder.Encode(response); err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
	}
}

// HandleRequest processes one MCP request. It returns nil for
// notifications and unknown-method notifications.
func (s *Server) HandleRequest(ctx context.Context, req *Request) *Response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req.ID)
	case "tools/list":
		return s.handleToolsList(req.ID)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  json.RawMessage(`"pong"`),
		}
	}

	if req.ID == nil {
		return nil
	}
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Error:   &ErrorObject{Code: MethodNotFound, Message: "Method not found"},
	}
}

// handleInitialize handles the initialize request.
func (s *Server) handleInitialize(id any) *Response {
	result := map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    "vaultcrawl",
			"version": "1.0.0",
		},
	}
	return marshalResult(id, result)
}

// handleToolsList returns the list of available tools.
func (s *Server) handleToolsList(id any) *Response {
	return marshalResult(id, map[string]any{"tools": getAllTools()})
}

// marshalResult wraps a result value into a JSON-RPC response.
func marshalResult(id any, result any) *Response {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return &Response{
			JSONRPC: "2.0",
			ID:      id,
			Error: &ErrorObject{
				Code:    InternalError,
				Message: fmt.Sprintf("Failed to marshal result: %v", err),
			},
		}
	}
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  json.RawMessage(resultJSON),
	}
}
