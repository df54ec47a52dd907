package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/jonesrussell/vaultcrawl/internal/crawler"
	"github.com/jonesrussell/vaultcrawl/internal/urlkit"
)

// crawlArguments are the decoded tool arguments shared by crawl_docs
// and discover_links. Unset numeric fields fall back to the server's
// configured defaults.
type crawlArguments struct {
	URL             string `mapstructure:"url"`
	Depth           int    `mapstructure:"depth"`
	MaxURLs         int    `mapstructure:"max_urls"`
	ScopeRestricted *bool  `mapstructure:"scope_restricted"`
	ExcludePatterns string `mapstructure:"exclude_patterns"`
	IncludePatterns string `mapstructure:"include_patterns"`
}

// fetchArguments are the decoded fetch_page arguments.
type fetchArguments struct {
	URL string `mapstructure:"url"`
}

// handleToolsCall executes a tool call.
func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &ErrorObject{Code: InvalidParams, Message: "Invalid tool call parameters"},
		}
	}

	s.logger.Info("Tool call", "tool", params.Name)

	switch params.Name {
	case "crawl_docs":
		return s.callCrawlDocs(ctx, req.ID, params.Arguments)
	case "discover_links":
		return s.callDiscoverLinks(ctx, req.ID, params.Arguments)
	case "fetch_page":
		return s.callFetchPage(ctx, req.ID, params.Arguments)
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Error: &ErrorObject{
			Code:    MethodNotFound,
			Message: fmt.Sprintf("Unknown tool: %s", params.Name),
		},
	}
}

func (s *Server) callCrawlDocs(ctx context.Context, id any, args map[string]any) *Response {
	seedURL, opts, errResp := s.decodeCrawlArguments(id, args)
	if errResp != nil {
		return errResp
	}

	report, err := s.service.CrawlDocs(ctx, seedURL, opts)
	if err != nil {
		return toolError(id, err)
	}

	text := fmt.Sprintf(
		"Harvested %d of %d pages from %s.\n"+
			"Discovered %d unique links, collected %d URLs, %d fetch errors.\n"+
			"Batches: %d succeeded, %d failed.",
		report.Pages.Succeeded, report.Pages.Attempted, seedURL,
		report.Crawl.UniqueDiscovered, len(report.Crawl.Collected), report.Crawl.FetchErrors,
		report.Batches.Succeeded, report.Batches.Failed)

	return toolText(id, text)
}

func (s *Server) callDiscoverLinks(ctx context.Context, id any, args map[string]any) *Response {
	seedURL, opts, errResp := s.decodeCrawlArguments(id, args)
	if errResp != nil {
		return errResp
	}

	result, err := s.service.DiscoverLinks(ctx, seedURL, opts)
	if err != nil {
		return toolError(id, err)
	}

	return toolText(id, strings.Join(result.Collected, "\n"))
}

func (s *Server) callFetchPage(ctx context.Context, id any, args map[string]any) *Response {
	var decoded fetchArguments
	if err := mapstructure.Decode(args, &decoded); err != nil || decoded.URL == "" {
		return invalidParams(id, "fetch_page requires a url argument")
	}

	markdown, err := s.service.FetchPage(ctx, decoded.URL)
	if err != nil {
		return toolError(id, err)
	}

	return toolText(id, markdown)
}

// decodeCrawlArguments decodes and validates shared crawl arguments,
// filling unset fields from the server defaults.
func (s *Server) decodeCrawlArguments(id any, args map[string]any) (string, crawler.Options, *Response) {
	var decoded crawlArguments
	if err := mapstructure.Decode(args, &decoded); err != nil {
		return "", crawler.Options{}, invalidParams(id, fmt.Sprintf("invalid arguments: %v", err))
	}
	if decoded.URL == "" {
		return "", crawler.Options{}, invalidParams(id, "a seed url argument is required")
	}

	opts := s.defaults
	if decoded.Depth > 0 {
		opts.Depth = decoded.Depth
	}
	if decoded.MaxURLs > 0 {
		opts.MaxURLs = decoded.MaxURLs
	}
	if decoded.ScopeRestricted != nil {
		opts.ScopeRestricted = *decoded.ScopeRestricted
	}

	exclude, err := urlkit.CompilePatterns(urlkit.SplitPatternList(decoded.ExcludePatterns))
	if err != nil {
		return "", crawler.Options{}, invalidParams(id, err.Error())
	}
	include, err := urlkit.CompilePatterns(urlkit.SplitPatternList(decoded.IncludePatterns))
	if err != nil {
		return "", crawler.Options{}, invalidParams(id, err.Error())
	}
	if len(exclude) > 0 {
		opts.ExcludePatterns = exclude
	}
	if len(include) > 0 {
		opts.IncludePatterns = include
	}

	return decoded.URL, opts, nil
}

// toolText wraps text into a successful tool result response.
func toolText(id any, text string) *Response {
	return marshalResult(id, ToolResult{
		Content: []ContentItem{{Type: "text", Text: text}},
	})
}

// toolError reports a failed tool execution as a tool-level error, not
// a protocol error.
func toolError(id any, err error) *Response {
	return marshalResult(id, ToolResult{
		Content: []ContentItem{{Type: "text", Text: err.Error()}},
		IsError: true,
	})
}

func invalidParams(id any, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &ErrorObject{Code: InvalidParams, Message: message},
	}
}
