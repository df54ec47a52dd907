package mcp

// crawlOptionProperties are the shared crawl option fields of the
// discovery tools.
func crawlOptionProperties() map[string]any {
	return map[string]any{
		"url": map[string]any{
			"type":        "string",
			"description": "Seed URL to start crawling from (absolute, with scheme)",
		},
		"depth": map[string]any{
			"type":        "integer",
			"description": "Number of breadth-first levels to traverse (minimum 1)",
		},
		"max_urls": map[string]any{
			"type":        "integer",
			"description": "Hard cap on the number of collected URLs",
		},
		"scope_restricted": map[string]any{
			"type":        "boolean",
			"description": "Restrict discovery to the seed's host and path (default true)",
		},
		"exclude_patterns": map[string]any{
			"type":        "string",
			"description": "Comma-separated regular expressions; matching URLs are dropped",
		},
		"include_patterns": map[string]any{
			"type":        "string",
			"description": "Comma-separated regular expressions; when set, only matching URLs are kept",
		},
	}
}

// getAllTools returns all available MCP tools.
func getAllTools() []Tool {
	return []Tool{
		{
			Name: "crawl_docs",
			Description: "Crawl a documentation site from a seed URL and " +
				"persist every reachable page as a markdown note in the vault.",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": crawlOptionProperties(),
				"required":   []string{"url"},
			},
		},
		{
			Name: "discover_links",
			Description: "Discover the pages reachable from a seed URL " +
				"within a bounded link distance, without persisting anything. " +
				"Returns the collected URL list in discovery order.",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": crawlOptionProperties(),
				"required":   []string{"url"},
			},
		},
		{
			Name: "fetch_page",
			Description: "Fetch a single page as markdown. Returns the " +
				"stored vault note when the page was already harvested.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"url": map[string]any{
						"type":        "string",
						"description": "The page URL to fetch",
					},
				},
				"required": []string{"url"},
			},
		},
	}
}
