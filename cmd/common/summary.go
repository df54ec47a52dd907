package common

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jonesrussell/vaultcrawl/internal/crawler"
	"github.com/jonesrussell/vaultcrawl/internal/harvest"
)

// RenderCrawlSummary writes the discovery run tallies as a table.
// Operator output goes to w (normally stderr), never to the primary
// URL-list output stream.
func RenderCrawlSummary(w io.Writer, result *crawler.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Pages fetched", result.Fetched},
		{"Fetch errors", result.FetchErrors},
		{"Unique links discovered", result.UniqueDiscovered},
		{"URLs collected", len(result.Collected)},
	})
	t.Render()

	if result.Empty() {
		fmt.Fprintln(w, "No URLs were collected beyond the seed.")
	}
}

// RenderHarvestSummary writes the full pipeline run report as tables.
func RenderHarvestSummary(w io.Writer, report *harvest.Report) {
	RenderCrawlSummary(w, report.Crawl)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Batch", "Size", "Status"})
	for _, b := range report.Batches.Batches {
		status := "ok"
		if b.Err != nil {
			status = "failed: " + b.Err.Error()
		}
		t.AppendRow(table.Row{strconv.Itoa(b.Index), b.Size, status})
	}
	t.Render()

	fmt.Fprintf(w, "Pages: %d attempted, %d succeeded, %d failed\n",
		report.Pages.Attempted, report.Pages.Succeeded, report.Pages.Failed)
}
