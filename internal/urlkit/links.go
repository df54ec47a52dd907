package urlkit

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractLinks parses htmlContent as a DOM and returns the absolute URL
// of every hyperlink href, in document order. Empty hrefs and pure
// same-page fragments are skipped; unresolvable hrefs are dropped.
// Duplicates are kept — deduplication belongs to the crawl scheduler.
func ExtractLinks(htmlContent, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		if abs, ok := Resolve(href, baseURL); ok {
			links = append(links, abs)
		}
	})

	return links, nil
}
