package search

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripMarkup flattens the API's highlighted titles/snippets (<b>, &amp;,
// stray tags) into plain text so the extraction regexes see clean input.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapseSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseSpace(s)
	}
	return collapseSpace(doc.Text())
}

func collapseSpace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
