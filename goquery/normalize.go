// Package goquery extracts plain text and outbound links from
// documentation-site HTML using CSS selection.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// boilerplateMarkers terminate extraction: everything from the first
// block containing one of these phrases onward is license/footer text.
var boilerplateMarkers = []string{
	"material in this document",
	"creative commons",
}

// minBlockLen filters out decorative fragments ("Next", bullets, etc).
const minBlockLen = 5

// blockSelector matches the elements whose text forms the extracted
// content, in document order.
const blockSelector = "h1, h2, h3, p, li"

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeHelpHTML extracts plain text from a help HTML page.
// Script and style blocks are dropped, navigation chrome before the
// first top-level heading is discarded, and heading/paragraph/list
// content is collected in document order until footer boilerplate
// appears. The function never fails: malformed input degrades to a
// best-effort result, possibly the empty string.
func NormalizeHelpHTML(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return ""
	}

	doc.Find("script, style").Remove()

	// Content starts at the first <h1>; everything before it is
	// navigation chrome. Pages without an <h1> are taken whole.
	started := doc.Find("h1").Length() == 0

	var parts []string
	doc.Find(blockSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !started {
			if !sel.Is("h1") {
				return true
			}
			started = true
		}

		// Text() includes descendants, so a block inside another
		// matched block is already part of its ancestor's output.
		if sel.ParentsFiltered(blockSelector).Length() > 0 {
			return true
		}

		text := collapseWhitespace(sel.Text())
		if len(text) <= minBlockLen {
			return true
		}
		lower := strings.ToLower(text)
		for _, marker := range boilerplateMarkers {
			if strings.Contains(lower, marker) {
				return false
			}
		}
		parts = append(parts, text)
		return true
	})

	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
