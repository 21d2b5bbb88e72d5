package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// helpPageHref matches relative links to sibling help pages,
// e.g. "addremove-install.html.en". Absolute URLs and anchors are
// intentionally excluded: the crawl scope is one documentation site.
var helpPageHref = regexp.MustCompile(`^[a-z][a-z0-9-]*\.html\.en$`)

// ExtractHelpSlugs returns the slugs of help pages linked from the
// given HTML, deduplicated, in document order. The index page is
// excluded. Malformed input yields nil rather than an error.
func ExtractHelpSlugs(raw string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var slugs []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "index.html.en" || !helpPageHref.MatchString(href) {
			return
		}
		slug := strings.TrimSuffix(href, ".html.en")
		if _, ok := seen[slug]; ok {
			return
		}
		seen[slug] = struct{}{}
		slugs = append(slugs, slug)
	})
	return slugs
}
