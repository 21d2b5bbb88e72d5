// Package mallard parses Mallard help pages, the XML format used for
// desktop help under /usr/share/help.
package mallard

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/docdex/docdex"
)

// Page is the parsed content of a single .page file.
type Page struct {
	Title   string
	Content string
}

// ParsePage parses a Mallard .page document. The title is taken from
// the first title element; the content is every text node in document
// order, joined with single spaces.
func ParsePage(data []byte) (*Page, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "parse mallard page: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, docdex.Errorf(docdex.EINVALID, "mallard page has no root element")
	}

	page := &Page{}
	if title := root.FindElement("//title"); title != nil {
		page.Title = strings.TrimSpace(title.Text())
	}

	var parts []string
	collectText(root, &parts)
	page.Content = strings.Join(parts, " ")
	return page, nil
}

// collectText walks the element tree appending non-empty text nodes
// in document order.
func collectText(el *etree.Element, parts *[]string) {
	for _, child := range el.Child {
		switch node := child.(type) {
		case *etree.CharData:
			if text := strings.TrimSpace(node.Data); text != "" {
				*parts = append(*parts, text)
			}
		case *etree.Element:
			collectText(node, parts)
		}
	}
}

// LocaleCandidates returns the ordered, deduplicated list of locale
// directories to try under the help tree, derived from the LANGUAGE
// and LANG environment values. C and en_GB are always appended as
// fallbacks.
func LocaleCandidates(languageEnv, langEnv string) []string {
	lang := strings.SplitN(languageEnv, ":", 2)[0]
	if lang == "" {
		lang = strings.SplitN(langEnv, ".", 2)[0]
	}

	candidates := []string{lang}
	if i := strings.Index(lang, "_"); i != -1 {
		candidates = append(candidates, lang[:i])
	}
	candidates = append(candidates, "C", "en_GB")

	seen := make(map[string]struct{})
	var out []string
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
