package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// the functions in this file are the small set of tree queries the catalog
// extractors are written against. none of them fail: a missing node yields an
// empty selection or ok=false.

// TextMatcher decides if an element's trimmed text is the one being looked for.
type TextMatcher func(text string) bool

func TextEquals(want string) TextMatcher {
	want = strings.TrimSpace(want)
	return func(text string) bool {
		return text == want
	}
}

func TextContains(sub string) TextMatcher {
	return func(text string) bool {
		return strings.Contains(text, sub)
	}
}

// FindByText returns the first element under `root` matching `selector` whose
// trimmed text satisfies `match`.
func FindByText(root *goquery.Selection, selector string, match TextMatcher) *goquery.Selection {
	return root.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return match(strings.TrimSpace(s.Text()))
	}).First()
}

// FindNext returns the first element matching `selector` and `match` that comes after
// `from` in document order, descendants of `from` included. `match` may be nil.
func FindNext(doc *goquery.Document, from *goquery.Selection, selector string, match TextMatcher) *goquery.Selection {
	if from.Length() == 0 {
		return from
	}
	start := from.Nodes[0]

	order := map[*html.Node]int{}
	idx := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		order[n] = idx
		idx++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}
	startIdx := order[start]

	return doc.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		if order[s.Nodes[0]] <= startIdx {
			return false
		}
		return match == nil || match(strings.TrimSpace(s.Text()))
	}).First()
}

// NextSiblingText returns the data of the node immediately after `sel` if, and only
// if, that node is a text node.
func NextSiblingText(sel *goquery.Selection) (string, bool) {
	if sel.Length() == 0 {
		return "", false
	}
	next := sel.Nodes[0].NextSibling
	if next == nil || next.Type != html.TextNode {
		return "", false
	}
	return next.Data, true
}

// NextSiblingNodeText returns the text of the node immediately after `sel`,
// whether it is a text node or an element.
func NextSiblingNodeText(sel *goquery.Selection) (string, bool) {
	if sel.Length() == 0 {
		return "", false
	}
	next := sel.Nodes[0].NextSibling
	if next == nil {
		return "", false
	}
	return GetText(next), true
}

// NextSiblingElement returns the first later sibling element of `sel` matching `selector`.
func NextSiblingElement(sel *goquery.Selection, selector string) *goquery.Selection {
	return sel.NextAllFiltered(selector).First()
}

// TextNodes returns every non-empty, trimmed text node under `sel` in document order.
func TextNodes(sel *goquery.Selection) []string {
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				out = append(out, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return out
}
