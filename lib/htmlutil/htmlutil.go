package htmlutil

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"ilias-scraper/lib/textutil"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// CleanText collects the text below a selection and normalizes it the
// way a browser would render it: printable runes only, outer whitespace
// trimmed, inner whitespace collapsed.
func CleanText(sel *goquery.Selection) string {
	text := sel.Text()
	text = textutil.CollapseSpace(text)
	return textutil.RemoveNonPrintable(text)
}

type Anchor struct {
	Name string
	Href string
}

// FirstAnchor returns the first <a href> below the selection, if any.
func FirstAnchor(sel *goquery.Selection) (Anchor, bool) {
	link := sel.Find("a[href]").First()
	if link.Length() == 0 {
		return Anchor{}, false
	}
	return Anchor{
		Name: CleanText(link),
		Href: link.AttrOr("href", ""),
	}, true
}
