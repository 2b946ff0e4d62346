package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/schemascan"
)

// Ensure types implement interfaces.
var (
	_ schemascan.DocumentParser = (*Parser)(nil)
	_ schemascan.Document       = (*Document)(nil)
	_ schemascan.Node           = (*Node)(nil)
)

// Parser builds documents with the HTML5 parser behind goquery.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses html into a read-only document.
func (p *Parser) Parse(html string) (schemascan.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, schemascan.Errorf(schemascan.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// Document adapts a goquery document to schemascan.Document.
// The underlying tree is never modified, so concurrent reads are safe.
type Document struct {
	doc *goquery.Document
}

// Find returns all elements matching selector, in document order.
// An invalid selector matches nothing.
func (d *Document) Find(selector string) []schemascan.Node {
	return nodes(d.doc.Find(selector))
}

// Node adapts a single goquery selection.
type Node struct {
	sel *goquery.Selection
}

// Attr returns the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// Text returns the trimmed text content.
func (n *Node) Text() string {
	return strings.TrimSpace(n.sel.Text())
}

// Find returns matching descendants.
func (n *Node) Find(selector string) []schemascan.Node {
	return nodes(n.sel.Find(selector))
}

func nodes(sel *goquery.Selection) []schemascan.Node {
	out := make([]schemascan.Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Node{sel: s})
	})
	return out
}
