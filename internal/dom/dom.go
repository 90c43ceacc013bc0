// Package dom exposes the small set of tree operations the pipeline stages
// need (find by tag, attributes, classes, insertion, text) over
// golang.org/x/net/html.
package dom

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sentinel errors for tree operations.
var (
	ErrParse  = errors.New("parsing HTML failed")
	ErrRender = errors.New("rendering HTML failed")
)

// Tree is the document-level query and construction surface.
type Tree interface {
	// FindAll returns every element whose tag is one of tags, in document order.
	FindAll(tags ...string) []Node

	// FirstIn returns the first tag element inside the first ancestor
	// element, or nil when either is missing.
	FirstIn(ancestor, tag string) Node

	// NewElement creates a detached element.
	NewElement(tag string) Node
}

// Node is a single element of the tree.
type Node interface {
	Tag() string
	Attr(key string) string
	SetAttr(key, val string)
	HasClass(name string) bool

	// Parent returns nil when the parent is missing or is not an element.
	Parent() Node

	// Children returns the element children, skipping text and comments.
	Children() []Node

	AppendChild(child Node)
	AppendText(text string)

	// InsertBefore inserts sibling immediately before this node.
	InsertBefore(sibling Node)

	// Text returns the concatenated descendant text, untrimmed.
	Text() string
}

// Document is an HTML tree backed by x/net/html.
type Document struct {
	root     *html.Node
	fragment bool
	bom      bool
}

// Compile-time interface checks.
var (
	_ Tree = (*Document)(nil)
	_ Node = (*Element)(nil)
)

// bom is the UTF-8 byte order mark some editors write at the start of files.
const bom = "\ufeff"

// documentPrefixes are the tags that make content a full document when they
// come first, after any byte order mark, comments and whitespace.
var documentPrefixes = []string{"<!doctype", "<html", "<head", "<body"}

// Parse parses content as a full document when it starts with a doctype,
// <html>, <head> or <body> tag, otherwise as a body fragment. A leading byte
// order mark is removed before parsing and restored by Render.
func Parse(content string) (*Document, error) {
	content, hasBOM := strings.CutPrefix(content, bom)

	if isFullDocument(content) {
		root, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return &Document{root: root, bom: hasBOM}, nil
	}

	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return &Document{root: root, fragment: true, bom: hasBOM}, nil
}

// isFullDocument looks past leading whitespace and comments for a document
// level tag.
func isFullDocument(content string) bool {
	rest := content
	for {
		rest = strings.TrimLeft(rest, " \t\r\n\f")
		if !strings.HasPrefix(rest, "<!--") {
			break
		}
		_, after, ok := strings.Cut(rest[len("<!--"):], "-->")
		if !ok {
			return false
		}
		rest = after
	}

	lower := strings.ToLower(rest)
	for _, prefix := range documentPrefixes {
		after, ok := strings.CutPrefix(lower, prefix)
		if !ok {
			continue
		}
		// <header> is not <head>.
		if after == "" || strings.ContainsRune(" \t\r\n\f/>", rune(after[0])) {
			return true
		}
	}
	return false
}

// IsFragment reports whether the document was parsed as a body fragment.
func (d *Document) IsFragment() bool {
	return d.fragment
}

// Render serializes the tree. Fragments render their top-level nodes only,
// without the <html><body> wrapper.
func (d *Document) Render() (string, error) {
	var buf strings.Builder
	if d.bom {
		buf.WriteString(bom)
	}

	if d.fragment {
		for c := d.root.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", fmt.Errorf("%w: %v", ErrRender, err)
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, d.root); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.String(), nil
}

// FindAll implements Tree.
func (d *Document) FindAll(tags ...string) []Node {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[strings.ToLower(t)] = true
	}

	var found []Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && want[n.Data] {
			found = append(found, &Element{n: n})
		}
		return true
	})
	return found
}

// FirstIn implements Tree.
func (d *Document) FirstIn(ancestor, tag string) Node {
	outer := findFirst(d.root, strings.ToLower(ancestor))
	if outer == nil {
		return nil
	}
	for c := outer.FirstChild; c != nil; c = c.NextSibling {
		if n := findFirst(c, strings.ToLower(tag)); n != nil {
			return &Element{n: n}
		}
	}
	return nil
}

// NewElement implements Tree.
func (d *Document) NewElement(tag string) Node {
	tag = strings.ToLower(tag)
	return &Element{n: &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
	}}
}

// walk visits n and its descendants in document order until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// findFirst returns the first element named tag at or below n.
func findFirst(n *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode && c.Data == tag {
			found = c
			return false
		}
		return true
	})
	return found
}
