package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element wraps an x/net/html element node.
type Element struct {
	n *html.Node
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.n.Data
}

// Attr returns the attribute value, or "" when absent.
func (e *Element) Attr(key string) string {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets an attribute, replacing any existing value.
func (e *Element) SetAttr(key, val string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == key {
			e.n.Attr[i].Val = val
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether name is one of the whitespace-separated classes.
func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.Attr("class")) {
		if c == name {
			return true
		}
	}
	return false
}

// Parent implements Node.
func (e *Element) Parent() Node {
	p := e.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return &Element{n: p}
}

// Children implements Node.
func (e *Element) Children() []Node {
	var children []Node
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, &Element{n: c})
		}
	}
	return children
}

// AppendChild moves child to the end of e's children.
func (e *Element) AppendChild(child Node) {
	c := unwrap(child)
	if c == nil {
		return
	}
	detach(c)
	e.n.AppendChild(c)
}

// AppendText appends a text node.
func (e *Element) AppendText(text string) {
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// InsertBefore implements Node. A detached receiver is left untouched.
func (e *Element) InsertBefore(sibling Node) {
	s := unwrap(sibling)
	if s == nil || e.n.Parent == nil {
		return
	}
	detach(s)
	e.n.Parent.InsertBefore(s, e.n)
}

// Text implements Node.
func (e *Element) Text() string {
	var buf strings.Builder
	walk(e.n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		return true
	})
	return buf.String()
}

// HTMLNode exposes the underlying node for callers that need raw access.
func (e *Element) HTMLNode() *html.Node {
	return e.n
}

func unwrap(n Node) *html.Node {
	el, ok := n.(*Element)
	if !ok || el == nil {
		return nil
	}
	return el.n
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
