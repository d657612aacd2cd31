package htmldom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/jsonview/pkg/dom"
	"github.com/matzehuels/jsonview/pkg/errors"
)

// Element wraps an element node. Each node has exactly one wrapper, so
// elements compare equal with ==.
type Element struct {
	doc  *Document
	node *html.Node
}

// Node returns the underlying HTML node.
func (e *Element) Node() *html.Node { return e.node }

// Tag returns the lowercase tag name.
func (e *Element) Tag() string { return e.node.Data }

func (e *Element) AppendChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return
	}
	if c.node.Parent != nil {
		c.node.Parent.RemoveChild(c.node)
	}
	e.node.AppendChild(c.node)
}

func (e *Element) Remove() {
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

func (e *Element) Parent() dom.Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

func (e *Element) Contains(other dom.Element) bool {
	o, ok := other.(*Element)
	if !ok || o == nil {
		return false
	}
	for n := o.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse markup")
	}
	for e.node.FirstChild != nil {
		e.node.RemoveChild(e.node.FirstChild)
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

func (e *Element) QuerySelector(selector string) (dom.Element, error) {
	return e.doc.query(e.node, selector)
}

// QuerySelectorAll returns every descendant matching selector in
// document order.
func (e *Element) QuerySelectorAll(selector string) ([]dom.Element, error) {
	return e.doc.queryAll(e.node, selector)
}

// Children returns the element children in order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

func (e *Element) ClassList() dom.ClassList { return classList{e} }

func (e *Element) SetStyle(property, value string) {
	decls := parseStyle(e.attr("style"))
	i := slices.IndexFunc(decls, func(d [2]string) bool { return d[0] == property })
	switch {
	case value == "" && i >= 0:
		decls = slices.Delete(decls, i, i+1)
	case value == "":
		return
	case i >= 0:
		decls[i][1] = value
	default:
		decls = append(decls, [2]string{property, value})
	}
	if len(decls) == 0 {
		e.removeAttr("style")
		return
	}
	e.SetAttribute("style", formatStyle(decls))
}

func (e *Element) Style(property string) string {
	for _, d := range parseStyle(e.attr("style")) {
		if d[0] == property {
			return d[1]
		}
	}
	return ""
}

func (e *Element) SetAttribute(name, value string) {
	for i, a := range e.node.Attr {
		if a.Key == name && a.Namespace == "" {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name && a.Namespace == "" {
			return a.Val, true
		}
	}
	return "", false
}

func (e *Element) TextContent() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}

func (e *Element) AddEventListener(event string, fn func()) func() {
	l := &listener{event: event, fn: fn}
	d := e.doc
	d.listeners[e.node] = append(d.listeners[e.node], l)
	return func() {
		ls := d.listeners[e.node]
		if i := slices.Index(ls, l); i >= 0 {
			ls = slices.Delete(ls, i, i+1)
		}
		if len(ls) == 0 {
			delete(d.listeners, e.node)
			return
		}
		d.listeners[e.node] = ls
	}
}

func (e *Element) attr(name string) string {
	v, _ := e.Attribute(name)
	return v
}

func (e *Element) removeAttr(name string) {
	e.node.Attr = slices.DeleteFunc(e.node.Attr, func(a html.Attribute) bool {
		return a.Key == name && a.Namespace == ""
	})
}

type classList struct{ e *Element }

func (c classList) names() []string {
	return strings.Fields(c.e.attr("class"))
}

func (c classList) set(names []string) {
	if len(names) == 0 {
		c.e.removeAttr("class")
		return
	}
	c.e.SetAttribute("class", strings.Join(names, " "))
}

func (c classList) Add(names ...string) {
	cur := c.names()
	for _, n := range names {
		if n != "" && !slices.Contains(cur, n) {
			cur = append(cur, n)
		}
	}
	c.set(cur)
}

func (c classList) Remove(names ...string) {
	cur := slices.DeleteFunc(c.names(), func(n string) bool {
		return slices.Contains(names, n)
	})
	c.set(cur)
}

func (c classList) Contains(name string) bool {
	return slices.Contains(c.names(), name)
}

func parseStyle(s string) [][2]string {
	var out [][2]string
	for _, decl := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		out = append(out, [2]string{prop, strings.TrimSpace(val)})
	}
	return out
}

func formatStyle(decls [][2]string) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d[0] + ": " + d[1]
	}
	return strings.Join(parts, "; ") + ";"
}
