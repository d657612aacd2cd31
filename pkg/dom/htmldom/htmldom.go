// Package htmldom is an in-memory implementation of [dom.Document] built on
// golang.org/x/net/html nodes.
//
// Selectors are compiled with github.com/andybalholm/cascadia. Events do
// not come from a user agent: [Document.Dispatch] and [Document.Click]
// deliver them, bubbling from the target element up to the document root.
//
// A Document is not safe for concurrent use.
package htmldom

import (
	"io"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/jsonview/pkg/dom"
	"github.com/matzehuels/jsonview/pkg/errors"
)

const blankPage = "<!DOCTYPE html><html><head></head><body></body></html>"

var bodySelector = cascadia.MustCompile("body")

var (
	_ dom.Document = (*Document)(nil)
	_ dom.Element  = (*Element)(nil)
)

// Document is an in-memory HTML document.
type Document struct {
	root      *html.Node
	body      *html.Node
	elements  map[*html.Node]*Element
	listeners map[*html.Node][]*listener
	selectors map[string]cascadia.Selector
}

type listener struct {
	event string
	fn    func()
}

// New returns an empty document with a head and a body.
func New() *Document {
	root, err := html.Parse(strings.NewReader(blankPage))
	if err != nil {
		// The blank page is constant; parsing it cannot fail.
		panic(err)
	}
	return &Document{
		root:      root,
		body:      bodySelector.MatchFirst(root),
		elements:  make(map[*html.Node]*Element),
		listeners: make(map[*html.Node][]*listener),
		selectors: make(map[string]cascadia.Selector),
	}
}

// CreateElement returns a new detached element.
func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return d.wrap(n)
}

// Body returns the body element.
func (d *Document) Body() dom.Element {
	return d.wrap(d.body)
}

// QuerySelector returns the first element in the document matching
// selector, or nil.
func (d *Document) QuerySelector(selector string) (dom.Element, error) {
	return d.query(d.root, selector)
}

// Dispatch delivers event to el and then to each of its ancestors.
func (d *Document) Dispatch(el dom.Element, event string) {
	e, ok := el.(*Element)
	if !ok || e == nil {
		return
	}
	for n := e.node; n != nil; n = n.Parent {
		// Copy so a handler that removes itself does not disturb the loop.
		for _, l := range slices.Clone(d.listeners[n]) {
			if l.event == event {
				l.fn()
			}
		}
	}
}

// Click dispatches a click event on el.
func (d *Document) Click(el dom.Element) {
	d.Dispatch(el, "click")
}

// ListenerCount returns the number of registered listeners across the
// whole document, attached or not.
func (d *Document) ListenerCount() int {
	total := 0
	for _, ls := range d.listeners {
		total += len(ls)
	}
	return total
}

// OuterHTML serializes el and its subtree.
func OuterHTML(el dom.Element) string {
	e, ok := el.(*Element)
	if !ok || e == nil {
		return ""
	}
	var sb strings.Builder
	if err := html.Render(&sb, e.node); err != nil {
		return ""
	}
	return sb.String()
}

// Render writes the whole document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if e, ok := d.elements[n]; ok {
		return e
	}
	e := &Element{doc: d, node: n}
	d.elements[n] = e
	return e
}

func (d *Document) compile(selector string) (cascadia.Selector, error) {
	if sel, ok := d.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "selector %q", selector)
	}
	d.selectors[selector] = sel
	return sel, nil
}

// query matches selector against the descendants of n, excluding n.
func (d *Document) query(n *html.Node, selector string) (dom.Element, error) {
	sel, err := d.compile(selector)
	if err != nil {
		return nil, err
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := sel.MatchFirst(c); m != nil {
			return d.wrap(m), nil
		}
	}
	return nil, nil
}

func (d *Document) queryAll(n *html.Node, selector string) ([]dom.Element, error) {
	sel, err := d.compile(selector)
	if err != nil {
		return nil, err
	}
	var out []dom.Element
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		for _, m := range sel.MatchAll(c) {
			out = append(out, d.wrap(m))
		}
	}
	return out, nil
}
