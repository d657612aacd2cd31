// Package dom defines the small DOM capability the tree view renders into.
//
// The view controller never touches a concrete DOM. It creates elements,
// mutates class lists and inline styles, parses markup into elements,
// queries for parts of that markup and registers click listeners through
// the interfaces below. Two implementations exist:
//
//   - [github.com/matzehuels/jsonview/pkg/dom/htmldom]: an in-memory DOM
//     on golang.org/x/net/html, used by tests, the CLI and the pipeline
//   - [github.com/matzehuels/jsonview/pkg/dom/jsdom]: the browser DOM via
//     syscall/js (js/wasm builds only)
package dom

import (
	"sync"

	"github.com/matzehuels/jsonview/pkg/errors"
)

// Document creates elements and exposes the page body.
type Document interface {
	CreateElement(tag string) Element
	Body() Element
}

// Element is a DOM element.
type Element interface {
	// AppendChild moves child to the end of this element's children.
	AppendChild(child Element)
	// Remove detaches the element from its parent. It is a no-op on a
	// detached element.
	Remove()
	// Parent returns the parent element, or nil when detached.
	Parent() Element
	// Contains reports whether other is this element or one of its
	// descendants.
	Contains(other Element) bool

	// SetInnerHTML replaces the element's children with parsed markup.
	SetInnerHTML(markup string) error
	// QuerySelector returns the first descendant matching selector, or
	// nil when none does. An invalid selector is an error.
	QuerySelector(selector string) (Element, error)

	ClassList() ClassList
	SetStyle(property, value string)
	Style(property string) string
	SetAttribute(name, value string)
	Attribute(name string) (string, bool)
	TextContent() string

	// AddEventListener registers fn for event and returns a function that
	// unregisters it.
	AddEventListener(event string, fn func()) (remove func())
}

// ClassList is the set of classes on an element.
type ClassList interface {
	Add(names ...string)
	Remove(names ...string)
	Contains(name string) bool
}

// Disposer undoes a listener registration. Calling it more than once has
// no further effect.
type Disposer func()

// Listen registers fn for event on el and returns its disposer.
func Listen(el Element, event string, fn func()) Disposer {
	remove := el.AddEventListener(event, fn)
	var once sync.Once
	return func() { once.Do(remove) }
}

// Mount appends child to target. A nil target is a MISSING_TARGET error.
func Mount(target, child Element) error {
	if target == nil {
		return errors.New(errors.ErrCodeMissingTarget, "mount target is missing")
	}
	if child == nil {
		return errors.New(errors.ErrCodeInternal, "nothing to mount")
	}
	target.AppendChild(child)
	return nil
}

// IsAttached reports whether el is inside the body of doc.
func IsAttached(doc Document, el Element) bool {
	if el == nil {
		return false
	}
	body := doc.Body()
	return body != nil && body.Contains(el)
}
