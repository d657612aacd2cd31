//go:build js && wasm

// Package jsdom implements [dom.Document] over the browser DOM through
// syscall/js.
package jsdom

import (
	"fmt"
	"syscall/js"

	"github.com/matzehuels/jsonview/pkg/dom"
	"github.com/matzehuels/jsonview/pkg/errors"
)

var (
	_ dom.Document = (*Document)(nil)
	_ dom.Element  = (*Element)(nil)
)

// Document wraps the page's document object.
type Document struct {
	v js.Value
}

// New returns the global document.
func New() *Document {
	return &Document{v: js.Global().Get("document")}
}

func (d *Document) CreateElement(tag string) dom.Element {
	return &Element{v: d.v.Call("createElement", tag)}
}

func (d *Document) Body() dom.Element {
	b := d.v.Get("body")
	if b.IsNull() || b.IsUndefined() {
		return nil
	}
	return &Element{v: b}
}

// QuerySelector returns the first element in the page matching selector,
// or nil.
func (d *Document) QuerySelector(selector string) (dom.Element, error) {
	return querySelector(d.v, selector)
}

// Wrap returns the element for a JS value, or nil for null and undefined.
func Wrap(v js.Value) dom.Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Element{v: v}
}

// Element wraps a JS element.
type Element struct {
	v js.Value
}

// Value returns the underlying JS value.
func (e *Element) Value() js.Value { return e.v }

func (e *Element) AppendChild(child dom.Element) {
	if c, ok := child.(*Element); ok && c != nil {
		e.v.Call("appendChild", c.v)
	}
}

func (e *Element) Remove() { e.v.Call("remove") }

func (e *Element) Parent() dom.Element {
	return Wrap(e.v.Get("parentElement"))
}

func (e *Element) Contains(other dom.Element) bool {
	o, ok := other.(*Element)
	if !ok || o == nil {
		return false
	}
	return e.v.Call("contains", o.v).Bool()
}

func (e *Element) SetInnerHTML(markup string) error {
	e.v.Set("innerHTML", markup)
	return nil
}

func (e *Element) QuerySelector(selector string) (dom.Element, error) {
	return querySelector(e.v, selector)
}

func (e *Element) ClassList() dom.ClassList { return classList{e.v.Get("classList")} }

func (e *Element) SetStyle(property, value string) {
	style := e.v.Get("style")
	if value == "" {
		style.Call("removeProperty", property)
		return
	}
	style.Call("setProperty", property, value)
}

func (e *Element) Style(property string) string {
	return e.v.Get("style").Call("getPropertyValue", property).String()
}

func (e *Element) SetAttribute(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *Element) Attribute(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e *Element) TextContent() string {
	return e.v.Get("textContent").String()
}

func (e *Element) AddEventListener(event string, fn func()) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	e.v.Call("addEventListener", event, cb)
	return func() {
		e.v.Call("removeEventListener", event, cb)
		cb.Release()
	}
}

type classList struct{ v js.Value }

func (c classList) Add(names ...string) {
	for _, n := range names {
		c.v.Call("add", n)
	}
}

func (c classList) Remove(names ...string) {
	for _, n := range names {
		c.v.Call("remove", n)
	}
}

func (c classList) Contains(name string) bool {
	return c.v.Call("contains", name).Bool()
}

// querySelector converts the SyntaxError thrown for invalid selectors into
// an error.
func querySelector(root js.Value, selector string) (el dom.Element, err error) {
	defer func() {
		if r := recover(); r != nil {
			el = nil
			err = errors.New(errors.ErrCodeInvalidInput, "selector %q: %v", selector, fmt.Sprint(r))
		}
	}()
	return Wrap(root.Call("querySelector", selector)), nil
}
