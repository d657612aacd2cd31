package view

import (
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/jsonview/pkg/dom"
	"github.com/matzehuels/jsonview/pkg/errors"
	"github.com/matzehuels/jsonview/pkg/observability"
	"github.com/matzehuels/jsonview/pkg/tree"
)

// View is a rendered tree and the controller for its disclosure state.
//
// A View is not safe for concurrent use. All calls, including the click
// listeners it registers, must happen on the goroutine that owns the DOM.
type View struct {
	doc       dom.Document
	root      *tree.Node
	container dom.Element
	templates *template.Template
	opts      options
	id        string
	destroyed bool
}

// Render materializes root into a new container element, one line per
// node in root-first depth-first order. Every line except the root's starts
// hidden and every caret starts closed. The container is not attached;
// see [View.Mount] and [RenderInto].
//
// If a line's markup lacks an element the renderer needs, Render returns a
// [errors.StructuralRenderError] and releases every listener it had
// registered. Nothing of a failed render remains on the tree.
func Render(doc dom.Document, root *tree.Node, opts ...Option) (*View, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "render: no document")
	}
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "render: no tree")
	}
	if root.Element != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "render: tree is already rendered")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	tmpl := o.templates
	if tmpl == nil {
		tmpl = defaultTemplates()
	}
	for _, name := range []string{"branch", "leaf"} {
		if tmpl.Lookup(name) == nil {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "render: templates do not define %q", name)
		}
	}

	v := &View{
		doc:       doc,
		root:      root,
		templates: tmpl,
		opts:      o,
		id:        uuid.NewString(),
	}

	start := time.Now()
	container := doc.CreateElement("div")
	container.ClassList().Add(ClassContainer)
	container.SetAttribute("data-view", v.id)

	lines := 0
	err := root.Walk(func(n *tree.Node) error {
		line, err := v.renderLine(n)
		if err != nil {
			return err
		}
		n.Element = line
		n.Expanded = false
		container.AppendChild(line)
		lines++
		return nil
	})
	if err != nil {
		v.abort()
		observability.View().OnRender(v.id, lines, time.Since(start), err)
		return nil, err
	}
	v.container = container

	if o.startExpanded {
		v.expand(root)
	}

	observability.View().OnRender(v.id, lines, time.Since(start), nil)
	o.logger.Debug("rendered tree", "view", v.id, "lines", lines, "duration", time.Since(start))
	return v, nil
}

// RenderInto renders root and appends the container to target. A nil
// target is a MISSING_TARGET error, reported before anything is rendered.
func RenderInto(doc dom.Document, target dom.Element, root *tree.Node, opts ...Option) (*View, error) {
	if target == nil {
		return nil, errors.New(errors.ErrCodeMissingTarget, "render: mount target is missing")
	}
	v, err := Render(doc, root, opts...)
	if err != nil {
		return nil, err
	}
	if err := v.Mount(target); err != nil {
		v.abort()
		return nil, err
	}
	return v, nil
}

func (v *View) renderLine(n *tree.Node) (dom.Element, error) {
	line := v.doc.CreateElement("div")
	line.ClassList().Add(ClassLine)

	markup, err := v.markup(n)
	if err != nil {
		return nil, &errors.StructuralRenderError{Path: n.Path(), Cause: err}
	}
	if err := line.SetInnerHTML(markup); err != nil {
		return nil, &errors.StructuralRenderError{Path: n.Path(), Cause: err}
	}

	if v.isBranch(n) {
		caret, err := findRequired(line, n, caretSelector)
		if err != nil {
			return nil, err
		}
		if _, err := findRequired(caret, n, iconSelector); err != nil {
			return nil, err
		}
		n.Disposer = dom.Listen(caret, "click", func() { v.onCaretClick(n) })
	} else if _, err := findRequired(line, n, valueSelector); err != nil {
		return nil, err
	}

	if !n.IsRoot() {
		line.ClassList().Add(ClassHidden)
	}
	line.SetStyle("margin-left", fmt.Sprintf("%dpx", n.Depth*v.opts.indent))
	return line, nil
}

func findRequired(line dom.Element, n *tree.Node, selector string) (dom.Element, error) {
	el, err := line.QuerySelector(selector)
	if err != nil {
		return nil, &errors.StructuralRenderError{Path: n.Path(), Selector: selector, Cause: err}
	}
	if el == nil {
		return nil, &errors.StructuralRenderError{Path: n.Path(), Selector: selector}
	}
	return el, nil
}

// abort undoes a render that cannot be handed to the caller.
func (v *View) abort() {
	v.root.Traverse(func(n *tree.Node) {
		if n.Disposer != nil {
			n.Disposer()
			n.Disposer = nil
		}
		if n.Element != nil {
			n.Element.Remove()
			n.Element = nil
		}
	})
	if v.container != nil {
		v.container.Remove()
	}
	v.destroyed = true
}

func (v *View) onCaretClick(n *tree.Node) {
	if v.destroyed {
		return
	}
	v.toggle(n)
}

// ID returns the identifier carried by the container's data-view
// attribute.
func (v *View) ID() string { return v.id }

// Root returns the rendered tree.
func (v *View) Root() *tree.Node { return v.root }

// Container returns the container element.
func (v *View) Container() dom.Element { return v.container }

// Mount appends the container to target. A nil target is a
// MISSING_TARGET error.
func (v *View) Mount(target dom.Element) error {
	if v.destroyed {
		return errors.New(errors.ErrCodeDestroyed, "mount: view %s is destroyed", v.id)
	}
	return dom.Mount(target, v.container)
}

// Destroy calls every stored disposer exactly once and detaches the
// container from its parent. The view is inert afterwards: every further
// call, including a second Destroy, returns a DESTROYED error.
func (v *View) Destroy() error {
	if v.destroyed {
		return errors.New(errors.ErrCodeDestroyed, "destroy: view %s is already destroyed", v.id)
	}
	disposed := 0
	v.root.Traverse(func(n *tree.Node) {
		if n.Disposer != nil {
			n.Disposer()
			n.Disposer = nil
			disposed++
		}
	})
	v.container.Remove()
	v.destroyed = true

	observability.View().OnDestroy(v.id, disposed)
	v.opts.logger.Debug("destroyed tree", "view", v.id, "listeners", disposed)
	return nil
}

// Destroyed reports whether Destroy has been called.
func (v *View) Destroyed() bool { return v.destroyed }
