package view

import (
	"github.com/matzehuels/jsonview/pkg/dom"
	"github.com/matzehuels/jsonview/pkg/errors"
	"github.com/matzehuels/jsonview/pkg/observability"
	"github.com/matzehuels/jsonview/pkg/tree"
)

// Toggle flips the disclosure state of a branch node.
//
// Opening reveals the node's children and, below them, every subtree that
// was open before, so remembered state reappears. Closing hides every
// descendant and closes their carets but leaves their own flags alone.
// Toggling a leaf does nothing.
func (v *View) Toggle(n *tree.Node) error {
	if err := v.check("toggle", n); err != nil {
		return err
	}
	v.toggle(n)
	return nil
}

// Expand opens n and every node below it, showing all of them.
func (v *View) Expand(n *tree.Node) error {
	if err := v.check("expand", n); err != nil {
		return err
	}
	v.expand(n)
	return nil
}

// Collapse closes n and every node below it. Nodes strictly below n are
// hidden; n itself keeps its visibility.
func (v *View) Collapse(n *tree.Node) error {
	if err := v.check("collapse", n); err != nil {
		return err
	}
	v.collapse(n)
	return nil
}

// ExpandAll expands the whole tree.
func (v *View) ExpandAll() error { return v.Expand(v.root) }

// CollapseAll collapses the whole tree.
func (v *View) CollapseAll() error { return v.Collapse(v.root) }

// IsVisible reports whether the line of n is shown.
func (v *View) IsVisible(n *tree.Node) bool {
	if n == nil || n.Element == nil {
		return false
	}
	return !n.Element.ClassList().Contains(ClassHidden)
}

// IsOpen reports whether the caret of n points down. Lines without a
// caret are never open.
func (v *View) IsOpen(n *tree.Node) bool {
	icon := caretIcon(n)
	return icon != nil && icon.ClassList().Contains(ClassCaretDown)
}

// IsBranch reports whether n renders as a branch line with a caret.
func (v *View) IsBranch(n *tree.Node) bool { return v.isBranch(n) }

// Line is one rendered line.
type Line struct {
	Node    *tree.Node
	Element dom.Element
	Visible bool
	Branch  bool
	Open    bool
}

// Lines returns every line in render order.
func (v *View) Lines() []Line {
	var out []Line
	v.root.Traverse(func(n *tree.Node) {
		if n.Element == nil {
			return
		}
		out = append(out, Line{
			Node:    n,
			Element: n.Element,
			Visible: v.IsVisible(n),
			Branch:  v.isBranch(n),
			Open:    v.IsOpen(n),
		})
	})
	return out
}

// VisibleLines returns the shown lines in render order.
func (v *View) VisibleLines() []Line {
	var out []Line
	for _, l := range v.Lines() {
		if l.Visible {
			out = append(out, l)
		}
	}
	return out
}

func (v *View) check(op string, n *tree.Node) error {
	if v.destroyed {
		return errors.New(errors.ErrCodeDestroyed, "%s: view %s is destroyed", op, v.id)
	}
	if n == nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s: no node", op)
	}
	top := n
	for top.Parent != nil {
		top = top.Parent
	}
	if top != v.root || n.Element == nil {
		return errors.New(errors.ErrCodeNotRendered, "%s: node %s is not rendered by view %s", op, n.PathString(), v.id)
	}
	return nil
}

func (v *View) isBranch(n *tree.Node) bool {
	return n.IsBranch() || (v.opts.emptyBranch && n.IsEmptyComposite())
}

func (v *View) toggle(n *tree.Node) {
	if !v.isBranch(n) {
		return
	}
	if n.Expanded {
		n.Expanded = false
		setCaret(n, false)
		hideDescendants(n)
	} else {
		n.Expanded = true
		setCaret(n, true)
		showChildren(n)
	}
	observability.View().OnToggle(v.id, n.PathString(), n.Expanded)
	v.opts.logger.Debug("toggled node", "view", v.id, "path", n.PathString(), "expanded", n.Expanded)
}

func (v *View) expand(n *tree.Node) {
	count := 0
	n.Traverse(func(d *tree.Node) {
		show(d)
		d.Expanded = true
		setCaret(d, true)
		count++
	})
	observability.View().OnBulk(v.id, "expand", n.PathString(), count)
}

func (v *View) collapse(n *tree.Node) {
	count := 0
	n.Traverse(func(d *tree.Node) {
		d.Expanded = false
		if d.Depth > n.Depth {
			hide(d)
		}
		setCaret(d, false)
		count++
	})
	observability.View().OnBulk(v.id, "collapse", n.PathString(), count)
}

// showChildren reveals the children of n and recurses into the ones that
// are open, restoring their carets.
func showChildren(n *tree.Node) {
	for _, c := range n.Children {
		show(c)
		if c.Expanded {
			setCaret(c, true)
			showChildren(c)
		}
	}
}

func hideDescendants(n *tree.Node) {
	for _, d := range n.Descendants() {
		hide(d)
		setCaret(d, false)
	}
}

func show(n *tree.Node) {
	if n.Element != nil {
		n.Element.ClassList().Remove(ClassHidden)
	}
}

func hide(n *tree.Node) {
	if n.Element != nil {
		n.Element.ClassList().Add(ClassHidden)
	}
}

func setCaret(n *tree.Node, open bool) {
	icon := caretIcon(n)
	if icon == nil {
		return
	}
	if open {
		icon.ClassList().Remove(ClassCaretRight)
		icon.ClassList().Add(ClassCaretDown)
		return
	}
	icon.ClassList().Remove(ClassCaretDown)
	icon.ClassList().Add(ClassCaretRight)
}

// caretIcon returns the glyph element of a branch line, or nil for lines
// without one.
func caretIcon(n *tree.Node) dom.Element {
	if n == nil || n.Element == nil {
		return nil
	}
	caret, err := n.Element.QuerySelector(caretSelector)
	if err != nil || caret == nil {
		return nil
	}
	icon, err := caret.QuerySelector(iconSelector)
	if err != nil {
		return nil
	}
	return icon
}
