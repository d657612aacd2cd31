package tree

import (
	"fmt"
	"strings"

	"github.com/matzehuels/jsonview/pkg/dom"
	"github.com/matzehuels/jsonview/pkg/value"
)

const (
	// DefaultMaxDepth is the deepest depth at which nodes are created
	// unless [WithMaxDepth] says otherwise.
	DefaultMaxDepth = 3

	// Unlimited disables the depth limit.
	Unlimited = -1

	// TitleKey is the field consulted by [WithTitles].
	TitleKey = "__TITLE__"
)

// Node is one entry of the virtual tree.
type Node struct {
	Value  value.Value
	Key    string
	HasKey bool // false only for the root
	Type   string
	Depth  int
	Title  string

	Parent   *Node // not owned
	Children []*Node

	// Expanded is the disclosure state. It changes only through the view
	// controller.
	Expanded bool

	// Element and Disposer are set when the tree is rendered.
	Element  dom.Element
	Disposer dom.Disposer
}

// Option configures [Build].
type Option func(*options)

type options struct {
	maxDepth int
	titles   bool
}

// WithMaxDepth sets the deepest depth at which nodes are created. A
// negative depth such as [Unlimited] removes the limit.
func WithMaxDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

// WithTitles labels objects by their "__TITLE__" field.
func WithTitles() Option {
	return func(o *options) { o.titles = true }
}

// Build creates the virtual tree for v. It never fails: every value,
// including undefined and named objects, yields at least a root node.
func Build(v value.Value, opts ...Option) *Node {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	root := &Node{Value: v, Type: value.TypeName(v)}
	if o.titles {
		root.Title = title(v)
	}
	grow(root, &o)
	return root
}

// FromGo converts x with [value.FromGo] and builds its tree.
func FromGo(x any, opts ...Option) (*Node, error) {
	v, err := value.FromGo(x)
	if err != nil {
		return nil, err
	}
	return Build(v, opts...), nil
}

// ParseJSON decodes a JSON document and builds its tree.
func ParseJSON(data []byte, opts ...Option) (*Node, error) {
	v, err := value.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return Build(v, opts...), nil
}

func title(v value.Value) string {
	if t, ok := v.Get(TitleKey); ok && t.Kind() == value.KindString {
		return t.Str()
	}
	return ""
}

func grow(n *Node, o *options) {
	if !n.Value.IsComposite() {
		return
	}
	if o.maxDepth >= 0 && n.Depth >= o.maxDepth {
		return
	}
	isObject := n.Value.Kind() == value.KindObject
	for _, e := range n.Value.Entries() {
		if o.titles && isObject && e.Key == TitleKey && e.Value.Kind() == value.KindString {
			continue
		}
		child := &Node{
			Value:  e.Value,
			Key:    e.Key,
			HasKey: true,
			Type:   value.TypeName(e.Value),
			Depth:  n.Depth + 1,
			Parent: n,
		}
		if o.titles {
			child.Title = title(e.Value)
		}
		n.Children = append(n.Children, child)
		grow(child, o)
	}
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.Parent == nil }

// IsBranch reports whether n has children.
func (n *Node) IsBranch() bool { return len(n.Children) > 0 }

// IsEmptyComposite reports whether n holds an array or object without
// entries. Objects that only carry display text, such as dates, are not
// empty composites.
func (n *Node) IsEmptyComposite() bool {
	return n.Value.IsComposite() && n.Value.Len() == 0 && n.Value.Display() == ""
}

// InArray reports whether n is an element of an array.
func (n *Node) InArray() bool {
	return n.Parent != nil && n.Parent.Value.Kind() == value.KindArray
}

// Label returns the title when set, then the key, and the type label for
// the root.
func (n *Node) Label() string {
	switch {
	case n.Title != "":
		return n.Title
	case n.HasKey:
		return n.Key
	}
	return n.Type
}

// Size returns "[N]" for arrays and "{N}" for objects, N being the number
// of children. Other values have no size.
func (n *Node) Size() string {
	switch n.Value.Kind() {
	case value.KindArray:
		return fmt.Sprintf("[%d]", len(n.Children))
	case value.KindObject:
		return fmt.Sprintf("{%d}", len(n.Children))
	}
	return ""
}

// Path returns the keys from the root down to n.
func (n *Node) Path() []string {
	var path []string
	for cur := n; cur != nil && cur.HasKey; cur = cur.Parent {
		path = append(path, cur.Key)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathString returns the path joined with "/" and a leading slash.
func (n *Node) PathString() string {
	return "/" + strings.Join(n.Path(), "/")
}

// Find returns the descendant reached by following keys, or nil.
func (n *Node) Find(keys ...string) *Node {
	cur := n
	for _, k := range keys {
		var next *Node
		for _, c := range cur.Children {
			if c.Key == k {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Traverse calls fn for n and every descendant, root first, depth first.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Traverse(fn)
	}
}

// Walk is like [Node.Traverse] but stops at the first error.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 0
	n.Traverse(func(*Node) { total++ })
	return total
}

// Descendants returns the nodes strictly below n in traversal order.
func (n *Node) Descendants() []*Node {
	var out []*Node
	n.Traverse(func(d *Node) {
		if d != n {
			out = append(out, d)
		}
	})
	return out
}
