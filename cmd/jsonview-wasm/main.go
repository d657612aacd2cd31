//go:build js && wasm

// Command jsonview-wasm exposes the tree viewer to page scripts as the
// global jsonview object:
//
//	const id = jsonview.render("#target", text, {maxDepth: 4, expand: true})
//	jsonview.collapse(id, "data", "items")
//	jsonview.expand(id)
//	jsonview.destroy(id)
//
// Every function returns an object with an "error" field on failure.
package main

import (
	"fmt"
	"syscall/js"

	"github.com/matzehuels/jsonview/pkg/dom"
	"github.com/matzehuels/jsonview/pkg/dom/jsdom"
	"github.com/matzehuels/jsonview/pkg/errors"
	"github.com/matzehuels/jsonview/pkg/tree"
	"github.com/matzehuels/jsonview/pkg/value"
	"github.com/matzehuels/jsonview/pkg/view"
)

var (
	doc   = jsdom.New()
	views = map[string]*view.View{}
)

func main() {
	js.Global().Set("jsonview", js.ValueOf(map[string]any{
		"render":   js.FuncOf(render),
		"expand":   js.FuncOf(bulk("expand", (*view.View).Expand)),
		"collapse": js.FuncOf(bulk("collapse", (*view.View).Collapse)),
		"toggle":   js.FuncOf(bulk("toggle", (*view.View).Toggle)),
		"destroy":  js.FuncOf(destroy),
	}))
	select {}
}

// render(target, text, options) parses text and renders it into target,
// returning the view id.
func render(_ js.Value, args []js.Value) any {
	if len(args) < 2 {
		return failure(errors.New(errors.ErrCodeInvalidInput, "render: want target and text"))
	}
	target, err := resolveTarget(args[0])
	if err != nil {
		return failure(err)
	}
	opts := js.Undefined()
	if len(args) > 2 {
		opts = args[2]
	}

	v, err := parse(args[1].String(), stringOpt(opts, "format"))
	if err != nil {
		return failure(err)
	}
	root := tree.Build(v, treeOptions(opts)...)
	tv, err := view.RenderInto(doc, target, root, viewOptions(opts)...)
	if err != nil {
		return failure(err)
	}
	views[tv.ID()] = tv
	return tv.ID()
}

func resolveTarget(arg js.Value) (dom.Element, error) {
	if arg.Type() == js.TypeString {
		return doc.QuerySelector(arg.String())
	}
	return jsdom.Wrap(arg), nil
}

func parse(text, format string) (value.Value, error) {
	switch format {
	case "yaml", "yml":
		return value.ParseYAML([]byte(text))
	case "toml":
		return value.ParseTOML([]byte(text))
	case "", "json":
		return value.ParseJSON([]byte(text))
	}
	return value.Value{}, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", format)
}

func treeOptions(opts js.Value) []tree.Option {
	var out []tree.Option
	if isSet(opts) && opts.Get("maxDepth").Type() == js.TypeNumber {
		out = append(out, tree.WithMaxDepth(opts.Get("maxDepth").Int()))
	}
	if boolOpt(opts, "titles") {
		out = append(out, tree.WithTitles())
	}
	return out
}

func viewOptions(opts js.Value) []view.Option {
	var out []view.Option
	if isSet(opts) {
		if px := opts.Get("indent"); px.Type() == js.TypeNumber {
			out = append(out, view.WithIndent(px.Int()))
		}
		if n := opts.Get("maxPreview"); n.Type() == js.TypeNumber {
			out = append(out, view.WithMaxPreview(n.Int()))
		}
	}
	flags := map[string]func() view.Option{
		"hideSize":    view.WithHideSize,
		"html":        view.WithHTML,
		"hiddenKeys":  view.WithHiddenKeys,
		"emptyBranch": view.WithEmptyAsBranch,
		"expand":      view.WithStartExpanded,
	}
	for name, opt := range flags {
		if boolOpt(opts, name) {
			out = append(out, opt())
		}
	}
	return out
}

// bulk returns a handler for fn(id, ...path). An empty path means the root.
func bulk(op string, fn func(*view.View, *tree.Node) error) func(js.Value, []js.Value) any {
	return func(_ js.Value, args []js.Value) any {
		tv, err := lookup(op, args)
		if err != nil {
			return failure(err)
		}
		keys := make([]string, 0, len(args)-1)
		for _, a := range args[1:] {
			keys = append(keys, a.String())
		}
		n := tv.Root().Find(keys...)
		if n == nil {
			return failure(errors.New(errors.ErrCodeNotRendered, "%s: no node at %v", op, keys))
		}
		if err := fn(tv, n); err != nil {
			return failure(err)
		}
		return nil
	}
}

func destroy(_ js.Value, args []js.Value) any {
	tv, err := lookup("destroy", args)
	if err != nil {
		return failure(err)
	}
	delete(views, tv.ID())
	if err := tv.Destroy(); err != nil {
		return failure(err)
	}
	return nil
}

func lookup(op string, args []js.Value) (*view.View, error) {
	if len(args) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: want a view id", op)
	}
	tv, ok := views[args[0].String()]
	if !ok {
		return nil, errors.New(errors.ErrCodeDestroyed, "%s: no view %s", op, args[0].String())
	}
	return tv, nil
}

func failure(err error) any {
	return map[string]any{"error": fmt.Sprint(err)}
}

func isSet(opts js.Value) bool {
	return opts.Type() == js.TypeObject
}

func boolOpt(opts js.Value, name string) bool {
	return isSet(opts) && opts.Get(name).Truthy()
}

func stringOpt(opts js.Value, name string) string {
	if !isSet(opts) || opts.Get(name).Type() != js.TypeString {
		return ""
	}
	return opts.Get(name).String()
}
