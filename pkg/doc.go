// Package pkg provides the core libraries for jsonview, a collapsible tree
// viewer for JSON, YAML and TOML documents.
//
// # Overview
//
// jsonview turns a document into one line per node, hides everything but
// the root, and lets carets open and close branches. The pkg directory is
// organized into these areas:
//
//  1. [value] - Ordered document model and decoders
//  2. [tree] - Tree construction with a depth limit
//  3. [dom] and [view] - DOM capability, rendering and the disclosure controller
//  4. [pipeline] - Orchestration (decode → build → render) with caching
//  5. [cache], [config], [httputil] - Infrastructure
//
// # Architecture
//
// The data flow at construction time:
//
//	JSON / YAML / TOML / Go value
//	         ↓
//	    [value] package (ordered tagged union)
//	         ↓
//	    [tree] package (nodes with key, depth, parent and children)
//	         ↓
//	    [view] package (one DOM line per node, click listeners on carets)
//	         ↓
//	    HTML / text outline / DOT / SVG
//
// At interaction time a caret click reaches the [view] controller, which
// flips the node's state and then updates the lines below it.
//
// # Quick Start
//
// Render a document into an in-memory DOM and open a branch:
//
//	import (
//	    "github.com/matzehuels/jsonview/pkg/dom/htmldom"
//	    "github.com/matzehuels/jsonview/pkg/tree"
//	    "github.com/matzehuels/jsonview/pkg/view"
//	)
//
//	root, _ := tree.ParseJSON([]byte(`{"users":[{"name":"ada"}]}`))
//	doc := htmldom.New()
//	v, _ := view.RenderInto(doc, doc.Body(), root)
//	defer v.Destroy()
//
//	v.Toggle(root)
//	fmt.Print(v.Outline())
//
// # Main Packages
//
// ## Document Model
//
// [value] - A tagged union of undefined, null, string, number, bool, array
// and object. Objects keep insertion order and may carry a type name.
// Decoders for JSON (goccy/go-json), YAML (yaml.v3) and TOML
// (BurntSushi/toml), plus reflection over Go values.
//
// [tree] - Builds the node tree. Nodes deeper than the depth limit are not
// created; their parent shows a compact preview instead.
//
// ## Rendering
//
// [dom] - The small element capability the renderer needs. [dom/htmldom]
// implements it in memory over golang.org/x/net/html; [dom/jsdom] drives a
// browser through syscall/js.
//
// [view] - Renders lines from html/template markup and owns the disclosure
// state: toggle, expand, collapse and destroy.
//
// [render/nodelink] - The tree as a Graphviz digraph, and SVG through
// go-graphviz.
//
// ## Infrastructure
//
// [pipeline] - The decode → build → render pipeline used by the CLI, with
// artifact caching per output format.
//
// [cache] - Artifact storage: file, Redis and null backends.
//
// [httputil] - Fetches remote documents with retry and response caching.
//
// [config] - TOML configuration with environment overrides.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for decode, build, render, toggle and cache events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/view/...               # Specific package
//
// [value]: https://pkg.go.dev/github.com/matzehuels/jsonview/pkg/value
// [tree]: https://pkg.go.dev/github.com/matzehuels/jsonview/pkg/tree
// [dom]: https://pkg.go.dev/github.com/matzehuels/jsonview/pkg/dom
// [dom/htmldom]: https://pkg.go.dev/github.com/matzehuels/jsonview/pkg/dom/htmldom
// [dom/jsdom]: https://pkg.go.dev/github.com/matzehuels/jsonview/pkg/dom/jsdom
// [view]: https://pkg.go.dev/github.com/matzehuels/jsonview/pkg/view
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/jsonview/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/jsonview/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/jsonview/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/jsonview/pkg/httputil
// [config]: https://pkg.go.dev/github.com/matzehuels/jsonview/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/jsonview/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/jsonview/pkg/observability
package pkg
