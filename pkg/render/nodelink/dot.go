package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/jsonview/pkg/tree"
	"github.com/matzehuels/jsonview/pkg/value"
)

// DefaultMaxLabel caps leaf value text when Options.MaxLabel is zero.
const DefaultMaxLabel = 40

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the type label and depth to every node label.
	Detailed bool

	// MaxLabel caps the value text of leaf labels, in runes.
	MaxLabel int
}

// ToDOT converts a tree to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(root *tree.Node, opts Options) string {
	if opts.MaxLabel <= 0 {
		opts.MaxLabel = DefaultMaxLabel
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, fontname=\"monospace\", margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := make(map[*tree.Node]string)
	var edges [][2]string
	root.Traverse(func(n *tree.Node) {
		id := "n" + strconv.Itoa(len(ids))
		ids[n] = id
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(fmtAttrs(n, opts), ", "))
		if n.Parent != nil {
			edges = append(edges, [2]string{ids[n.Parent], id})
		}
	})

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %s -> %s;\n", e[0], e[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *tree.Node, opts Options) string {
	var label string
	switch {
	case n.IsBranch():
		label = n.Label() + " " + n.Size()
	case n.IsRoot():
		label = leafText(n.Value, opts.MaxLabel)
	default:
		label = n.Label() + ": " + leafText(n.Value, opts.MaxLabel)
	}
	if !opts.Detailed {
		return label
	}
	return label + "\n" + fmt.Sprintf("type: %s\ndepth: %d", n.Type, n.Depth)
}

func fmtAttrs(n *tree.Node, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts))}
	if n.IsBranch() {
		attrs = append(attrs, "fillcolor=\"#eef3fb\"")
	}
	if n.IsRoot() {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

func leafText(v value.Value, limit int) string {
	var s string
	switch v.Kind() {
	case value.KindString:
		s = value.Quote(v.Str())
	case value.KindArray, value.KindObject:
		if v.Display() != "" {
			s = v.Display()
		} else {
			s = value.Compact(v)
		}
	default:
		s = v.Text()
	}
	if utf8.RuneCountInString(s) > limit {
		s = string([]rune(s)[:limit]) + "…"
	}
	return s
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag to a zero-origin viewBox with
// matching pixel size so the diagram scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
