// Package nodelink renders a virtual tree as a traditional node-link
// diagram.
//
// # Overview
//
// Each tree node becomes a box and each parent/child link an arrow. It is
// a static companion to the interactive view: the whole tree is drawn,
// whatever its disclosure state.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include the type and depth
//   - MaxLabel: Caps the value text shown on leaf boxes
//
// # DOT Format
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded
// box nodes. Branches are shaded, leaves are white. Node identifiers are
// assigned in traversal order ("n0" is the root).
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
