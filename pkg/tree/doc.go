// Package tree builds the virtual tree rendered by the view controller.
//
// [Build] turns a [value.Value] into a hierarchy of [Node]s, one node per
// reachable entry, in natural order: field order for objects and index
// order for arrays. Each node records its key, type label, depth and a
// non-owning link to its parent. Building never touches a DOM; the
// element and disposer fields stay nil until the tree is rendered.
//
// # Depth Limit
//
// Nodes are created down to [DefaultMaxDepth]. A composite value sitting
// at the limit becomes an opaque leaf whatever its structure. Use
// [WithMaxDepth] to change the limit or [Unlimited] to disable it:
//
//	root := tree.Build(v, tree.WithMaxDepth(tree.Unlimited))
//
// # Titles
//
// With [WithTitles], an object holding a string "__TITLE__" field is
// labeled by that title instead of its key, and the title field itself
// gets no node.
package tree
