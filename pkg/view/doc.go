// Package view renders a virtual tree into a DOM and controls its
// disclosure state.
//
// [Render] walks the tree root first, depth first, and creates one line
// element per node inside a container. Branch lines get a caret whose
// click listener toggles the node; leaf lines show their formatted value.
// Every line except the root's starts hidden.
//
//	root := tree.Build(v)
//	doc := htmldom.New()
//	tv, err := view.RenderInto(doc, doc.Body(), root)
//	if err != nil {
//	    return err
//	}
//	defer tv.Destroy()
//
//	tv.Toggle(root)        // open the root, revealing its children
//	tv.Expand(root)        // open everything
//	tv.Collapse(root)      // close everything below the root
//
// The View keeps node state and the DOM in step explicitly: visibility is
// the "hidden" class on each line, carets are the "fa-caret-right" and
// "fa-caret-down" classes of the glyph element.
//
// # Markup
//
// Lines come from html/template templates, so keys and values are escaped.
// [WithHTML] treats them as markup instead, sanitized with bluemonday.
// [WithTemplates] swaps the templates; markup that lacks the caret or value
// element fails the render with an [errors.StructuralRenderError].
//
// # Teardown
//
// [View.Destroy] calls each stored disposer exactly once and detaches the
// container. Afterwards every operation returns a DESTROYED error.
package view
