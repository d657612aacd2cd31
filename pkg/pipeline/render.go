package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/jsonview/pkg/dom/htmldom"
	"github.com/matzehuels/jsonview/pkg/observability"
	"github.com/matzehuels/jsonview/pkg/render/nodelink"
	"github.com/matzehuels/jsonview/pkg/value"
	"github.com/matzehuels/jsonview/pkg/view"
)

// Render generates output artifacts in the requested formats. Each format
// renders its own tree because a rendered tree holds its DOM elements.
func Render(ctx context.Context, v value.Value, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		var data []byte
		data, err = renderFormat(ctx, v, format, opts)
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			break
		}
		artifacts[format] = data
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, v value.Value, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatHTML, FormatText:
		tv, err := RenderView(ctx, htmldom.New(), v, opts)
		if err != nil {
			return nil, err
		}
		out := htmldom.OuterHTML(tv.Container())
		if format == FormatText {
			out = tv.Outline()
		}
		if err := tv.Destroy(); err != nil {
			return nil, err
		}
		return []byte(out), nil
	case FormatDOT:
		return []byte(renderDOT(ctx, v, opts)), nil
	case FormatSVG:
		return nodelink.RenderSVG(renderDOT(ctx, v, opts))
	}
	return nil, ValidateFormat(format)
}

// RenderView builds the tree for v and renders it into doc's body.
func RenderView(ctx context.Context, doc *htmldom.Document, v value.Value, opts Options) (*view.View, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	root := Build(ctx, v, opts)
	return view.RenderInto(doc, doc.Body(), root, opts.ViewOptions()...)
}

func renderDOT(ctx context.Context, v value.Value, opts Options) string {
	root := Build(ctx, v, opts)
	return nodelink.ToDOT(root, nodelink.Options{Detailed: opts.Detailed})
}
