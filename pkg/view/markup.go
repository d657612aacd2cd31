package view

import (
	"html/template"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/matzehuels/jsonview/pkg/tree"
	"github.com/matzehuels/jsonview/pkg/value"
)

// Class names shared with the stylesheet.
const (
	ClassContainer  = "json-container"
	ClassLine       = "line"
	ClassHidden     = "hidden"
	ClassCaret      = "caret-icon"
	ClassIcon       = "fas"
	ClassCaretRight = "fa-caret-right"
	ClassCaretDown  = "fa-caret-down"
	ClassValue      = "json-value"
)

// HiddenKey is the key hidden by [WithHiddenKeys].
const HiddenKey = "__HIDDEN__"

// Selectors the renderer requires in line markup.
const (
	caretSelector = "." + ClassCaret
	iconSelector  = "." + ClassIcon
	valueSelector = "." + ClassValue
)

const defaultTemplateText = `
{{- define "branch" -}}
<div class="caret-icon"><i class="fas fa-caret-right"></i></div>
{{- if .Root}}<div class="json-type">{{.Label}}</div>
{{- else if not .HideKey}}<div class="{{.KeyClass}}">{{.Label}}</div>{{end}}
{{- if .Size}}<div class="json-size">{{.Size}}</div>{{end}}
{{- end -}}

{{- define "leaf" -}}
{{- if .Root}}<div class="json-value json-{{.Type}}">{{.Value}}</div>
{{- else -}}
<div class="empty-icon"></div>
{{- if not .HideKey}}<div class="{{.KeyClass}}">{{.Label}}</div><div class="json-separator">:</div>{{end -}}
<div class="json-value json-{{.Type}}">{{.Value}}</div>
{{- end}}
{{- end -}}
`

// DefaultTemplates returns a fresh copy of the built-in line templates.
//
// Both templates receive a [LineData]. "branch" must produce an element
// with class "caret-icon" holding an element with class "fas"; "leaf"
// must produce an element with class "json-value".
func DefaultTemplates() *template.Template {
	return template.Must(template.New("line").Parse(defaultTemplateText))
}

var (
	defaultTemplates = sync.OnceValue(DefaultTemplates)
	ugcPolicy        = sync.OnceValue(bluemonday.UGCPolicy)
)

// LineData is the data passed to the line templates.
type LineData struct {
	Root     bool
	Depth    int
	Path     string
	Label    any    // string, or template.HTML under WithHTML
	KeyClass string // "json-key", or "json-index" for array elements
	HideKey  bool
	Size     string
	Type     string
	Value    any // string, or template.HTML under WithHTML
}

func (v *View) lineData(n *tree.Node) LineData {
	d := LineData{
		Root:     n.IsRoot(),
		Depth:    n.Depth,
		Path:     n.PathString(),
		Label:    v.content(n.Label()),
		KeyClass: "json-key",
		HideKey:  v.opts.hiddenKeys && n.HasKey && n.Key == HiddenKey,
		Type:     n.Type,
	}
	if n.InArray() {
		d.KeyClass = "json-index"
	}
	if v.isBranch(n) {
		if !v.opts.hideSize {
			d.Size = n.Size()
		}
		return d
	}
	d.Value = v.leafValue(n)
	return d
}

func (v *View) content(s string) any {
	if v.opts.html {
		return template.HTML(ugcPolicy().Sanitize(s))
	}
	return s
}

// leafValue formats the value shown on a leaf line: strings quoted as
// JSON literals, other primitives stringified, named objects by their
// display text and composites as "{}"/"[]" when empty or as a compact
// preview when cut off by the depth limit.
func (v *View) leafValue(n *tree.Node) any {
	val := n.Value
	switch val.Kind() {
	case value.KindString:
		if v.opts.html {
			return v.content(val.Str())
		}
		return value.Quote(val.Str())
	case value.KindArray, value.KindObject:
		if val.Display() != "" {
			return v.content(val.Display())
		}
		if val.Len() == 0 {
			if val.Kind() == value.KindArray {
				return "[]"
			}
			return "{}"
		}
		return truncate(value.Compact(val), v.opts.maxPreview)
	}
	return val.Text()
}

func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "…"
}

func (v *View) markup(n *tree.Node) (string, error) {
	name := "leaf"
	if v.isBranch(n) {
		name = "branch"
	}
	var sb strings.Builder
	if err := v.templates.ExecuteTemplate(&sb, name, v.lineData(n)); err != nil {
		return "", err
	}
	return sb.String(), nil
}
