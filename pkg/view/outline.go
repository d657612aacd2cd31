package view

import (
	"strings"

	"github.com/matzehuels/jsonview/pkg/dom"
)

// Markers used by [View.Outline] in front of each line.
const (
	MarkerOpen   = "▾"
	MarkerClosed = "▸"
)

const keySelector = ".json-key, .json-index, .json-type"

// LineText is the text shown on a line, split by role.
type LineText struct {
	Key   string
	Size  string
	Value string
}

// Text reads the key, size and value text of the line from its markup.
// Parts the line templates do not produce are empty.
func (l Line) Text() LineText {
	return LineText{
		Key:   textOf(l.Element, keySelector),
		Size:  textOf(l.Element, ".json-size"),
		Value: textOf(l.Element, valueSelector),
	}
}

func textOf(el dom.Element, selector string) string {
	found, err := el.QuerySelector(selector)
	if err != nil || found == nil {
		return ""
	}
	return strings.TrimSpace(found.TextContent())
}

// String formats the line as "key: value" or "key size".
func (t LineText) String() string {
	var sb strings.Builder
	sb.WriteString(t.Key)
	if t.Value != "" {
		if t.Key != "" {
			sb.WriteString(": ")
		}
		sb.WriteString(t.Value)
	}
	if t.Size != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Size)
	}
	return sb.String()
}

// Outline returns the visible lines as indented plain text, two spaces per
// depth level, with branch lines marked open or closed.
func (v *View) Outline() string {
	var sb strings.Builder
	for _, l := range v.VisibleLines() {
		sb.WriteString(strings.Repeat("  ", l.Node.Depth))
		switch {
		case l.Open:
			sb.WriteString(MarkerOpen + " ")
		case l.Branch:
			sb.WriteString(MarkerClosed + " ")
		default:
			sb.WriteString("  ")
		}
		sb.WriteString(l.Text().String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
