package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/jsonview/pkg/tree"
	"github.com/matzehuels/jsonview/pkg/value"
)

func sampleTree() *tree.Node {
	return tree.Build(value.Object(
		value.F("numbers", value.Array(value.Int(1), value.Int(2))),
		value.F("name", value.String("demo")),
	))
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleTree(), Options{})

	for _, want := range []string{
		"digraph G {",
		`n0 [label="Object {2}", fillcolor="#eef3fb", penwidth=2];`,
		`n1 [label="numbers [2]", fillcolor="#eef3fb"];`,
		`n2 [label="0: 1"];`,
		`n4 [label="name: \"demo\""];`,
		"n0 -> n1;",
		"n1 -> n2;",
		"n1 -> n3;",
		"n0 -> n4;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Count(dot, "->") != 4 {
		t.Errorf("edges = %d, want 4", strings.Count(dot, "->"))
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleTree(), Options{Detailed: true})
	if !strings.Contains(dot, `n1 [label="numbers [2]\ntype: array\ndepth: 1"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestLeafText(t *testing.T) {
	tests := []struct {
		name  string
		v     value.Value
		limit int
		want  string
	}{
		{"string", value.String("hi"), 10, `"hi"`},
		{"number", value.Int(7), 10, "7"},
		{"null", value.Null(), 10, "null"},
		{"date", value.Named("Date").WithDisplay("2024-01-01"), 20, "2024-01-01"},
		{"composite", value.Array(value.Int(1), value.Int(2)), 20, "[1,2]"},
		{"truncated", value.String("abcdefgh"), 4, `"abc…`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := leafText(tt.v, tt.limit); got != tt.want {
				t.Errorf("leafText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
