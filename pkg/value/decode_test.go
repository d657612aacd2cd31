package value

import (
	"testing"
	"time"

	"github.com/matzehuels/jsonview/pkg/errors"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return tm
}

func keys(v Value) []string {
	var out []string
	for _, f := range v.Fields() {
		out = append(out, f.Key)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseJSON(t *testing.T) {
	v, err := ParseJSON([]byte(`{"zeta": 1, "alpha": [true, null, "s"], "big": 12345678901234567890, "obj": {}}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got := keys(v); !equalStrings(got, []string{"zeta", "alpha", "big", "obj"}) {
		t.Errorf("keys = %v, want document order", got)
	}
	big, _ := v.Get("big")
	if big.Str() != "12345678901234567890" {
		t.Errorf("big number literal = %q", big.Str())
	}
	alpha, _ := v.Get("alpha")
	if alpha.Len() != 3 || alpha.Items()[1].Kind() != KindNull {
		t.Errorf("alpha = %s", Compact(alpha))
	}
}

func TestParseJSONDuplicateKeys(t *testing.T) {
	v, err := ParseJSON([]byte(`{"a": 1, "b": 2, "a": 3}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := Compact(v); got != `{"a":3,"b":2}` {
		t.Errorf("Compact() = %s", got)
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"truncated", `{"a": [1, 2`},
		{"trailing", `{"a": 1} {"b": 2}`},
		{"garbage", `nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestParseJSONScalars(t *testing.T) {
	tests := []struct {
		input    string
		wantKind Kind
		wantText string
	}{
		{`"some text"`, KindString, "some text"},
		{`123`, KindNumber, "123"},
		{`-1.5e3`, KindNumber, "-1.5e3"},
		{`false`, KindBool, "false"},
		{`null`, KindNull, "null"},
	}
	for _, tt := range tests {
		v, err := ParseJSON([]byte(tt.input))
		if err != nil {
			t.Fatalf("ParseJSON(%s): %v", tt.input, err)
		}
		if v.Kind() != tt.wantKind || v.Text() != tt.wantText {
			t.Errorf("ParseJSON(%s) = %v %q", tt.input, v.Kind(), v.Text())
		}
	}
}

func TestParseYAML(t *testing.T) {
	src := `
name: demo
when: 2024-05-01T10:00:00Z
base: &base
  x: 1
  y: 2
derived:
  <<: *base
  y: 3
  z: [a, b]
empty:
`
	v, err := ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if got := keys(v); !equalStrings(got, []string{"name", "when", "base", "derived", "empty"}) {
		t.Errorf("keys = %v", got)
	}
	when, _ := v.Get("when")
	if TypeName(when) != "Date" || when.Display() != "2024-05-01T10:00:00Z" {
		t.Errorf("when = %s %q", TypeName(when), when.Display())
	}
	derived, _ := v.Get("derived")
	if got := Compact(derived); got != `{"x":1,"y":3,"z":["a","b"]}` {
		t.Errorf("derived = %s", got)
	}
	empty, _ := v.Get("empty")
	if empty.Kind() != KindNull {
		t.Errorf("empty = %v, want null", empty.Kind())
	}
}

func TestParseYAMLEmptyDocument(t *testing.T) {
	v, err := ParseYAML(nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != KindNull {
		t.Errorf("kind = %v, want null", v.Kind())
	}
}

func TestParseYAMLInvalid(t *testing.T) {
	_, err := ParseYAML([]byte("a: [1, 2"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestParseTOML(t *testing.T) {
	src := `
title = "config"
zeta = 1

[server]
port = 8080
host = "localhost"

[[items]]
name = "b"

[[items]]
name = "a"
`
	v, err := ParseTOML([]byte(src))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	if got := keys(v); !equalStrings(got, []string{"title", "zeta", "server", "items"}) {
		t.Errorf("keys = %v", got)
	}
	server, _ := v.Get("server")
	if got := keys(server); !equalStrings(got, []string{"port", "host"}) {
		t.Errorf("server keys = %v", got)
	}
	items, _ := v.Get("items")
	if got := Compact(items); got != `[{"name":"b"},{"name":"a"}]` {
		t.Errorf("items = %s", got)
	}
}

func TestParseTOMLDates(t *testing.T) {
	v, err := ParseTOML([]byte("at = 2024-05-01T10:00:00Z\n"))
	if err != nil {
		t.Fatal(err)
	}
	at, _ := v.Get("at")
	if TypeName(at) != "Date" {
		t.Errorf("TypeName = %q, want Date", TypeName(at))
	}
}

func TestParseTOMLInvalid(t *testing.T) {
	_, err := ParseTOML([]byte("= broken"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}
