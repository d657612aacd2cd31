package value

import (
	"testing"
)

func TestTypeName(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"string", String("x"), "string"},
		{"empty string", String(""), "string"},
		{"number", Int(3), "number"},
		{"float", Float(1.5), "number"},
		{"bool", Bool(false), "boolean"},
		{"null", Null(), "null"},
		{"undefined", Undefined(), "undefined"},
		{"array", Array(Int(1)), "array"},
		{"empty array", Array(), "array"},
		{"plain object", Object(F("a", Int(1))), "Object"},
		{"prototype-less object", Named(""), "object"},
		{"date", Named("Date").WithDisplay("2024-01-02T00:00:00Z"), "Date"},
		{"typed array", Named("Float32Array", F("0", Float(1))), "Float32Array"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeName(tt.v); got != tt.want {
				t.Errorf("TypeName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want Class
	}{
		{"primitive", String("s"), Class{Kind: ClassPrimitive, Primitive: KindString}},
		{"null", Null(), Class{Kind: ClassNull}},
		{"undefined", Undefined(), Class{Kind: ClassUndefined}},
		{"array", Array(), Class{Kind: ClassArray}},
		{"plain", Object(), Class{Kind: ClassPlainObject, Name: PlainObject}},
		{"no prototype", Named(""), Class{Kind: ClassPlainObject}},
		{"named", Named("Map"), Class{Kind: ClassNamedType, Name: "Map"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.v); got != tt.want {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValueText(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{String("some text"), "some text"},
		{Int(123), "123"},
		{Number("1e400"), "1e400"},
		{Bool(true), "true"},
		{Null(), "null"},
		{Undefined(), "undefined"},
		{Named("Date").WithDisplay("2024-01-02"), "2024-01-02"},
	}
	for _, tt := range tests {
		if got := tt.v.Text(); got != tt.want {
			t.Errorf("%v.Text() = %q, want %q", tt.v.Kind(), got, tt.want)
		}
	}
}

func TestEntries(t *testing.T) {
	arr := Array(String("a"), String("b"))
	entries := arr.Entries()
	if len(entries) != 2 || entries[0].Key != "0" || entries[1].Key != "1" {
		t.Fatalf("array entries = %+v", entries)
	}

	obj := Object(F("z", Int(1)), F("a", Int(2)))
	entries = obj.Entries()
	if len(entries) != 2 || entries[0].Key != "z" || entries[1].Key != "a" {
		t.Fatalf("object entries should keep insertion order, got %+v", entries)
	}

	if String("x").Entries() != nil {
		t.Error("primitives should have no entries")
	}
	if obj.Len() != 2 || arr.Len() != 2 || Null().Len() != 0 {
		t.Error("Len mismatch")
	}
}

func TestCompact(t *testing.T) {
	v := Object(
		F("b", Array(Int(1), Undefined(), Null())),
		F("skip", Undefined()),
		F("a", String("<x>")),
		F("when", Date(mustTime(t, "2024-05-01T10:00:00Z"))),
	)
	want := `{"b":[1,null,null],"a":"<x>","when":"2024-05-01T10:00:00Z"}`
	if got := Compact(v); got != want {
		t.Errorf("Compact() = %s, want %s", got, want)
	}
	if got := Compact(Array(String("a&b"), String("</script>"))); got != `["a&b","</script>"]` {
		t.Errorf("Compact() = %s, want HTML characters unescaped", got)
	}
	if got := Compact(Undefined()); got != "undefined" {
		t.Errorf("Compact(undefined) = %s", got)
	}
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"some text": `"some text"`,
		`say "hi"`:  `"say \"hi\""`,
		"a\nb":      `"a\nb"`,
		"<b>":       `"<b>"`,
		"a\"<b>&":  `"a\"<b>&"`,
		"x && y":    `"x && y"`,
	}
	for in, want := range tests {
		if got := Quote(in); got != want {
			t.Errorf("Quote(%q) = %s, want %s", in, got, want)
		}
	}
}
