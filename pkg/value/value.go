package value

import (
	"strconv"
)

// Kind is the runtime tag of a [Value].
type Kind int

const (
	// KindUndefined is the zero Kind: a missing value, distinct from null.
	KindUndefined Kind = iota
	KindNull
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindUndefined: "undefined",
	KindNull:      "null",
	KindString:    "string",
	KindNumber:    "number",
	KindBool:      "boolean",
	KindArray:     "array",
	KindObject:    "object",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// PlainObject is the type name carried by ordinary key/value objects.
const PlainObject = "Object"

// Field is one key/value entry of an object, in document order.
type Field struct {
	Key   string
	Value Value
}

// Value is a JSON-like value. The zero Value is undefined.
//
// Objects keep their fields in insertion order and carry a type name:
// [PlainObject] for ordinary objects, a richer name such as "Date" or
// "Float32Array" for built-in types, or the empty string for objects
// without any type information.
type Value struct {
	kind     Kind
	str      string // string text or number literal
	boolean  bool
	items    []Value
	fields   []Field
	typeName string
	display  string
}

// Undefined returns the undefined value.
func Undefined() Value { return Value{} }

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number returns a number value from its decimal literal. The literal is
// kept verbatim so large integers and exact decimals survive unchanged.
func Number(literal string) Value { return Value{kind: KindNumber, str: literal} }

// Int returns a number value for an integer.
func Int(i int64) Value { return Number(strconv.FormatInt(i, 10)) }

// Float returns a number value for a float, formatted in its shortest form.
func Float(f float64) Value { return Number(strconv.FormatFloat(f, 'g', -1, 64)) }

// Array returns an array value holding items in order.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// Object returns a plain object holding fields in order.
func Object(fields ...Field) Value {
	return Named(PlainObject, fields...)
}

// Named returns an object with the given type name. An empty name models
// an object without a prototype.
func Named(typeName string, fields ...Field) Value {
	if fields == nil {
		fields = []Field{}
	}
	return Value{kind: KindObject, fields: fields, typeName: typeName}
}

// WithDisplay returns a copy of v whose leaf text is display. It is meant
// for named objects such as dates whose text form is not derived from
// their fields.
func (v Value) WithDisplay(display string) Value {
	v.display = display
	return v
}

// F is shorthand for building a [Field].
func F(key string, v Value) Field { return Field{Key: key, Value: v} }

// Kind returns the runtime tag of v.
func (v Value) Kind() Kind { return v.kind }

// Str returns the text of a string value, or the literal of a number.
func (v Value) Str() string { return v.str }

// BoolValue returns the boolean of a bool value.
func (v Value) BoolValue() bool { return v.boolean }

// Items returns the elements of an array value.
func (v Value) Items() []Value { return v.items }

// Fields returns the fields of an object value in order.
func (v Value) Fields() []Field { return v.fields }

// ObjectType returns the type name of an object value.
func (v Value) ObjectType() string { return v.typeName }

// Display returns the leaf text set with [Value.WithDisplay].
func (v Value) Display() string { return v.display }

// IsComposite reports whether v is an array or an object.
func (v Value) IsComposite() bool { return v.kind == KindArray || v.kind == KindObject }

// Len returns the number of direct entries of an array or object, and 0
// for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.fields)
	}
	return 0
}

// Get returns the value of the object field named key.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Entries returns the direct entries of v as key/value pairs in natural
// order: field order for objects, index order for arrays. Other kinds
// have no entries.
func (v Value) Entries() []Field {
	switch v.kind {
	case KindObject:
		return v.fields
	case KindArray:
		out := make([]Field, len(v.items))
		for i, item := range v.items {
			out[i] = Field{Key: strconv.Itoa(i), Value: item}
		}
		return out
	}
	return nil
}

// Text returns the stringified form of a leaf value: strings unquoted,
// numbers as their literal, booleans as true/false, and the kind name for
// null and undefined. Objects use their display text when set.
func (v Value) Text() string {
	switch v.kind {
	case KindString, KindNumber:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindObject:
		return v.display
	}
	return ""
}
