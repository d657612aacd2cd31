package value

import (
	"bytes"
	"io"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/jsonview/pkg/errors"
)

// ParseJSON decodes a single JSON document, keeping object keys in
// document order. A repeated key keeps its first position and its last
// value. Trailing data after the document is an error.
func ParseJSON(data []byte) (Value, error) {
	return DecodeJSON(bytes.NewReader(data))
}

// DecodeJSON reads a single JSON document from r. See [ParseJSON].
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return Value{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return Value{}, errors.New(errors.ErrCodeInvalidInput, "decode JSON: unexpected data after top-level value")
		}
		return Value{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}
		return Value{}, errors.New(errors.ErrCodeInvalidInput, "unexpected delimiter %q", rune(t))
	case string:
		return String(t), nil
	case json.Number:
		return Number(string(t)), nil
	case float64:
		return Float(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	}
	return Value{}, errors.New(errors.ErrCodeInvalidInput, "unexpected token %v", tok)
}

func decodeJSONObject(dec *json.Decoder) (Value, error) {
	var fields []Field
	index := make(map[string]int)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, errors.New(errors.ErrCodeInvalidInput, "object key must be a string, got %v", tok)
		}
		v, err := decodeJSONValue(dec)
		if err != nil {
			return Value{}, err
		}
		if i, dup := index[key]; dup {
			fields[i].Value = v
			continue
		}
		index[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: v})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return Value{}, err
	}
	return Object(fields...), nil
}

func decodeJSONArray(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		v, err := decodeJSONValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return Value{}, err
	}
	return Array(items...), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return errors.New(errors.ErrCodeInvalidInput, "expected %q, got %v", rune(want), tok)
	}
	return nil
}

// MarshalJSON encodes v as compact JSON with object keys in order.
// Undefined encodes as null at the top level and in arrays, and is
// skipped inside objects. Objects with display text encode as that text.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Compact returns the compact JSON text of v for previews. Unlike
// [Value.MarshalJSON] a top-level undefined reads "undefined".
func Compact(v Value) string {
	if v.kind == KindUndefined {
		return "undefined"
	}
	data, err := v.MarshalJSON()
	if err != nil {
		return v.Text()
	}
	return string(data)
}

// Quote returns s as a JSON string literal without HTML escaping.
func Quote(s string) string {
	data, err := json.MarshalWithOption(s, json.DisableHTMLEscape())
	if err != nil {
		return strconv.Quote(s)
	}
	return string(data)
}

func writeJSON(buf *bytes.Buffer, v Value) error {
	switch v.kind {
	case KindUndefined, KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case KindNumber:
		buf.WriteString(v.str)
	case KindString:
		buf.WriteString(Quote(v.str))
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		if v.display != "" && len(v.fields) == 0 {
			buf.WriteString(Quote(v.display))
			return nil
		}
		buf.WriteByte('{')
		first := true
		for _, f := range v.fields {
			if f.Value.kind == KindUndefined {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			buf.WriteString(Quote(f.Key))
			buf.WriteByte(':')
			if err := writeJSON(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return errors.New(errors.ErrCodeInternal, "unknown value kind %v", v.kind)
	}
	return nil
}
