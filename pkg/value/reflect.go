package value

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/matzehuels/jsonview/pkg/errors"
)

var (
	timeType   = reflect.TypeFor[time.Time]()
	valueType  = reflect.TypeFor[Value]()
	numberType = reflect.TypeFor[json.Number]()
)

// typedArrayNames maps fixed-width numeric element kinds to the names of
// the matching typed-array constructors.
var typedArrayNames = map[reflect.Kind]string{
	reflect.Int8:    "Int8Array",
	reflect.Uint8:   "Uint8Array",
	reflect.Int16:   "Int16Array",
	reflect.Uint16:  "Uint16Array",
	reflect.Int32:   "Int32Array",
	reflect.Uint32:  "Uint32Array",
	reflect.Int64:   "BigInt64Array",
	reflect.Uint64:  "BigUint64Array",
	reflect.Float32: "Float32Array",
	reflect.Float64: "Float64Array",
}

// FromGo converts an arbitrary Go value into a [Value].
//
// Conversion rules:
//   - nil, nil pointers, nil maps and nil interfaces become null
//   - bools, integers, floats, strings and [json.Number] become primitives
//   - [time.Time] becomes a "Date" object
//   - slices and arrays of fixed-width numbers become typed-array objects
//     ("Float32Array", "Int16Array", ...) keyed by index
//   - other slices and arrays become arrays
//   - maps become plain objects with keys in sorted order
//   - structs become objects named after their Go type (anonymous structs
//     are plain objects); exported fields are used and json tags honored
//   - a [Value] is returned unchanged
//
// A reference cycle yields an INVALID_INPUT error instead of unbounded
// recursion.
func FromGo(x any) (Value, error) {
	c := converter{visiting: make(map[visitKey]bool)}
	return c.convert(reflect.ValueOf(x), nil)
}

type visitKey struct {
	ptr uintptr
	typ reflect.Type
}

type converter struct {
	visiting map[visitKey]bool
}

func (c *converter) enter(rv reflect.Value, path []string) (visitKey, error) {
	k := visitKey{ptr: rv.Pointer(), typ: rv.Type()}
	if k.ptr == 0 {
		return k, nil
	}
	if c.visiting[k] {
		return k, errors.New(errors.ErrCodeInvalidInput, "reference cycle at /%s", strings.Join(path, "/"))
	}
	c.visiting[k] = true
	return k, nil
}

func (c *converter) leave(k visitKey) {
	delete(c.visiting, k)
}

func (c *converter) convert(rv reflect.Value, path []string) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}
	if rv.Type() == valueType {
		return rv.Interface().(Value), nil
	}
	if rv.Type() == timeType {
		return Date(rv.Interface().(time.Time)), nil
	}
	if rv.Type() == numberType {
		return Number(rv.String()), nil
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return c.convert(rv.Elem(), path)

	case reflect.Pointer:
		if rv.IsNil() {
			return Null(), nil
		}
		k, err := c.enter(rv, path)
		if err != nil {
			return Value{}, err
		}
		defer c.leave(k)
		return c.convert(rv.Elem(), path)

	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(strconv.FormatUint(rv.Uint(), 10)), nil
	case reflect.Float32:
		return Number(strconv.FormatFloat(rv.Float(), 'g', -1, 32)), nil
	case reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil

	case reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
		k, err := c.enter(rv, path)
		if err != nil {
			return Value{}, err
		}
		defer c.leave(k)
		return c.convertList(rv, path)

	case reflect.Array:
		return c.convertList(rv, path)

	case reflect.Map:
		if rv.IsNil() {
			return Null(), nil
		}
		k, err := c.enter(rv, path)
		if err != nil {
			return Value{}, err
		}
		defer c.leave(k)
		return c.convertMap(rv, path)

	case reflect.Struct:
		return c.convertStruct(rv, path)
	}
	return Value{}, errors.New(errors.ErrCodeUnsupported, "cannot convert %s at /%s", rv.Type(), strings.Join(path, "/"))
}

func (c *converter) convertList(rv reflect.Value, path []string) (Value, error) {
	n := rv.Len()
	if name, ok := typedArrayNames[rv.Type().Elem().Kind()]; ok {
		fields := make([]Field, n)
		for i := range n {
			key := strconv.Itoa(i)
			v, err := c.convert(rv.Index(i), append(path, key))
			if err != nil {
				return Value{}, err
			}
			fields[i] = Field{Key: key, Value: v}
		}
		return Named(name, fields...), nil
	}

	items := make([]Value, n)
	for i := range n {
		v, err := c.convert(rv.Index(i), append(path, strconv.Itoa(i)))
		if err != nil {
			return Value{}, err
		}
		items[i] = v
	}
	return Array(items...), nil
}

func (c *converter) convertMap(rv reflect.Value, path []string) (Value, error) {
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: mapKeyString(iter.Key()), val: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.key, b.key) })

	fields := make([]Field, len(entries))
	for i, e := range entries {
		v, err := c.convert(e.val, append(path, e.key))
		if err != nil {
			return Value{}, err
		}
		fields[i] = Field{Key: e.key, Value: v}
	}
	return Object(fields...), nil
}

func mapKeyString(k reflect.Value) string {
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10)
	}
	if s, ok := k.Interface().(interface{ String() string }); ok {
		return s.String()
	}
	return k.String()
}

func (c *converter) convertStruct(rv reflect.Value, path []string) (Value, error) {
	t := rv.Type()
	var fields []Field
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, omitEmpty, skip := jsonFieldName(sf)
		if skip {
			continue
		}
		fv := rv.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		v, err := c.convert(fv, append(path, name))
		if err != nil {
			return Value{}, err
		}
		fields = append(fields, Field{Key: name, Value: v})
	}

	name := t.Name()
	if name == "" {
		name = PlainObject
	}
	return Named(name, fields...), nil
}

func jsonFieldName(sf reflect.StructField) (name string, omitEmpty, skip bool) {
	tag, ok := sf.Tag.Lookup("json")
	if !ok {
		return sf.Name, false, false
	}
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = sf.Name
	}
	for _, o := range strings.Split(opts, ",") {
		if o == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}
