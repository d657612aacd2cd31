package value

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jsonview/pkg/errors"
)

// ParseTOML decodes a TOML document into an object. Keys keep the order
// in which they first appear in the document; datetimes become "Date"
// objects.
func ParseTOML(data []byte) (Value, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return Value{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode TOML")
	}

	order := make(map[string]int)
	for i, k := range md.Keys() {
		p := strings.Join(k, "\x00")
		if _, seen := order[p]; !seen {
			order[p] = i
		}
	}
	return fromTOML(raw, nil, order)
}

func fromTOML(raw any, path []string, order map[string]int) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int64:
		return Int(t), nil
	case float64:
		return Float(t), nil
	case time.Time:
		return Date(t), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		rank := func(k string) int {
			if i, ok := order[strings.Join(append(slices.Clone(path), k), "\x00")]; ok {
				return i
			}
			return len(order)
		}
		slices.SortStableFunc(keys, func(a, b string) int {
			if ra, rb := rank(a), rank(b); ra != rb {
				return ra - rb
			}
			return strings.Compare(a, b)
		})
		fields := make([]Field, 0, len(keys))
		for _, k := range keys {
			v, err := fromTOML(t[k], append(slices.Clone(path), k), order)
			if err != nil {
				return Value{}, err
			}
			fields = append(fields, Field{Key: k, Value: v})
		}
		return Object(fields...), nil
	case []map[string]any:
		items := make([]Value, 0, len(t))
		for _, m := range t {
			v, err := fromTOML(m, path, order)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Array(items...), nil
	case []any:
		items := make([]Value, 0, len(t))
		for _, e := range t {
			v, err := fromTOML(e, path, order)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Array(items...), nil
	}
	return Value{}, errors.New(errors.ErrCodeInvalidInput, "unsupported TOML value %s", fmt.Sprintf("%T", raw))
}
